/*
Copyright © 2024 the XAS-CDIF authors.
This file is part of XAS-CDIF.

XAS-CDIF is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

XAS-CDIF is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with XAS-CDIF.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package cdif classifies the array nodes of a self-describing scientific
// data file into measures, coordinate dimensions, and contextual attributes,
// and expresses the result as a schema.org/DDI-CDI JSON-LD document for
// downstream cataloguing tools.
package cdif

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Version is the version of this version of XAS-CDIF.
const Version = "0.1.0"

// An ElementType is the canonical element type of an array node,
// reduced from the source format's type vocabulary.
type ElementType int

const (
	TypeUnknown ElementType = iota
	TypeInt
	TypeFloat
	TypeString
	TypeTime
)

func (t ElementType) String() string {
	switch t {
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeTime:
		return "time"
	default:
		return "unknown"
	}
}

// Numeric reports whether t is an integer or floating point type.
func (t ElementType) Numeric() bool { return t == TypeInt || t == TypeFloat }

// ParseElementType canonicalizes a format-specific type tag such as
// "float32", "int16", "char" or "datetime64[ns]".
func ParseElementType(tag string) (ElementType, error) {
	switch s := strings.ToLower(strings.TrimSpace(tag)); {
	case s == "byte" || s == "int8" || s == "uint8" || s == "short" ||
		s == "int16" || s == "uint16" || s == "int" || s == "int32" ||
		s == "uint32" || s == "long" || s == "int64" || s == "uint64":
		return TypeInt, nil
	case s == "float" || s == "float32" || s == "double" || s == "float64":
		return TypeFloat, nil
	case s == "char" || s == "string":
		return TypeString, nil
	case strings.HasPrefix(s, "datetime") || strings.HasPrefix(s, "timedelta") || s == "time":
		return TypeTime, nil
	default:
		return TypeUnknown, fmt.Errorf("cdif: unrecognized element type tag %q", tag)
	}
}

// A RawNode is the per-node metadata yielded by a file reader: the
// node's hierarchical path, axis lengths, a format-specific element type
// tag, its local attributes, and per-axis label strings (empty where no
// axis scale is attached). Err records a reader-side problem with this
// node; the node is still emitted with whatever fields could be read.
type RawNode struct {
	Path       string
	Shape      []int
	TypeTag    string
	Attrs      map[string]interface{}
	AxisLabels []string
	Err        error
}

// NextNode is a function that returns metadata for the next array node
// in a file. It returns io.EOF after the last node.
type NextNode func() (*RawNode, error)

// A NodeDescriptor is the canonical description of one array node.
// Path is unique within a DescriptorSet. AxisLabels, when non-empty,
// has the same length as Shape.
type NodeDescriptor struct {
	Path       string
	Shape      []int
	Type       ElementType
	Attrs      map[string]interface{}
	AxisLabels []string
}

// Name returns the display name of the node: the last segment of its path.
func (d *NodeDescriptor) Name() string {
	if i := strings.LastIndex(d.Path, "/"); i >= 0 {
		return d.Path[i+1:]
	}
	return d.Path
}

// Scalar reports whether the node is rank 0.
func (d *NodeDescriptor) Scalar() bool { return len(d.Shape) == 0 }

// A DescriptorSet is an ordered collection of node descriptors keyed by
// path, in the order the nodes were yielded by the reader.
type DescriptorSet struct {
	paths []string
	nodes map[string]*NodeDescriptor
}

// NewDescriptorSet returns an empty descriptor collection.
func NewDescriptorSet() *DescriptorSet {
	return &DescriptorSet{nodes: make(map[string]*NodeDescriptor)}
}

// Add inserts d, reporting whether the path was not already present.
func (s *DescriptorSet) Add(d *NodeDescriptor) bool {
	if _, ok := s.nodes[d.Path]; ok {
		return false
	}
	s.paths = append(s.paths, d.Path)
	s.nodes[d.Path] = d
	return true
}

// Len returns the number of descriptors in the collection.
func (s *DescriptorSet) Len() int { return len(s.paths) }

// Paths returns the descriptor paths in insertion order.
// The returned slice must not be modified.
func (s *DescriptorSet) Paths() []string { return s.paths }

// Get returns the descriptor for path, or nil.
func (s *DescriptorSet) Get(path string) *NodeDescriptor { return s.nodes[path] }

// Extract drains next into a DescriptorSet, normalizing each raw node.
// Per-node problems (unreadable type tags, axis label mismatches,
// duplicate paths, reader-side node errors) are recorded in r and never
// stop extraction; only a reader iteration failure is returned as an error.
func Extract(next NextNode, r *Report) (*DescriptorSet, error) {
	s := NewDescriptorSet()
	for {
		n, err := next()
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return nil, fmt.Errorf("cdif: reading array nodes: %v", err)
		}
		if n.Err != nil {
			r.add(ExtractionDiagnostic, n.Path, n.Shape, n.Err)
		}
		d := &NodeDescriptor{
			Path:  n.Path,
			Shape: append([]int(nil), n.Shape...),
			Attrs: normalizeAttrs(n.Attrs),
		}
		if n.TypeTag != "" {
			t, err := ParseElementType(n.TypeTag)
			if err != nil {
				r.add(ExtractionDiagnostic, n.Path, n.Shape, err)
			}
			d.Type = t
		}
		if len(n.AxisLabels) > 0 {
			if len(n.AxisLabels) != len(n.Shape) {
				r.add(ExtractionDiagnostic, n.Path, n.Shape,
					fmt.Errorf("cdif: %d axis labels for %d axes", len(n.AxisLabels), len(n.Shape)))
			} else {
				d.AxisLabels = append([]string(nil), n.AxisLabels...)
			}
		}
		if !s.Add(d) {
			r.add(ExtractionDiagnostic, n.Path, n.Shape,
				fmt.Errorf("cdif: duplicate node path %q", n.Path))
		}
	}
}

// normalizeAttrs converts a raw attribute map into plain scalar or
// homogeneous-sequence values so downstream stages need no
// format-specific decoding.
func normalizeAttrs(attrs map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[decodeText(k)] = normalizeValue(v)
	}
	return out
}

// normalizeValue unwraps single-element sequences, widens numeric
// sequences, and decodes byte strings to text. Undecodable byte
// sequences are replaced, never rejected.
func normalizeValue(v interface{}) interface{} {
	switch vv := v.(type) {
	case []byte:
		return decodeBytes(vv)
	case string:
		return decodeText(vv)
	case []string:
		out := make([]string, len(vv))
		for i, s := range vv {
			out[i] = decodeText(s)
		}
		return unwrapStrings(out)
	case []float32:
		out := make([]float64, len(vv))
		for i, f := range vv {
			out[i] = float64(f)
		}
		return unwrapFloats(out)
	case []float64:
		return unwrapFloats(append([]float64(nil), vv...))
	case []int8:
		out := make([]int64, len(vv))
		for i, n := range vv {
			out[i] = int64(n)
		}
		return unwrapInts(out)
	case []int16:
		out := make([]int64, len(vv))
		for i, n := range vv {
			out[i] = int64(n)
		}
		return unwrapInts(out)
	case []int32:
		out := make([]int64, len(vv))
		for i, n := range vv {
			out[i] = int64(n)
		}
		return unwrapInts(out)
	case []int64:
		return unwrapInts(append([]int64(nil), vv...))
	case []int:
		out := make([]int64, len(vv))
		for i, n := range vv {
			out[i] = int64(n)
		}
		return unwrapInts(out)
	case float32:
		return float64(vv)
	case int:
		return int64(vv)
	case int8:
		return int64(vv)
	case int16:
		return int64(vv)
	case int32:
		return int64(vv)
	default:
		return v
	}
}

func unwrapFloats(v []float64) interface{} {
	if len(v) == 1 {
		return v[0]
	}
	return v
}

func unwrapInts(v []int64) interface{} {
	if len(v) == 1 {
		return v[0]
	}
	return v
}

func unwrapStrings(v []string) interface{} {
	if len(v) == 1 {
		return v[0]
	}
	return v
}

// decodeBytes decodes a byte string to text, substituting the Unicode
// replacement character for undecodable sequences.
func decodeBytes(b []byte) string { return decodeText(string(b)) }

func decodeText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "�")
}
