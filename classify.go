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

package cdif

import (
	"errors"
	"fmt"
	"strings"
)

// A Role names one of the three groups of the taxonomy.
type Role string

const (
	RoleMeasure   Role = "Measure"
	RoleDimension Role = "Dimension"
	RoleAttribute Role = "Attribute"
)

// ErrNoNodes is returned when a pipeline run finds no array nodes at all.
var ErrNoNodes = errors.New("cdif: no array nodes to classify")

// A PartitionError reports a violation of the classification invariant:
// a path assigned to zero or more than one group. It indicates a logic
// defect, not bad input, and is not recoverable.
type PartitionError struct {
	Path   string
	Groups int
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("cdif: node %q assigned to %d taxonomy groups", e.Path, e.Groups)
}

// A Classification partitions a descriptor collection into measures,
// coordinate dimensions, and contextual attributes. Every input path
// appears in exactly one group. The slices preserve the collection's
// iteration order and must not be mutated after classification.
type Classification struct {
	Measures   []*NodeDescriptor
	Dimensions []*NodeDescriptor
	Attributes []*NodeDescriptor
}

// Len returns the total number of classified descriptors.
func (c *Classification) Len() int {
	return len(c.Measures) + len(c.Dimensions) + len(c.Attributes)
}

// Classify assigns every descriptor in s to exactly one taxonomy group.
//
// A candidate node becomes a dimension if its element type is numeric or
// its display name contains "time" (case-insensitive); otherwise it is a
// contextual attribute, because a labeled but non-numeric axis-like node
// is not a usable coordinate. A non-candidate node becomes a measure if
// any of its axis lengths equals the first axis length of some candidate,
// marking it as data aligned to a detected coordinate axis; everything
// else falls through to the attribute group.
//
// A node that cannot be evaluated is defaulted to an attribute with a
// diagnostic in r rather than aborting the run. Classify fails outright
// only for an empty collection or a violated partition invariant.
func Classify(s *DescriptorSet, cands CandidateSet, r *Report) (*Classification, error) {
	if s.Len() == 0 {
		return nil, ErrNoNodes
	}

	// Axis lengths contributed by the first shape axis of each candidate.
	axisLens := make(map[int]bool)
	for _, path := range s.Paths() {
		if !cands[path] {
			continue
		}
		if d := s.Get(path); len(d.Shape) > 0 {
			axisLens[d.Shape[0]] = true
		}
	}

	c := new(Classification)
	for _, path := range s.Paths() {
		d := s.Get(path)
		if d == nil {
			r.add(ClassificationDiagnostic, path, nil,
				fmt.Errorf("cdif: descriptor for %q missing from collection", path))
			c.Attributes = append(c.Attributes, &NodeDescriptor{Path: path})
			continue
		}
		switch classifyOne(d, cands, axisLens) {
		case RoleDimension:
			c.Dimensions = append(c.Dimensions, d)
		case RoleMeasure:
			c.Measures = append(c.Measures, d)
		default:
			c.Attributes = append(c.Attributes, d)
		}
	}

	if err := checkPartition(s, c); err != nil {
		return nil, err
	}
	return c, nil
}

func classifyOne(d *NodeDescriptor, cands CandidateSet, axisLens map[int]bool) Role {
	if cands[d.Path] {
		if d.Type.Numeric() || strings.Contains(strings.ToLower(d.Name()), "time") {
			return RoleDimension
		}
		return RoleAttribute
	}
	// Alignment matches any axis position against the candidates'
	// first-axis lengths.
	for _, n := range d.Shape {
		if axisLens[n] {
			return RoleMeasure
		}
	}
	return RoleAttribute
}

// checkPartition verifies totality and exclusivity: every path in s
// appears in exactly one group of c.
func checkPartition(s *DescriptorSet, c *Classification) error {
	seen := make(map[string]int, s.Len())
	for _, group := range [][]*NodeDescriptor{c.Measures, c.Dimensions, c.Attributes} {
		for _, d := range group {
			seen[d.Path]++
		}
	}
	for _, path := range s.Paths() {
		if n := seen[path]; n != 1 {
			return &PartitionError{Path: path, Groups: n}
		}
	}
	if c.Len() != s.Len() {
		for path, n := range seen {
			if s.Get(path) == nil {
				return &PartitionError{Path: path, Groups: n}
			}
		}
	}
	return nil
}
