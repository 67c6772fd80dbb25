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
	"io"
	"reflect"
	"testing"
)

// nextFrom returns a NextNode iterator over the given nodes.
func nextFrom(nodes ...*RawNode) NextNode {
	i := 0
	return func() (*RawNode, error) {
		if i == len(nodes) {
			return nil, io.EOF
		}
		n := nodes[i]
		i++
		return n, nil
	}
}

func TestExtract(t *testing.T) {
	r := new(Report)
	s, err := Extract(nextFrom(
		&RawNode{Path: "entry/energy", Shape: []int{10}, TypeTag: "float64",
			Attrs: map[string]interface{}{"units": []byte("eV")}},
		&RawNode{Path: "entry/mu", Shape: []int{10, 5}, TypeTag: "float32",
			AxisLabels: []string{"energy", ""}},
	), r)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Clean() {
		t.Errorf("unexpected diagnostics: %v", r.Diagnostics)
	}
	if s.Len() != 2 {
		t.Fatalf("extracted %d nodes, want 2", s.Len())
	}
	if want := []string{"entry/energy", "entry/mu"}; !reflect.DeepEqual(s.Paths(), want) {
		t.Errorf("paths = %v, want %v", s.Paths(), want)
	}

	d := s.Get("entry/energy")
	if d.Type != TypeFloat {
		t.Errorf("energy type = %v, want float", d.Type)
	}
	if d.Name() != "energy" {
		t.Errorf("display name = %q, want energy", d.Name())
	}
	if v := d.Attrs["units"]; v != "eV" {
		t.Errorf("units attribute = %#v, want eV", v)
	}
	if labels := s.Get("entry/mu").AxisLabels; !reflect.DeepEqual(labels, []string{"energy", ""}) {
		t.Errorf("axis labels = %v", labels)
	}
}

func TestExtractLabelMismatch(t *testing.T) {
	r := new(Report)
	s, err := Extract(nextFrom(
		&RawNode{Path: "x", Shape: []int{4, 4}, TypeTag: "float64",
			AxisLabels: []string{"only-one"}},
	), r)
	if err != nil {
		t.Fatal(err)
	}
	// The node is still emitted, with empty labels and a diagnostic.
	d := s.Get("x")
	if d == nil {
		t.Fatal("node with mismatched labels was dropped")
	}
	if len(d.AxisLabels) != 0 {
		t.Errorf("axis labels = %v, want none", d.AxisLabels)
	}
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Kind != ExtractionDiagnostic {
		t.Errorf("diagnostics = %v, want one extraction diagnostic", r.Diagnostics)
	}
}

func TestExtractBadTypeTag(t *testing.T) {
	r := new(Report)
	s, err := Extract(nextFrom(
		&RawNode{Path: "weird", Shape: []int{3}, TypeTag: "complex128"},
		&RawNode{Path: "fine", Shape: []int{3}, TypeTag: "int32"},
	), r)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 {
		t.Fatalf("one bad node blocked extraction: %d nodes", s.Len())
	}
	if s.Get("weird").Type != TypeUnknown {
		t.Errorf("type = %v, want unknown", s.Get("weird").Type)
	}
	if len(r.Diagnostics) != 1 {
		t.Errorf("diagnostics = %v", r.Diagnostics)
	}
}

func TestExtractDuplicatePath(t *testing.T) {
	r := new(Report)
	s, err := Extract(nextFrom(
		&RawNode{Path: "a", Shape: []int{2}, TypeTag: "float64"},
		&RawNode{Path: "a", Shape: []int{9}, TypeTag: "int32"},
	), r)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("got %d nodes, want 1", s.Len())
	}
	// First occurrence wins.
	if !reflect.DeepEqual(s.Get("a").Shape, []int{2}) {
		t.Errorf("shape = %v, want [2]", s.Get("a").Shape)
	}
	if len(r.Diagnostics) != 1 {
		t.Errorf("diagnostics = %v, want one", r.Diagnostics)
	}
}

func TestExtractIterationError(t *testing.T) {
	bad := errors.New("read failure")
	next := func() (*RawNode, error) { return nil, bad }
	if _, err := Extract(next, new(Report)); err == nil {
		t.Error("iteration failure not propagated")
	}
}

func TestNormalizeValue(t *testing.T) {
	cases := []struct {
		in, want interface{}
	}{
		{[]float32{1.5}, 1.5},
		{[]float64{1, 2}, []float64{1, 2}},
		{[]int32{7}, int64(7)},
		{[]int16{1, 2, 3}, []int64{1, 2, 3}},
		{[]byte("plain"), "plain"},
		{[]byte{0xff, 'a', 'b'}, "�ab"},
		{"text", "text"},
		{int32(3), int64(3)},
		{true, true},
	}
	for _, c := range cases {
		if got := normalizeValue(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("normalizeValue(%#v) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestParseElementType(t *testing.T) {
	cases := []struct {
		tag  string
		want ElementType
	}{
		{"float32", TypeFloat},
		{"double", TypeFloat},
		{"int16", TypeInt},
		{"byte", TypeInt},
		{"char", TypeString},
		{"string", TypeString},
		{"datetime64[ns]", TypeTime},
	}
	for _, c := range cases {
		got, err := ParseElementType(c.tag)
		if err != nil {
			t.Errorf("ParseElementType(%q): %v", c.tag, err)
		}
		if got != c.want {
			t.Errorf("ParseElementType(%q) = %v, want %v", c.tag, got, c.want)
		}
	}
	if _, err := ParseElementType("quaternion"); err == nil {
		t.Error("unknown tag parsed without error")
	}
}
