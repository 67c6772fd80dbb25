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

import "testing"

func descriptorSet(t *testing.T, descs ...*NodeDescriptor) *DescriptorSet {
	t.Helper()
	s := NewDescriptorSet()
	for _, d := range descs {
		if !s.Add(d) {
			t.Fatalf("duplicate test descriptor %q", d.Path)
		}
	}
	return s
}

func TestCandidates(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "rank1", Shape: []int{10}, Type: TypeFloat},
		&NodeDescriptor{Path: "rank2", Shape: []int{10, 5}, Type: TypeFloat},
		&NodeDescriptor{Path: "labeled2d", Shape: []int{4, 4}, Type: TypeFloat,
			AxisLabels: []string{"", "energy"}},
		&NodeDescriptor{Path: "scalar", Type: TypeString},
	)
	r := new(Report)
	c := Candidates(s, r)
	if !r.Clean() {
		t.Errorf("unexpected diagnostics: %v", r.Diagnostics)
	}
	for path, want := range map[string]bool{
		"rank1":     true,
		"rank2":     false,
		"labeled2d": true, // explicit axis label wins regardless of rank
		"scalar":    false,
	} {
		if c[path] != want {
			t.Errorf("candidate(%s) = %v, want %v", path, c[path], want)
		}
	}
}

// A node with a non-empty axis label is always a candidate, whatever its
// rank.
func TestCandidateLabelMonotonicity(t *testing.T) {
	for rank := 2; rank <= 4; rank++ {
		shape := make([]int, rank)
		labels := make([]string, rank)
		for i := range shape {
			shape[i] = 3
		}
		labels[rank-1] = "axis"
		s := descriptorSet(t, &NodeDescriptor{Path: "n", Shape: shape, Type: TypeString, AxisLabels: labels})
		if c := Candidates(s, new(Report)); !c["n"] {
			t.Errorf("rank-%d labeled node not a candidate", rank)
		}
	}
}

func TestCandidatesInvalidShape(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "broken", Shape: []int{-1}, Type: TypeFloat},
	)
	r := new(Report)
	c := Candidates(s, r)
	if c["broken"] {
		t.Error("node with inconsistent shape became a candidate")
	}
	if len(r.Diagnostics) != 1 {
		t.Errorf("diagnostics = %v, want one", r.Diagnostics)
	}
}
