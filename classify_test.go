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

// roleOf runs the full candidate+classification pass over s and returns
// the group that path landed in.
func roleOf(t *testing.T, s *DescriptorSet, path string) Role {
	t.Helper()
	r := new(Report)
	c, err := Classify(s, Candidates(s, r), r)
	if err != nil {
		t.Fatal(err)
	}
	roles := make(map[string]Role)
	for _, d := range c.Measures {
		roles[d.Path] = RoleMeasure
	}
	for _, d := range c.Dimensions {
		roles[d.Path] = RoleDimension
	}
	for _, d := range c.Attributes {
		roles[d.Path] = RoleAttribute
	}
	role, ok := roles[path]
	if !ok {
		t.Fatalf("node %q missing from classification", path)
	}
	return role
}

// A rank-1 numeric axis, a rank-2 array sharing its length, and a scalar
// string node.
func TestClassifyAxisMeasureContext(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "x", Shape: []int{10}, Type: TypeFloat},
		&NodeDescriptor{Path: "y", Shape: []int{10, 5}, Type: TypeFloat},
		&NodeDescriptor{Path: "units", Type: TypeString},
	)
	if got := roleOf(t, s, "x"); got != RoleDimension {
		t.Errorf("x: %v, want Dimension", got)
	}
	if got := roleOf(t, s, "y"); got != RoleMeasure {
		t.Errorf("y: %v, want Measure", got)
	}
	if got := roleOf(t, s, "units"); got != RoleAttribute {
		t.Errorf("units: %v, want Attribute", got)
	}
}

// A rank-1 string column is a structural candidate but fails the
// numeric/time test, so it is context rather than a coordinate.
func TestClassifyNonNumericCandidate(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "label", Shape: []int{3}, Type: TypeString},
	)
	if got := roleOf(t, s, "label"); got != RoleAttribute {
		t.Errorf("label: %v, want Attribute", got)
	}
}

// An explicitly labeled rank-2 numeric node is a dimension.
func TestClassifyLabeledNumericAxis(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "temperature_time", Shape: []int{4, 4}, Type: TypeFloat,
			AxisLabels: []string{"t", ""}},
	)
	if got := roleOf(t, s, "temperature_time"); got != RoleDimension {
		t.Errorf("temperature_time: %v, want Dimension", got)
	}
}

// The candidacy rule takes priority: a non-numeric candidate is never a
// dimension, even when its shape matches another axis length, and it is
// never reconsidered as a measure.
func TestClassifyPriority(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "axis", Shape: []int{8}, Type: TypeFloat},
		&NodeDescriptor{Path: "names", Shape: []int{8}, Type: TypeString},
	)
	if got := roleOf(t, s, "names"); got != RoleAttribute {
		t.Errorf("names: %v, want Attribute", got)
	}
}

// The "time" substring rescues a non-numeric candidate.
func TestClassifyTimeName(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "scan/StartTime", Shape: []int{6}, Type: TypeString},
	)
	if got := roleOf(t, s, "scan/StartTime"); got != RoleDimension {
		t.Errorf("StartTime: %v, want Dimension", got)
	}
}

// Shape alignment matches any axis position, not just the first.
func TestClassifyAlignmentAnyAxis(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "axis", Shape: []int{7}, Type: TypeFloat},
		&NodeDescriptor{Path: "img", Shape: []int{3, 7}, Type: TypeFloat},
	)
	if got := roleOf(t, s, "img"); got != RoleMeasure {
		t.Errorf("img: %v, want Measure", got)
	}
}

// A non-candidate with no matching axis length is context.
func TestClassifyUnalignedNonCandidate(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "axis", Shape: []int{7}, Type: TypeFloat},
		&NodeDescriptor{Path: "blob", Shape: []int{3, 4}, Type: TypeFloat},
	)
	if got := roleOf(t, s, "blob"); got != RoleAttribute {
		t.Errorf("blob: %v, want Attribute", got)
	}
}

// An unreadable element type defaults a candidate into the attribute
// group instead of failing the run.
func TestClassifyUnknownType(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "mystery", Shape: []int{5}, Type: TypeUnknown},
	)
	if got := roleOf(t, s, "mystery"); got != RoleAttribute {
		t.Errorf("mystery: %v, want Attribute", got)
	}
}

func TestClassifyTotality(t *testing.T) {
	s := descriptorSet(t,
		&NodeDescriptor{Path: "a", Shape: []int{10}, Type: TypeFloat},
		&NodeDescriptor{Path: "b", Shape: []int{10, 2}, Type: TypeFloat},
		&NodeDescriptor{Path: "c", Type: TypeString},
		&NodeDescriptor{Path: "d", Shape: []int{3}, Type: TypeString},
		&NodeDescriptor{Path: "e", Shape: []int{2, 2}, Type: TypeInt},
	)
	r := new(Report)
	c, err := Classify(s, Candidates(s, r), r)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != s.Len() {
		t.Fatalf("classified %d of %d nodes", c.Len(), s.Len())
	}
	seen := make(map[string]int)
	for _, group := range [][]*NodeDescriptor{c.Measures, c.Dimensions, c.Attributes} {
		for _, d := range group {
			seen[d.Path]++
		}
	}
	for _, path := range s.Paths() {
		if seen[path] != 1 {
			t.Errorf("node %q appears in %d groups", path, seen[path])
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	s := NewDescriptorSet()
	if _, err := Classify(s, Candidates(s, new(Report)), new(Report)); err != ErrNoNodes {
		t.Errorf("err = %v, want ErrNoNodes", err)
	}
}
