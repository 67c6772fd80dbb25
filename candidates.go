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

import "fmt"

// A CandidateSet holds the paths of the nodes that are structurally
// eligible to be coordinate axes. It is derived from a DescriptorSet and
// has no independent lifecycle.
type CandidateSet map[string]bool

// Candidates scans the collection once and marks each node that either
// is rank 1 (the strongest structural signal of a coordinate axis) or
// carries at least one non-empty axis label (an explicit axis-scale
// attachment, which wins regardless of rank). Scalars are never
// candidates. A node with inconsistent shape information is skipped for
// candidacy with a diagnostic in r.
func Candidates(s *DescriptorSet, r *Report) CandidateSet {
	c := make(CandidateSet)
	for _, path := range s.Paths() {
		d := s.Get(path)
		if !validShape(d.Shape) {
			r.add(ExtractionDiagnostic, d.Path, d.Shape,
				fmt.Errorf("cdif: inconsistent shape %v", d.Shape))
			continue
		}
		if len(d.Shape) == 1 {
			c[path] = true
			continue
		}
		for _, label := range d.AxisLabels {
			if label != "" {
				c[path] = true
				break
			}
		}
	}
	return c
}

func validShape(shape []int) bool {
	for _, n := range shape {
		if n < 0 {
			return false
		}
	}
	return true
}
