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

// Describe runs the full pipeline over the nodes yielded by next:
// extraction, dimension-candidate detection, taxonomy classification, and
// linked-data assembly. name becomes the document name and encodingFormat
// identifies the source container.
//
// The returned report holds the per-node diagnostics that were recovered
// along the way; it is valid even when an error is returned. Describe
// either returns a complete, internally consistent document or an error —
// never a partially classified one. Each call owns all of its
// intermediate state, so independent files may be described concurrently.
func Describe(next NextNode, name, encodingFormat string) (*Document, *Report, error) {
	report := new(Report)
	nodes, err := Extract(next, report)
	if err != nil {
		return nil, report, err
	}
	cands := Candidates(nodes, report)
	classes, err := Classify(nodes, cands, report)
	if err != nil {
		return nil, report, err
	}
	return Assemble(classes, name, encodingFormat), report, nil
}
