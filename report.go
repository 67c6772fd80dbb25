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

// A DiagnosticKind identifies the pipeline stage that recovered from a
// per-node problem.
type DiagnosticKind int

const (
	// ExtractionDiagnostic means a node's metadata could not be fully
	// read; the node was still emitted with best-effort fields.
	ExtractionDiagnostic DiagnosticKind = iota
	// ClassificationDiagnostic means a node could not be evaluated
	// against the taxonomy rules and was defaulted to an attribute.
	ClassificationDiagnostic
)

func (k DiagnosticKind) String() string {
	switch k {
	case ExtractionDiagnostic:
		return "extraction"
	case ClassificationDiagnostic:
		return "classification"
	default:
		return "unknown"
	}
}

// A Diagnostic records a per-node problem that was recovered locally.
type Diagnostic struct {
	Kind  DiagnosticKind
	Path  string
	Shape []int
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: node %q (shape %v): %v", d.Kind, d.Path, d.Shape, d.Err)
}

// A Report collects the diagnostics from one pipeline run. Diagnostics
// never abort the run; the caller decides whether and how to surface them.
type Report struct {
	Diagnostics []Diagnostic
}

func (r *Report) add(kind DiagnosticKind, path string, shape []int, err error) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Kind: kind, Path: path, Shape: shape, Err: err})
}

// Clean reports whether the run produced no diagnostics.
func (r *Report) Clean() bool { return len(r.Diagnostics) == 0 }
