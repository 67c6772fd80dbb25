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

// Package xdi reads the XAS Data Interchange plain-text format: a
// commented metadata header followed by whitespace-separated numeric
// columns. See https://github.com/XraySpectroscopy/XAS-Data-Interchange
// for the format definition.
package xdi

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/sparse"
)

// A File holds the parsed contents of one XDI file: header metadata,
// the original data columns, and any derived columns (see derive.go).
type File struct {
	// Version is the format version from the "# XDI/…" pragma.
	Version string
	// ExtraVersions lists the application version tokens that follow
	// the format version on the pragma line.
	ExtraVersions []string
	// Comments are the free-text user comment lines.
	Comments []string
	// ColumnLabels and ColumnUnits describe the original data columns.
	ColumnLabels []string
	ColumnUnits  []string
	// Attrs maps metadata family to key to value, all lower-cased
	// family/key as in "# Mono.d_spacing: 3.13553".
	Attrs map[string]map[string]string
	// NumPoints is the number of data rows.
	NumPoints int

	columns map[string][]float64
	order   []string
}

// ReadFile reads and parses the named XDI file.
func ReadFile(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("xdi: opening file: %v", err)
	}
	defer f.Close()
	x, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("xdi: reading %s: %v", name, err)
	}
	return x, nil
}

// Read parses an XDI document and computes its derived columns.
func Read(r io.Reader) (*File, error) {
	f := &File{
		Attrs:   make(map[string]map[string]string),
		columns: make(map[string][]float64),
	}
	var rows [][]float64
	inComments := false

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if err := f.headerLine(strings.TrimSpace(line[1:]), &inComments); err != nil {
				return nil, fmt.Errorf("xdi: line %d: %v", lineno, err)
			}
			continue
		}
		row, err := dataRow(line)
		if err != nil {
			return nil, fmt.Errorf("xdi: line %d: %v", lineno, err)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("xdi: line %d: %d values in row, want %d",
				lineno, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("xdi: %v", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xdi: no data rows")
	}

	f.NumPoints = len(rows)
	ncols := len(rows[0])
	for len(f.ColumnLabels) < ncols {
		f.ColumnLabels = append(f.ColumnLabels, fmt.Sprintf("col%d", len(f.ColumnLabels)+1))
	}
	for len(f.ColumnUnits) < len(f.ColumnLabels) {
		f.ColumnUnits = append(f.ColumnUnits, "")
	}
	for j := 0; j < ncols; j++ {
		col := make([]float64, f.NumPoints)
		for i, row := range rows {
			col[i] = row[j]
		}
		f.addColumn(f.ColumnLabels[j], col)
	}

	f.derive()
	return f, nil
}

// headerLine handles one comment line of the header.
func (f *File) headerLine(s string, inComments *bool) error {
	switch {
	case s == "":
		return nil
	case strings.HasPrefix(s, "XDI/"):
		fields := strings.Fields(s)
		f.Version = strings.TrimPrefix(fields[0], "XDI/")
		f.ExtraVersions = fields[1:]
		return nil
	case strings.HasPrefix(s, "///"):
		*inComments = true
		return nil
	case strings.HasPrefix(s, "---"):
		*inComments = false
		return nil
	case *inComments:
		f.Comments = append(f.Comments, s)
		return nil
	}

	name, value, ok := strings.Cut(s, ":")
	if !ok {
		// Tolerated: a stray comment outside the comment block.
		f.Comments = append(f.Comments, s)
		return nil
	}
	family, key, ok := strings.Cut(strings.TrimSpace(name), ".")
	if !ok {
		return fmt.Errorf("header field %q has no family", name)
	}
	family = strings.ToLower(family)
	key = strings.ToLower(key)
	value = strings.TrimSpace(value)

	if family == "column" {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 1 {
			return fmt.Errorf("bad column index %q", key)
		}
		label, units, _ := strings.Cut(value, " ")
		for len(f.ColumnLabels) < idx {
			f.ColumnLabels = append(f.ColumnLabels, fmt.Sprintf("col%d", len(f.ColumnLabels)+1))
			f.ColumnUnits = append(f.ColumnUnits, "")
		}
		f.ColumnLabels[idx-1] = strings.ToLower(label)
		f.ColumnUnits[idx-1] = strings.TrimSpace(units)
		return nil
	}

	if f.Attrs[family] == nil {
		f.Attrs[family] = make(map[string]string)
	}
	f.Attrs[family][key] = value
	return nil
}

func dataRow(line string) ([]float64, error) {
	fields := strings.Fields(line)
	row := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", field)
		}
		row[i] = v
	}
	return row, nil
}

func (f *File) addColumn(label string, col []float64) {
	if _, ok := f.columns[label]; ok {
		return
	}
	f.columns[label] = col
	f.order = append(f.order, label)
}

// Column returns the named data column (original or derived).
func (f *File) Column(label string) ([]float64, bool) {
	col, ok := f.columns[strings.ToLower(label)]
	return col, ok
}

// Columns returns all column labels, original then derived, in order.
func (f *File) Columns() []string { return f.order }

// Units returns the units string recorded for an original column, or "".
func (f *File) Units(label string) string {
	for i, l := range f.ColumnLabels {
		if l == strings.ToLower(label) && i < len(f.ColumnUnits) {
			return f.ColumnUnits[i]
		}
	}
	return ""
}

// Attr returns the metadata value for a family.key pair.
func (f *File) Attr(family, key string) (string, bool) {
	v, ok := f.Attrs[strings.ToLower(family)][strings.ToLower(key)]
	return v, ok
}

// Table returns the original data columns as a dense array with shape
// (number of columns, number of points).
func (f *File) Table() *sparse.DenseArray {
	data := sparse.ZerosDense(len(f.ColumnLabels), f.NumPoints)
	for j, label := range f.ColumnLabels {
		col := f.columns[label]
		for i, v := range col {
			data.Set(v, j, i)
		}
	}
	return data
}
