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

// Package netcdf yields the array nodes of a NetCDF classic (CDF-1/2)
// file for classification.
package netcdf

import (
	"fmt"
	"io"
	"math"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"

	cdif "github.com/CDIF-4-XAS/XAS-CDIF"
)

// A File provides access to the variables of a NetCDF classic file.
type File struct {
	nc *cdf.File
}

// Open reads the file header from rw. The caller retains ownership of
// the underlying storage (typically an *os.File).
func Open(rw cdf.ReaderWriterAt) (*File, error) {
	nc, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("netcdf: opening file: %v", err)
	}
	return &File{nc: nc}, nil
}

// Variables returns the names of all variables in the file.
func (f *File) Variables() []string { return f.nc.Header.Variables() }

// Attributes returns the file's global attributes.
func (f *File) Attributes() map[string]interface{} {
	attrs := make(map[string]interface{})
	for _, name := range f.nc.Header.Attributes("") {
		attrs[name] = f.nc.Header.GetAttribute("", name)
	}
	return attrs
}

// Title returns the file's global "title" attribute, or "".
func (f *File) Title() string {
	if s, ok := f.nc.Header.GetAttribute("", "title").(string); ok {
		return s
	}
	return ""
}

// Nodes returns an iterator over the file's variables, one raw node per
// variable. A coordinate variable (one named after its own dimension) is
// the classic-format analogue of a dimension scale, so its axis carries
// the dimension name as a label; data variables carry no labels.
func (f *File) Nodes() cdif.NextNode {
	h := f.nc.Header
	vars := h.Variables()
	i := 0
	return func() (*cdif.RawNode, error) {
		if i == len(vars) {
			return nil, io.EOF
		}
		v := vars[i]
		i++

		dims := h.Dimensions(v)
		var labels []string
		if len(dims) > 0 && dims[0] == v {
			labels = make([]string, len(dims))
			labels[0] = v
		}

		attrs := make(map[string]interface{})
		for _, name := range h.Attributes(v) {
			attrs[name] = h.GetAttribute(v, name)
		}

		n := &cdif.RawNode{
			Path:       v,
			Shape:      h.Lengths(v),
			Attrs:      attrs,
			AxisLabels: labels,
		}
		n.TypeTag, n.Err = typeTag(h, v)
		return n, nil
	}
}

// typeTag maps a variable's storage type to a canonical tag.
func typeTag(h *cdf.Header, v string) (string, error) {
	switch h.ZeroValue(v, 0).(type) {
	case string:
		return "char", nil
	case []uint8:
		return "byte", nil
	case []int16:
		return "int16", nil
	case []int32:
		return "int32", nil
	case []float32:
		return "float32", nil
	case []float64:
		return "float64", nil
	default:
		return "", fmt.Errorf("netcdf: variable %s has unsupported storage type", v)
	}
}

// ReadVariable reads the full contents of a numeric variable into a
// dense array, converting the variable's _FillValue entries to NaN.
func (f *File) ReadVariable(v string) (*sparse.DenseArray, error) {
	dims := f.nc.Header.Lengths(v)
	if f.nc.Header.ZeroValue(v, 0) == nil {
		return nil, fmt.Errorf("netcdf: variable %s not in file", v)
	}
	if _, ok := f.nc.Header.ZeroValue(v, 0).(string); ok {
		return nil, fmt.Errorf("netcdf: variable %s is not numeric", v)
	}
	n := 1
	for _, d := range dims {
		n *= d
	}
	r := f.nc.Reader(v, nil, nil)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("netcdf: reading variable %s: %v", v, err)
	}

	data := sparse.ZerosDense(dims...)
	switch vals := buf.(type) {
	case []float64:
		copy(data.Elements, vals)
	case []float32:
		for i, val := range vals {
			data.Elements[i] = float64(val)
		}
	case []int32:
		for i, val := range vals {
			data.Elements[i] = float64(val)
		}
	case []int16:
		for i, val := range vals {
			data.Elements[i] = float64(val)
		}
	case []uint8:
		for i, val := range vals {
			data.Elements[i] = float64(val)
		}
	default:
		return nil, fmt.Errorf("netcdf: variable %s is not numeric", v)
	}

	if noData := fillValue(f.nc.Header.GetAttribute(v, "_FillValue")); !math.IsNaN(noData) {
		for i, d := range data.Elements {
			if d == noData {
				data.Elements[i] = math.NaN()
			}
		}
	}
	return data, nil
}

// fillValue extracts a scalar fill value from a _FillValue attribute,
// returning NaN when there is none.
func fillValue(attr interface{}) float64 {
	switch v := attr.(type) {
	case []float32:
		if len(v) == 1 {
			return float64(v[0])
		}
	case []float64:
		if len(v) == 1 {
			return v[0]
		}
	case []int32:
		if len(v) == 1 {
			return float64(v[0])
		}
	case []int16:
		if len(v) == 1 {
			return float64(v[0])
		}
	}
	return math.NaN()
}
