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

// Package nc4 yields the array nodes of a NetCDF-4/HDF5 container,
// walking nested groups into slash-separated hierarchical paths.
package nc4

import (
	"fmt"
	"io"
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	cdif "github.com/CDIF-4-XAS/XAS-CDIF"
)

// A File provides access to the array nodes of a NetCDF-4/HDF5 file.
type File struct {
	root api.Group
}

// Open opens the named file.
func Open(name string) (*File, error) {
	g, err := netcdf.Open(name)
	if err != nil {
		return nil, fmt.Errorf("nc4: opening %s: %v", name, err)
	}
	return &File{root: g}, nil
}

// FromGroup wraps an already-open group, for callers that manage their
// own storage.
func FromGroup(g api.Group) *File { return &File{root: g} }

// Close releases the underlying file.
func (f *File) Close() { f.root.Close() }

// Title returns the root group's "title" attribute, or "".
func (f *File) Title() string {
	if v, has := f.root.Attributes().Get("title"); has {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Nodes returns an iterator over every variable in the file, including
// those in nested groups. A variable whose group open or read fails is
// still emitted with best-effort fields and its error attached.
func (f *File) Nodes() cdif.NextNode {
	nodes := walk(f.root, "")
	i := 0
	return func() (*cdif.RawNode, error) {
		if i == len(nodes) {
			return nil, io.EOF
		}
		n := nodes[i]
		i++
		return n, nil
	}
}

// walk collects the raw nodes of g and its subgroups, depth first.
// prefix is the slash-terminated path of g ("" for the root).
func walk(g api.Group, prefix string) []*cdif.RawNode {
	var nodes []*cdif.RawNode

	vars := g.ListVariables()
	isVar := make(map[string]bool, len(vars))
	for _, v := range vars {
		isVar[v] = true
	}

	for _, v := range vars {
		path := prefix + v
		vr, err := g.GetVariable(v)
		if err != nil {
			nodes = append(nodes, &cdif.RawNode{Path: path,
				Err: fmt.Errorf("nc4: reading variable %s: %v", path, err)})
			continue
		}
		n := &cdif.RawNode{
			Path:    path,
			Shape:   shapeOf(vr.Values),
			TypeTag: baseTypeTag(vr.Values),
			Attrs:   attributeMap(vr.Attributes),
		}
		// A dimension with a sibling coordinate variable acts as an
		// attached dimension scale.
		for j, dim := range vr.Dimensions {
			if j >= len(n.Shape) {
				break
			}
			if isVar[dim] && dim == v {
				labels := make([]string, len(n.Shape))
				labels[j] = dim
				n.AxisLabels = labels
				break
			}
		}
		nodes = append(nodes, n)
	}

	for _, s := range g.ListSubgroups() {
		sub, err := g.GetGroup(s)
		if err != nil {
			nodes = append(nodes, &cdif.RawNode{Path: prefix + s,
				Err: fmt.Errorf("nc4: opening group %s: %v", prefix+s, err)})
			continue
		}
		nodes = append(nodes, walk(sub, prefix+s+"/")...)
	}
	return nodes
}

// shapeOf derives the axis lengths of a (possibly nested) slice value.
func shapeOf(v interface{}) []int {
	var shape []int
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Slice {
		shape = append(shape, rv.Len())
		if rv.Len() == 0 {
			break
		}
		rv = rv.Index(0)
		if rv.Kind() == reflect.Interface {
			rv = rv.Elem()
		}
	}
	return shape
}

// baseTypeTag names the element type at the bottom of a nested slice.
func baseTypeTag(v interface{}) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Slice {
		if rv.Len() == 0 {
			return rv.Type().Elem().Kind().String()
		}
		rv = rv.Index(0)
		if rv.Kind() == reflect.Interface {
			rv = rv.Elem()
		}
	}
	if !rv.IsValid() {
		return ""
	}
	return rv.Kind().String()
}

// attributeMap copies an attribute map into a plain map in key order.
func attributeMap(attrs api.AttributeMap) map[string]interface{} {
	if attrs == nil {
		return nil
	}
	out := make(map[string]interface{})
	for _, k := range attrs.Keys() {
		if v, has := attrs.Get(k); has {
			out[k] = v
		}
	}
	return out
}
