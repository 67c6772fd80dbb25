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

package xdi

import (
	"io"

	cdif "github.com/CDIF-4-XAS/XAS-CDIF"
)

// Nodes returns an iterator over the file's columns, original then
// derived, one raw node per column.
func (f *File) Nodes() cdif.NextNode {
	i := 0
	return func() (*cdif.RawNode, error) {
		if i == len(f.order) {
			return nil, io.EOF
		}
		label := f.order[i]
		i++

		var attrs map[string]interface{}
		if units := f.Units(label); units != "" {
			attrs = map[string]interface{}{"units": units}
		}
		return &cdif.RawNode{
			Path:    label,
			Shape:   []int{f.NumPoints},
			TypeTag: "float64",
			Attrs:   attrs,
		}, nil
	}
}

// DatasetName composes a human-readable dataset name from the element
// metadata, e.g. "Cu K edge", or "" when the file records none.
func (f *File) DatasetName() string {
	symbol, _ := f.Attr("element", "symbol")
	edge, _ := f.Attr("element", "edge")
	switch {
	case symbol != "" && edge != "":
		return symbol + " " + edge + " edge"
	case symbol != "":
		return symbol
	}
	return ""
}

// Properties flattens the header metadata into "family.key" pairs for
// use as document-level properties.
func (f *File) Properties() map[string]string {
	props := make(map[string]string)
	for family, kv := range f.Attrs {
		for key, value := range kv {
			props[family+"."+key] = value
		}
	}
	return props
}
