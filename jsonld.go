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
	"encoding/json"
	"sort"
)

// Vocabularies referenced by the document @context.
const (
	ContextVocab = "https://schema.org/"
	ContextDDI   = "https://ddi-alliance.org/ns/cdi#"
)

// Encoding format tags for the supported source containers.
const (
	FormatNetCDF = "application/x-netcdf"
	FormatHDF5   = "application/x-hdf5"
	FormatXDI    = "application/x-xdi"
)

// A Context is the JSON-LD @context block of a Document.
type Context struct {
	Vocab string `json:"@vocab"`
	DDI   string `json:"ddi"`
}

// A Property is a schema.org PropertyValue name/value pair.
type Property struct {
	Type  string      `json:"@type"`
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// A VariableEntry describes one classified array node in the document.
// Dataset carries the node's full path, prefixed with "/".
type VariableEntry struct {
	Type               string     `json:"@type"`
	Name               string     `json:"name"`
	Dataset            string     `json:"dataset"`
	EncodingFormat     string     `json:"encodingFormat"`
	Role               Role       `json:"ddi:role"`
	AdditionalProperty []Property `json:"additionalProperty"`
}

// A Document is the linked-data description of one classified dataset.
// It is assembled once at the end of the pipeline and never mutated.
type Document struct {
	Context            Context          `json:"@context"`
	Type               string           `json:"@type"`
	Name               string           `json:"name"`
	AdditionalProperty []Property       `json:"additionalProperty,omitempty"`
	VariableMeasured   []*VariableEntry `json:"variableMeasured"`
}

// Assemble converts a classification into a JSON-LD document named name.
// encodingFormat identifies the source container format and is stamped on
// every entry. Entries appear in group order (measures, dimensions,
// attributes) and within each group in collection order; entry properties
// are sorted by name so that equal inputs yield byte-identical documents.
func Assemble(c *Classification, name, encodingFormat string) *Document {
	doc := &Document{
		Context:          Context{Vocab: ContextVocab, DDI: ContextDDI},
		Type:             "Dataset",
		Name:             name,
		VariableMeasured: make([]*VariableEntry, 0, c.Len()),
	}
	for _, g := range []struct {
		role  Role
		nodes []*NodeDescriptor
	}{
		{RoleMeasure, c.Measures},
		{RoleDimension, c.Dimensions},
		{RoleAttribute, c.Attributes},
	} {
		for _, d := range g.nodes {
			doc.VariableMeasured = append(doc.VariableMeasured, entry(d, g.role, encodingFormat))
		}
	}
	return doc
}

func entry(d *NodeDescriptor, role Role, encodingFormat string) *VariableEntry {
	names := make([]string, 0, len(d.Attrs))
	for name := range d.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]Property, 0, len(names))
	for _, name := range names {
		props = append(props, Property{
			Type:  "PropertyValue",
			Name:  name,
			Value: d.Attrs[name],
		})
	}
	return &VariableEntry{
		Type:               "PropertyValue",
		Name:               d.Name(),
		Dataset:            "/" + d.Path,
		EncodingFormat:     encodingFormat,
		Role:               role,
		AdditionalProperty: props,
	}
}

// JSON serializes the document, indented when pretty is set.
func (doc *Document) JSON(pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}
