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

package cdifutil

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/floats"

	cdif "github.com/CDIF-4-XAS/XAS-CDIF"
	"github.com/CDIF-4-XAS/XAS-CDIF/nc4"
	"github.com/CDIF-4-XAS/XAS-CDIF/netcdf"
	"github.com/CDIF-4-XAS/XAS-CDIF/xdi"
)

// A source is one open data file, abstracted over its container format.
type source struct {
	nodes  cdif.NextNode
	name   string            // dataset name from the file metadata, or ""
	format string            // encoding format tag for the document
	props  map[string]string // document-level properties from the file
	stats  func(w io.Writer) error
	close  func() error
}

// openSource opens the file at path. format is one of "netcdf", "hdf5",
// "xdi", or "auto", which chooses based on the file extension.
func openSource(path, format string) (*source, error) {
	if format == "" || format == "auto" {
		format = detectFormat(path)
	}
	switch format {
	case "xdi":
		return openXDI(path)
	case "netcdf":
		return openNetCDF(path)
	case "hdf5":
		return openHDF5(path)
	}
	return nil, fmt.Errorf("cdif: unknown format %q; expected netcdf, hdf5, or xdi", format)
}

// detectFormat guesses a container format from the file extension.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xdi", ".dat":
		return "xdi"
	case ".h5", ".hdf5", ".nc4", ".nxs":
		return "hdf5"
	}
	return "netcdf"
}

func openXDI(path string) (*source, error) {
	f, err := xdi.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &source{
		nodes:  f.Nodes(),
		name:   f.DatasetName(),
		format: cdif.FormatXDI,
		props:  f.Properties(),
		stats: func(w io.Writer) error {
			for _, label := range f.Columns() {
				col, _ := f.Column(label)
				writeStats(w, label, col)
			}
			return nil
		},
		close: func() error { return nil },
	}, nil
}

func openNetCDF(path string) (*source, error) {
	ff, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cdif: opening %s: %v", path, err)
	}
	f, err := netcdf.Open(ff)
	if err != nil {
		ff.Close()
		return nil, err
	}
	props := make(map[string]string)
	for name, val := range f.Attributes() {
		if name != "title" {
			props[name] = cast.ToString(val)
		}
	}
	return &source{
		nodes:  f.Nodes(),
		name:   f.Title(),
		format: cdif.FormatNetCDF,
		props:  props,
		stats: func(w io.Writer) error {
			for _, v := range f.Variables() {
				data, err := f.ReadVariable(v)
				if err != nil {
					fmt.Fprintf(w, "%s: skipped: %v\n", v, err)
					continue
				}
				writeStats(w, v, data.Elements)
			}
			return nil
		},
		close: ff.Close,
	}, nil
}

func openHDF5(path string) (*source, error) {
	f, err := nc4.Open(path)
	if err != nil {
		return nil, err
	}
	return &source{
		nodes:  f.Nodes(),
		name:   f.Title(),
		format: cdif.FormatHDF5,
		stats: func(io.Writer) error {
			return fmt.Errorf("cdif: statistics are not supported for NetCDF-4/HDF5 files")
		},
		close: func() error { f.Close(); return nil },
	}, nil
}

// Describe reads the file at path, classifies its variables, and writes
// the resulting dataset document to w.
func Describe(cfg *viper.Viper, path string, w io.Writer) error {
	src, err := openSource(path, cfg.GetString("Format"))
	if err != nil {
		return err
	}
	defer src.close()

	name := cfg.GetString("DatasetName")
	if name == "" {
		name = src.name
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	doc, report, err := cdif.Describe(src.nodes, name, src.format)
	logDiagnostics(report)
	if err != nil {
		return err
	}

	props := src.props
	if props == nil {
		props = make(map[string]string)
	}
	for k, v := range GetStringMapString("DocumentProperties", cfg) {
		props[k] = v
	}
	doc.AdditionalProperty = docProperties(props)

	b, err := doc.JSON(cfg.GetBool("Pretty"))
	if err != nil {
		return fmt.Errorf("cdif: serializing document: %v", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("cdif: writing document: %v", err)
	}
	return nil
}

// docProperties converts a property map to a sorted property list.
func docProperties(props map[string]string) []cdif.Property {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]cdif.Property, 0, len(names))
	for _, name := range names {
		out = append(out, cdif.Property{
			Type:  "PropertyValue",
			Name:  name,
			Value: props[name],
		})
	}
	return out
}

// Vars reads the file at path and lists each classified variable with
// its role, element type, and shape.
func Vars(cfg *viper.Viper, path string, w io.Writer) error {
	src, err := openSource(path, cfg.GetString("Format"))
	if err != nil {
		return err
	}
	defer src.close()

	report := new(cdif.Report)
	nodes, err := cdif.Extract(src.nodes, report)
	if err != nil {
		logDiagnostics(report)
		return err
	}
	cands := cdif.Candidates(nodes, report)
	classes, err := cdif.Classify(nodes, cands, report)
	logDiagnostics(report)
	if err != nil {
		return err
	}

	for _, g := range []struct {
		role  cdif.Role
		nodes []*cdif.NodeDescriptor
	}{
		{cdif.RoleMeasure, classes.Measures},
		{cdif.RoleDimension, classes.Dimensions},
		{cdif.RoleAttribute, classes.Attributes},
	} {
		for _, d := range g.nodes {
			fmt.Fprintf(w, "%-9s %-7s %-12v %s\n", g.role, d.Type, d.Shape, d.Path)
		}
	}
	return nil
}

// Stats reads the file at path and prints summary statistics for each
// numeric variable.
func Stats(cfg *viper.Viper, path string, w io.Writer) error {
	src, err := openSource(path, cfg.GetString("Format"))
	if err != nil {
		return err
	}
	defer src.close()
	return src.stats(w)
}

// writeStats prints the minimum, maximum, and mean of vals, ignoring
// NaN entries.
func writeStats(w io.Writer, name string, vals []float64) {
	valid := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		fmt.Fprintf(w, "%s: no valid values\n", name)
		return
	}
	fmt.Fprintf(w, "%s: n=%d min=%g max=%g mean=%g\n", name, len(valid),
		floats.Min(valid), floats.Max(valid), floats.Sum(valid)/float64(len(valid)))
}
