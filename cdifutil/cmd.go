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

// Package cdifutil holds the configuration and commands of the xascdif
// command-line tool.
package cdifutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	cdif "github.com/CDIF-4-XAS/XAS-CDIF"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to xascdif.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Format",
			usage: `
              Format forces the input container format: one of 'netcdf',
              'hdf5', or 'xdi'. The default, 'auto', chooses based on the
              file extension.`,
			shorthand:  "f",
			defaultVal: "auto",
			flagsets: []*pflag.FlagSet{describeCmd.Flags(), varsCmd.Flags(),
				statsCmd.Flags()},
		},
		{
			name: "DatasetName",
			usage: `
              DatasetName overrides the name given to the output dataset
              document. The default takes the name from the file metadata,
              falling back to the file name.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{describeCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the dataset document should be
              written. The default writes to standard output.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{describeCmd.Flags()},
		},
		{
			name: "Pretty",
			usage: `
              Pretty specifies whether the dataset document should be
              indented for readability.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{describeCmd.Flags()},
		},
		{
			name: "DocumentProperties",
			usage: `
              DocumentProperties is a map of extra name/value pairs to
              attach to the dataset document, in the format
              'name1:value1,name2:value2'.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{describeCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("XASCDIF")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(describeCmd)
	Root.AddCommand(varsCmd)
	Root.AddCommand(statsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("cdif: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "xascdif",
	Short: "Describe scientific data files as linked data.",
	Long: `xascdif reads the array variables of a scientific data file (NetCDF,
HDF5, or XDI), classifies each one as a measure, dimension, or attribute,
and describes the result as a JSON-LD dataset document.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'XASCDIF_var' where 'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration
information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of xascdif.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("XAS-CDIF v%s\n", cdif.Version)
	},
	DisableAutoGenTag: true,
}

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Describe a data file as a JSON-LD dataset document.",
	Long: `describe classifies the array variables of the given file and writes
the resulting dataset document to OutputFile, or to standard output when no
OutputFile is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := os.Stdout
		if out := Cfg.GetString("OutputFile"); out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("cdif: creating output file: %v", err)
			}
			defer f.Close()
			w = f
		}
		return Describe(Cfg, args[0], w)
	},
	DisableAutoGenTag: true,
}

var varsCmd = &cobra.Command{
	Use:   "vars [file]",
	Short: "List the classified variables of a data file.",
	Long: `vars classifies the array variables of the given file and lists each
one with its role, element type, and shape.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Vars(Cfg, args[0], os.Stdout)
	},
	DisableAutoGenTag: true,
}

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Print summary statistics for the numeric variables of a data file.",
	Long: `stats prints the minimum, maximum, and mean of each numeric variable
in the given file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Stats(Cfg, args[0], os.Stdout)
	},
	DisableAutoGenTag: true,
}
