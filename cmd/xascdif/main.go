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

// Command xascdif is a command-line interface for describing scientific
// data files as linked data.
package main

import (
	"fmt"
	"os"

	"github.com/CDIF-4-XAS/XAS-CDIF/cdifutil"
)

func main() {
	if err := cdifutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
