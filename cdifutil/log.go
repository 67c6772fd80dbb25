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

	"github.com/sirupsen/logrus"

	cdif "github.com/CDIF-4-XAS/XAS-CDIF"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
	})
}

// logDiagnostics logs the per-node diagnostics recovered during
// classification. Diagnostics are warnings: the affected nodes have
// already been defaulted to attributes.
func logDiagnostics(report *cdif.Report) {
	for _, d := range report.Diagnostics {
		logger.WithFields(logrus.Fields{
			"stage": d.Kind.String(),
			"path":  d.Path,
			"shape": fmt.Sprint(d.Shape),
		}).Warn(d.Err)
	}
}
