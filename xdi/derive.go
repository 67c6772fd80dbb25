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
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const (
	// planckHC is hc in eV·Å.
	planckHC = 1973.269718 * 2 * math.Pi
	rad2deg  = 180 / math.Pi

	// tiny guards against division by a zero monitor signal.
	tiny = 1e-12
)

// derive fills in the standard columns that follow from the measured
// ones: the monochromator angle or energy from Bragg's law, and the
// absorption coefficients from the detector intensities.
func (f *File) derive() {
	f.deriveAbscissa()

	if i0, ok := f.columns["i0"]; ok {
		if itrans, ok := f.columns["itrans"]; ok && !f.has("mutrans") {
			mu := make([]float64, len(itrans))
			for i, v := range itrans {
				mu[i] = -math.Log(v / (i0[i] + tiny))
			}
			f.addColumn("mutrans", mu)
		} else if mu, ok := f.columns["mutrans"]; ok && !f.has("itrans") {
			itrans := make([]float64, len(mu))
			for i, v := range mu {
				itrans[i] = i0[i] * math.Exp(-v)
			}
			f.addColumn("itrans", itrans)
		}

		if ifluor, ok := f.columns["ifluor"]; ok && !f.has("mufluor") {
			den := append([]float64(nil), i0...)
			floats.AddConst(tiny, den)
			mu := append([]float64(nil), ifluor...)
			floats.Div(mu, den)
			f.addColumn("mufluor", mu)
		} else if mu, ok := f.columns["mufluor"]; ok && !f.has("ifluor") {
			ifluor := append([]float64(nil), mu...)
			floats.Mul(ifluor, i0)
			f.addColumn("ifluor", ifluor)
		}
	}

	if itrans, ok := f.columns["itrans"]; ok {
		if irefer, ok := f.columns["irefer"]; ok && !f.has("murefer") {
			mu := make([]float64, len(irefer))
			for i, v := range irefer {
				mu[i] = -math.Log(v / (itrans[i] + tiny))
			}
			f.addColumn("murefer", mu)
		} else if mu, ok := f.columns["murefer"]; ok && !f.has("irefer") {
			irefer := make([]float64, len(mu))
			for i, v := range mu {
				irefer[i] = itrans[i] * math.Exp(-v)
			}
			f.addColumn("irefer", irefer)
		}
	}
}

// deriveAbscissa converts between monochromator angle and energy using
// Bragg's law when the mono d-spacing is known: E = hc / (2d sinθ).
func (f *File) deriveAbscissa() {
	dspace := f.dSpacing()
	if dspace <= 0 {
		return
	}
	omega := planckHC / (2 * dspace)

	energy, hasEnergy := f.columns["energy"]
	angle, hasAngle := f.columns["angle"]
	switch {
	case hasEnergy && !hasAngle:
		if strings.EqualFold(f.Units("energy"), "kev") {
			energy = append([]float64(nil), energy...)
			floats.Scale(1000, energy)
			f.columns["energy"] = energy
		}
		a := make([]float64, len(energy))
		for i, e := range energy {
			a[i] = rad2deg * math.Asin(omega/e)
		}
		f.addColumn("angle", a)
	case hasAngle && !hasEnergy:
		theta := append([]float64(nil), angle...)
		if u := strings.ToLower(f.Units("angle")); u == "deg" || u == "degrees" {
			floats.Scale(1/rad2deg, theta)
		}
		e := make([]float64, len(theta))
		for i, a := range theta {
			e[i] = omega / math.Sin(a)
		}
		f.addColumn("energy", e)
	}
}

// dSpacing returns the monochromator d-spacing in Å, or -1 if the file
// does not record one.
func (f *File) dSpacing() float64 {
	for _, family := range []string{"mono", "monochromator"} {
		if s, ok := f.Attr(family, "d_spacing"); ok {
			if d, err := strconv.ParseFloat(strings.Fields(s)[0], 64); err == nil {
				return d
			}
		}
	}
	return -1
}

func (f *File) has(label string) bool {
	_, ok := f.columns[label]
	return ok
}
