// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements the isotropic-elastic constant conversions
// used by the grid's derived physical constants; it no longer carries the FE tangent-stiffness machinery of the
// original continuum-mechanics solid models.
package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// LameConstants holds the pair (λ, μ) == (L, G) derived from (E, ν).
type LameConstants struct {
	E, Nu float64 // Young's modulus [Pa] and Poisson's ratio
	L, G  float64 // Lamé's coefficients: L == λ, G == μ (shear modulus)
}

// Init derives λ and μ from E and ν. E is expected in Pa already (the grid
// package converts from the MPa input before calling this).
func (o *LameConstants) Init(prms fun.Prms) (err error) {
	var hasE, hasNu bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		}
	}
	if !hasE || !hasNu {
		return chk.Err("LameConstants: requires both 'E' and 'nu' parameters\n")
	}
	if o.Nu <= -1.0 || o.Nu >= 0.5 {
		return chk.Err("LameConstants: nu=%g is out of the physical range (-1,0.5)\n", o.Nu)
	}
	o.L = Calc_l_from_Enu(o.E, o.Nu)
	o.G = Calc_G_from_Enu(o.E, o.Nu)
	return
}

// GetPrms gets (an example) of parameters, mirroring the original solid
// models' introspection method.
func (o LameConstants) GetPrms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "E", V: o.E},
		&fun.Prm{N: "nu", V: o.Nu},
	}
}

// Calc_l_from_Enu returns λ given E and ν.
func Calc_l_from_Enu(E, ν float64) float64 {
	return E * ν / ((1.0 + ν) * (1.0 - 2.0*ν))
}

// Calc_G_from_Enu returns μ given E and ν. NOTE: G == μ
func Calc_G_from_Enu(E, ν float64) float64 {
	return E / (2.0 * (1.0 + ν))
}
