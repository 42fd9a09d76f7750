package kernel

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// packTensor builds the full symmetric 3x3 stress matrix from the six
// stored Voigt components, the way fem/auxsolid.go uses la.MatAlloc to
// assemble small dense per-point matrices from packed strain/stress
// components before further tensor algebra.
func packTensor(sxx, syy, szz, sxy, sxz, syz float64) [][]float64 {
	m := la.MatAlloc(3, 3)
	m[0][0], m[0][1], m[0][2] = sxx, sxy, sxz
	m[1][0], m[1][1], m[1][2] = sxy, syy, syz
	m[2][0], m[2][1], m[2][2] = sxz, syz, szz
	return m
}

// stressInvariants returns the three principal invariants I1, I2, I3 of the
// stress tensor (spec §4.3.1 step 7).
func stressInvariants(sxx, syy, szz, sxy, sxz, syz float64) (i1, i2, i3 float64) {
	m := packTensor(sxx, syy, szz, sxy, sxz, syz)
	i1 = m[0][0] + m[1][1] + m[2][2]
	i2 = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) +
		(m[0][0]*m[2][2] - m[0][2]*m[2][0]) +
		(m[1][1]*m[2][2] - m[1][2]*m[2][1])
	i3 = m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	return
}

// maxPrincipalStress finds the largest real root of the characteristic
// cubic λ³ - I1λ² + I2λ - I3 = 0 via Cardano's method, with the
// trigonometric branch used when the discriminant is negative (spec
// §4.3.1 step 7: "solve the cubic ... using Cardano's method with guard
// for the discriminant (trigonometric branch when negative)"). No gosl API
// for this specific operation is observed anywhere in the retrieval pack
// (see DESIGN.md), so it is hand-coded directly from the spec's formula.
func maxPrincipalStress(i1, i2, i3 float64) float64 {
	// depress the cubic: x = t - a/3, with a=-i1, b=i2, c=-i3
	a, b, c := -i1, i2, -i3
	p := b - a*a/3
	q := 2*a*a*a/27 - a*b/3 + c

	discriminant := (q*q)/4 + (p*p*p)/27

	var tMax float64
	if discriminant > 0 {
		sqrtDisc := math.Sqrt(discriminant)
		u := cubeRoot(-q/2 + sqrtDisc)
		v := cubeRoot(-q/2 - sqrtDisc)
		tMax = u + v
	} else {
		// three real roots; trigonometric branch
		if p >= 0 {
			p = -1e-12 // guard: avoid sqrt(-p) of a non-negative p from roundoff
		}
		r := 2 * math.Sqrt(-p/3)
		arg := (3 * q) / (2 * p) * math.Sqrt(-3/p)
		arg = math.Max(-1, math.Min(1, arg))
		theta := math.Acos(arg)
		t0 := r * math.Cos(theta/3)
		t1 := r * math.Cos(theta/3-2*math.Pi/3)
		t2 := r * math.Cos(theta/3-4*math.Pi/3)
		tMax = math.Max(t0, math.Max(t1, t2))
	}
	return tMax + i1/3
}

func cubeRoot(x float64) float64 {
	if x < 0 {
		return -math.Cbrt(-x)
	}
	return math.Cbrt(x)
}
