package kernel

import (
	"math"

	"github.com/ctsacoustic/elastowave/grid"
)

// mohrCoulombCorrect implements the Mohr-Coulomb plastic corrector of spec
// §4.3.1 step 6. It is shaped after teacher's msolid.DruckerPrager yield
// check (mean stress / deviator / J2 / yield function / scale-back), but
// retargeted to the spec's exact pressure-dependent shear criterion
// τ + p·sinφ − c·cosφ rather than Drucker-Prager's smooth cone.
func mohrCoulombCorrect(phys grid.PhysicsParams, sxx, syy, szz, sxy, sxz, syz float64) (float64, float64, float64, float64, float64, float64) {
	pbar := (sxx + syy + szz) / 3
	dxx, dyy, dzz := sxx-pbar, syy-pbar, szz-pbar

	j2 := 0.5*(dxx*dxx+dyy*dyy+dzz*dzz) + sxy*sxy + sxz*sxz + syz*syz
	if j2 < 0 {
		j2 = 0
	}
	tau := math.Sqrt(j2)
	p := -pbar + phys.ConfiningP

	f := tau + p*phys.SinPhi - phys.Cohesion*phys.CosPhi
	if f <= 0 {
		return sxx, syy, szz, sxy, sxz, syz
	}

	denom := math.Max(tau, 1e-10)
	k := (tau - (phys.Cohesion*phys.CosPhi - p*phys.SinPhi)) / denom
	if k > 0.9 {
		k = 0.9
	}
	scale := 1 - k

	dxx *= scale
	dyy *= scale
	dzz *= scale
	sxy *= scale
	sxz *= scale
	syz *= scale

	sxx = dxx + pbar
	syy = dyy + pbar
	szz = dzz + pbar
	return sxx, syy, szz, sxy, sxz, syz
}
