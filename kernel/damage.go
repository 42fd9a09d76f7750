package kernel

import (
	"math"

	"github.com/ctsacoustic/elastowave/grid"
)

// Growth constants preserved verbatim per spec §9 Open Questions: their
// physical calibration is undocumented but removing them destabilizes the
// tests, so they are not re-derived.
const (
	damageGrowthRate = 0.005
	damageStepCap    = 0.05
	damageMax        = 0.9
)

// brittleCorrect implements spec §4.3.1 step 7: solve for the maximum
// principal stress via the characteristic cubic, grow damage when it
// exceeds the tensile strength, and scale the stress tensor down by the
// updated damage.
func brittleCorrect(phys grid.PhysicsParams, d, sxx, syy, szz, sxy, sxz, syz float64) (float64, float64, float64, float64, float64, float64, float64) {
	i1, i2, i3 := stressInvariants(sxx, syy, szz, sxy, sxz, syz)
	sigmaMax := maxPrincipalStress(i1, i2, i3)

	if sigmaMax > phys.TensileT && d < 1 {
		t := phys.TensileT
		if t == 0 {
			t = 1e-10
		}
		frac := (sigmaMax - phys.TensileT) / t
		d = math.Min(damageMax, d+damageGrowthRate*math.Min(damageStepCap, frac))
		scale := 1 - d
		sxx *= scale
		syy *= scale
		szz *= scale
		sxy *= scale
		sxz *= scale
		syz *= scale
	}
	return sxx, syy, szz, sxy, sxz, syz, d
}
