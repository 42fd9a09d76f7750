// Package analytic implements closed-form elastic wave-velocity solutions
// used to check the FDTD solver's measured arrivals, the way ana/
// implements closed-form elasticity solutions to check fem's numerical
// results (ana/constantstress.go).
package analytic

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Elastic holds the Lamé constants and density needed to compute the
// closed-form P- and S-wave velocities of a homogeneous elastic medium.
type Elastic struct {
	Lambda0 float64
	Mu0     float64
	Rho     float64
}

// Init parses Lambda0/Mu0/Rho from a fun.Prms list, the way
// ana.CteStressPstrain.Init parses its own named parameters.
func (o *Elastic) Init(prms fun.Prms) {
	for _, p := range prms {
		switch p.N {
		case "lambda0":
			o.Lambda0 = p.V
		case "mu0":
			o.Mu0 = p.V
		case "rho":
			o.Rho = p.V
		}
	}
}

// Vp is the closed-form compressional-wave velocity √((λ₀+2μ₀)/ρ).
func (o Elastic) Vp() float64 {
	return math.Sqrt((o.Lambda0 + 2*o.Mu0) / o.Rho)
}

// Vs is the closed-form shear-wave velocity √(μ₀/ρ).
func (o Elastic) Vs() float64 {
	return math.Sqrt(o.Mu0 / o.Rho)
}

// VpVsRatio is the theoretical Vp/Vs ratio √((λ₀+2μ₀)/μ₀), unclamped (spec
// §8 L4 uses the clamped form from xducer.NewDetector for detection
// gating; this unclamped form is the reference value tests compare
// against).
func (o Elastic) VpVsRatio() float64 {
	return math.Sqrt((o.Lambda0 + 2*o.Mu0) / o.Mu0)
}

// CheckVelocity asserts that got is within tolFrac of want (relative
// tolerance), in the style of ana.CteStressPstrain's CheckDispl/CheckStress
// helpers, so the spec §8 L1-L4 velocity-law properties read the same way
// a teacher analytical-solution test reads.
func CheckVelocity(tst *testing.T, name string, tolFrac, got, want float64) {
	tol := tolFrac * math.Abs(want)
	chk.Scalar(tst, name, tol, got, want)
}
