// Package steptime derives a CFL- and frequency-safe time step and the
// expected/minimum step counts the driver uses for safety caps and the
// instability fallback (spec §4.2 — component C2). It mirrors the shape of
// teacher's DynCoefs.Init: a small Init that derives secondary coefficients
// from inputs and guards them against invalid ranges.
package steptime

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

const courantSafety = 0.2 // C in dt_cfl = C*dx/v_p_max

// Plan holds the derived Δt and the step-count estimates of spec §4.2.
type Plan struct {
	Dt          float64 // final time step [s]
	VpMax       float64 // cap used for the CFL bound [m/s]
	ExpectedS   int     // S_exp: expected step count from TX->RX travel time
	SafetyCap   int     // max(1000, 2*S_exp): driver's absolute step cap
	MinSteps    int     // S_min: max(50, totalTimeSteps/10)
}

// Derive computes Δt from the CFL and source-frequency bounds.
//
//	ρ_min      = max(100, min{ρ : ρ>0})
//	v_p_max    = min(6000, sqrt((λ0+2μ0)/ρ_min))
//	dt_cfl     = C * dx / v_p_max
//	dt_freq    = 1/(20f) if f>0 else 1e-5
//	Δt         = max(1e-8, min(dt_cfl, dt_freq))
func Derive(dx float32, lambda0, mu0, rhoMin, frequency float64) (dt, vpMax float64, err error) {
	if rhoMin <= 0 {
		return 0, 0, chk.Err("steptime: rhoMin must be positive, got %g\n", rhoMin)
	}
	vpMax = math.Min(6000, math.Sqrt((lambda0+2*mu0)/rhoMin))
	if vpMax <= 0 {
		return 0, 0, chk.Err("steptime: derived v_p_max is non-positive (%g); check elastic constants\n", vpMax)
	}
	dtCFL := courantSafety * float64(dx) / vpMax
	dtFreq := 1e-5
	if frequency > 0 {
		dtFreq = 1.0 / (20.0 * frequency)
	}
	dt = math.Max(1e-8, math.Min(dtCFL, dtFreq))
	return dt, vpMax, nil
}

// Build computes the full time-step plan: Δt plus the expected/minimum step
// counts (spec §4.2).
//
//	v_p_est  = min(6000, sqrt((λ0+2μ0)/ρ_avg))
//	S_exp    = ceil(L / (v_p_est * Δt)) + totalTimeSteps
//	SafetyCap = max(1000, 2*S_exp)
//	S_min    = max(50, totalTimeSteps/10)
func Build(dx float32, lambda0, mu0, rhoMin, rhoAvg, frequency, travelDistance float64, totalTimeSteps int) (Plan, error) {
	dt, vpMax, err := Derive(dx, lambda0, mu0, rhoMin, frequency)
	if err != nil {
		return Plan{}, err
	}
	vpEst := math.Min(6000, math.Sqrt((lambda0+2*mu0)/math.Max(100, rhoAvg)))
	sExp := totalTimeSteps
	if vpEst > 0 && dt > 0 {
		sExp = int(math.Ceil(travelDistance/(vpEst*dt))) + totalTimeSteps
	}
	safetyCap := int(math.Max(1000, float64(2*sExp)))
	sMin := int(math.Max(50, float64(totalTimeSteps)/10))
	return Plan{
		Dt:        dt,
		VpMax:     vpMax,
		ExpectedS: sExp,
		SafetyCap: safetyCap,
		MinSteps:  sMin,
	}, nil
}
