package xducer

import "math"

// Detector tracks the running maxima of the receiver metric and declares P-
// and S-wave arrivals per spec §4.4 "Arrival detection".
type Detector struct {
	PMax, SMax float64
	PStep      int
	SStep      int
	PDetected  bool
	SDetected  bool
	vpVsTheory float64 // clamped to [1.3, 2.2]
}

// NewDetector builds a Detector with the theoretical Vp/Vs ratio derived
// from the elastic moduli, clamped per spec §4.4 condition 3.
func NewDetector(lambda0, mu0 float64) *Detector {
	ratio := math.Sqrt((lambda0 + 2*mu0) / mu0)
	ratio = math.Max(1.3, math.Min(2.2, ratio))
	return &Detector{vpVsTheory: ratio}
}

// Observe feeds one step's receiver sample into the detector and updates
// P_max/S_max and the arrival flags in place.
func (d *Detector) Observe(step int, s Sample) {
	vPar := abs(s.Parallel)
	vTrv := s.Transverse

	if vPar > d.PMax {
		d.PMax = vPar
	}
	if vTrv > d.SMax {
		d.SMax = vTrv
	}

	if !d.PDetected {
		threshold := math.Max(1e-10, 0.01*d.PMax)
		if vPar > threshold {
			d.PDetected = true
			d.PStep = step
		}
		return
	}

	if d.SDetected || step < d.PStep+5 {
		return
	}

	threshold := math.Max(1e-10, 0.15*d.SMax)
	if vTrv <= threshold {
		return
	}
	if vTrv <= vPar {
		return
	}
	if float64(step) < (1-0.05)*float64(d.PStep)*d.vpVsTheory {
		return
	}
	ratio := float64(step) / float64(d.PStep)
	if ratio < 1.3 || ratio > 2.2 {
		return
	}

	d.SDetected = true
	d.SStep = step
}

// Impute fills in missing arrival steps per spec §4.4 "Failure semantics"
// and the instability-watcher fallback of spec §4.5, given the expected
// step count S_exp used to scale the imputed fractions.
func (d *Detector) Impute(sExp int) {
	if !d.PDetected {
		d.PStep = sExp / 3
		d.PDetected = true
	}
	if !d.SDetected {
		d.SStep = sExp / 2
		d.SDetected = true
	}
}

// VelocitiesFallback computes Vp/Vs directly from the elastic moduli when
// no P-arrival was ever detected (spec §4.4 "Failure semantics").
func VelocitiesFallback(lambda0, mu0, rhoAvg float64) (vp, vs float64) {
	vp = math.Sqrt((lambda0 + 2*mu0) / rhoAvg)
	vs = math.Sqrt(mu0 / rhoAvg)
	return
}

// VelocityFromArrival converts a detected arrival step into a velocity
// given the transducer travel distance and the step interval dt.
func VelocityFromArrival(step int, travelDistance, dt float64) float64 {
	if step <= 0 {
		return 0
	}
	return travelDistance / (float64(step) * dt)
}

// DeriveVsFromVp implements spec §4.4: when P is detected but S is not,
// Vs is derived from Vp via Poisson's ratio, and S_step is backed out from
// the Vp/Vs ratio.
func DeriveVsFromVp(vp, lambda0, mu0 float64, pStep int) (vs float64, sStep int) {
	nu := lambda0 / (2 * (lambda0 + mu0))
	vs = vp * math.Sqrt((1-2*nu)/(2-2*nu))
	if vs <= 0 {
		return vs, pStep
	}
	sStep = int(float64(pStep) * vp / vs)
	return
}
