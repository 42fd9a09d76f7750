package xducer

import "math/rand"

// NoiseSource optionally perturbs the receiver metric before it reaches the
// Detector, modeling transducer self-noise (spec §3 supplemented feature:
// the original distillation assumed a noiseless receiver; real acoustic
// transducers do not). No example repo in the retrieval pack models sensor
// noise, so this is built directly on math/rand rather than imitating a
// pack library (see DESIGN.md).
type NoiseSource struct {
	rng        *rand.Rand
	fracStdDev float64
}

// NewNoiseSource builds a generator whose perturbation is a fraction of the
// signal's own magnitude (fracStdDev), seeded deterministically so repeated
// runs of the same scenario are reproducible.
func NewNoiseSource(seed int64, fracStdDev float64) *NoiseSource {
	return &NoiseSource{rng: rand.New(rand.NewSource(seed)), fracStdDev: fracStdDev}
}

// Apply returns a perturbed copy of a receiver sample. A zero-value NoiseSource
// (fracStdDev == 0) is a no-op, so callers that never opt in pay nothing.
func (n *NoiseSource) Apply(s Sample) Sample {
	if n == nil || n.fracStdDev <= 0 {
		return s
	}
	s.Parallel += n.rng.NormFloat64() * n.fracStdDev * abs(s.Parallel)
	s.Transverse += n.rng.NormFloat64() * n.fracStdDev * abs(s.Transverse)
	if s.Transverse < 0 {
		s.Transverse = -s.Transverse
	}
	return s
}
