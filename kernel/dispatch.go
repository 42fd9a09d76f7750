// Package kernel implements the staggered-grid FDTD stress/velocity update,
// the Mohr-Coulomb plastic corrector, and the brittle-damage coupling
// (spec §4.3 — component C3). It exposes the two update passes behind a
// Backend interface so the driver (package simcore) can swap the
// parallel-CPU and GPU execution strategies without knowing which is which
// (spec §9 "backend polymorphism is expressed as two concrete kernel
// implementations behind a common dispatch interface"), the same shape as
// teacher's msolid.Solid/Small interface selecting among concrete material
// models via a factory.
package kernel

import "github.com/ctsacoustic/elastowave/grid"

// Backend executes one stress pass and one velocity pass over the whole
// grid. Implementations must satisfy the per-voxel contract of spec §4.3.1
// and §4.3.2: boundary and non-target-material voxels are no-ops, and a
// step completes only when every voxel of the current kernel has finished
// (spec §5 "a step completes only when all voxels ... are finished").
type Backend interface {
	// StressStep advances the stress tensor and damage field by one Δt.
	StressStep(g *grid.Grid, phys grid.PhysicsParams, dt float64)
	// VelocityStep advances the velocity field by one Δt. It must only be
	// called after StressStep of the same step has returned (spec §5
	// ordering guarantee: "velocity update sees all stress writes from the
	// current step's stress pass").
	VelocityStep(g *grid.Grid, phys grid.PhysicsParams, dt float64)
	// Synchronize is a no-op barrier on the CPU backend and models the
	// GPU backend's explicit post-kernel device synchronization (spec §5).
	Synchronize()
	// Name identifies the backend for logging.
	Name() string
}
