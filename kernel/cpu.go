package kernel

import "github.com/ctsacoustic/elastowave/grid"

// CPUBackend dispatches each kernel as a parallel-for over every voxel with
// no cross-voxel data dependency within one kernel invocation (spec §5
// "Parallel-CPU"). The step loop itself stays single-threaded in the
// driver: a step completes only when all voxels of the current kernel have
// finished.
type CPUBackend struct{}

func (CPUBackend) Name() string { return "cpu" }

func (CPUBackend) StressStep(g *grid.Grid, phys grid.PhysicsParams, dt float64) {
	parallelFor(g.N, func(i int) {
		stressVoxel(g, phys, dt, i)
	})
}

func (CPUBackend) VelocityStep(g *grid.Grid, phys grid.PhysicsParams, dt float64) {
	parallelFor(g.N, func(i int) {
		velocityVoxel(g, phys, dt, i)
	})
}

// Synchronize is a no-op: parallelFor already blocks until every worker has
// returned, so there is nothing left to wait for.
func (CPUBackend) Synchronize() {}
