package kernel

import "github.com/ctsacoustic/elastowave/grid"

// globalDamping (α in spec §4.3.2 step 4) suppresses the runaway
// acceleration unconstrained explicit schemes exhibit under the chosen
// source amplitudes; removing it invalidates the calibrated arrival
// thresholds used by package xducer (spec §4.3.2).
const globalDamping = 0.05

// velocityVoxel performs the per-voxel velocity update of spec §4.3.2:
// one-sided stress-gradient differencing followed by the global damping
// term.
func velocityVoxel(g *grid.Grid, phys grid.PhysicsParams, dt float64, i int) {
	x, y, z := g.Coords(i)
	if !g.IsTarget(i) || g.OnBoundary(x, y, z) {
		return
	}

	wh := g.W * g.H
	dx := float64(g.Dx)
	rho := g.DensityAt(i)

	dsxxdx := (g.Sxx[i] - g.Sxx[i-1]) / dx
	dsxydy := (g.Sxy[i] - g.Sxy[i-g.W]) / dx
	dsxzdz := (g.Sxz[i] - g.Sxz[i-wh]) / dx
	dvx := dt / rho * (dsxxdx + dsxydy + dsxzdz)

	dsxydx := (g.Sxy[i] - g.Sxy[i-1]) / dx
	dsyydy := (g.Syy[i] - g.Syy[i-g.W]) / dx
	dsyzdz := (g.Syz[i] - g.Syz[i-wh]) / dx
	dvy := dt / rho * (dsxydx + dsyydy + dsyzdz)

	dsxzdx := (g.Sxz[i] - g.Sxz[i-1]) / dx
	dsyzdy := (g.Syz[i] - g.Syz[i-g.W]) / dx
	dszzdz := (g.Szz[i] - g.Szz[i-wh]) / dx
	dvz := dt / rho * (dsxzdx + dsyzdy + dszzdz)

	vx := (1-globalDamping)*g.Vx[i] + dvx
	vy := (1-globalDamping)*g.Vy[i] + dvy
	vz := (1-globalDamping)*g.Vz[i] + dvz

	g.Vx[i] = grid.SafeClamp(vx)
	g.Vy[i] = grid.SafeClamp(vy)
	g.Vz[i] = grid.SafeClamp(vz)
}
