package kernel

import "github.com/ctsacoustic/elastowave/grid"

// stressVoxel performs the per-voxel stress update of spec §4.3.1: the
// elastic predictor, followed by the Mohr-Coulomb plastic corrector and the
// brittle-damage correction when enabled.
func stressVoxel(g *grid.Grid, phys grid.PhysicsParams, dt float64, i int) {
	x, y, z := g.Coords(i)
	if !g.IsTarget(i) || g.OnBoundary(x, y, z) {
		return
	}

	wh := g.W * g.H

	// nine velocity gradients by centered differences: (v(+1)-v(-1))/(2dx)
	dx2 := 2 * float64(g.Dx)
	dvxdx := (g.Vx[i+1] - g.Vx[i-1]) / dx2
	dvydx := (g.Vy[i+1] - g.Vy[i-1]) / dx2
	dvzdx := (g.Vz[i+1] - g.Vz[i-1]) / dx2

	dvxdy := (g.Vx[i+g.W] - g.Vx[i-g.W]) / dx2
	dvydy := (g.Vy[i+g.W] - g.Vy[i-g.W]) / dx2
	dvzdy := (g.Vz[i+g.W] - g.Vz[i-g.W]) / dx2

	dvxdz := (g.Vx[i+wh] - g.Vx[i-wh]) / dx2
	dvydz := (g.Vy[i+wh] - g.Vy[i-wh]) / dx2
	dvzdz := (g.Vz[i+wh] - g.Vz[i-wh]) / dx2

	// volumetric strain rate
	epsDot := dvxdx + dvydy + dvzdz

	// effective moduli with brittle damping
	lambda, mu := phys.Lambda0, phys.Mu0
	if phys.UseBrittle {
		d := g.Damage[i]
		lambda = (1 - d) * phys.Lambda0
		mu = (1 - d) * phys.Mu0
	}

	sxx, syy, szz := g.Sxx[i], g.Syy[i], g.Szz[i]
	sxy, sxz, syz := g.Sxy[i], g.Sxz[i], g.Syz[i]

	if phys.UseElastic {
		sxx += dt * (lambda*epsDot + 2*mu*dvxdx)
		syy += dt * (lambda*epsDot + 2*mu*dvydy)
		szz += dt * (lambda*epsDot + 2*mu*dvzdz)
		sxy += dt * mu * (dvxdy + dvydx)
		sxz += dt * mu * (dvxdz + dvzdx)
		syz += dt * mu * (dvydz + dvzdy)
	}

	if phys.UsePlastic {
		sxx, syy, szz, sxy, sxz, syz = mohrCoulombCorrect(phys, sxx, syy, szz, sxy, sxz, syz)
	}

	if phys.UseBrittle {
		sxx, syy, szz, sxy, sxz, syz, g.Damage[i] = brittleCorrect(phys, g.Damage[i], sxx, syy, szz, sxy, sxz, syz)
	}

	g.Sxx[i] = grid.SafeClamp(sxx)
	g.Syy[i] = grid.SafeClamp(syy)
	g.Szz[i] = grid.SafeClamp(szz)
	g.Sxy[i] = grid.SafeClamp(sxy)
	g.Sxz[i] = grid.SafeClamp(sxz)
	g.Syz[i] = grid.SafeClamp(syz)
}
