// Package xducer implements component C4: source injection, receiver
// sampling, and P/S arrival detection (spec §4.4). It is grounded on the
// teacher's geostatic-initialization and natural-boundary-condition
// pattern (fem/geost.go, fem/naturalbcs.go): a dedicated pre-processing
// pass sets the initial stress state before the step loop begins, and a
// boundary/source description is built once from Config and consulted by
// the step loop thereafter.
package xducer

import "github.com/ctsacoustic/elastowave/grid"

// ApplyPrestress sets every target-material voxel to the isotropic
// confining stress state (spec §4.4 "Pre-stress"): σxx=σyy=σzz=-Pconf,
// all shears and velocities at zero, damage at zero. It is the analog of
// fem/geost.go's SetGeoSt: a one-shot initial-condition pass run once
// before the step loop starts.
func ApplyPrestress(g *grid.Grid, phys grid.PhysicsParams) {
	for i := 0; i < g.N; i++ {
		if !g.IsTarget(i) {
			continue
		}
		g.Sxx[i] = -phys.ConfiningP
		g.Syy[i] = -phys.ConfiningP
		g.Szz[i] = -phys.ConfiningP
		g.Sxy[i] = 0
		g.Sxz[i] = 0
		g.Syz[i] = 0
		g.Vx[i] = 0
		g.Vy[i] = 0
		g.Vz[i] = 0
		g.Damage[i] = 0
	}
}
