package xducer

import (
	"math"

	"github.com/ctsacoustic/elastowave/grid"
)

// InjectSource performs the single initial-impulse injection of spec §4.4
// "Source injection", dispatched by transducer kind the way
// fem/naturalbcs.go dispatches a boundary condition by its Key/Typ field
// rather than a flag scattered across callers.
func InjectSource(g *grid.Grid, geo grid.Geometry, phys grid.PhysicsParams) {
	if phys.FullFaceTransducers {
		injectFullFace(g, geo, phys)
		return
	}
	injectPoint(g, geo, phys)
}

// sourcePressure is p = amplitude * sqrt(energy) * 1e6 (spec §4.4).
func sourcePressure(phys grid.PhysicsParams) float64 {
	return float64(phys.Amplitude) * math.Sqrt(phys.Energy) * 1e6
}

// injectPoint adds the spherical-neighborhood impulse of radius 2 around
// the transmitter voxel (spec §4.4 "Point source").
func injectPoint(g *grid.Grid, geo grid.Geometry, phys grid.PhysicsParams) {
	p := sourcePressure(phys)
	sign := geo.AxisSign()
	const radius = 2

	for dz := -radius; dz <= radius; dz++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				x, y, z := geo.Tx+dx, geo.Ty+dy, geo.Tz+dz
				if x < 0 || y < 0 || z < 0 || x >= g.W || y >= g.H || z >= g.D {
					continue
				}
				d := math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
				if d > radius {
					continue
				}
				i := g.Idx(x, y, z)
				if !g.IsTarget(i) {
					continue
				}
				applyImpulse(g, i, geo.MainAxis, p, d, sign)
			}
		}
	}
}

// injectFullFace applies the same σ_ii and the same mainAxis velocity kick
// to every target-material voxel on the transmitter's face (spec §4.4
// "Full-face transducer").
func injectFullFace(g *grid.Grid, geo grid.Geometry, phys grid.PhysicsParams) {
	p := sourcePressure(phys)
	sign := geo.AxisSign()

	for z := 0; z < g.D; z++ {
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				switch geo.MainAxis {
				case grid.AxisX:
					if x != geo.Tx {
						continue
					}
				case grid.AxisY:
					if y != geo.Ty {
						continue
					}
				case grid.AxisZ:
					if z != geo.Tz {
						continue
					}
				}
				i := g.Idx(x, y, z)
				if !g.IsTarget(i) {
					continue
				}
				setImpulse(g, i, geo.MainAxis, p, sign)
			}
		}
	}
}

// applyImpulse implements the point-source per-voxel increment (spec §4.4
// "Point source"): add p*(1-d/2)^2 on top of the pre-stress to the normal
// stresses, plus a mainAxis velocity kick of the same weighted magnitude
// divided by 10*rho.
func applyImpulse(g *grid.Grid, i int, axis grid.Axis, p, d, sign float64) {
	w := (1 - d/2) * (1 - d/2)
	inc := p * w

	g.Sxx[i] += inc
	g.Syy[i] += inc
	g.Szz[i] += inc

	rho := g.DensityAt(i)
	kick := sign * inc / (10 * rho)
	addMainAxisVelocity(g, i, axis, kick)
}

// setImpulse implements the full-face per-voxel source (spec §4.4
// "Full-face transducer"): every target voxel on the face receives the
// same σ_ii = p outright, not added atop the pre-stress as the point
// source does, plus the same mainAxis velocity kick.
func setImpulse(g *grid.Grid, i int, axis grid.Axis, p, sign float64) {
	g.Sxx[i] = p
	g.Syy[i] = p
	g.Szz[i] = p

	rho := g.DensityAt(i)
	kick := sign * p / (10 * rho)
	addMainAxisVelocity(g, i, axis, kick)
}

func addMainAxisVelocity(g *grid.Grid, i int, axis grid.Axis, kick float64) {
	switch axis {
	case grid.AxisX:
		g.Vx[i] += kick
	case grid.AxisY:
		g.Vy[i] += kick
	case grid.AxisZ:
		g.Vz[i] += kick
	}
}
