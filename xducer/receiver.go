package xducer

import (
	"math"

	"github.com/ctsacoustic/elastowave/grid"
)

// Sample is one receiver reading: the main-axis component and the
// transverse magnitude of velocity at the receiver (spec §4.4 "Arrival
// detection").
type Sample struct {
	Parallel   float64 // v_∥
	Transverse float64 // v_⊥
}

// ReadReceiver computes the receiver metric: a single-voxel sample, or the
// material-masked mean over the receiver face when full-face transducers
// are in use (spec §4.4 "Receiver metric").
func ReadReceiver(g *grid.Grid, geo grid.Geometry, fullFace bool) Sample {
	if !fullFace {
		i := g.Idx(geo.Rx, geo.Ry, geo.Rz)
		return sampleVoxel(g, geo, i)
	}
	return sampleFace(g, geo)
}

func sampleVoxel(g *grid.Grid, geo grid.Geometry, i int) Sample {
	vx, vy, vz := g.Vx[i], g.Vy[i], g.Vz[i]
	return Sample{
		Parallel:   geo.MainComponent(vx, vy, vz),
		Transverse: geo.TransverseMagnitude(vx, vy, vz),
	}
}

func sampleFace(g *grid.Grid, geo grid.Geometry) Sample {
	var sumPar, sumTrv float64
	var n int
	for z := 0; z < g.D; z++ {
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				switch geo.MainAxis {
				case grid.AxisX:
					if x != geo.Rx {
						continue
					}
				case grid.AxisY:
					if y != geo.Ry {
						continue
					}
				case grid.AxisZ:
					if z != geo.Rz {
						continue
					}
				}
				i := g.Idx(x, y, z)
				if !g.IsTarget(i) {
					continue
				}
				s := sampleVoxel(g, geo, i)
				sumPar += s.Parallel
				sumTrv += s.Transverse
				n++
			}
		}
	}
	if n == 0 {
		return Sample{}
	}
	return Sample{Parallel: sumPar / float64(n), Transverse: sumTrv / float64(n)}
}

func abs(v float64) float64 { return math.Abs(v) }
