package simcore

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"os"

	"github.com/cpmech/gosl/io"

	"github.com/ctsacoustic/elastowave/grid"
)

// FrameCache writes per-step snapshots to a directory for replay by an
// external viewer (spec §4.5 "Frame cache"). It is grounded on
// fem/fileio.go's Out/SaveSol/SaveIvs shape: build a buffer, encode into
// it, then os.Create and write — retargeted from gob/json domain solutions
// to float32 volumes plus JSON metadata, and from fem/fileio.go's stdlib
// path.Join to the teacher tools' io.Sf("%s/%s", dir, name) path style
// (tools/GenVtu.go).
type FrameCache struct {
	dir string
	k   int // write every k-th step
}

// NewFrameCache creates dir (if absent) and returns a cache that persists
// every k-th step.
func NewFrameCache(dir string, k int) (*FrameCache, error) {
	if k < 1 {
		k = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FrameCache{dir: dir, k: k}, nil
}

// ShouldWrite reports whether step is a multiple of the configured stride.
func (c *FrameCache) ShouldWrite(step int) bool {
	return step%c.k == 0
}

// frameMeta is the documented frame-cache metadata schema (spec §6
// "Frame-cache layout": `{step, pVal, sVal, pProgress, sProgress,
// pSeries[], sSeries[]}`).
type frameMeta struct {
	Step      int       `json:"step"`
	PVal      float64   `json:"pVal"`
	SVal      float64   `json:"sVal"`
	PProgress float64   `json:"pProgress"`
	SProgress float64   `json:"sProgress"`
	PSeries   []float64 `json:"pSeries"`
	SSeries   []float64 `json:"sSeries"`
}

// WriteFrame persists the three velocity volumes, a mid-plane tomography
// slice and matching cross-section, and the step's metadata (spec §6).
// pProgress/sProgress report each wave's own detection progress (0-100,
// saturating at 100 once that wave's arrival has been detected); pSeries
// and sSeries are the ring-buffered receiver time series of package
// simcore's Summary.
func (c *FrameCache) WriteFrame(step int, g *grid.Grid, geo grid.Geometry, pVal, sVal, pProgress, sProgress float64, pSeries, sSeries []float64) error {
	base := io.Sf("%s/frame_%08d", c.dir, step)

	if err := writeFloat32Volume(base+".vx.bin", g.Vx); err != nil {
		return err
	}
	if err := writeFloat32Volume(base+".vy.bin", g.Vy); err != nil {
		return err
	}
	if err := writeFloat32Volume(base+".vz.bin", g.Vz); err != nil {
		return err
	}

	tomo, cross := midPlaneSlices(g, geo)
	if err := writeFloat32Volume(base+".tomo.bin", tomo); err != nil {
		return err
	}
	if err := writeFloat32Volume(base+".cross.bin", cross); err != nil {
		return err
	}

	meta := frameMeta{
		Step:      step,
		PVal:      pVal,
		SVal:      sVal,
		PProgress: pProgress,
		SProgress: sProgress,
		PSeries:   pSeries,
		SSeries:   sSeries,
	}
	buf, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return io.WriteFileV(base+".meta.json", bytes.NewBuffer(buf))
}

// writeFloat32Volume encodes a field as a flat little-endian float32 volume,
// downcasting from the solver's float64 storage (spec §4.5: "the three
// velocity fields as float32 volumes").
func writeFloat32Volume(path string, field []float64) error {
	buf := new(bytes.Buffer)
	for _, v := range field {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		if err := binary.Write(buf, binary.LittleEndian, float32(v)); err != nil {
			return err
		}
	}
	return io.WriteFileV(path, buf)
}

// midPlaneSlices computes the velocity-magnitude tomography slice and
// matching cross-section on the mid-plane perpendicular to mainAxis (spec
// §4.5 "Frame cache").
func midPlaneSlices(g *grid.Grid, geo grid.Geometry) (tomo, cross []float64) {
	var w, h, mid int
	switch geo.MainAxis {
	case grid.AxisX:
		w, h, mid = g.H, g.D, g.W/2
	case grid.AxisY:
		w, h, mid = g.W, g.D, g.H/2
	default:
		w, h, mid = g.W, g.H, g.D/2
	}
	tomo = make([]float64, w*h)
	cross = make([]float64, w*h)

	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			var x, y, z int
			switch geo.MainAxis {
			case grid.AxisX:
				x, y, z = mid, i, j
			case grid.AxisY:
				x, y, z = i, mid, j
			default:
				x, y, z = i, j, mid
			}
			idx := g.Idx(x, y, z)
			mag := math.Sqrt(g.Vx[idx]*g.Vx[idx] + g.Vy[idx]*g.Vy[idx] + g.Vz[idx]*g.Vz[idx])
			tomo[j*w+i] = mag
			cross[j*w+i] = geo.MainComponent(g.Vx[idx], g.Vy[idx], g.Vz[idx])
		}
	}
	return
}
