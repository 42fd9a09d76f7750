// Package grid owns the voxel lattice, the per-voxel field buffers, and the
// physical constants derived from the solver's construction parameters
// (spec §3, §4.1 — component C1). It is deliberately free of any stepping
// logic: kernels (package kernel) and the driver (package simcore) mutate
// the buffers this package allocates, but never reallocate or resize them.
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// clampMag is the hard magnitude cap every dynamic field value is kept
// within (spec I3); values exceeding it, or non-finite, are normalized.
const clampMag = 1e10

// Grid owns the lattice shape and the ten dynamic fields plus the two
// static input fields. All slices have length W*H*D and share the index
// layout i = z*W*H + y*W + x (spec §3).
type Grid struct {
	W, H, D int
	N       int
	Dx      float32 // voxel spacing [m]

	Material   []uint8  // per-voxel material label
	Density    []float32 // per-voxel density [kg/m^3], clamped >= 100 at read time
	SelectedID uint8    // selectedMaterialID: the simulated phase

	// velocity vector field
	Vx, Vy, Vz []float64

	// stress tensor, six independent components (spec I4)
	Sxx, Syy, Szz, Sxy, Sxz, Syz []float64

	// damage scalar, spec I2: 0 <= D <= 0.9, non-decreasing
	Damage []float64
}

// New allocates and zeros a Grid of shape W x H x D. It validates that the
// two input volumes match the requested shape and that dx is positive,
// returning a configuration error otherwise (spec §4.1, §7).
func New(W, H, D int, dx float32, material []uint8, density []float32, selectedID uint8) (*Grid, error) {
	if W <= 0 || H <= 0 || D <= 0 {
		return nil, chk.Err("grid: dimensions must be positive, got W=%d H=%d D=%d\n", W, H, D)
	}
	if dx <= 0 {
		return nil, chk.Err("grid: voxel spacing dx must be positive, got %g\n", dx)
	}
	n := W * H * D
	if len(material) != n {
		return nil, chk.Err("grid: material volume has length %d, want %d (W*H*D)\n", len(material), n)
	}
	if len(density) != n {
		return nil, chk.Err("grid: density volume has length %d, want %d (W*H*D)\n", len(density), n)
	}
	g := &Grid{
		W: W, H: H, D: D, N: n, Dx: dx,
		Material:   material,
		Density:    density,
		SelectedID: selectedID,
		Vx:         make([]float64, n),
		Vy:         make([]float64, n),
		Vz:         make([]float64, n),
		Sxx:        make([]float64, n),
		Syy:        make([]float64, n),
		Szz:        make([]float64, n),
		Sxy:        make([]float64, n),
		Sxz:        make([]float64, n),
		Syz:        make([]float64, n),
		Damage:     make([]float64, n),
	}
	return g, nil
}

// Idx returns the flat index of voxel (x,y,z). Panics are never expected:
// callers stay within [0,dim) by construction of the loop bounds.
func (g *Grid) Idx(x, y, z int) int {
	return z*g.W*g.H + y*g.W + x
}

// Coords returns the (x,y,z) voxel coordinates of a flat index.
func (g *Grid) Coords(i int) (x, y, z int) {
	wh := g.W * g.H
	z = i / wh
	rem := i % wh
	y = rem / g.W
	x = rem % g.W
	return
}

// OnBoundary reports whether voxel (x,y,z) sits on the zero-Dirichlet
// sponge boundary (spec I5): any coordinate at 0 or dim-1.
func (g *Grid) OnBoundary(x, y, z int) bool {
	return x == 0 || x == g.W-1 || y == 0 || y == g.H-1 || z == 0 || z == g.D-1
}

// IsTarget reports whether voxel i belongs to the selected/simulated phase.
func (g *Grid) IsTarget(i int) bool {
	return g.Material[i] == g.SelectedID
}

// DensityAt returns ρ[i] clamped to the spec's read-time floor of 100 kg/m^3.
func (g *Grid) DensityAt(i int) float64 {
	return math.Max(100, float64(g.Density[i]))
}

// SafeClamp normalizes a candidate field value per spec I3: non-finite
// becomes 0, and magnitude is capped at clampMag.
func SafeClamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v > clampMag {
		return clampMag
	}
	if v < -clampMag {
		return -clampMag
	}
	return v
}

// MinPositiveDensity returns max(100, min{ρ : ρ>0}) over the volume, used
// by the time-step planner (spec §4.2).
func (g *Grid) MinPositiveDensity() float64 {
	min := math.Inf(1)
	found := false
	for _, d := range g.Density {
		v := float64(d)
		if v > 0 && v < min {
			min = v
			found = true
		}
	}
	if !found {
		min = 100
	}
	return math.Max(100, min)
}

// MeanDensity returns max(100, mean(ρ)) over the volume, used by the
// time-step planner's expected-step-count estimate (spec §4.2).
func (g *Grid) MeanDensity() float64 {
	if g.N == 0 {
		return 100
	}
	sum := 0.0
	for _, d := range g.Density {
		sum += float64(d)
	}
	return math.Max(100, sum/float64(g.N))
}

// ZeroInert enforces invariant I1: voxels not belonging to the selected
// material are pinned to zero on all dynamic fields. The kernels already
// skip such voxels on write, so this is a one-time construction guarantee
// plus a defensive sweep callable by tests.
func (g *Grid) ZeroInert() {
	for i := 0; i < g.N; i++ {
		if g.IsTarget(i) {
			continue
		}
		g.Vx[i], g.Vy[i], g.Vz[i] = 0, 0, 0
		g.Sxx[i], g.Syy[i], g.Szz[i] = 0, 0, 0
		g.Sxy[i], g.Sxz[i], g.Syz[i] = 0, 0, 0
		g.Damage[i] = 0
	}
}
