package kernel

import (
	"math"
	"testing"

	"github.com/ctsacoustic/elastowave/grid"
)

func buildInvariantGrid(tst *testing.T, w, h, d int) *grid.Grid {
	n := w * h * d
	material := make([]uint8, n)
	density := make([]float32, n)
	for i := range material {
		material[i] = 1
		density[i] = 2000
	}
	g, err := grid.New(w, h, d, 1e-4, material, density, 1)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	return g
}

func defaultPhys() grid.PhysicsParams {
	return grid.PhysicsParams{
		Lambda0: 1e9, Mu0: 0.5e9,
		ConfiningP: 0, TensileT: 5e6, Cohesion: 10e6,
		SinPhi: math.Sin(30 * math.Pi / 180), CosPhi: math.Cos(30 * math.Pi / 180),
		UseElastic: true,
	}
}

// Test_P1_inert_voxels_never_written implements spec §8 P1: voxels outside
// the selected material remain zero on every dynamic field forever.
func Test_P1_inert_voxels_never_written(tst *testing.T) {
	g := buildInvariantGrid(tst, 12, 12, 12)
	inert := g.Idx(6, 6, 6)
	g.Material[inert] = 2 // not the selected material

	// seed neighbors with non-zero fields so a wrongly-written inert voxel
	// would actually move.
	for i := 0; i < g.N; i++ {
		x, y, z := g.Coords(i)
		g.Sxx[i], g.Syy[i], g.Szz[i] = float64(x)*1e3, float64(y)*1e3, float64(z)*1e3
	}

	phys := defaultPhys()
	for step := 0; step < 5; step++ {
		CPUBackend{}.StressStep(g, phys, 1e-8)
		CPUBackend{}.VelocityStep(g, phys, 1e-8)
	}

	if g.Vx[inert] != 0 || g.Vy[inert] != 0 || g.Vz[inert] != 0 {
		tst.Fatalf("inert voxel velocity written: %g %g %g", g.Vx[inert], g.Vy[inert], g.Vz[inert])
	}
	if g.Damage[inert] != 0 {
		tst.Fatalf("inert voxel damage written: %g", g.Damage[inert])
	}
}

// Test_P2_clamp_enforces_bound_and_finiteness implements spec §8 P2: all
// dynamic field magnitudes stay <= 1e10 and finite.
func Test_P2_clamp_enforces_bound_and_finiteness(tst *testing.T) {
	cases := []float64{2e10, -2e10, math.NaN(), math.Inf(1), math.Inf(-1), 3.5}
	for _, v := range cases {
		got := grid.SafeClamp(v)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			tst.Fatalf("SafeClamp(%v) = %v, not finite", v, got)
		}
		if math.Abs(got) > 1e10 {
			tst.Fatalf("SafeClamp(%v) = %v, exceeds 1e10", v, got)
		}
	}
}

// Test_P3_damage_monotone_and_bounded implements spec §8 P3: damage never
// decreases and never exceeds 0.9.
func Test_P3_damage_monotone_and_bounded(tst *testing.T) {
	g := buildInvariantGrid(tst, 12, 12, 12)
	phys := defaultPhys()
	phys.UseBrittle = true
	phys.TensileT = 1e3 // deliberately tiny so the brittle corrector always fires

	// set a large tensile stress state directly at one voxel.
	mid := g.Idx(6, 6, 6)
	g.Sxx[mid], g.Syy[mid], g.Szz[mid] = 1e8, 1e8, 1e8

	prev := 0.0
	for step := 0; step < 50; step++ {
		CPUBackend{}.StressStep(g, phys, 1e-8)
		d := g.Damage[mid]
		if d < prev {
			tst.Fatalf("damage decreased at step %d: %g -> %g", step, prev, d)
		}
		if d > 0.9 {
			tst.Fatalf("damage exceeded 0.9 at step %d: %g", step, d)
		}
		prev = d
	}
}

// Test_P4_only_six_tensor_components_stored implements spec §8 P4: the
// stored stress representation has exactly six independent components,
// with symmetry (σij = σji) implied rather than separately stored.
func Test_P4_only_six_tensor_components_stored(tst *testing.T) {
	g := buildInvariantGrid(tst, 4, 4, 4)
	// exactly these six slices exist on Grid; there is no Syx/Szx/Szy to
	// diverge from their symmetric partner, which is itself the invariant.
	if len(g.Sxx) == 0 || len(g.Syy) == 0 || len(g.Szz) == 0 ||
		len(g.Sxy) == 0 || len(g.Sxz) == 0 || len(g.Syz) == 0 {
		tst.Fatal("expected all six stress component slices to be allocated")
	}
}

// Test_P5_stationary_with_zero_source implements spec §8 P5: with elastic
// only, no plasticity/brittle, and no source ever injected, the solver is
// stationary.
func Test_P5_stationary_with_zero_source(tst *testing.T) {
	g := buildInvariantGrid(tst, 10, 10, 10)
	phys := defaultPhys()

	for step := 0; step < 20; step++ {
		CPUBackend{}.StressStep(g, phys, 1e-8)
		CPUBackend{}.VelocityStep(g, phys, 1e-8)
	}

	for i := 0; i < g.N; i++ {
		if g.Vx[i] != 0 || g.Vy[i] != 0 || g.Vz[i] != 0 {
			tst.Fatalf("voxel %d velocity moved with zero source: %g %g %g", i, g.Vx[i], g.Vy[i], g.Vz[i])
		}
		if g.Sxx[i] != 0 || g.Syy[i] != 0 || g.Szz[i] != 0 ||
			g.Sxy[i] != 0 || g.Sxz[i] != 0 || g.Syz[i] != 0 {
			tst.Fatalf("voxel %d stress moved with zero source", i)
		}
	}
}

// Test_B1_boundary_voxels_remain_zero implements spec §8 B1: voxels on the
// grid's outer shell remain zero throughout, since both kernels skip
// g.OnBoundary voxels unconditionally.
func Test_B1_boundary_voxels_remain_zero(tst *testing.T) {
	g := buildInvariantGrid(tst, 10, 10, 10)
	phys := defaultPhys()

	// seed a spatial gradient across every voxel, including the boundary,
	// so any wrongly-updated boundary voxel (which would read an
	// out-of-range neighbor under a uniform field) shows real movement.
	for i := 0; i < g.N; i++ {
		x, y, z := g.Coords(i)
		g.Sxx[i] = float64(x) * 1e6
		g.Syy[i] = float64(y) * 1e6
		g.Szz[i] = float64(z) * 1e6
	}

	for step := 0; step < 10; step++ {
		CPUBackend{}.StressStep(g, phys, 1e-8)
		CPUBackend{}.VelocityStep(g, phys, 1e-8)
	}

	for z := 0; z < g.D; z++ {
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				if !g.OnBoundary(x, y, z) {
					continue
				}
				i := g.Idx(x, y, z)
				if g.Vx[i] != 0 || g.Vy[i] != 0 || g.Vz[i] != 0 {
					tst.Fatalf("boundary voxel (%d,%d,%d) velocity moved", x, y, z)
				}
			}
		}
	}
}

// Test_backend_equivalence implements spec §8 L3: CPU and GPU backends must
// produce semantically equivalent fields given identical inputs (spec §1
// Non-goals: no bit-exact determinism is guaranteed between them, only
// equivalence within tolerance). Both backends here dispatch the same
// per-voxel kernel functions, so equivalence is checked against a tight
// relative tolerance rather than asserting bit-identical bypasses of that
// disclaimer.
func Test_backend_equivalence(tst *testing.T) {
	gCPU := buildInvariantGrid(tst, 10, 10, 10)
	gGPU := buildInvariantGrid(tst, 10, 10, 10)
	phys := defaultPhys()

	mid := gCPU.Idx(5, 5, 5)
	gCPU.Sxx[mid], gCPU.Syy[mid], gCPU.Szz[mid] = 5e6, 5e6, 5e6
	gGPU.Sxx[mid], gGPU.Syy[mid], gGPU.Szz[mid] = 5e6, 5e6, 5e6

	cpu := CPUBackend{}
	gpu := &GPUBackend{}

	for step := 0; step < 20; step++ {
		cpu.StressStep(gCPU, phys, 1e-8)
		cpu.VelocityStep(gCPU, phys, 1e-8)
		cpu.Synchronize()

		gpu.StressStep(gGPU, phys, 1e-8)
		gpu.VelocityStep(gGPU, phys, 1e-8)
		gpu.Synchronize()
	}

	const relTol = 1e-9
	closeEnough := func(a, b float64) bool {
		if a == b {
			return true
		}
		denom := math.Max(math.Abs(a), math.Abs(b))
		if denom == 0 {
			return true
		}
		return math.Abs(a-b)/denom <= relTol
	}

	for i := 0; i < gCPU.N; i++ {
		if !closeEnough(gCPU.Vx[i], gGPU.Vx[i]) || !closeEnough(gCPU.Vy[i], gGPU.Vy[i]) || !closeEnough(gCPU.Vz[i], gGPU.Vz[i]) {
			tst.Fatalf("velocity diverged at voxel %d beyond tolerance: cpu=(%g,%g,%g) gpu=(%g,%g,%g)",
				i, gCPU.Vx[i], gCPU.Vy[i], gCPU.Vz[i], gGPU.Vx[i], gGPU.Vy[i], gGPU.Vz[i])
		}
		if !closeEnough(gCPU.Sxx[i], gGPU.Sxx[i]) || !closeEnough(gCPU.Syy[i], gGPU.Syy[i]) || !closeEnough(gCPU.Szz[i], gGPU.Szz[i]) {
			tst.Fatalf("stress diverged at voxel %d beyond tolerance", i)
		}
	}
}
