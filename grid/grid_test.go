package grid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func uniformVolume(n int, mat uint8, rho float32) ([]uint8, []float32) {
	material := make([]uint8, n)
	density := make([]float32, n)
	for i := range material {
		material[i] = mat
		density[i] = rho
	}
	return material, density
}

func Test_New_validates_dimensions_and_volumes(tst *testing.T) {
	mat, rho := uniformVolume(8, 1, 2000)
	if _, err := New(0, 2, 2, 1e-3, mat, rho, 1); err == nil {
		tst.Fatal("expected error for non-positive W")
	}
	if _, err := New(2, 2, 2, 0, mat, rho, 1); err == nil {
		tst.Fatal("expected error for non-positive dx")
	}
	if _, err := New(2, 2, 2, 1e-3, mat[:4], rho, 1); err == nil {
		tst.Fatal("expected error for mismatched material length")
	}
	if _, err := New(2, 2, 2, 1e-3, mat, rho[:4], 1); err == nil {
		tst.Fatal("expected error for mismatched density length")
	}
	g, err := New(2, 2, 2, 1e-3, mat, rho, 1)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if g.N != 8 {
		tst.Fatalf("N=%d, want 8", g.N)
	}
}

func Test_Idx_Coords_roundtrip(tst *testing.T) {
	mat, rho := uniformVolume(5*6*7, 1, 2000)
	g, err := New(5, 6, 7, 1e-3, mat, rho, 1)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	for z := 0; z < g.D; z++ {
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				i := g.Idx(x, y, z)
				xx, yy, zz := g.Coords(i)
				if xx != x || yy != y || zz != z {
					tst.Fatalf("roundtrip failed at (%d,%d,%d): got (%d,%d,%d)", x, y, z, xx, yy, zz)
				}
			}
		}
	}
}

func Test_OnBoundary(tst *testing.T) {
	mat, rho := uniformVolume(4*4*4, 1, 2000)
	g, _ := New(4, 4, 4, 1e-3, mat, rho, 1)
	if !g.OnBoundary(0, 1, 1) || !g.OnBoundary(3, 1, 1) {
		tst.Fatal("x-boundary voxels should be on boundary")
	}
	if !g.OnBoundary(1, 0, 1) || !g.OnBoundary(1, 3, 1) {
		tst.Fatal("y-boundary voxels should be on boundary")
	}
	if !g.OnBoundary(1, 1, 0) || !g.OnBoundary(1, 1, 3) {
		tst.Fatal("z-boundary voxels should be on boundary")
	}
	if g.OnBoundary(1, 1, 1) || g.OnBoundary(2, 2, 2) {
		tst.Fatal("interior voxel misreported as boundary")
	}
}

func Test_IsTarget(tst *testing.T) {
	n := 6
	material := []uint8{1, 2, 1, 0, 1, 2}
	density := make([]float32, n)
	for i := range density {
		density[i] = 2000
	}
	g, _ := New(n, 1, 1, 1e-3, material, density, 1)
	for i, m := range material {
		want := m == 1
		if g.IsTarget(i) != want {
			tst.Fatalf("IsTarget(%d)=%v, want %v", i, g.IsTarget(i), want)
		}
	}
}

func Test_DensityAt_floors_at_100(tst *testing.T) {
	material := []uint8{1, 1}
	density := []float32{50, 3000}
	g, _ := New(2, 1, 1, 1e-3, material, density, 1)
	if g.DensityAt(0) != 100 {
		tst.Fatalf("DensityAt(0)=%g, want 100", g.DensityAt(0))
	}
	if g.DensityAt(1) != 3000 {
		tst.Fatalf("DensityAt(1)=%g, want 3000", g.DensityAt(1))
	}
}

func Test_SafeClamp(tst *testing.T) {
	if v := SafeClamp(math.NaN()); v != 0 {
		tst.Fatalf("NaN should normalize to 0, got %g", v)
	}
	if v := SafeClamp(math.Inf(1)); v != 0 {
		tst.Fatalf("+Inf should normalize to 0, got %g", v)
	}
	if v := SafeClamp(math.Inf(-1)); v != 0 {
		tst.Fatalf("-Inf should normalize to 0, got %g", v)
	}
	if v := SafeClamp(2e10); v != clampMag {
		tst.Fatalf("large positive should clamp to %g, got %g", clampMag, v)
	}
	if v := SafeClamp(-2e10); v != -clampMag {
		tst.Fatalf("large negative should clamp to %g, got %g", -clampMag, v)
	}
	chk.Scalar(tst, "mid-range value passes through", 1e-12, SafeClamp(3.5), 3.5)
}

func Test_MinPositiveDensity_and_MeanDensity(tst *testing.T) {
	material := []uint8{1, 1, 1, 1}
	density := []float32{50, 500, 1500, 0}
	g, _ := New(4, 1, 1, 1e-3, material, density, 1)
	if v := g.MinPositiveDensity(); v != 100 {
		tst.Fatalf("MinPositiveDensity()=%g, want 100 (floor over min positive of 50)", v)
	}
	mean := (50.0 + 500.0 + 1500.0 + 0.0) / 4.0
	chk.Scalar(tst, "MeanDensity", 1e-9, g.MeanDensity(), math.Max(100, mean))
}

func Test_ZeroInert_pins_non_target_voxels(tst *testing.T) {
	material := []uint8{1, 2}
	density := []float32{2000, 2000}
	g, _ := New(2, 1, 1, 1e-3, material, density, 1)
	for i := range g.Vx {
		g.Vx[i], g.Vy[i], g.Vz[i] = 1, 1, 1
		g.Sxx[i], g.Syy[i], g.Szz[i] = 1, 1, 1
		g.Sxy[i], g.Sxz[i], g.Syz[i] = 1, 1, 1
		g.Damage[i] = 0.5
	}
	g.ZeroInert()
	if g.Vx[0] != 1 || g.Damage[0] != 0.5 {
		tst.Fatal("target voxel 0 must be left untouched")
	}
	if g.Vx[1] != 0 || g.Vy[1] != 0 || g.Vz[1] != 0 {
		tst.Fatal("non-target voxel velocities must be zeroed")
	}
	if g.Sxx[1] != 0 || g.Syy[1] != 0 || g.Szz[1] != 0 || g.Sxy[1] != 0 || g.Sxz[1] != 0 || g.Syz[1] != 0 {
		tst.Fatal("non-target voxel stresses must be zeroed")
	}
	if g.Damage[1] != 0 {
		tst.Fatal("non-target voxel damage must be zeroed")
	}
}
