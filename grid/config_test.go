package grid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func baseConfig() Config {
	n := 8 * 8 * 20
	material := make([]uint8, n)
	density := make([]float32, n)
	for i := range material {
		material[i] = 1
		density[i] = 2000
	}
	return Config{
		W: 8, H: 8, D: 20, Dx: 1e-4,
		Material: material, Density: density, MaterialID: 1,
		Axis: AxisZ, WaveType: WaveBoth,
		ConfiningPressureMPa: 0,
		TensileStrengthMPa:   5,
		FailureAngleDeg:      30,
		CohesionMPa:          10,
		EnergyJ:              1.0,
		FrequencyKHz:         100,
		Amplitude:            100,
		TotalTimeSteps:       200,
		UseElastic:           true,
		YoungsModulusMPa:     20000,
		PoissonRatio:         0.25,
	}
}

func Test_Build_derives_lame_constants_from_E_nu(tst *testing.T) {
	c := baseConfig()
	m, err := Build(c)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	ePa := c.YoungsModulusMPa * 1e6
	nu := c.PoissonRatio
	wantL := ePa * nu / ((1 + nu) * (1 - 2*nu))
	wantG := ePa / (2 * (1 + nu))
	chk.Scalar(tst, "lambda0", 1e-6, m.Physics.Lambda0, wantL)
	chk.Scalar(tst, "mu0", 1e-6, m.Physics.Mu0, wantG)
}

func Test_Build_converts_MPa_and_deg_units(tst *testing.T) {
	c := baseConfig()
	m, err := Build(c)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "tensileT Pa", 1e-6, m.Physics.TensileT, c.TensileStrengthMPa*1e6)
	chk.Scalar(tst, "cohesion Pa", 1e-6, m.Physics.Cohesion, c.CohesionMPa*1e6)
	chk.Scalar(tst, "confiningP Pa", 1e-6, m.Physics.ConfiningP, c.ConfiningPressureMPa*1e6)

	phiRad := c.FailureAngleDeg * math.Pi / 180.0
	chk.Scalar(tst, "sinPhi", 1e-9, m.Physics.SinPhi, math.Sin(phiRad))
	chk.Scalar(tst, "cosPhi", 1e-9, m.Physics.CosPhi, math.Cos(phiRad))

	chk.Scalar(tst, "frequency Hz", 1e-6, m.Physics.Frequency, c.FrequencyKHz*1000.0)
}

func Test_Build_rejects_non_positive_totalTimeSteps(tst *testing.T) {
	c := baseConfig()
	c.TotalTimeSteps = 0
	if _, err := Build(c); err == nil {
		tst.Fatal("expected error for totalTimeSteps=0")
	}
}

func Test_Build_rejects_invalid_poisson_ratio(tst *testing.T) {
	c := baseConfig()
	c.PoissonRatio = 0.5
	if _, err := Build(c); err == nil {
		tst.Fatal("expected error for nu=0.5 (out of physical range)")
	}
}

func Test_Build_propagates_grid_construction_errors(tst *testing.T) {
	c := baseConfig()
	c.Dx = 0
	if _, err := Build(c); err == nil {
		tst.Fatal("expected error for dx=0 to propagate from grid.New")
	}
}
