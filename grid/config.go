package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/ctsacoustic/elastowave/msolid"
)

// WaveType is informational only (spec §4.1): it never changes kernel
// behavior, only what the caller intends to measure.
type WaveType int

const (
	WaveP WaveType = iota
	WaveS
	WaveBoth
)

// GridParams is the pure-value record for lattice geometry (spec §9
// "object-heavy params structures collapse into two plain parameter
// records"), passed by value to kernel invocations.
type GridParams struct {
	W, H, D int
	Dx      float32
}

// PhysicsParams is the pure-value record for material/source physics,
// passed by value to kernel invocations (spec §9).
type PhysicsParams struct {
	Lambda0, Mu0 float64 // Pa, from E (Pa) and ν
	ConfiningP   float64 // Pa
	TensileT     float64 // Pa
	Cohesion     float64 // Pa
	SinPhi       float64
	CosPhi       float64
	Energy       float64 // J
	Frequency    float64 // Hz
	Amplitude    int
	TotalSteps   int // tail-length after both arrivals

	UseElastic bool
	UsePlastic bool
	UseBrittle bool

	FullFaceTransducers bool
}

// Config is the one-call, immutable-after-construction input to the solver
// (spec §6 "Solver inputs"). Units are as documented in the spec: strength
// in MPa/deg, energy in J, frequency in kHz, elastic modulus in MPa.
type Config struct {
	W, H, D    int
	Dx         float32
	Material   []uint8
	Density    []float32
	MaterialID uint8
	Axis       Axis
	WaveType   WaveType

	ConfiningPressureMPa float64
	TensileStrengthMPa   float64
	FailureAngleDeg      float64
	CohesionMPa          float64

	EnergyJ         float64
	FrequencyKHz    float64
	Amplitude       int
	TotalTimeSteps  int

	UseElastic bool
	UsePlastic bool
	UseBrittle bool

	YoungsModulusMPa float64
	PoissonRatio     float64

	UseFullFaceTransducers bool
}

// Model bundles everything C1 owns: the grid, the derived constants, and
// the transducer geometry. It is the result of a successful Build.
type Model struct {
	Grid     *Grid
	Geometry Geometry
	Physics  PhysicsParams
	Lame     msolid.LameConstants
}

// Build validates Config and derives the physical constants of spec §3
// ("Derived physical constants"). It is the only fallible entry point of
// component C1 (spec §7 "Configuration error ... fails at construction").
func Build(c Config) (*Model, error) {
	g, err := New(c.W, c.H, c.D, c.Dx, c.Material, c.Density, c.MaterialID)
	if err != nil {
		return nil, err
	}

	var lame msolid.LameConstants
	if err := lame.Init(fun.Prms{
		&fun.Prm{N: "E", V: c.YoungsModulusMPa * 1e6},
		&fun.Prm{N: "nu", V: c.PoissonRatio},
	}); err != nil {
		return nil, err
	}

	if c.TotalTimeSteps <= 0 {
		return nil, chk.Err("grid: totalTimeSteps must be positive, got %d\n", c.TotalTimeSteps)
	}

	phi := c.FailureAngleDeg * math.Pi / 180.0
	phys := PhysicsParams{
		Lambda0:    lame.L,
		Mu0:        lame.G,
		ConfiningP: c.ConfiningPressureMPa * 1e6,
		TensileT:   c.TensileStrengthMPa * 1e6,
		Cohesion:   c.CohesionMPa * 1e6,
		SinPhi:     math.Sin(phi),
		CosPhi:     math.Cos(phi),
		Energy:     c.EnergyJ,
		Frequency:  c.FrequencyKHz * 1000.0,
		Amplitude:  c.Amplitude,
		TotalSteps: c.TotalTimeSteps,
		UseElastic: c.UseElastic,
		UsePlastic: c.UsePlastic,
		UseBrittle: c.UseBrittle,
		FullFaceTransducers: c.UseFullFaceTransducers,
	}

	geo := NewGeometry(g, c.Axis)

	return &Model{Grid: g, Geometry: geo, Physics: phys, Lame: lame}, nil
}

// Prms dumps the physics parameters the way teacher's solid models expose
// fun.Prms for diagnostics/logging.
func (m *Model) Prms() fun.Prms {
	p := m.Physics
	return fun.Prms{
		&fun.Prm{N: "lambda0", V: p.Lambda0},
		&fun.Prm{N: "mu0", V: p.Mu0},
		&fun.Prm{N: "Pconf", V: p.ConfiningP},
		&fun.Prm{N: "T", V: p.TensileT},
		&fun.Prm{N: "c", V: p.Cohesion},
	}
}
