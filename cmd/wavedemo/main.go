// Command wavedemo drives one end-to-end simulation run from the command
// line: build a homogeneous block of the chosen material, run the FDTD
// solver to completion, and report the measured Vp/Vs. It is grounded on
// teacher's root main.go (flag parsing, a startup banner via utl.Pf, a
// deferred recover-and-report for unhandled panics).
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/cpmech/gosl/utl"
	"github.com/sirupsen/logrus"

	"github.com/ctsacoustic/elastowave/grid"
	"github.com/ctsacoustic/elastowave/kernel"
	"github.com/ctsacoustic/elastowave/simcore"
	"github.com/ctsacoustic/elastowave/steptime"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			utl.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	w := flag.Int("w", 40, "grid width (voxels)")
	h := flag.Int("h", 40, "grid height (voxels)")
	d := flag.Int("d", 100, "grid depth (voxels)")
	dx := flag.Float64("dx", 0.001, "voxel spacing [m]")
	axis := flag.String("axis", "z", "primary transducer axis: x, y, or z")
	fullFace := flag.Bool("full-face", false, "use full-face transducers instead of point source")

	youngsMPa := flag.Float64("E", 50000, "Young's modulus [MPa]")
	poisson := flag.Float64("nu", 0.25, "Poisson's ratio")
	confiningMPa := flag.Float64("pconf", 1, "confining pressure [MPa]")
	tensileMPa := flag.Float64("tensile", 5, "tensile strength [MPa]")
	cohesionMPa := flag.Float64("cohesion", 2, "cohesion [MPa]")
	frictionDeg := flag.Float64("phi", 30, "internal friction angle [deg]")

	energyJ := flag.Float64("energy", 1.0, "source energy [J]")
	freqKHz := flag.Float64("freq", 500, "source frequency [kHz]")
	amplitude := flag.Int("amplitude", 100, "source amplitude")
	tailSteps := flag.Int("tail-steps", 200, "tail step count after both arrivals")

	useElastic := flag.Bool("elastic", true, "enable elastic predictor")
	usePlastic := flag.Bool("plastic", false, "enable Mohr-Coulomb plastic corrector")
	useBrittle := flag.Bool("brittle", false, "enable brittle-damage coupling")

	backendName := flag.String("backend", "cpu", "execution backend: cpu or gpu")
	frameDir := flag.String("frames", "", "frame cache directory (disabled if empty)")
	frameStride := flag.Int("frame-every", 10, "persist every Kth step to the frame cache")
	flag.Parse()

	utl.PfWhite("\nelastowave -- 3D elastodynamic wave propagation core\n\n")

	n := *w * *h * *d
	material := make([]uint8, n)
	density := make([]float32, n)
	for i := range material {
		material[i] = 1
		density[i] = 2500
	}

	var ax grid.Axis
	switch *axis {
	case "x":
		ax = grid.AxisX
	case "y":
		ax = grid.AxisY
	default:
		ax = grid.AxisZ
	}

	model, err := grid.Build(grid.Config{
		W: *w, H: *h, D: *d, Dx: float32(*dx),
		Material: material, Density: density, MaterialID: 1,
		Axis: ax, WaveType: grid.WaveBoth,
		ConfiningPressureMPa: *confiningMPa,
		TensileStrengthMPa:   *tensileMPa,
		FailureAngleDeg:      *frictionDeg,
		CohesionMPa:          *cohesionMPa,
		EnergyJ:              *energyJ,
		FrequencyKHz:         *freqKHz,
		Amplitude:            *amplitude,
		TotalTimeSteps:       *tailSteps,
		UseElastic:           *useElastic,
		UsePlastic:           *usePlastic,
		UseBrittle:           *useBrittle,
		YoungsModulusMPa:     *youngsMPa,
		PoissonRatio:         *poisson,
		UseFullFaceTransducers: *fullFace,
	})
	if err != nil {
		utl.Panic("configuration error: %v\n", err)
	}

	plan, err := steptime.Build(model.Grid.Dx, model.Physics.Lambda0, model.Physics.Mu0,
		model.Grid.MinPositiveDensity(), model.Grid.MeanDensity(), model.Physics.Frequency,
		model.Geometry.Distance(model.Grid.Dx), model.Physics.TotalSteps)
	if err != nil {
		utl.Panic("time-step planning error: %v\n", err)
	}
	utl.Pf("dt=%g s, v_p_max=%g m/s, expected steps=%d, safety cap=%d\n",
		plan.Dt, plan.VpMax, plan.ExpectedS, plan.SafetyCap)

	var backend kernel.Backend
	switch *backendName {
	case "gpu":
		backend = &kernel.GPUBackend{}
	default:
		backend = kernel.CPUBackend{}
	}

	var cache *simcore.FrameCache
	if *frameDir != "" {
		cache, err = simcore.NewFrameCache(*frameDir, *frameStride)
		if err != nil {
			utl.Panic("frame cache error: %v\n", err)
		}
	}

	driver := simcore.NewDriver(model, plan, backend, cache)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		for ev := range driver.Events.Progress {
			logrus.Infof("step %d (%.1f%%): %s", ev.Step, ev.Percent, ev.Status)
		}
	}()

	driver.Run(ctx)

	select {
	case done := <-driver.Events.Completion:
		utl.Pfgreen("\nstate=%v P_step=%d S_step=%d Vp=%.2f m/s Vs=%.2f m/s Vp/Vs=%.3f imputed=%v\n",
			done.State, done.PStep, done.SStep, done.Vp, done.Vs, done.VpVs, done.Imputed)
	default:
		utl.Pfyel("\nno completion event (state=%v)\n", driver.State())
	}
}
