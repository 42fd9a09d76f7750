package simcore

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ctsacoustic/elastowave/grid"
	"github.com/ctsacoustic/elastowave/kernel"
	"github.com/ctsacoustic/elastowave/steptime"
	"github.com/ctsacoustic/elastowave/xducer"
)

// instabilityCheckInterval is the driver's watcher cadence (spec §4.5
// "Every 20-30 steps, sample M"); fixed at the midpoint rather than jittered
// since the spec only bounds the interval, not a specific schedule.
const instabilityCheckInterval = 25

// renormSampleStride thins the voxel sweep the instability watcher and the
// renormalization check both use to estimate the field maximum.
const renormSampleStride = 7

// Driver runs the state machine of spec §4.5: Initialized -> Running ->
// {Completed, Cancelled, Degraded}. It is grounded on fem/solver.go's
// Start/Run shape (a global-ish struct, a staged loop, deferred cleanup)
// and fem/errorhandler.go's PanicOrNot/Stop recover-and-continue idiom,
// collapsed from MPI-rank voting to a single process's recover().
type Driver struct {
	Model   *grid.Model
	Plan    steptime.Plan
	Backend kernel.Backend
	Events  *Events
	Cache   *FrameCache // nil disables frame caching
	Summary *Summary

	detector *xducer.Detector
	noise    *xducer.NoiseSource

	state State

	stepCount  int
	badStreak  int
	prevSample float64
}

// NewDriver wires a Driver from a built Model, a derived Plan, and the
// chosen backend. Frame caching is optional; pass a nil cache to disable
// it.
func NewDriver(m *grid.Model, plan steptime.Plan, backend kernel.Backend, cache *FrameCache) *Driver {
	return &Driver{
		Model:    m,
		Plan:     plan,
		Backend:  backend,
		Events:   NewEvents(),
		Cache:    cache,
		Summary:  NewSummary(),
		detector: xducer.NewDetector(m.Physics.Lambda0, m.Physics.Mu0),
		state:    Initialized,
	}
}

// WithNoise attaches synthetic receiver noise (spec §3 supplemented
// feature).
func (d *Driver) WithNoise(n *xducer.NoiseSource) *Driver {
	d.noise = n
	return d
}

// State reports the driver's current lifecycle state.
func (d *Driver) State() State { return d.state }

// progressEvery picks the progress-event cadence (spec §4.5 "Emitted every
// 1-10 steps depending on backend/transducer (full-face less frequently)").
func (d *Driver) progressEvery() int {
	if d.Model.Physics.FullFaceTransducers {
		return 10
	}
	return 5
}

// Run executes the step loop to completion, cancellation, or degradation. It
// sends progress events on d.Events.Progress and exactly one terminal event:
// a CompletionEvent on Completed/Degraded, or nothing on Cancelled (spec §7
// "Cancellation: surfaced as a final Cancelled progress event; no
// completion event").
func (d *Driver) Run(ctx context.Context) {
	defer close(d.Events.Progress)

	g := d.Model.Grid
	geo := d.Model.Geometry
	phys := d.Model.Physics

	xducer.ApplyPrestress(g, phys)
	xducer.InjectSource(g, geo, phys)

	d.state = Running

	defer func() {
		if r := recover(); r != nil {
			logrus.Warnf("simcore: recovered panic in step loop: %v", r)
			d.finishDegraded()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			d.state = Cancelled
			d.emitProgress("cancelled")
			return
		default:
		}

		d.Backend.StressStep(g, phys, d.Plan.Dt)
		d.Backend.Synchronize()
		d.Backend.VelocityStep(g, phys, d.Plan.Dt)
		d.Backend.Synchronize()
		d.stepCount++

		sample := xducer.ReadReceiver(g, geo, phys.FullFaceTransducers)
		if d.noise != nil {
			sample = d.noise.Apply(sample)
		}
		d.detector.Observe(d.stepCount, sample)
		d.Summary.Push(sample.Parallel, sample.Transverse)

		if d.Cache != nil && d.Cache.ShouldWrite(d.stepCount) {
			percent := math.Min(99, 100*float64(d.stepCount)/float64(d.Plan.ExpectedS))
			pProgress, sProgress := percent, 0.0
			if d.detector.PDetected {
				pProgress = 100
				sProgress = percent
			}
			if d.detector.SDetected {
				sProgress = 100
			}
			if err := d.Cache.WriteFrame(d.stepCount, g, geo, sample.Parallel, sample.Transverse,
				pProgress, sProgress, d.Summary.PSeries(), d.Summary.SSeries()); err != nil {
				logrus.Warnf("simcore: frame cache write failed at step %d: %v", d.stepCount, err)
			}
		}

		if d.stepCount%instabilityCheckInterval == 0 {
			if d.watchInstability(g) {
				continue
			}
		}

		if d.stepCount%d.progressEvery() == 0 {
			d.emitProgress("running")
		}

		if d.shouldTerminateNormally() {
			d.finish(false)
			return
		}
		if d.stepCount >= d.Plan.SafetyCap {
			d.finish(true)
			return
		}
	}
}

// watchInstability implements spec §4.5 "Instability watcher": sample M; if
// non-finite, huge, or persistently growing, declare instability and
// impute any arrival not yet detected so the loop can still reach its
// normal termination tail. Returns true if instability was declared this
// check.
func (d *Driver) watchInstability(g *grid.Grid) bool {
	m := kernel.SampleMaxAbs(g, renormSampleStride)
	if kernel.MaybeRenormalize(g, m) {
		d.Backend.Synchronize()
	}

	unstable := math.IsNaN(m) || math.IsInf(m, 0) || m > 1e30
	if !unstable && m > 1e15 && d.prevSample > 0 && m > 10*d.prevSample {
		d.badStreak++
		if d.badStreak >= 3 {
			unstable = true
		}
	} else if !unstable {
		d.badStreak = 0
	}
	d.prevSample = m

	if !unstable {
		return false
	}

	logrus.Warnf("simcore: instability declared at step %d (M=%g)", d.stepCount, m)
	sMin := d.Plan.MinSteps
	if !d.detector.PDetected && d.stepCount > sMin/2 {
		d.detector.PStep = d.stepCount
		d.detector.PDetected = true
	}
	if d.detector.PDetected && !d.detector.SDetected && d.stepCount > d.detector.PStep+sMin/4 {
		d.detector.SStep = d.stepCount
		d.detector.SDetected = true
	}
	return true
}

// shouldTerminateNormally implements spec §4.5 "Termination. Normal:
// P_detected ∧ S_detected ∧ stepCount − S_step ≥ totalTimeSteps".
func (d *Driver) shouldTerminateNormally() bool {
	return d.detector.PDetected && d.detector.SDetected &&
		d.stepCount-d.detector.SStep >= d.Model.Physics.TotalSteps
}

func (d *Driver) emitProgress(status string) {
	percent := math.Min(99, 100*float64(d.stepCount)/float64(d.Plan.ExpectedS))
	select {
	case d.Events.Progress <- ProgressEvent{Step: d.stepCount, Percent: percent, Status: status}:
	default:
	}
}

// finish computes final velocities and emits the single completion event
// (spec §4.5 "Termination"). imputed indicates the safety-cap path, where
// any missing arrivals are imputed from d.Plan.ExpectedS before velocities
// are derived.
func (d *Driver) finish(imputed bool) {
	if imputed {
		d.detector.Impute(d.Plan.ExpectedS)
	}
	d.state = Completed
	d.emitCompletion(imputed, "completed")
}

// finishDegraded implements spec §7 "Runtime instability ... recovered
// locally ... completes with Degraded state semantics (completion event
// still fires)" and the "Backend fault" failure-containment path.
func (d *Driver) finishDegraded() {
	d.detector.Impute(d.Plan.ExpectedS)
	d.state = Degraded
	d.emitCompletion(true, "degraded: kernel exception recovered")
}

func (d *Driver) emitCompletion(imputed bool, msg string) {
	phys := d.Model.Physics
	var vp, vs float64

	if !d.detector.PDetected {
		vp, vs = xducer.VelocitiesFallback(phys.Lambda0, phys.Mu0, d.Model.Grid.MeanDensity())
	} else {
		vp = xducer.VelocityFromArrival(d.detector.PStep, d.Model.Geometry.Distance(d.Model.Grid.Dx), d.Plan.Dt)
		if !d.detector.SDetected {
			vs, d.detector.SStep = xducer.DeriveVsFromVp(vp, phys.Lambda0, phys.Mu0, d.detector.PStep)
		} else {
			vs = xducer.VelocityFromArrival(d.detector.SStep, d.Model.Geometry.Distance(d.Model.Grid.Dx), d.Plan.Dt)
		}
	}

	vpvs := 0.0
	if vs > 0 {
		vpvs = vp / vs
	}

	select {
	case d.Events.Completion <- CompletionEvent{
		State:   d.state,
		PStep:   d.detector.PStep,
		SStep:   d.detector.SStep,
		Vp:      vp,
		Vs:      vs,
		VpVs:    vpvs,
		Imputed: imputed,
		Message: msg,
	}:
	default:
	}
}
