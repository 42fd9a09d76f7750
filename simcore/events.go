// Package simcore implements component C5: the simulation driver's state
// machine, step loop, instability watcher, progress/completion reporting,
// and on-disk frame caching (spec §4.5).
package simcore

// State is one of the driver's lifecycle states (spec §4.5 "State
// machine").
type State int

const (
	Initialized State = iota
	Running
	Completed
	Cancelled
	Degraded
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "Initialized"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Cancelled:
		return "Cancelled"
	case Degraded:
		return "Degraded"
	default:
		return "Unknown"
	}
}

// ProgressEvent is emitted every 1-10 steps while the driver runs (spec
// §4.5 "Progress events"). The driver does not fill the snapshot fields;
// they are always nil in the events it emits.
type ProgressEvent struct {
	Step       int
	Percent    float64
	Status     string
	SnapshotVx []float32
	SnapshotVy []float32
}

// CompletionEvent is emitted exactly once, on Completed or Degraded
// termination (spec §4.5 "Termination"); Cancelled termination never emits
// one (spec §7 "Cancellation").
type CompletionEvent struct {
	State   State
	PStep   int
	SStep   int
	Vp      float64
	Vs      float64
	VpVs    float64
	Imputed bool
	Message string
}

// Events is the one-way progress/completion stream a driver publishes to
// (spec §9 "cyclic ownership between solver and UI is broken by making
// progress/completion reporting a one-way event stream, not a callback
// registered the other way"). The driver owns the send side, the caller the
// receive side; channels are the idiomatic Go realization of that design
// note.
type Events struct {
	Progress   chan ProgressEvent
	Completion chan CompletionEvent
}

// NewEvents allocates buffered channels sized to absorb a burst of
// progress events without blocking the step loop.
func NewEvents() *Events {
	return &Events{
		Progress:   make(chan ProgressEvent, 32),
		Completion: make(chan CompletionEvent, 1),
	}
}
