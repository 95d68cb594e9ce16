package playback

import (
	"fmt"
	"time"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/motion/easing"
	"github.com/npillmayer/motion/trajectory"
)

// Status is the life-cycle state of a run.
//
//	Pending ──Step──► Running ──fraction 1──► Finished
//	   │                 │
//	   └─────────────────┴──Invalidate/Cancel──► Canceled
type Status int

const (
	// Pending means the run has been started but has not been stepped yet.
	Pending Status = iota
	// Running means at least one sample has been emitted.
	Running
	// Finished means the final sample at fraction 1 has been emitted.
	Finished
	// Canceled means the run was dropped before reaching fraction 1.
	Canceled
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Canceled:
		return "canceled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Sample is the state of one motion object at one tick.
type Sample struct {
	Run      uint64      // id of the run producing the sample
	Object   int         // 0, or 1 for the second object in comparison mode
	Fraction float64     // elapsed fraction of the duration, in [0,1]
	Eased    float64     // eased progress, may leave [0,1] for overshooting curves
	Position motion.Pair // position on the path
	Final    bool        // true for the sample at fraction 1
}

func (s Sample) String() string {
	return fmt.Sprintf("run %d obj %d f=%.4f e=%.4f %v", s.Run, s.Object, s.Fraction, s.Eased, s.Position)
}

// Run is one motion object travelling along a snapshot of the path.
// Runs are created by Sequencer.Play and never read the live path again.
type Run struct {
	id         uint64
	object     int
	spec       easing.Spec
	curve      func(float64) float64
	typ        motion.PathType
	points     []motion.Pair
	position   func(float64) motion.Pair
	duration   time.Duration
	start      time.Time
	generation uint64
	status     Status
}

func newRun(id uint64, object int, req Request, spec easing.Spec, start time.Time) (*Run, bool) {
	pos, ok := trajectory.Sampler(req.Type, req.Points)
	if !ok {
		return nil, false
	}
	return &Run{
		id:         id,
		object:     object,
		spec:       spec,
		curve:      spec.Curve(),
		typ:        req.Type,
		points:     append([]motion.Pair(nil), req.Points...),
		position:   pos,
		duration:   req.Duration,
		start:      start,
		generation: req.Generation,
		status:     Pending,
	}, true
}

// ID identifies the run within its sequencer.
func (r *Run) ID() uint64 { return r.id }

// Object is the index of the motion object the run moves.
func (r *Run) Object() int { return r.object }

// Spec is the easing the run was started with.
func (r *Run) Spec() easing.Spec { return r.spec }

// Type is the path type of the snapshot.
func (r *Run) Type() motion.PathType { return r.typ }

// Points returns a copy of the point snapshot taken at start.
func (r *Run) Points() []motion.Pair {
	return append([]motion.Pair(nil), r.points...)
}

// Duration of the run.
func (r *Run) Duration() time.Duration { return r.duration }

// Start is the clock time the run was started at.
func (r *Run) Start() time.Time { return r.start }

// Generation is the path generation the run was started under.
func (r *Run) Generation() uint64 { return r.generation }

// Status returns the current life-cycle state.
func (r *Run) Status() Status { return r.status }

// Done is true for finished and canceled runs.
func (r *Run) Done() bool {
	return r.status == Finished || r.status == Canceled
}

// Fraction is the elapsed fraction of the duration at now, clamped to [0,1].
func (r *Run) Fraction(now time.Time) float64 {
	elapsed := now.Sub(r.start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= r.duration {
		return 1
	}
	return motion.Clamp01(float64(elapsed) / float64(r.duration))
}

// SampleAt computes the sample the run produces at now. It does not change
// the run.
func (r *Run) SampleAt(now time.Time) Sample {
	f := r.Fraction(now)
	e := r.curve(f)
	return Sample{
		Run:      r.id,
		Object:   r.object,
		Fraction: f,
		Eased:    e,
		Position: r.position(e),
		Final:    f >= 1,
	}
}
