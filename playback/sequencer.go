// Package playback drives motion objects along a path over time.
/*
A Sequencer turns a play request into one run per motion object (two in
comparison mode). Hosts call Step from their animation-frame callback; each
step computes, for every active run, the elapsed fraction, the eased
progress and the position on the path, and hands the samples to the
registered listeners. A run ends with its sample at fraction 1.

Everything happens on the caller's goroutine. A Sequencer is not safe for
concurrent use; hosts with several goroutines must serialize calls.

Runs work on a snapshot of the control points taken by Play. Path edits
after that are not seen by running objects. When the path is reset or its
type changes, hosts call Invalidate with the new path generation and all
older runs are dropped without emitting further samples.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package playback

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/motion/easing"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'playback'
func tracer() tracing.Trace {
	return tracing.Select("playback")
}

// Errors returned by Play. Hosts usually swallow them: a refused play
// simply produces no motion.
var (
	ErrPathIncomplete  = errors.New("path is incomplete")
	ErrBusy            = errors.New("a run is still in progress")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidEasing   = errors.New("invalid easing")
	ErrStaleRequest    = errors.New("request refers to an outdated path")
	ErrInvalidRate     = errors.New("frame rate must be positive")
)

// Policy decides what Play does while earlier runs are still active.
type Policy int

const (
	// Restart cancels active runs and starts fresh ones.
	Restart Policy = iota
	// RejectIfRunning refuses to play with ErrBusy.
	RejectIfRunning
	// AllowOverlap starts new runs next to the active ones.
	AllowOverlap
)

func (p Policy) String() string {
	switch p {
	case Restart:
		return "restart"
	case RejectIfRunning:
		return "reject-if-running"
	case AllowOverlap:
		return "allow-overlap"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Request is a snapshot of everything a play needs.
type Request struct {
	Type       motion.PathType
	Points     []motion.Pair
	Duration   time.Duration
	Easing     [2]easing.Spec // object 0, and object 1 in comparison mode
	Comparison bool
	Generation uint64 // path generation the points belong to
}

// Objects is the number of motion objects the request starts.
func (req Request) Objects() int {
	if req.Comparison {
		return 2
	}
	return 1
}

// Complete is true if the points suffice for the path type.
func (req Request) Complete() bool {
	max := req.Type.MaxPoints()
	return max > 0 && len(req.Points) >= max
}

// MaxDuration is the longest duration a run can have.
const MaxDuration = time.Duration(math.MaxInt64)

// Seconds converts a duration in seconds, as hosts configure it, to a
// time.Duration. Values beyond MaxDuration saturate.
func Seconds(s float64) time.Duration {
	if math.IsNaN(s) || s <= 0 {
		return 0
	}
	ns := s * float64(time.Second)
	if ns >= float64(MaxDuration) {
		return MaxDuration
	}
	return time.Duration(ns)
}

// Sequencer schedules playback runs against a clock.
type Sequencer struct {
	clock      Clock
	policy     Policy
	runs       []*Run
	nextRun    uint64
	generation uint64
	listeners  []listener
	nextID     int
}

type listener struct {
	id int
	fn func(Sample)
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithPolicy selects the policy for repeated play requests.
func WithPolicy(p Policy) Option {
	return func(s *Sequencer) {
		s.policy = p
	}
}

// New creates a sequencer reading time from clock. A nil clock selects
// SystemClock. The default policy is Restart.
func New(clock Clock, opts ...Option) *Sequencer {
	if clock == nil {
		clock = SystemClock{}
	}
	s := &Sequencer{
		clock:     clock,
		policy:    Restart,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the repeated-play policy.
func (s *Sequencer) Policy() Policy {
	return s.policy
}

// Clock returns the sequencer's clock.
func (s *Sequencer) Clock() Clock {
	return s.clock
}

// AddListener registers fn to receive every sample emitted by Step.
// Listeners are called in registration order. AddListener returns a
// function that removes the listener.
func (s *Sequencer) AddListener(fn func(Sample)) func() {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool {
			return l.id == id
		})
	}
}

// Play starts one run per motion object of req, all sharing the start time,
// the duration and the point snapshot. No run is started if Play returns an
// error.
func (s *Sequencer) Play(req Request) ([]*Run, error) {
	if !req.Complete() {
		tracer().Debugf("play refused: %s path has %d points", req.Type, len(req.Points))
		return nil, fmt.Errorf("%w: %s path has %d of %d points", ErrPathIncomplete,
			req.Type, len(req.Points), req.Type.MaxPoints())
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, req.Duration)
	}
	if req.Generation < s.generation {
		return nil, fmt.Errorf("%w: generation %d < %d", ErrStaleRequest, req.Generation, s.generation)
	}
	for i := 0; i < req.Objects(); i++ {
		if err := req.Easing[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: object %d: %w", ErrInvalidEasing, i, err)
		}
	}
	if s.Busy() {
		switch s.policy {
		case RejectIfRunning:
			return nil, ErrBusy
		case Restart:
			s.cancel(func(*Run) bool { return true })
		}
	}
	start := s.clock.Now()
	runs := make([]*Run, 0, req.Objects())
	for i := 0; i < req.Objects(); i++ {
		s.nextRun++
		r, ok := newRun(s.nextRun, i, req, req.Easing[i], start)
		if !ok { // cannot happen for a complete request
			return nil, fmt.Errorf("%w: %s", ErrPathIncomplete, req.Type)
		}
		runs = append(runs, r)
	}
	s.runs = append(s.runs, runs...)
	for _, r := range runs {
		tracer().Infof("run %d started: object %d, %s over %v on %s path",
			r.id, r.object, r.spec, r.duration, r.typ)
	}
	return runs, nil
}

// Step advances all active runs to the clock's current time and emits one
// sample per run. Runs reaching fraction 1 emit their final sample and are
// released. Step returns the emitted samples in run order.
func (s *Sequencer) Step() []Sample {
	if len(s.runs) == 0 {
		return nil
	}
	now := s.clock.Now()
	samples := make([]Sample, 0, len(s.runs))
	active := s.runs[:0]
	for _, r := range s.runs {
		smp := r.SampleAt(now)
		samples = append(samples, smp)
		if smp.Final {
			r.status = Finished
			tracer().Infof("run %d finished", r.id)
		} else {
			r.status = Running
			active = append(active, r)
		}
	}
	clear(s.runs[len(active):])
	s.runs = active
	for _, smp := range samples {
		s.emit(smp)
	}
	return samples
}

func (s *Sequencer) emit(smp Sample) {
	for _, l := range slices.Clone(s.listeners) {
		l.fn(smp)
	}
}

// Busy is true while at least one run is active.
func (s *Sequencer) Busy() bool {
	return len(s.runs) > 0
}

// Active returns the runs that have not finished yet.
func (s *Sequencer) Active() []*Run {
	return append([]*Run(nil), s.runs...)
}

// Invalidate drops every run started under a path generation older than
// gen and refuses later requests for those generations. It returns the
// number of runs dropped.
func (s *Sequencer) Invalidate(gen uint64) int {
	if gen > s.generation {
		s.generation = gen
	}
	return s.cancel(func(r *Run) bool { return r.generation < gen })
}

// Cancel drops all active runs.
func (s *Sequencer) Cancel() int {
	return s.cancel(func(*Run) bool { return true })
}

func (s *Sequencer) cancel(match func(*Run) bool) int {
	n := 0
	active := s.runs[:0]
	for _, r := range s.runs {
		if match(r) {
			r.status = Canceled
			tracer().Infof("run %d canceled", r.id)
			n++
			continue
		}
		active = append(active, r)
	}
	clear(s.runs[len(active):])
	s.runs = active
	return n
}
