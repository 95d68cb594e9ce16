// Package stage connects a host UI to the motion path core.
/*
A Stage owns the path model, the animation configuration and the playback
sequencer. Hosts forward their raw input events to it (pointer presses,
moves and releases, configuration changes) and read back what to draw:
the current points, the guide path, whether play is possible, and the
per-tick samples of every motion object.

	st := stage.New()
	st.OnSample(func(s playback.Sample) { moveMarker(s.Object, s.Position) })
	st.PointerDown(motion.P(50, 50))
	st.PointerDown(motion.P(300, 500))
	if st.CanPlay() {
		st.Play()
	}
	// in the host's frame callback
	st.Tick()

Stage is not safe for concurrent use. All events and ticks are expected
on the host's UI goroutine.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package stage

import (
	"github.com/npillmayer/motion"
	"github.com/npillmayer/motion/easing"
	"github.com/npillmayer/motion/path"
	"github.com/npillmayer/motion/playback"
	"github.com/npillmayer/motion/scene"
	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"
)

// tracer writes to trace with key 'stage'
func tracer() tracing.Trace {
	return tracing.Select("stage")
}

// Stage is the host-facing front of a motion path demo.
type Stage struct {
	model  *path.Model
	config scene.Config
	seq    *playback.Sequencer
}

type settings struct {
	clock  playback.Clock
	policy playback.Policy
	model  []path.Option
	seed   bool
}

// Option configures a Stage.
type Option func(*settings)

// WithClock sets the clock playback runs are measured against.
func WithClock(c playback.Clock) Option {
	return func(s *settings) {
		s.clock = c
	}
}

// WithPolicy sets the policy for play requests while objects are moving.
func WithPolicy(p playback.Policy) Option {
	return func(s *settings) {
		s.policy = p
	}
}

// WithModel passes options to the path model.
func WithModel(opts ...path.Option) Option {
	return func(s *settings) {
		s.model = append(s.model, opts...)
	}
}

// WithSeed starts the stage with the initial line path placed.
func WithSeed() Option {
	return func(s *settings) {
		s.seed = true
	}
}

// New creates a stage with an empty line path and the default config.
func New(opts ...Option) *Stage {
	s := settings{clock: playback.SystemClock{}, policy: playback.Restart}
	for _, opt := range opts {
		opt(&s)
	}
	st := &Stage{
		model:  path.New(s.model...),
		config: scene.Default(),
		seq:    playback.New(s.clock, playback.WithPolicy(s.policy)),
	}
	st.config.PathType = st.model.Type()
	if s.seed {
		st.model.Seed()
	}
	return st
}

// Model gives read access to the path model. Hosts must not mutate it
// directly, or in-flight runs will not be invalidated.
func (st *Stage) Model() *path.Model { return st.model }

// Config returns a copy of the animation configuration.
func (st *Stage) Config() scene.Config { return st.config }

// Sequencer returns the playback sequencer.
func (st *Stage) Sequencer() *playback.Sequencer { return st.seq }

// --- Input events ----------------------------------------------------------

// PointerDown places a point on an incomplete path, or picks a point of a
// complete path for dragging.
func (st *Stage) PointerDown(p motion.Pair) bool {
	return st.model.Press(p)
}

// PointerMove drags the picked point, if any.
func (st *Stage) PointerMove(p motion.Pair) bool {
	return st.model.UpdateDrag(p)
}

// PointerUp ends a drag.
func (st *Stage) PointerUp() {
	st.model.EndDrag()
}

// SetPathType switches the path type. All points are dropped and moving
// objects stop. Unknown types are ignored and SetPathType returns false.
func (st *Stage) SetPathType(t motion.PathType) bool {
	if !st.model.SetType(t) {
		return false
	}
	st.config.PathType = t
	st.invalidate()
	return true
}

// Reset drops all points and stops moving objects.
func (st *Stage) Reset() {
	st.model.Reset()
	st.invalidate()
}

// Resize changes the frame the interaction region is derived from.
func (st *Stage) Resize(w, h float64) {
	st.model.SetFrame(w, h)
}

// SetDuration sets the animation duration in seconds.
func (st *Stage) SetDuration(seconds float64) error {
	return st.config.SetDuration(seconds)
}

// SetEasing sets the easing of the given objects, or of the selected object
// if no index is given.
func (st *Stage) SetEasing(spec easing.Spec, index ...int) error {
	if len(index) == 0 {
		st.config.SetEasing(spec)
		return nil
	}
	for _, i := range index {
		if err := st.config.SetEasingFor(i, spec); err != nil {
			return err
		}
	}
	return nil
}

// SelectObject chooses the object SetEasing applies to.
func (st *Stage) SelectObject(i int) error {
	return st.config.Select(i)
}

// SetComparisonMode switches the second motion object on or off. The
// change takes effect at the next play.
func (st *Stage) SetComparisonMode(on bool) {
	st.config.SetComparison(on)
}

// SetSurface stores the surface image reference of object i.
func (st *Stage) SetSurface(i int, ref string) error {
	return st.config.SetSurface(i, ref)
}

// Load replaces path and config with a scene.
func (st *Stage) Load(f *scene.File) error {
	if err := f.Apply(st.model, &st.config); err != nil {
		return err
	}
	st.invalidate()
	return nil
}

// Save captures path and config as a scene.
func (st *Stage) Save() (*scene.File, error) {
	return scene.Capture(st.model, st.config)
}

func (st *Stage) invalidate() {
	if n := st.seq.Invalidate(st.model.Generation()); n > 0 {
		tracer().Debugf("stopped %d moving objects", n)
	}
}

// --- Output ----------------------------------------------------------------

// Points returns the current control points.
func (st *Stage) Points() []motion.Pair {
	return st.model.Points()
}

// Guide returns the path to draw, empty while the path is incomplete.
func (st *Stage) Guide() curve.BezPath {
	return st.model.Guide()
}

// CanPlay tells hosts whether to enable their play control.
func (st *Stage) CanPlay() bool {
	return st.model.IsComplete()
}

// Play starts the motion objects along a snapshot of the current path.
// Errors tell why nothing moves; hosts may ignore them.
func (st *Stage) Play() ([]*playback.Run, error) {
	req := st.config.Request(st.model.Points(), st.model.Generation())
	req.Type = st.model.Type()
	runs, err := st.seq.Play(req)
	if err != nil {
		tracer().Debugf("play: %v", err)
	}
	return runs, err
}

// Tick advances the motion objects. Hosts call it once per frame.
func (st *Stage) Tick() []playback.Sample {
	return st.seq.Step()
}

// Moving is true while motion objects are running.
func (st *Stage) Moving() bool {
	return st.seq.Busy()
}

// OnSample registers fn for every sample emitted by Tick.
func (st *Stage) OnSample(fn func(playback.Sample)) func() {
	return st.seq.AddListener(fn)
}

// OnChange registers fn to be called whenever the points change.
func (st *Stage) OnChange(fn func()) func() {
	return st.model.Observe(fn)
}
