// Package path holds the user-placed control points of a motion path.
/*
A Model stores up to two points for a line path (start, end) or up to four
for a cubic Bézier path (start, first control, second control, end). Hosts
forward pointer events into it: placing points while the path is
incomplete, dragging existing points once it is complete.

None of the operations fail. Requests that cannot be honoured, such as
adding a point to a complete path or dragging without a picked point, are
ignored and reported through a bool result.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package path

import (
	"slices"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"
)

// tracer writes to trace with key 'path'
func tracer() tracing.Trace {
	return tracing.Select("path")
}

// None is the index result for "no control point".
const None = -1

// Defaults for interaction geometry, in pixels.
const (
	DefaultTolerance = 10.0
	DefaultMargin    = 10.0
	DefaultWidth     = 600.0
	DefaultHeight    = 800.0
	seedInset        = 50.0
)

// Model maintains the control points and the path type of a motion path.
// The zero value is not usable, create models with New.
type Model struct {
	typ        PathType
	points     []motion.Pair
	dragged    int
	tolerance  float64
	margin     float64
	frame      curve.Size
	generation uint64
	observers  []observer
	nextID     int
}

type observer struct {
	id int
	fn func()
}

// PathType is re-exported for callers that only deal with paths.
type PathType = motion.PathType

// Path types.
const (
	Line   = motion.Line
	Bezier = motion.Bezier
)

// Option configures a Model.
type Option func(*Model)

// WithTolerance sets the hit-test distance used by Press.
func WithTolerance(tol float64) Option {
	return func(m *Model) {
		if tol >= 0 {
			m.tolerance = tol
		}
	}
}

// WithMargin sets the inset of the interaction region from the frame edges.
func WithMargin(margin float64) Option {
	return func(m *Model) {
		if margin >= 0 {
			m.margin = margin
		}
	}
}

// WithFrame sets the frame size the interaction region is derived from.
func WithFrame(w, h float64) Option {
	return func(m *Model) {
		m.frame = curve.Sz(w, h)
	}
}

// WithType sets the initial path type. Unknown types are ignored.
func WithType(t PathType) Option {
	return func(m *Model) {
		if t.Valid() {
			m.typ = t
		}
	}
}

// New creates an empty model of type Line, with default tolerance, margin
// and a 600×800 frame.
func New(opts ...Option) *Model {
	m := &Model{
		typ:       Line,
		dragged:   None,
		tolerance: DefaultTolerance,
		margin:    DefaultMargin,
		frame:     curve.Sz(DefaultWidth, DefaultHeight),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.points = make([]motion.Pair, 0, m.typ.MaxPoints())
	return m
}

// Type returns the current path type.
func (m *Model) Type() PathType {
	return m.typ
}

// Max is the number of points a complete path of the current type has.
func (m *Model) Max() int {
	return m.typ.MaxPoints()
}

// Len is the number of points placed so far.
func (m *Model) Len() int {
	return len(m.points)
}

// IsComplete is true if all points of the current path type are placed.
func (m *Model) IsComplete() bool {
	return len(m.points) == m.Max()
}

// Tolerance is the hit-test distance used by Press.
func (m *Model) Tolerance() float64 {
	return m.tolerance
}

// SetTolerance changes the hit-test distance used by Press. Negative
// values are ignored.
func (m *Model) SetTolerance(tol float64) {
	if tol >= 0 {
		m.tolerance = tol
	}
}

// Generation counts the resets of the point set. It changes whenever
// SetType or Reset discards points.
func (m *Model) Generation() uint64 {
	return m.generation
}

// SetType replaces the path type and clears all points, regardless of how
// many were placed. A running drag is cancelled. Unknown types leave the
// model unchanged and SetType returns false.
func (m *Model) SetType(t PathType) bool {
	if !t.Valid() {
		tracer().Errorf("ignoring unknown path type %s", t)
		return false
	}
	tracer().Debugf("path type %s -> %s, dropping %d points", m.typ, t, len(m.points))
	m.typ = t
	m.clear()
	return true
}

// Reset clears all points and keeps the path type.
func (m *Model) Reset() {
	tracer().Debugf("reset %s path, dropping %d points", m.typ, len(m.points))
	m.clear()
}

func (m *Model) clear() {
	m.points = m.points[:0]
	m.dragged = None
	m.generation++
	m.notify()
}

// AddPoint appends p if the path is incomplete. On a complete path the call
// is ignored and AddPoint returns false. Non-finite points are ignored.
func (m *Model) AddPoint(p motion.Pair) bool {
	if m.IsComplete() || len(m.points) > m.Max() {
		return false
	}
	if !p.IsFinite() {
		tracer().Errorf("ignoring non-finite point %v", p)
		return false
	}
	m.points = append(m.points, p)
	tracer().Debugf("added point %d = %v", len(m.points)-1, p)
	m.notify()
	return true
}

// Points returns a copy of the points, in index order.
func (m *Model) Points() []motion.Pair {
	return append([]motion.Pair(nil), m.points...)
}

// Point returns the point at index i, and false for an invalid index.
func (m *Model) Point(i int) (motion.Pair, bool) {
	if i < 0 || i >= len(m.points) {
		return motion.Origin, false
	}
	return m.points[i], true
}

// HitTest returns the index of the first point within tolerance of p, in
// storage order, or None. The first match wins even if a later point is
// closer.
func (m *Model) HitTest(p motion.Pair, tolerance float64) int {
	for i, q := range m.points {
		if q.Distance(p) <= tolerance {
			return i
		}
	}
	return None
}

// Observe registers fn to be called whenever the points change. Observers
// are called in registration order. Observe returns a function that removes
// the observer.
func (m *Model) Observe(fn func()) func() {
	id := m.nextID
	m.nextID++
	m.observers = append(m.observers, observer{id: id, fn: fn})
	return func() {
		m.observers = slices.DeleteFunc(m.observers, func(o observer) bool {
			return o.id == id
		})
	}
}

func (m *Model) notify() {
	for _, o := range slices.Clone(m.observers) {
		o.fn()
	}
}
