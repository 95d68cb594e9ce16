package path

import (
	"github.com/npillmayer/motion"
	"honnef.co/go/curve"
)

// Press handles a pointer-down at p: on an incomplete path it places a
// point, on a complete path it picks the first point within the model's
// tolerance and starts dragging it. It reports whether a point was added
// or picked.
func (m *Model) Press(p motion.Pair) bool {
	if !m.IsComplete() {
		return m.AddPoint(p)
	}
	return m.BeginDrag(m.HitTest(p, m.tolerance))
}

// BeginDrag starts dragging point i. Invalid indices are ignored.
func (m *Model) BeginDrag(i int) bool {
	if i < 0 || i >= len(m.points) {
		m.dragged = None
		return false
	}
	m.dragged = i
	tracer().Debugf("dragging point %d", i)
	return true
}

// Dragging returns the index of the dragged point, or None.
func (m *Model) Dragging() int {
	return m.dragged
}

// UpdateDrag moves the dragged point to p. It does nothing if no drag is
// active or if p lies outside the interaction region.
func (m *Model) UpdateDrag(p motion.Pair) bool {
	if m.dragged == None || m.dragged >= len(m.points) {
		return false
	}
	if !p.IsFinite() || !m.Region().Contains(motion.CurvePoint(p)) {
		return false
	}
	m.points[m.dragged] = p
	m.notify()
	return true
}

// EndDrag finishes a drag. Calling it without an active drag is harmless.
func (m *Model) EndDrag() {
	if m.dragged != None {
		tracer().Debugf("released point %d at %v", m.dragged, m.points[m.dragged])
	}
	m.dragged = None
}

// Region is the rectangle in which dragged points may be placed: the frame
// inset by the margin on every side. Its right and bottom edges are
// exclusive.
func (m *Model) Region() curve.Rect {
	frame := curve.NewRectFromOrigin(curve.Pt(0, 0), m.frame)
	return frame.Inflate(-m.margin, -m.margin)
}

// Margin is the inset of the interaction region from the frame edges.
func (m *Model) Margin() float64 {
	return m.margin
}

// SetMargin changes the inset of the interaction region. Negative values
// are ignored.
func (m *Model) SetMargin(margin float64) {
	if margin >= 0 {
		m.margin = margin
	}
}

// Frame returns the size of the frame.
func (m *Model) Frame() curve.Size {
	return m.frame
}

// SetFrame resizes the frame. Points are kept where they are, even if they
// now lie outside the interaction region.
func (m *Model) SetFrame(w, h float64) {
	if w < 0 || h < 0 {
		return
	}
	m.frame = curve.Sz(w, h)
}

// Seed places the initial line from (50,50) to the frame corner inset by
// 50. It only acts on an empty line path and reports whether it did.
func (m *Model) Seed() bool {
	if m.typ != Line || len(m.points) != 0 {
		return false
	}
	m.points = append(m.points,
		motion.P(seedInset, seedInset),
		motion.P(m.frame.Width-seedInset, m.frame.Height-seedInset))
	m.notify()
	return true
}
