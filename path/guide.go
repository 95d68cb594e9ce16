package path

import (
	"github.com/npillmayer/motion"
	"honnef.co/go/curve"
)

// accuracy for arc length and bounds computations, in pixels
const accuracy = 1e-3

// Guide returns the path as it should be drawn: a line or a cubic once the
// path is complete, an empty path otherwise.
func (m *Model) Guide() curve.BezPath {
	var bp curve.BezPath
	seg, ok := m.Segment()
	if !ok {
		return bp
	}
	bp.MoveTo(seg.P0)
	switch m.typ {
	case Line:
		bp.LineTo(seg.P3)
	case Bezier:
		bp.CubicTo(seg.P1, seg.P2, seg.P3)
	}
	return bp
}

// Segment returns the complete path as a cubic Bézier segment. Lines are
// returned with their controls at the end points.
func (m *Model) Segment() (curve.CubicBez, bool) {
	if !m.IsComplete() {
		return curve.CubicBez{}, false
	}
	pt := func(i int) curve.Point { return motion.CurvePoint(m.points[i]) }
	switch m.typ {
	case Line:
		return curve.CubicBez{P0: pt(0), P1: pt(0), P2: pt(1), P3: pt(1)}, true
	case Bezier:
		return curve.CubicBez{P0: pt(0), P1: pt(1), P2: pt(2), P3: pt(3)}, true
	}
	return curve.CubicBez{}, false
}

// Length is the arc length of the complete path, 0 while incomplete.
func (m *Model) Length() float64 {
	if !m.IsComplete() {
		return 0
	}
	if m.typ == Line {
		return m.points[0].Distance(m.points[1])
	}
	seg, _ := m.Segment()
	return seg.Arclen(accuracy)
}

// Bounds is the bounding box of the placed points and, for a complete
// path, the curve itself.
func (m *Model) Bounds() curve.Rect {
	if len(m.points) == 0 {
		return curve.Rect{}
	}
	p0 := motion.CurvePoint(m.points[0])
	r := curve.Rect{X0: p0.X, Y0: p0.Y, X1: p0.X, Y1: p0.Y}
	for _, p := range m.points[1:] {
		r = r.UnionPoint(motion.CurvePoint(p))
	}
	if seg, ok := m.Segment(); ok {
		r = r.Union(seg.BoundingBox())
	}
	return r
}
