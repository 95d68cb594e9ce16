// Package trajectory computes positions on motion paths.
//
// Positions are functions of eased progress t, usually in [0,1] but defined
// for any real t. Evaluation is pure and allocation-free, so it can run on
// every animation tick.
package trajectory

import (
	"github.com/npillmayer/motion"
)

// OnLine interpolates linearly: p0 + t*(p1-p0).
func OnLine(p0, p1 motion.Pair, t float64) motion.Pair {
	return p0.Lerp(p1, t)
}

// OnCubicBezier evaluates the cubic Bézier curve with start p0, controls p1
// and p2 and end p3 in Bernstein form:
//
//	(1-t)³ p0 + 3t(1-t)² p1 + 3t²(1-t) p2 + t³ p3
func OnCubicBezier(p0, p1, p2, p3 motion.Pair, t float64) motion.Pair {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * t * mt * mt
	c := 3 * t * t * mt
	d := t * t * t
	return p0.Scaled(a) + p1.Scaled(b) + p2.Scaled(c) + p3.Scaled(d)
}

// At evaluates the path of type typ through points at t. It returns false
// if points holds fewer control points than a path of typ needs; surplus
// points are ignored.
func At(typ motion.PathType, points []motion.Pair, t float64) (motion.Pair, bool) {
	if typ.MaxPoints() == 0 || len(points) < typ.MaxPoints() {
		return motion.Origin, false
	}
	switch typ {
	case motion.Line:
		return OnLine(points[0], points[1], t), true
	case motion.Bezier:
		return OnCubicBezier(points[0], points[1], points[2], points[3], t), true
	}
	return motion.Origin, false
}

// Sampler returns a function evaluating the path at t. The points are
// copied, later changes to the slice do not affect the sampler.
func Sampler(typ motion.PathType, points []motion.Pair) (func(t float64) motion.Pair, bool) {
	if _, ok := At(typ, points, 0); !ok {
		return nil, false
	}
	snapshot := append([]motion.Pair(nil), points[:typ.MaxPoints()]...)
	return func(t float64) motion.Pair {
		p, _ := At(typ, snapshot, t)
		return p
	}, true
}
