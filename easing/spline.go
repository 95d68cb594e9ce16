package easing

import (
	"fmt"
	"math"

	"github.com/npillmayer/motion"
)

// Segment is one cubic Bézier piece of a BezierSpline curve, continuing
// from the end point of the previous segment (or from (0,0)). Coordinates
// are (progress, eased progress).
type Segment struct {
	C1, C2 motion.Pair
	End    motion.Pair
}

// Knot is a designer knot of a TCBSpline curve. The curve passes through
// At with Kochanek–Bartels tangents: Tension tightens the curve at the
// knot, Continuity introduces a corner, Bias pulls the tangent towards
// the previous (negative) or next (positive) knot. All zero gives a
// Catmull-Rom spline.
type Knot struct {
	At         motion.Pair
	Tension    float64
	Continuity float64
	Bias       float64
}

// DefaultSegment is the single segment used by a BezierSpline spec without
// segments. It matches CSS "ease".
var DefaultSegment = Segment{C1: motion.P(0.25, 0.1), C2: motion.P(0.25, 1), End: motion.P(1, 1)}

// DefaultKnots are used by a TCBSpline spec without knots.
var DefaultKnots = []Knot{
	{At: motion.P(0.3, 0.1)},
	{At: motion.P(0.7, 0.9)},
}

// BezierSpec returns a BezierSpline spec for the given segments.
func BezierSpec(segs ...Segment) Spec {
	return Spec{Family: BezierSpline, Segments: segs}
}

// TCBSpec returns a TCBSpline spec for the given interior knots.
func TCBSpec(knots ...Knot) Spec {
	return Spec{Family: TCBSpline, Knots: knots}
}

// Validate checks that spline segments or knots advance in time and stay
// within [0,1] on the time axis. Specs of other families are always valid.
func (s Spec) Validate() error {
	switch s.Family {
	case BezierSpline:
		x := 0.0
		for i, seg := range s.Segments {
			if seg.End.X() <= x || seg.End.X() > 1 {
				return fmt.Errorf("%w: segment %d ends at x=%g after x=%g", ErrInvalidSpline, i, seg.End.X(), x)
			}
			x = seg.End.X()
		}
	case TCBSpline:
		x := 0.0
		for i, k := range s.Knots {
			if k.At.X() <= x || k.At.X() >= 1 {
				return fmt.Errorf("%w: knot %d at x=%g must lie in (%g,1)", ErrInvalidSpline, i, k.At.X(), x)
			}
			x = k.At.X()
		}
	case Custom:
		if s.Func == nil {
			return fmt.Errorf("%w: custom easing without function", ErrInvalidSpline)
		}
	}
	return nil
}

// bezierPiece is a segment with its start point resolved.
type bezierPiece struct {
	p0, p1, p2, p3 motion.Pair
}

func (s Spec) bezierCurve() func(float64) float64 {
	segs := s.Segments
	if len(segs) == 0 {
		segs = []Segment{DefaultSegment}
	}
	return piecewise(chain(segs))
}

// chain resolves start points, the first segment starts at (0,0).
// The last segment is forced to end at (1,1).
func chain(segs []Segment) []bezierPiece {
	pieces := make([]bezierPiece, len(segs))
	start := motion.Origin
	for i, seg := range segs {
		end := seg.End
		if i == len(segs)-1 {
			end = motion.P(1, 1)
		}
		pieces[i] = bezierPiece{p0: start, p1: seg.C1, p2: seg.C2, p3: end}
		start = end
	}
	return pieces
}

func (s Spec) tcbCurve() func(float64) float64 {
	knots := s.Knots
	if len(knots) == 0 {
		knots = DefaultKnots
	}
	all := make([]Knot, 0, len(knots)+2)
	all = append(all, Knot{At: motion.Origin})
	all = append(all, knots...)
	all = append(all, Knot{At: motion.P(1, 1)})
	return piecewise(tcbToBezier(all))
}

// tcbToBezier converts Kochanek–Bartels knots into cubic Bézier pieces.
// End knots use themselves as missing neighbours.
func tcbToBezier(knots []Knot) []bezierPiece {
	n := len(knots)
	at := func(i int) motion.Pair {
		i = max(0, min(n-1, i))
		return knots[i].At
	}
	in := make([]motion.Pair, n)  // incoming tangent at knot i
	out := make([]motion.Pair, n) // outgoing tangent at knot i
	for i, k := range knots {
		prev := at(i) - at(i-1)
		next := at(i+1) - at(i)
		t, c, b := k.Tension, k.Continuity, k.Bias
		out[i] = prev.Scaled((1-t)*(1+b)*(1+c)/2) + next.Scaled((1-t)*(1-b)*(1-c)/2)
		in[i] = prev.Scaled((1-t)*(1+b)*(1-c)/2) + next.Scaled((1-t)*(1-b)*(1+c)/2)
	}
	pieces := make([]bezierPiece, n-1)
	for i := range pieces {
		pieces[i] = bezierPiece{
			p0: at(i),
			p1: at(i) + out[i].Scaled(1.0/3),
			p2: at(i+1) - in[i+1].Scaled(1.0/3),
			p3: at(i + 1),
		}
	}
	return pieces
}

// piecewise evaluates a chain of pieces as y(x).
func piecewise(pieces []bezierPiece) func(float64) float64 {
	return func(x float64) float64 {
		if x <= 0 {
			return pieces[0].p0.Y()
		}
		if x >= 1 {
			return pieces[len(pieces)-1].p3.Y()
		}
		for _, pc := range pieces {
			if x <= pc.p3.X() {
				return pc.solve(x)
			}
		}
		return pieces[len(pieces)-1].p3.Y()
	}
}

func bernstein(a, b, c, d, u float64) float64 {
	mu := 1 - u
	return mu*mu*mu*a + 3*mu*mu*u*b + 3*mu*u*u*c + u*u*u*d
}

func bernsteinDerivative(a, b, c, d, u float64) float64 {
	mu := 1 - u
	return 3*mu*mu*(b-a) + 6*mu*u*(c-b) + 3*u*u*(d-c)
}

// solve finds the curve parameter u with x(u) = x and returns y(u).
// Newton-Raphson first, bisection if it fails to converge.
func (pc bezierPiece) solve(x float64) float64 {
	x0, x1, x2, x3 := pc.p0.X(), pc.p1.X(), pc.p2.X(), pc.p3.X()
	y := func(u float64) float64 {
		return bernstein(pc.p0.Y(), pc.p1.Y(), pc.p2.Y(), pc.p3.Y(), u)
	}
	span := x3 - x0
	if motion.Is0(span) {
		return pc.p3.Y()
	}
	u := (x - x0) / span
	for range 8 {
		dx := bernstein(x0, x1, x2, x3, u) - x
		if math.Abs(dx) < 1e-7 {
			return y(motion.Clamp01(u))
		}
		d := bernsteinDerivative(x0, x1, x2, x3, u)
		if math.Abs(d) < 1e-7 {
			break
		}
		u -= dx / d
	}
	lo, hi := 0.0, 1.0
	u = motion.Clamp01(u)
	for range 40 {
		dx := bernstein(x0, x1, x2, x3, u) - x
		if math.Abs(dx) < 1e-7 {
			break
		}
		if dx > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return y(u)
}
