/*
Package motion implements the geometry shared by the motion-path animation
model: points, path types, and the affine transforms used to place easing
previews into thumbnails.

Sub-packages build on it:

	easing      easing families and curve-preview geometry
	trajectory  positions on lines and cubic Bézier paths
	path        user-placed control points, hit-tests and dragging
	playback    tick-driven sequencing of animation runs
	scene       animation configuration and scene files
	stage       input-event adapter for a host UI
	render      raster output of galleries and frames

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package motion

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"
)

// tracer writes to trace with key 'motion'
func tracer() tracing.Trace {
	return tracing.Select("motion")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Clamp01 restricts n to the unit interval. NaN is mapped to 0.
func Clamp01(n float64) float64 {
	switch {
	case math.IsNaN(n), n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

// === Pair Data Type ========================================================

// Pair is a 2D point in frame coordinates, x to the right and y downwards.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// IsFinite is a predicate: are both coordinates neither NaN nor infinite?
func (p Pair) IsFinite() bool {
	return !cmplx.IsNaN(p.C()) && !cmplx.IsInf(p.C())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return p + v
}

// Distance is the Euclidean distance between p and q.
func (p Pair) Distance(q Pair) float64 {
	return cmplx.Abs((q - p).C())
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
// t is not restricted to [0,1].
func (p Pair) Lerp(q Pair, t float64) Pair {
	return p + (q-p)*Pair(complex(t, 0))
}

// CurvePoint converts p to the point type of package curve.
func CurvePoint(p Pair) curve.Point {
	return curve.Pt(p.X(), p.Y())
}

// FromCurve converts a point of package curve to a Pair.
func FromCurve(pt curve.Point) Pair {
	return P(pt.X, pt.Y)
}

// === Path Types ============================================================

// PathType selects how a motion path connects its control points.
type PathType int

const (
	// Line is a straight path from a start to an end point.
	Line PathType = iota
	// Bezier is a cubic Bézier path: start, two controls, end.
	Bezier
)

func (t PathType) String() string {
	switch t {
	case Line:
		return "Line"
	case Bezier:
		return "Bezier"
	}
	return fmt.Sprintf("PathType(%d)", int(t))
}

// MaxPoints is the number of control points a complete path of type t has.
// Unknown types accept no points.
func (t PathType) MaxPoints() int {
	switch t {
	case Line:
		return 2
	case Bezier:
		return 4
	}
	return 0
}

// Valid is true for the path types Line and Bezier.
func (t PathType) Valid() bool {
	return t.MaxPoints() > 0
}

// ParsePathType maps "line" or "bezier" (any case) to a path type.
func ParsePathType(s string) (PathType, bool) {
	switch {
	case strings.EqualFold(s, "line"):
		return Line, true
	case strings.EqualFold(s, "bezier"):
		return Bezier, true
	}
	tracer().Debugf("unknown path type %q", s)
	return Line, false
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 3x3 matrix, flattened by rows

func newAT() AT {
	return make([]float64, 9)
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	return []float64{m[col], m[3+col], m[6+col]}
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Scaling transform. Scales x by sx and y by sy, relative to the origin.
// A negative factor mirrors the axis.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2]
}

// Combine 2 affine transformation to a new one: the result applies m first,
// then n. Neither argument is changed.
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	v := []float64{p.X(), p.Y(), 1.0}
	return P(dotProd(m.row(0), v), dotProd(m.row(1), v))
}

// FitUnit returns the transform mapping the rectangle spanned by
// (xmin,ymin) to (xmax,ymax) onto box, flipping the y axis so that larger
// values end up higher on screen. Degenerate extents are widened to 1.
func FitUnit(xmin, ymin, xmax, ymax float64, box curve.Rect) AT {
	w, h := xmax-xmin, ymax-ymin
	if Is0(w) {
		w = 1
	}
	if Is0(h) {
		h = 1
	}
	toOrigin := Translation(P(-xmin, -ymax))
	scale := Scaling(box.Width()/w, -box.Height()/h)
	toBox := Translation(P(box.MinX(), box.MinY()))
	return toOrigin.Combine(scale).Combine(toBox)
}
