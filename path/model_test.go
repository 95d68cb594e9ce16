package path

import (
	"math"
	"testing"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"
)

func TestLineSaturates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New()
	assert.True(t, m.AddPoint(motion.P(0, 0)))
	assert.False(t, m.IsComplete())
	assert.True(t, m.AddPoint(motion.P(50, 50)))
	assert.True(t, m.IsComplete())
	assert.False(t, m.AddPoint(motion.P(99, 99)), "third point on a line must be ignored")
	assert.Equal(t, []motion.Pair{motion.P(0, 0), motion.P(50, 50)}, m.Points())
}

func TestBezierTakesFourPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New(WithType(Bezier))
	for i := 0; i < 6; i++ {
		m.AddPoint(motion.P(float64(i), float64(i)))
	}
	assert.Equal(t, 4, m.Len())
	assert.True(t, m.IsComplete())
}

func TestSetTypeClears(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New()
	m.AddPoint(motion.P(1, 1))
	m.AddPoint(motion.P(2, 2))
	gen := m.Generation()
	m.SetType(Bezier)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, Bezier, m.Type())
	assert.Equal(t, gen+1, m.Generation())
	m.SetType(Bezier)
	assert.Equal(t, 0, m.Len(), "setting the same type clears as well")
	m.AddPoint(motion.P(1, 1))
	m.SetType(Line)
	assert.Empty(t, m.Points())

	m.AddPoint(motion.P(1, 1))
	gen = m.Generation()
	assert.False(t, m.SetType(PathType(7)), "unknown types are refused")
	assert.Equal(t, Line, m.Type())
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, gen, m.Generation())
	assert.False(t, m.IsComplete())
	assert.Equal(t, Line, New(WithType(PathType(7))).Type())
}

func TestResetKeepsType(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New(WithType(Bezier))
	m.AddPoint(motion.P(1, 1))
	m.Reset()
	assert.Equal(t, Bezier, m.Type())
	assert.Equal(t, 0, m.Len())
}

func TestNonFinitePointIgnored(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New()
	assert.False(t, m.AddPoint(motion.P(math.NaN(), 0)))
	assert.Equal(t, 0, m.Len())
}

func TestHitTestFirstMatchWins(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New(WithType(Bezier))
	assert.Equal(t, None, m.HitTest(motion.P(0, 0), 10), "empty model")
	m.AddPoint(motion.P(100, 100))
	m.AddPoint(motion.P(20, 20))
	m.AddPoint(motion.P(11, 11))
	m.AddPoint(motion.P(200, 0))
	// (20,20) is within 10 of (14,14) but listed before the closer (11,11)
	assert.Equal(t, 1, m.HitTest(motion.P(14, 14), 10))
	assert.Equal(t, 2, m.HitTest(motion.P(10, 10), 3))
	assert.Equal(t, None, m.HitTest(motion.P(400, 400), 10))
	// Euclidean distance on both axes: x matches but y is far away
	assert.Equal(t, None, m.HitTest(motion.P(200, 50), 10))
	assert.Equal(t, 3, m.HitTest(motion.P(205, 8), 10))
}

func TestPressPlacesThenPicks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New()
	assert.True(t, m.Press(motion.P(100, 100)))
	assert.True(t, m.Press(motion.P(300, 300)))
	assert.Equal(t, None, m.Dragging())
	assert.True(t, m.Press(motion.P(305, 298)))
	assert.Equal(t, 1, m.Dragging())
	assert.Equal(t, 2, m.Len())
	m.EndDrag()
	assert.False(t, m.Press(motion.P(200, 200)), "miss on a complete path")
	assert.Equal(t, None, m.Dragging())
}

func TestDrag(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New(WithFrame(200, 100), WithMargin(10))
	assert.False(t, m.UpdateDrag(motion.P(50, 50)), "no drag active")
	assert.False(t, m.BeginDrag(0), "no points yet")
	m.AddPoint(motion.P(20, 20))
	m.AddPoint(motion.P(150, 80))
	require.True(t, m.BeginDrag(0))
	assert.True(t, m.UpdateDrag(motion.P(60, 40)))
	assert.False(t, m.UpdateDrag(motion.P(5, 40)), "left margin")
	assert.False(t, m.UpdateDrag(motion.P(60, 95)), "bottom margin")
	assert.False(t, m.UpdateDrag(motion.P(190, 40)), "right edge is exclusive")
	p, ok := m.Point(0)
	require.True(t, ok)
	assert.Equal(t, motion.P(60, 40), p)
	m.EndDrag()
	assert.False(t, m.UpdateDrag(motion.P(70, 40)))
	m.EndDrag()
	assert.Equal(t, curve.Rect{X0: 10, Y0: 10, X1: 190, Y1: 90}, m.Region())
}

func TestResetCancelsDrag(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New()
	m.AddPoint(motion.P(20, 20))
	m.AddPoint(motion.P(40, 40))
	m.BeginDrag(1)
	m.Reset()
	assert.Equal(t, None, m.Dragging())
	assert.False(t, m.UpdateDrag(motion.P(30, 30)))
}

func TestObserve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New()
	calls := 0
	cancel := m.Observe(func() { calls++ })
	m.AddPoint(motion.P(20, 20))
	m.AddPoint(motion.P(40, 40))
	m.AddPoint(motion.P(60, 60)) // ignored, no notification
	m.BeginDrag(0)
	m.UpdateDrag(motion.P(30, 30))
	m.SetType(Bezier)
	assert.Equal(t, 4, calls)
	cancel()
	m.Reset()
	assert.Equal(t, 4, calls)
}

func TestObserversInRegistrationOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New()
	var order []int
	for i := range 5 {
		m.Observe(func() { order = append(order, i) })
	}
	remove := m.Observe(func() { order = append(order, 99) })
	remove()
	m.AddPoint(motion.P(20, 20))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSeed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New()
	require.True(t, m.Seed())
	assert.Equal(t, []motion.Pair{motion.P(50, 50), motion.P(550, 750)}, m.Points())
	assert.False(t, m.Seed(), "seeding twice")
	b := New(WithType(Bezier))
	assert.False(t, b.Seed())
}

func TestGuideAndLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New()
	assert.Empty(t, m.Guide())
	assert.Equal(t, 0.0, m.Length())
	m.AddPoint(motion.P(0, 0))
	m.AddPoint(motion.P(30, 40))
	assert.Len(t, m.Guide(), 2)
	assert.InDelta(t, 50.0, m.Length(), 1e-9)

	b := New(WithType(Bezier))
	for _, p := range []motion.Pair{motion.P(0, 0), motion.P(0, 10), motion.P(10, 10), motion.P(10, 0)} {
		b.AddPoint(p)
	}
	g := b.Guide()
	require.Len(t, g, 2)
	assert.Equal(t, curve.CubicToKind, g[1].Kind)
	l := b.Length()
	assert.Greater(t, l, 10.0, "longer than the chord")
	assert.Less(t, l, 30.0, "shorter than the control polygon")
	bounds := b.Bounds()
	assert.InDelta(t, 0.0, bounds.MinX(), 1e-9)
	assert.InDelta(t, 10.0, bounds.MaxX(), 1e-9)
	assert.InDelta(t, 10.0, bounds.MaxY(), 1e-9, "control points widen the bounds")
}
