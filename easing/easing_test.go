package easing

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"
)

func TestLinearIsIdentity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spec := Of(Linear)
	for i := 0; i <= 100; i++ {
		p := float64(i) / 100
		assert.Equal(t, p, Value(p, spec))
	}
}

func TestProgressIsClamped(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, 0.0, Value(-0.5, Of(Linear)))
	assert.Equal(t, 1.0, Value(1.5, Of(Linear)))
	assert.Equal(t, 0.0, Value(math.NaN(), Of(InQuad)))
}

func TestEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, f := range Catalogue() {
		if f.Periodic() {
			continue
		}
		fn := Of(f).Curve()
		assert.InDelta(t, 0.0, fn(0), 1e-6, "family %s at 0", f)
		assert.InDelta(t, 1.0, fn(1), 1e-6, "family %s at 1", f)
	}
}

func TestNonOvershootingStaysInUnitRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, fam := range Catalogue() {
		if fam.Overshoots() {
			continue
		}
		f := Of(fam).Curve()
		for i := 0; i <= 200; i++ {
			v := f(float64(i) / 200)
			if v < -1e-3 || v > 1+1e-3 {
				t.Fatalf("family %s left [0,1] at %g: %g", fam, float64(i)/200, v)
			}
		}
	}
}

func TestKnownValues(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.InDelta(t, 0.25, Value(0.5, Of(InQuad)), 1e-6)
	assert.InDelta(t, 0.75, Value(0.5, Of(OutQuad)), 1e-6)
	assert.InDelta(t, 0.125, Value(0.5, Of(InCubic)), 1e-6)
	assert.InDelta(t, 0.5, Value(0.5, Of(InOutQuad)), 1e-6)
	assert.InDelta(t, 0.5, Value(0.5, Of(InOutCirc)), 1e-6)
	assert.InDelta(t, 1.0, Value(0.5, Of(SineCurve)), 1e-9)
	assert.InDelta(t, 0.0, Value(1, Of(SineCurve)), 1e-9)
	assert.InDelta(t, 0.5, Value(0, Of(CosineCurve)), 1e-9)
}

func TestBackOvershoots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Less(t, Value(0.2, Of(InBack)), 0.0, "InBack should dip below 0")
	assert.Greater(t, Value(0.8, Of(OutBack)), 1.0, "OutBack should exceed 1")
}

func TestParametricMatchesDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// the parametric formulas with the default parameters agree with the
	// catalogue curves
	for _, fam := range []Family{InBack, OutBack, InOutBack, OutInBack} {
		def := Of(fam).Curve()
		par := parametricCurve(fam, DefaultAmplitude, DefaultPeriod, DefaultOvershoot)
		for i := 1; i < 10; i++ {
			x := float64(i) / 10
			assert.InDelta(t, def(x), par(x), 1e-4, "%s at %g", fam, x)
		}
	}
	for _, fam := range []Family{InElastic, OutElastic} {
		def := Of(fam).Curve()
		par := parametricCurve(fam, DefaultAmplitude, DefaultPeriod, DefaultOvershoot)
		for i := 1; i < 10; i++ {
			x := float64(i) / 10
			assert.InDelta(t, def(x), par(x), 1e-3, "%s at %g", fam, x)
		}
	}
}

func TestOvershootParameter(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	mild := Value(0.8, Spec{Family: OutBack, Overshoot: 0.5})
	strong := Value(0.8, Spec{Family: OutBack, Overshoot: 4})
	assert.Greater(t, strong, mild)
	damped := Spec{Family: OutElastic, Amplitude: 2, Period: 0.5}
	assert.InDelta(t, 1.0, Value(1, damped), 1e-9)
	assert.InDelta(t, 0.0, Value(0, damped), 1e-9)
}

func TestBezierSplineDefault(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := Of(BezierSpline).Curve()
	assert.Equal(t, 0.0, f(0))
	assert.Equal(t, 1.0, f(1))
	// CSS ease is well ahead of linear at the midpoint
	assert.InDelta(t, 0.8024, f(0.5), 0.002)
}

func TestBezierSplineLinearSegment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spec := BezierSpec(Segment{C1: motion.P(1.0/3, 1.0/3), C2: motion.P(2.0/3, 2.0/3), End: motion.P(1, 1)})
	require.NoError(t, spec.Validate())
	f := spec.Curve()
	for i := 0; i <= 10; i++ {
		x := float64(i) / 10
		assert.InDelta(t, x, f(x), 1e-6)
	}
}

func TestBezierSplineChain(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spec := BezierSpec(
		Segment{C1: motion.P(0.1, 0), C2: motion.P(0.4, 0.5), End: motion.P(0.5, 0.5)},
		Segment{C1: motion.P(0.6, 0.5), C2: motion.P(0.9, 1), End: motion.P(1, 1)},
	)
	require.NoError(t, spec.Validate())
	assert.InDelta(t, 0.5, Value(0.5, spec), 1e-6)
}

func TestTCBSplinePassesThroughKnots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots := []Knot{{At: motion.P(0.25, 0.5)}, {At: motion.P(0.75, 0.6), Tension: 0.5}}
	spec := TCBSpec(knots...)
	require.NoError(t, spec.Validate())
	f := spec.Curve()
	for _, k := range knots {
		assert.InDelta(t, k.At.Y(), f(k.At.X()), 1e-5)
	}
	assert.InDelta(t, 0.0, f(0), 1e-9)
	assert.InDelta(t, 1.0, f(1), 1e-9)
}

func TestSplineValidation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	bad := BezierSpec(
		Segment{End: motion.P(0.6, 0.5)},
		Segment{End: motion.P(0.4, 1)},
	)
	assert.True(t, errors.Is(bad.Validate(), ErrInvalidSpline))
	assert.True(t, errors.Is(TCBSpec(Knot{At: motion.P(1.2, 0)}).Validate(), ErrInvalidSpline))
	assert.True(t, errors.Is(Spec{Family: Custom}.Validate(), ErrInvalidSpline))
	assert.NoError(t, Of(OutBounce).Validate())
}

func TestCustom(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spec := CustomSpec(func(t float64) float64 { return t * t * t * t })
	assert.InDelta(t, 0.0625, Value(0.5, spec), 1e-9)
	assert.Equal(t, 0.3, Value(0.3, Spec{Family: Custom}))
}

func TestFamilyNames(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, f := range Families() {
		g, err := ParseFamily(strings.ToLower(f.String()))
		require.NoError(t, err)
		assert.Equal(t, f, g)
	}
	_, err := ParseFamily("NCurveTypes")
	assert.True(t, errors.Is(err, ErrUnknownFamily))
	assert.Equal(t, "Family(99)", Family(99).String())
	assert.Len(t, Families(), 48)
	assert.Len(t, Catalogue(), 47)
}

func TestPreviewFitsBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := curve.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	th := Preview(Of(Linear), box, PreviewOptions{Samples: 11, Padding: 10})
	require.Len(t, th.Polyline, 11)
	assert.True(t, th.Start.Equal(motion.P(10, 90)), "start %v", th.Start)
	assert.True(t, th.End.Equal(motion.P(90, 10)), "end %v", th.End)
	assert.True(t, th.Base[1].Equal(motion.P(90, 90)))
	assert.True(t, th.Top[0].Equal(motion.P(10, 10)))
	assert.True(t, strings.HasPrefix(th.SVG(), "M"), th.SVG())
}

func TestPreviewKeepsOvershootVisible(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := curve.Rect{X0: 0, Y0: 0, X1: 64, Y1: 64}
	th := Preview(Of(OutBack), box, PreviewOptions{})
	assert.Greater(t, th.Max, 1.0)
	for _, p := range th.Polyline {
		assert.True(t, p.X() >= 6.4-1e-6 && p.X() <= 57.6+1e-6, "point %v outside plot", p)
		assert.True(t, p.Y() >= 6.4-1e-6 && p.Y() <= 57.6+1e-6, "point %v outside plot", p)
	}
	// the 1-line lies below the top of the plot because the curve overshoots
	assert.Greater(t, th.Top[0].Y(), 6.4+1e-6)
}

func TestGalleryLayout(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	specs := CatalogueSpecs()
	cell := curve.Sz(80, 60)
	thumbs := Gallery(specs, cell, 8, PreviewOptions{Samples: 16})
	require.Len(t, thumbs, len(specs))
	assert.Equal(t, curve.Rect{X0: 80, Y0: 0, X1: 160, Y1: 60}, thumbs[1].Box)
	assert.Equal(t, curve.Rect{X0: 0, Y0: 60, X1: 80, Y1: 120}, thumbs[8].Box)
	assert.Equal(t, curve.Sz(640, 360), GallerySize(len(specs), cell, 8))
	assert.Equal(t, curve.Sz(160, 60), GallerySize(2, cell, 8))
}
