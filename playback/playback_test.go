package playback

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/motion/easing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineRequest() Request {
	return Request{
		Type:     motion.Line,
		Points:   []motion.Pair{motion.P(0, 0), motion.P(100, 0)},
		Duration: time.Second,
		Easing:   [2]easing.Spec{easing.Of(easing.Linear), easing.Of(easing.InQuad)},
	}
}

func TestManualClock(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := NewManualClock(time.Time{})
	assert.Equal(t, Epoch, c.Now())
	c.Advance(time.Second)
	c.Advance(-time.Hour)
	assert.Equal(t, Epoch.Add(time.Second), c.Now())
	c.Set(Epoch)
	assert.Equal(t, Epoch, c.Now())
}

func TestPlayRefusesIncompletePath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seq := New(NewManualClock(time.Time{}))
	req := lineRequest()
	req.Type = motion.Bezier // only two of four points
	runs, err := seq.Play(req)
	assert.True(t, errors.Is(err, ErrPathIncomplete))
	assert.Empty(t, runs)
	assert.False(t, seq.Busy())
	assert.Empty(t, seq.Step())

	req = lineRequest()
	req.Points = req.Points[:1]
	_, err = seq.Play(req)
	assert.True(t, errors.Is(err, ErrPathIncomplete))
}

func TestPlayRefusesBadDuration(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seq := New(NewManualClock(time.Time{}))
	req := lineRequest()
	req.Duration = 0
	_, err := seq.Play(req)
	assert.True(t, errors.Is(err, ErrInvalidDuration))
	assert.Equal(t, time.Duration(0), Seconds(-1))
	assert.Equal(t, 1500*time.Millisecond, Seconds(1.5))
}

func TestPlayRefusesBadEasing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seq := New(NewManualClock(time.Time{}))
	req := lineRequest()
	req.Easing[0] = easing.Spec{Family: easing.Custom}
	_, err := seq.Play(req)
	assert.True(t, errors.Is(err, ErrInvalidEasing))
	assert.True(t, errors.Is(err, easing.ErrInvalidSpline))
}

func TestStepProducesSamples(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := NewManualClock(time.Time{})
	seq := New(clock)
	var got []Sample
	remove := seq.AddListener(func(s Sample) { got = append(got, s) })
	defer remove()
	runs, err := seq.Play(lineRequest())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, Pending, runs[0].Status())

	seq.Step()
	assert.Equal(t, Running, runs[0].Status())
	clock.Advance(250 * time.Millisecond)
	seq.Step()
	clock.Advance(time.Second) // past the end
	seq.Step()
	assert.Equal(t, Finished, runs[0].Status())
	assert.False(t, seq.Busy())
	assert.Empty(t, seq.Step(), "finished runs are released")

	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got[0].Fraction)
	assert.Equal(t, motion.P(0, 0), got[0].Position)
	assert.InDelta(t, 0.25, got[1].Fraction, 1e-12)
	assert.True(t, got[1].Position.Equal(motion.P(25, 0)))
	assert.Equal(t, 1.0, got[2].Fraction)
	assert.True(t, got[2].Final)
	assert.Equal(t, motion.P(100, 0), got[2].Position)
}

func TestComparisonRunsIndependently(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := NewManualClock(time.Time{})
	seq := New(clock)
	req := lineRequest()
	req.Comparison = true
	runs, err := seq.Play(req)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, runs[0].Start(), runs[1].Start())
	assert.Equal(t, runs[0].Duration(), runs[1].Duration())
	assert.Equal(t, runs[0].Points(), runs[1].Points())

	clock.Advance(500 * time.Millisecond)
	samples := seq.Step()
	require.Len(t, samples, 2)
	assert.Equal(t, 0, samples[0].Object)
	assert.Equal(t, 1, samples[1].Object)
	assert.Equal(t, samples[0].Fraction, samples[1].Fraction)
	assert.InDelta(t, 0.5, samples[0].Eased, 1e-9)
	assert.InDelta(t, 0.25, samples[1].Eased, 1e-6, "in-quad at one half")
	assert.InDelta(t, 25.0, samples[1].Position.X(), 1e-4)

	// a cancelled second object does not stop the first
	seq.cancel(func(r *Run) bool { return r.object == 1 })
	clock.Advance(500 * time.Millisecond)
	samples = seq.Step()
	require.Len(t, samples, 1)
	assert.Equal(t, 0, samples[0].Object)
	assert.True(t, samples[0].Final)
}

func TestSnapshotAtStart(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := NewManualClock(time.Time{})
	seq := New(clock)
	req := lineRequest()
	runs, err := seq.Play(req)
	require.NoError(t, err)
	req.Points[1] = motion.P(500, 500)
	clock.Advance(time.Second)
	s := seq.Step()
	require.Len(t, s, 1)
	assert.Equal(t, motion.P(100, 0), s[0].Position)
	assert.Equal(t, motion.P(100, 0), runs[0].Points()[1])
}

func TestPolicies(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := NewManualClock(time.Time{})

	seq := New(clock)
	assert.Equal(t, Restart, seq.Policy())
	first, _ := seq.Play(lineRequest())
	second, err := seq.Play(lineRequest())
	require.NoError(t, err)
	assert.Equal(t, Canceled, first[0].Status())
	assert.Equal(t, second, seq.Active())

	seq = New(clock, WithPolicy(RejectIfRunning))
	_, err = seq.Play(lineRequest())
	require.NoError(t, err)
	_, err = seq.Play(lineRequest())
	assert.True(t, errors.Is(err, ErrBusy))
	assert.Len(t, seq.Active(), 1)

	seq = New(clock, WithPolicy(AllowOverlap))
	seq.Play(lineRequest())
	clock.Advance(500 * time.Millisecond)
	seq.Play(lineRequest())
	samples := seq.Step()
	require.Len(t, samples, 2)
	assert.InDelta(t, 0.5, samples[0].Fraction, 1e-12)
	assert.Equal(t, 0.0, samples[1].Fraction)
	assert.NotEqual(t, samples[0].Run, samples[1].Run)
}

func TestInvalidate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := NewManualClock(time.Time{})
	seq := New(clock)
	var got []Sample
	seq.AddListener(func(s Sample) { got = append(got, s) })
	req := lineRequest()
	req.Generation = 3
	runs, err := seq.Play(req)
	require.NoError(t, err)
	seq.Step()
	assert.Equal(t, 1, seq.Invalidate(4))
	assert.Equal(t, Canceled, runs[0].Status())
	clock.Advance(time.Second)
	seq.Step()
	assert.Len(t, got, 1, "no samples after invalidation")

	_, err = seq.Play(req)
	assert.True(t, errors.Is(err, ErrStaleRequest))
	req.Generation = 4
	_, err = seq.Play(req)
	assert.NoError(t, err)
	assert.Equal(t, 0, seq.Invalidate(4), "same generation keeps runs")
}

func TestSampleAtIsPure(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := NewManualClock(time.Time{})
	seq := New(clock)
	req := lineRequest()
	req.Easing[0] = easing.Of(easing.OutBack)
	runs, err := seq.Play(req)
	require.NoError(t, err)
	r := runs[0]
	s1 := r.SampleAt(Epoch.Add(800 * time.Millisecond))
	s2 := r.SampleAt(Epoch.Add(800 * time.Millisecond))
	assert.Equal(t, s1, s2)
	assert.Equal(t, Pending, r.Status())
	assert.Greater(t, s1.Eased, 1.0, "out-back overshoots near the end")
	assert.Greater(t, s1.Position.X(), 100.0, "overshoot extrapolates beyond the end point")
	assert.Equal(t, 0.0, r.Fraction(Epoch.Add(-time.Second)))
}

func TestSimulate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, fps := range []int{0, -5, 2_000_000_000} {
		_, err := Simulate(lineRequest(), fps)
		assert.True(t, errors.Is(err, ErrInvalidRate), "%d fps", fps)
	}
	short := lineRequest()
	short.Duration = 10 * time.Nanosecond
	samples, err := Simulate(short, 1_000_000_000)
	require.NoError(t, err, "one frame per nanosecond still advances")
	assert.Len(t, samples, 11)

	req := lineRequest()
	req.Comparison = true
	samples, err = Simulate(req, 10)
	require.NoError(t, err)
	assert.Len(t, samples, 22, "11 frames for each of two objects")
	last := map[int]Sample{}
	for _, s := range samples {
		if prev, ok := last[s.Object]; ok {
			assert.GreaterOrEqual(t, s.Fraction, prev.Fraction)
		}
		last[s.Object] = s
	}
	assert.True(t, last[0].Final)
	assert.True(t, last[1].Final)
	assert.Equal(t, motion.P(100, 0), last[1].Position)

	req.Type = motion.Bezier
	_, err = Simulate(req, 10)
	assert.True(t, errors.Is(err, ErrPathIncomplete))
}

func TestStatusNames(t *testing.T) {
	assert.Equal(t, "canceled", Canceled.String())
	assert.Equal(t, "Status(9)", Status(9).String())
	assert.Equal(t, "allow-overlap", AllowOverlap.String())
}

func TestSecondsSaturates(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, Seconds(1.5))
	assert.Equal(t, time.Duration(0), Seconds(-1))
	assert.Equal(t, MaxDuration, Seconds(1e10))
	assert.Equal(t, MaxDuration, Seconds(math.Inf(1)))
}

func TestListenersInRegistrationOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seq := New(NewManualClock(time.Time{}))
	var order []int
	for i := range 5 {
		seq.AddListener(func(Sample) { order = append(order, i) })
	}
	remove := seq.AddListener(func(Sample) { order = append(order, 99) })
	remove()
	_, err := seq.Play(lineRequest())
	require.NoError(t, err)
	seq.Step()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}
