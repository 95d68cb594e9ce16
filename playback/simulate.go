package playback

import (
	"fmt"
	"time"
)

// Simulate plays req to completion on a manual clock stepped at fps frames
// per second and returns every sample in emission order. The first step
// happens at the start time, so every run yields a sample at fraction 0
// and one at fraction 1. Rates above one frame per nanosecond are refused.
func Simulate(req Request, fps int) ([]Sample, error) {
	frame := time.Duration(0)
	if fps > 0 {
		frame = time.Second / time.Duration(fps)
	}
	if frame <= 0 {
		return nil, fmt.Errorf("%w: %d fps", ErrInvalidRate, fps)
	}
	clock := NewManualClock(time.Time{})
	seq := New(clock)
	if _, err := seq.Play(req); err != nil {
		return nil, err
	}
	var samples []Sample
	for {
		samples = append(samples, seq.Step()...)
		if !seq.Busy() {
			break
		}
		clock.Advance(frame)
	}
	tracer().Debugf("simulated %d samples at %d fps", len(samples), fps)
	return samples, nil
}
