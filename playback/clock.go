package playback

import (
	"sync"
	"time"
)

// Clock provides time for playback runs. Hosts drive runs by calling
// Sequencer.Step from their frame callback; the clock only tells the
// sequencer how far each run has progressed.
type Clock interface {
	Now() time.Time
}

// SystemClock uses system time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a clock that only moves when told to. It is used for
// headless simulation and for deterministic tests. It is safe for use from
// more than one goroutine, though a sequencer itself is not.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// Epoch is the start time of a ManualClock created with a zero time.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewManualClock returns a clock standing at start. A zero start selects
// Epoch.
func NewManualClock(start time.Time) *ManualClock {
	if start.IsZero() {
		start = Epoch
	}
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Negative durations are ignored,
// the clock never runs backwards through Advance.
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
