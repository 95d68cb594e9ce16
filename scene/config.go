// Package scene holds the animation settings and reads and writes scene
// files.
/*
A Config is what a host's configuration controls edit: duration, path type,
easing per motion object, comparison mode, the selected object and the
surface image references. It is read at play time and turned into a
playback request together with a snapshot of the path.

A File is the YAML form of a complete scene, including the control points,
so a demo can be replayed headless or shared.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package scene

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/motion/easing"
	"github.com/npillmayer/motion/playback"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'scene'
func tracer() tracing.Trace {
	return tracing.Select("scene")
}

// Objects is the number of motion objects a scene can carry.
const Objects = 2

// Errors for invalid settings.
var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrObjectIndex     = errors.New("motion object index out of range")
	ErrInvalidScene    = errors.New("invalid scene")
)

// DefaultEasing is the easing both objects start with.
const DefaultEasing = easing.InOutCirc

// Config is the animation configuration.
type Config struct {
	Duration   time.Duration
	PathType   motion.PathType
	Easing     [Objects]easing.Spec
	Comparison bool
	Selected   int             // object receiving SetEasing
	Surfaces   [Objects]string // surface image reference per object, stored only
}

// Default returns a one second line animation, both objects easing in-out
// circular, comparison mode off.
func Default() Config {
	return Config{
		Duration: time.Second,
		PathType: motion.Line,
		Easing:   [Objects]easing.Spec{easing.Of(DefaultEasing), easing.Of(DefaultEasing)},
	}
}

// Seconds returns the duration in seconds.
func (c Config) Seconds() float64 {
	return c.Duration.Seconds()
}

// SetDuration sets the duration from seconds. Zero, negative and
// non-finite values are refused and leave the config unchanged.
func (c *Config) SetDuration(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return fmt.Errorf("%w: %g s", ErrInvalidDuration, seconds)
	}
	if seconds >= playback.MaxDuration.Seconds() {
		return fmt.Errorf("%w: %g s out of range", ErrInvalidDuration, seconds)
	}
	d := playback.Seconds(seconds)
	if d <= 0 {
		return fmt.Errorf("%w: %g s rounds to zero", ErrInvalidDuration, seconds)
	}
	c.Duration = d
	tracer().Debugf("duration = %v", d)
	return nil
}

// SetEasing sets the easing of the selected object.
func (c *Config) SetEasing(spec easing.Spec) {
	c.Easing[c.selected()] = spec
	tracer().Debugf("object %d easing = %s", c.selected(), spec)
}

// SetEasingFor sets the easing of object i.
func (c *Config) SetEasingFor(i int, spec easing.Spec) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	c.Easing[i] = spec
	tracer().Debugf("object %d easing = %s", i, spec)
	return nil
}

// Select makes object i the target of SetEasing.
func (c *Config) Select(i int) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	c.Selected = i
	return nil
}

// SetComparison switches the second motion object on or off.
func (c *Config) SetComparison(on bool) {
	c.Comparison = on
}

// SetSurface stores the surface image reference of object i. An empty
// reference selects the host's default look.
func (c *Config) SetSurface(i int, ref string) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	c.Surfaces[i] = ref
	return nil
}

// Request combines the config with a path snapshot into a play request.
func (c Config) Request(points []motion.Pair, generation uint64) playback.Request {
	return playback.Request{
		Type:       c.PathType,
		Points:     append([]motion.Pair(nil), points...),
		Duration:   c.Duration,
		Easing:     c.Easing,
		Comparison: c.Comparison,
		Generation: generation,
	}
}

func (c Config) selected() int {
	if c.Selected < 0 || c.Selected >= Objects {
		return 0
	}
	return c.Selected
}

func checkIndex(i int) error {
	if i < 0 || i >= Objects {
		return fmt.Errorf("%w: %d", ErrObjectIndex, i)
	}
	return nil
}
