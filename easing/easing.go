// Package easing maps linear animation progress to eased progress.
/*
An easing curve is a transfer function from progress in [0,1], the elapsed
fraction of an animation's duration, to eased progress, the fraction of the
way along a motion path. Every curve starts at 0 for progress 0; most end
at 1 for progress 1. Curves of overshooting families (Elastic, Back, and
designer splines) may leave [0,1] in between; these values are passed on
unclamped.

The Penner families are taken from package github.com/tanema/gween/ease.
Elastic and Back curves with non-default parameters, the wave curves and
the two spline families are computed here.

Usage

	spec := easing.Of(easing.OutBounce)
	eased := easing.Value(0.3, spec)

	knotted := easing.BezierSpec(easing.Segment{
	    C1: motion.P(0.42, 0), C2: motion.P(0.58, 1), End: motion.P(1, 1),
	})
	f := knotted.Curve()

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package easing

import (
	"errors"
	"math"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'easing'
func tracer() tracing.Trace {
	return tracing.Select("easing")
}

var (
	// ErrUnknownFamily indicates a family name not in the catalogue.
	ErrUnknownFamily = errors.New("unknown easing family")
	// ErrInvalidSpline indicates spline knots that do not advance in time.
	ErrInvalidSpline = errors.New("invalid easing spline")
)

// Default parameters of the Elastic and Back families.
const (
	DefaultAmplitude = 1.0
	DefaultPeriod    = 0.3
	DefaultOvershoot = 1.70158
)

// Spec selects an easing curve. A Spec is a value: it is replaced as a
// whole when another curve is picked, and callers must not modify the
// slices of a Spec after handing it out.
//
// Amplitude and Period apply to the Elastic families, Overshoot to the
// Back families; zero means the default. Segments parameterize
// BezierSpline, Knots parameterize TCBSpline, and Func is the transfer
// function of the Custom family.
type Spec struct {
	Family    Family
	Amplitude float64
	Period    float64
	Overshoot float64
	Segments  []Segment
	Knots     []Knot
	Func      func(float64) float64
}

// Of returns the spec of family f with default parameters.
func Of(f Family) Spec {
	return Spec{Family: f}
}

// CustomSpec wraps a designer-supplied transfer function.
func CustomSpec(fn func(float64) float64) Spec {
	return Spec{Family: Custom, Func: fn}
}

func (s Spec) String() string {
	return s.Family.String()
}

func (s Spec) amplitude() float64 {
	if s.Amplitude == 0 {
		return DefaultAmplitude
	}
	return s.Amplitude
}

func (s Spec) period() float64 {
	if s.Period == 0 {
		return DefaultPeriod
	}
	return s.Period
}

func (s Spec) overshoot() float64 {
	if s.Overshoot == 0 {
		return DefaultOvershoot
	}
	return s.Overshoot
}

// parametric is true if the spec deviates from the catalogue defaults.
func (s Spec) parametric() bool {
	return s.amplitude() != DefaultAmplitude || s.period() != DefaultPeriod ||
		s.overshoot() != DefaultOvershoot
}

// Value applies the easing curve of spec to progress, which is clamped to
// [0,1] first. Linear is the identity. Unknown families fall back to
// Linear.
func Value(progress float64, spec Spec) float64 {
	return spec.Curve()(progress)
}

// Curve returns the transfer function of s. Spline knots are converted
// once, so the returned function is cheap to call per animation tick.
func (s Spec) Curve() func(float64) float64 {
	var f func(float64) float64
	switch fam := s.Family; {
	case fam == Linear:
		f = identity
	case fam == BezierSpline:
		f = s.bezierCurve()
	case fam == TCBSpline:
		f = s.tcbCurve()
	case fam == Custom:
		f = s.Func
		if f == nil {
			f = identity
		}
	case fam >= InCurve && fam <= CosineCurve:
		f = waveCurves[fam-InCurve]
	case s.parametric() && (isElastic(fam) || isBack(fam)):
		f = parametricCurve(fam, s.amplitude(), s.period(), s.overshoot())
	default:
		f = penner(fam)
	}
	return func(progress float64) float64 {
		v := f(motion.Clamp01(progress))
		if math.IsNaN(v) {
			tracer().Errorf("easing %s produced NaN at %g", s.Family, progress)
			return 0
		}
		return v
	}
}

func identity(t float64) float64 {
	return t
}
