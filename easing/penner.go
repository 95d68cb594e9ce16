package easing

import (
	"math"

	"github.com/npillmayer/motion"
	"github.com/tanema/gween/ease"
)

// Penner tween functions by family. Slots of non-Penner families are nil.
var tweens = [familyCount]ease.TweenFunc{
	Linear:       ease.Linear,
	InQuad:       ease.InQuad,
	OutQuad:      ease.OutQuad,
	InOutQuad:    ease.InOutQuad,
	OutInQuad:    ease.OutInQuad,
	InCubic:      ease.InCubic,
	OutCubic:     ease.OutCubic,
	InOutCubic:   ease.InOutCubic,
	OutInCubic:   ease.OutInCubic,
	InQuart:      ease.InQuart,
	OutQuart:     ease.OutQuart,
	InOutQuart:   ease.InOutQuart,
	OutInQuart:   ease.OutInQuart,
	InQuint:      ease.InQuint,
	OutQuint:     ease.OutQuint,
	InOutQuint:   ease.InOutQuint,
	OutInQuint:   ease.OutInQuint,
	InSine:       ease.InSine,
	OutSine:      ease.OutSine,
	InOutSine:    ease.InOutSine,
	OutInSine:    ease.OutInSine,
	InExpo:       ease.InExpo,
	OutExpo:      ease.OutExpo,
	InOutExpo:    ease.InOutExpo,
	OutInExpo:    ease.OutInExpo,
	InCirc:       ease.InCirc,
	OutCirc:      ease.OutCirc,
	InOutCirc:    ease.InOutCirc,
	OutInCirc:    ease.OutInCirc,
	InElastic:    ease.InElastic,
	OutElastic:   ease.OutElastic,
	InOutElastic: ease.InOutElastic,
	OutInElastic: ease.OutInElastic,
	InBack:       ease.InBack,
	OutBack:      ease.OutBack,
	InOutBack:    ease.InOutBack,
	OutInBack:    ease.OutInBack,
	InBounce:     ease.InBounce,
	OutBounce:    ease.OutBounce,
	InOutBounce:  ease.InOutBounce,
	OutInBounce:  ease.OutInBounce,
}

// penner adapts a tween function (time, begin, change, duration) to the
// unit interval. Unknown families ease linearly.
func penner(f Family) func(float64) float64 {
	var fn ease.TweenFunc
	if f.Valid() {
		fn = tweens[f]
	}
	if fn == nil {
		tracer().Errorf("no tween function for easing family %s, using linear", f)
		return identity
	}
	return func(t float64) float64 {
		switch t {
		case 0:
			return 0
		case 1:
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

func isElastic(f Family) bool {
	return f >= InElastic && f <= OutInElastic
}

func isBack(f Family) bool {
	return f >= InBack && f <= OutInBack
}

// parametricCurve builds Elastic and Back curves with explicit amplitude,
// period and overshoot.
func parametricCurve(f Family, a, p, s float64) func(float64) float64 {
	switch f {
	case InElastic:
		return func(t float64) float64 { return inElastic(t, a, p) }
	case OutElastic:
		return func(t float64) float64 { return outElastic(t, a, p) }
	case InOutElastic:
		return func(t float64) float64 { return inOutElastic(t, a, p) }
	case OutInElastic:
		return outIn(
			func(t float64) float64 { return outElastic(t, a, p) },
			func(t float64) float64 { return inElastic(t, a, p) })
	case InBack:
		return func(t float64) float64 { return inBack(t, s) }
	case OutBack:
		return func(t float64) float64 { return outBack(t, s) }
	case InOutBack:
		return func(t float64) float64 { return inOutBack(t, s) }
	case OutInBack:
		return outIn(
			func(t float64) float64 { return outBack(t, s) },
			func(t float64) float64 { return inBack(t, s) })
	}
	return penner(f)
}

// outIn runs out over the first half and in over the second half.
func outIn(out, in func(float64) float64) func(float64) float64 {
	return func(t float64) float64 {
		if t < 0.5 {
			return out(2*t) / 2
		}
		return in(2*t-1)/2 + 0.5
	}
}

// elasticPhase returns the effective amplitude and the phase shift.
// Amplitudes below 1 cannot reach the end value and are raised to 1.
func elasticPhase(a, p float64) (float64, float64) {
	if a < 1 {
		return 1, p / 4
	}
	return a, p / (2 * math.Pi) * math.Asin(1/a)
}

func inElastic(t, a, p float64) float64 {
	if motion.Is0(t) || motion.Is1(t) {
		return t
	}
	a, s := elasticPhase(a, p)
	t -= 1
	return -(a * math.Pow(2, 10*t) * math.Sin((t-s)*2*math.Pi/p))
}

func outElastic(t, a, p float64) float64 {
	if motion.Is0(t) || motion.Is1(t) {
		return t
	}
	a, s := elasticPhase(a, p)
	return a*math.Pow(2, -10*t)*math.Sin((t-s)*2*math.Pi/p) + 1
}

func inOutElastic(t, a, p float64) float64 {
	if motion.Is0(t) || motion.Is1(t) {
		return t
	}
	a, s := elasticPhase(a, p)
	t = t*2 - 1
	if t < 0 {
		return -0.5 * a * math.Pow(2, 10*t) * math.Sin((t-s)*2*math.Pi/p)
	}
	return a*math.Pow(2, -10*t)*math.Sin((t-s)*2*math.Pi/p)*0.5 + 1
}

func inBack(t, s float64) float64 {
	return t * t * ((s+1)*t - s)
}

func outBack(t, s float64) float64 {
	t -= 1
	return t*t*((s+1)*t+s) + 1
}

func inOutBack(t, s float64) float64 {
	s *= 1.525
	t *= 2
	if t < 1 {
		return 0.5 * (t * t * ((s+1)*t - s))
	}
	t -= 2
	return 0.5 * (t*t*((s+1)*t+s) + 2)
}

// Wave curves, indexed from InCurve.
var waveCurves = [...]func(float64) float64{
	inCurve, outCurve, sineCurve, cosineCurve,
}

func sinProgress(t float64) float64 {
	return math.Sin(t*math.Pi-math.Pi/2)/2 + 0.5
}

func smoothBeginEndMix(t float64) float64 {
	return math.Min(math.Max(1-t*2+0.3, 0), 1)
}

// inCurve starts with a sine-shaped acceleration blending into linear.
func inCurve(t float64) float64 {
	mix := smoothBeginEndMix(t)
	return sinProgress(t)*mix + t*(1-mix)
}

// outCurve is linear at first, blending into a sine-shaped deceleration.
func outCurve(t float64) float64 {
	mix := smoothBeginEndMix(1 - t)
	return sinProgress(t)*mix + t*(1-mix)
}

func sineCurve(t float64) float64 {
	return (math.Sin(t*2*math.Pi-math.Pi/2) + 1) / 2
}

func cosineCurve(t float64) float64 {
	return (math.Cos(t*2*math.Pi-math.Pi/2) + 1) / 2
}
