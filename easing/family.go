package easing

import (
	"fmt"
	"strings"
)

// Family identifies an easing transfer function.
//
// The order follows the usual easing-curve catalogue: Linear first, then
// the Penner families in In, Out, InOut, OutIn variants, then the
// non-parametric wave curves and the designer-driven splines.
type Family int

const (
	Linear Family = iota
	InQuad
	OutQuad
	InOutQuad
	OutInQuad
	InCubic
	OutCubic
	InOutCubic
	OutInCubic
	InQuart
	OutQuart
	InOutQuart
	OutInQuart
	InQuint
	OutQuint
	InOutQuint
	OutInQuint
	InSine
	OutSine
	InOutSine
	OutInSine
	InExpo
	OutExpo
	InOutExpo
	OutInExpo
	InCirc
	OutCirc
	InOutCirc
	OutInCirc
	InElastic
	OutElastic
	InOutElastic
	OutInElastic
	InBack
	OutBack
	InOutBack
	OutInBack
	InBounce
	OutBounce
	InOutBounce
	OutInBounce
	InCurve
	OutCurve
	SineCurve
	CosineCurve
	BezierSpline
	TCBSpline
	Custom
	familyCount
)

var familyNames = [...]string{
	"Linear",
	"InQuad", "OutQuad", "InOutQuad", "OutInQuad",
	"InCubic", "OutCubic", "InOutCubic", "OutInCubic",
	"InQuart", "OutQuart", "InOutQuart", "OutInQuart",
	"InQuint", "OutQuint", "InOutQuint", "OutInQuint",
	"InSine", "OutSine", "InOutSine", "OutInSine",
	"InExpo", "OutExpo", "InOutExpo", "OutInExpo",
	"InCirc", "OutCirc", "InOutCirc", "OutInCirc",
	"InElastic", "OutElastic", "InOutElastic", "OutInElastic",
	"InBack", "OutBack", "InOutBack", "OutInBack",
	"InBounce", "OutBounce", "InOutBounce", "OutInBounce",
	"InCurve", "OutCurve", "SineCurve", "CosineCurve",
	"BezierSpline", "TCBSpline", "Custom",
}

func (f Family) String() string {
	if f.Valid() {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Valid is a predicate: is f one of the enumerated families?
func (f Family) Valid() bool {
	return f >= Linear && f < familyCount
}

// Overshoots is a predicate: may the family leave [0,1] for progress in [0,1]?
func (f Family) Overshoots() bool {
	switch f {
	case InElastic, OutElastic, InOutElastic, OutInElastic,
		InBack, OutBack, InOutBack, OutInBack,
		BezierSpline, TCBSpline, Custom:
		return true
	}
	return false
}

// Periodic is a predicate: does the family end where it started?
// SineCurve returns to 0 and CosineCurve starts and ends at 0.5.
func (f Family) Periodic() bool {
	return f == SineCurve || f == CosineCurve
}

// ParseFamily finds a family by name, ignoring case.
func ParseFamily(name string) (Family, error) {
	for i, n := range familyNames {
		if strings.EqualFold(n, name) {
			return Family(i), nil
		}
	}
	return Linear, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

// Families lists every family, in catalogue order.
func Families() []Family {
	fs := make([]Family, familyCount)
	for i := range fs {
		fs[i] = Family(i)
	}
	return fs
}

// Catalogue lists the families usable without designer input, i.e. all
// families except Custom. Spline families use their default knots.
func Catalogue() []Family {
	fs := Families()
	return fs[:Custom]
}
