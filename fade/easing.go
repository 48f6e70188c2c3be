package fade

import (
	"fmt"
	"math"
	"sort"
)

// Easing maps progress in [0,1] to eased progress in [0,1], with f(0)=0 and f(1)=1
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func QuadraticIn(t float64) float64 { return t * t }

func QuadraticOut(t float64) float64 { return -(t * (t - 2)) }

func QuadraticInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -2*t*t + 4*t - 1
}

func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := 2*t - 2
	return 0.5*p*p*p + 1
}

func SineInOut(t float64) float64 {
	return 0.5 * (1 - math.Cos(t*math.Pi))
}

func ExponentialInOut(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	if t < 0.5 {
		return 0.5 * math.Pow(2, 20*t-10)
	}
	return -0.5*math.Pow(2, -20*t+10) + 1
}

var easings = map[string]Easing{
	"linear":             Linear,
	"quadratic_in":       QuadraticIn,
	"quadratic_out":      QuadraticOut,
	"quadratic_in_out":   QuadraticInOut,
	"cubic_in_out":       CubicInOut,
	"sine_in_out":        SineInOut,
	"exponential_in_out": ExponentialInOut,
}

// EasingByName looks up a configured easing. Empty selects linear.
func EasingByName(name string) (Easing, error) {
	if name == "" {
		return Linear, nil
	}
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (have %v)", name, EasingNames())
	}
	return e, nil
}

// EasingNames lists the accepted names, sorted
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for k := range easings {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
