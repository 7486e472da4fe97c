package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// RoundToStep snaps v to the nearest multiple of step.
func RoundToStep(v, step float64) float64 {
	if step == 0 {
		return v
	}
	return math.Round(v/step) * step
}

func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}
