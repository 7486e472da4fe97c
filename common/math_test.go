package common

import (
	"math"
	"testing"
)

func TestRoundToStep(t *testing.T) {
	step := math.Pi / 8
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"below_half", step * 0.4, 0},
		{"above_half", step * 0.6, step},
		{"negative", -step * 1.7, -2 * step},
		{"exact", 3 * step, 3 * step},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := RoundToStep(c.in, step); math.Abs(got-c.want) > 1e-12 {
				t.Fatalf("RoundToStep(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
	if got := RoundToStep(1.3, 0); got != 1.3 {
		t.Fatalf("zero step should be identity, got %v", got)
	}
}

func TestClampAndEase(t *testing.T) {
	if Clamp(2, -1, 1) != 1 || Clamp(-2, -1, 1) != -1 || Clamp(0.5, -1, 1) != 0.5 {
		t.Fatalf("clamp out of range")
	}
	if EaseOutQuad(0) != 0 || EaseOutQuad(1) != 1 || EaseOutQuad(0.5) != 0.75 {
		t.Fatalf("unexpected easeOutQuad values")
	}
	if Lerp(2, 4, 0.5) != 3 {
		t.Fatalf("unexpected lerp")
	}
}
