package tween

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(p float64) float64

var ErrUnknownEase = errors.New("tween: unknown ease")

// DefaultEase is used when Vars.Ease is empty.
const DefaultEase = "power1.out"

func Linear(p float64) float64 { return p }

// ParseEase understands names of the form "family.type(params)", for example
// "power2.out", "sine.inOut" or "elastic.out(1, 0.5)". A missing type means "out".
func ParseEase(name string) (Ease, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		s = DefaultEase
	}

	var params []float64
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
		}
		for _, raw := range strings.Split(s[open+1:len(s)-1], ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: bad parameter %q", ErrUnknownEase, name, raw)
			}
			params = append(params, v)
		}
		s = s[:open]
	}

	family, kind, _ := strings.Cut(strings.ToLower(s), ".")
	switch kind {
	case "":
		kind = "out"
	case "in", "out", "inout":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}

	param := func(i int, def float64) float64 {
		if i < len(params) {
			return params[i]
		}
		return def
	}

	switch family {
	case "none", "linear", "power0":
		return Linear, nil
	case "power1", "quad":
		return fromIn(powerIn(2), kind), nil
	case "power2", "cubic":
		return fromIn(powerIn(3), kind), nil
	case "power3", "quart":
		return fromIn(powerIn(4), kind), nil
	case "power4", "quint", "strong":
		return fromIn(powerIn(5), kind), nil
	case "sine":
		if kind == "inout" {
			return func(p float64) float64 { return -(math.Cos(math.Pi*p) - 1) / 2 }, nil
		}
		return fromIn(func(p float64) float64 { return 1 - math.Cos(p*math.Pi/2) }, kind), nil
	case "expo":
		return fromIn(func(p float64) float64 {
			if p == 0 {
				return 0
			}
			return math.Pow(2, 10*(p-1))
		}, kind), nil
	case "circ":
		return fromIn(func(p float64) float64 { return -(math.Sqrt(1-p*p) - 1) }, kind), nil
	case "back":
		s := param(0, 1.70158)
		return fromIn(func(p float64) float64 { return p * p * ((s+1)*p - s) }, kind), nil
	case "bounce":
		return fromOut(bounceOut, kind), nil
	case "elastic":
		return fromOut(elasticOut(param(0, 1), param(1, 0.3)), kind), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
}

func powerIn(exp float64) Ease {
	return func(p float64) float64 { return math.Pow(p, exp) }
}

func fromIn(in Ease, kind string) Ease {
	switch kind {
	case "in":
		return in
	case "inout":
		return func(p float64) float64 {
			if p < 0.5 {
				return in(p*2) / 2
			}
			return 1 - in((1-p)*2)/2
		}
	}
	return func(p float64) float64 { return 1 - in(1-p) }
}

func fromOut(out Ease, kind string) Ease {
	switch kind {
	case "in":
		return func(p float64) float64 { return 1 - out(1-p) }
	case "inout":
		return func(p float64) float64 {
			if p < 0.5 {
				return (1 - out(1-p*2)) / 2
			}
			return 0.5 + out((p-0.5)*2)/2
		}
	}
	return out
}

func elasticOut(amplitude, period float64) Ease {
	p1 := math.Max(amplitude, 1)
	p2 := period / math.Min(amplitude, 1)
	if amplitude <= 0 {
		p2 = period
	}
	p3 := p2 / (2 * math.Pi) * math.Asin(1/p1)
	freq := 2 * math.Pi / p2
	return func(p float64) float64 {
		if p >= 1 {
			return 1
		}
		return p1*math.Pow(2, -10*p)*math.Sin((p-p3)*freq) + 1
	}
}

func bounceOut(p float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case p < 1/d1:
		return n1 * p * p
	case p < 2/d1:
		p -= 1.5 / d1
		return n1*p*p + 0.75
	case p < 2.5/d1:
		p -= 2.25 / d1
		return n1*p*p + 0.9375
	}
	p -= 2.625 / d1
	return n1*p*p + 0.984375
}
