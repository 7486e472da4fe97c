package interaction

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/prefabs"
)

// ShakeParams shapes the tap-triggered shake and the tween that settles it.
type ShakeParams struct {
	Duration     float64
	Intensity    float64
	Oscillations float64
	// PitchFactor scales the shake amount applied to X rotation. Z takes the
	// full amount.
	PitchFactor float64
	ScalePulse  float64

	SettleDuration float64
	SettleEase     string
}

// Config holds the tunables of the pointer state machine. Angles are radians,
// times are seconds.
type Config struct {
	Target string

	DragSpeed       float64
	DragYawFactor   float64
	DragPitchFactor float64
	PitchLimit      float64
	DragDamping     float64
	AutoSpin        float64

	TapThreshold  float64
	ControlsDelay float64

	HoverScale    float64
	HoverDuration float64
	HoverEase     string

	SettleStep           float64
	SettleDuration       float64
	SettleEase           string
	ReleaseScaleDuration float64
	ReleaseScaleEase     string

	Shake ShakeParams
}

func DefaultConfig() Config {
	return Config{
		Target:          "Pokeball",
		DragSpeed:       0.01,
		DragYawFactor:   10,
		DragPitchFactor: 5,
		PitchLimit:      math.Pi / 4,
		DragDamping:     0.1,
		AutoSpin:        0.002,

		TapThreshold:  0.2,
		ControlsDelay: 0.1,

		HoverScale:    1.05,
		HoverDuration: 0.3,
		HoverEase:     "power2.out",

		SettleStep:           math.Pi / 8,
		SettleDuration:       0.5,
		SettleEase:           "elastic.out(1, 0.5)",
		ReleaseScaleDuration: 0.3,
		ReleaseScaleEase:     "power2.out",

		Shake: ShakeParams{
			Duration:       1.2,
			Intensity:      0.15,
			Oscillations:   7,
			PitchFactor:    0.3,
			ScalePulse:     0.1,
			SettleDuration: 0.3,
			SettleEase:     "power2.out",
		},
	}
}

// ConfigFromSpec overlays the fields set in spec on DefaultConfig.
func ConfigFromSpec(spec prefabs.InteractionSpec) Config {
	cfg := DefaultConfig()
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	num := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	deg := func(dst *float64, v float64) {
		if v != 0 {
			*dst = mgl64.DegToRad(v)
		}
	}

	str(&cfg.Target, spec.Target)
	num(&cfg.DragSpeed, spec.DragSpeed)
	num(&cfg.DragYawFactor, spec.DragYawFactor)
	num(&cfg.DragPitchFactor, spec.DragPitchFactor)
	deg(&cfg.PitchLimit, spec.PitchLimitDeg)
	num(&cfg.DragDamping, spec.DragDamping)
	num(&cfg.AutoSpin, spec.AutoSpin)
	num(&cfg.TapThreshold, spec.TapThreshold)
	num(&cfg.ControlsDelay, spec.ControlsDelay)

	num(&cfg.HoverScale, spec.Hover.Scale)
	num(&cfg.HoverDuration, spec.Hover.Duration)
	str(&cfg.HoverEase, spec.Hover.Ease)

	deg(&cfg.SettleStep, spec.Settle.StepDeg)
	num(&cfg.SettleDuration, spec.Settle.Duration)
	str(&cfg.SettleEase, spec.Settle.Ease)
	num(&cfg.ReleaseScaleDuration, spec.Settle.ScaleDuration)
	str(&cfg.ReleaseScaleEase, spec.Settle.ScaleEase)

	num(&cfg.Shake.Duration, spec.Shake.Duration)
	num(&cfg.Shake.Intensity, spec.Shake.Intensity)
	num(&cfg.Shake.Oscillations, spec.Shake.Oscillations)
	num(&cfg.Shake.PitchFactor, spec.Shake.PitchFactor)
	num(&cfg.Shake.ScalePulse, spec.Shake.ScalePulse)
	num(&cfg.Shake.SettleDuration, spec.Shake.SettleDuration)
	str(&cfg.Shake.SettleEase, spec.Shake.SettleEase)
	return cfg
}
