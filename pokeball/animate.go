package pokeball

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/prefabs"
	"github.com/milk9111/pokeball/scene"
	"github.com/milk9111/pokeball/tween"
)

// PlayIntro grows the ball in from a small scale while it turns to face front.
// Without an animator the ball is left at rest.
func PlayIntro(anim tween.Animator, ball *scene.Node, intro prefabs.IntroSpec) []*tween.Tween {
	if anim == nil || ball == nil {
		return nil
	}
	from := intro.ScaleFrom
	if from <= 0 {
		from = 0.1
	}
	ball.Scale = mgl64.Vec3{from, from, from}
	ball.Rotation[1] = mgl64.DegToRad(intro.YawFromDeg)

	return []*tween.Tween{
		anim.To(tween.Vec3(&ball.Scale, mgl64.Vec3{1, 1, 1}), tween.Vars{
			Duration: intro.ScaleDuration,
			Ease:     intro.ScaleEase,
		}),
		anim.To([]tween.Track{{Target: &ball.Rotation[1], To: 0}}, tween.Vars{
			Duration: intro.YawDuration,
			Ease:     intro.YawEase,
		}),
	}
}

// StartPulse loops the button scale and glow forever.
func StartPulse(anim tween.Animator, ball *scene.Node, pulse prefabs.PulseSpec) []*tween.Tween {
	if anim == nil || ball == nil {
		return nil
	}

	var tracks []tween.Track
	for _, name := range pulse.Targets {
		if n := ball.FindByName(name); n != nil {
			tracks = append(tracks, tween.Vec3(&n.Scale, mgl64.Vec3{pulse.Scale, pulse.Scale, pulse.Scale})...)
		}
	}

	var out []*tween.Tween
	if len(tracks) > 0 {
		out = append(out, anim.To(tracks, tween.Vars{
			Duration: pulse.Duration,
			Ease:     pulse.Ease,
			Repeat:   -1,
			Yoyo:     true,
		}))
	}

	if n := ball.FindByName(pulse.EmissiveTarget); n != nil && n.Material != nil {
		out = append(out, anim.To([]tween.Track{{Target: &n.Material.EmissiveIntensity, To: pulse.EmissiveIntensity}}, tween.Vars{
			Duration: pulse.EmissiveDuration,
			Ease:     pulse.EmissiveEase,
			Repeat:   -1,
			Yoyo:     true,
		}))
	}
	return out
}
