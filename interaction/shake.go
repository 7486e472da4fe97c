package interaction

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/common"
	"github.com/milk9111/pokeball/tween"
	"go.uber.org/zap"
)

// ShakeSession is one tap-triggered shake. It lives from StartShake until its
// settle tween resolves.
type ShakeSession struct {
	StartTime        float64
	Params           ShakeParams
	OriginalRotation mgl64.Vec3

	settle *tween.Tween
}

func (s *ShakeSession) Progress(now float64) float64 {
	if s.Params.Duration <= 0 {
		return 1
	}
	return common.Clamp((now-s.StartTime)/s.Params.Duration, 0, 1)
}

// Settling reports whether the oscillation is over and the reset tween is
// running.
func (s *ShakeSession) Settling() bool {
	return s.settle != nil
}

// ShakeAmount is the signed offset at progress p. It decays to zero as p
// approaches 1 and is zero from there on.
func ShakeAmount(p float64, params ShakeParams) float64 {
	if p < 0 || p >= 1 {
		return 0
	}
	decay := common.EaseOutQuad(1 - p)
	return math.Sin(p*math.Pi*2*params.Oscillations) * params.Intensity * decay
}

// StartShake begins a shake unless one is already running. It reports whether
// a new session started.
func (c *Context) StartShake() bool {
	if c.closed || c.shaking || c.object == nil {
		return false
	}

	c.hoverTween.Kill()
	c.hoverTween = nil
	for _, tw := range c.releaseTweens {
		tw.Kill()
	}
	c.releaseTweens = nil
	obj := c.object
	live := c.external[:0]
	for _, tw := range c.external {
		tw.Release(&obj.Rotation[0], &obj.Rotation[2], &obj.Scale[0], &obj.Scale[1], &obj.Scale[2])
		if tw.Active() {
			live = append(live, tw)
		}
	}
	c.external = live

	s := &ShakeSession{
		StartTime:        c.clock.Elapsed(),
		Params:           c.cfg.Shake,
		OriginalRotation: obj.Rotation,
	}
	c.shaking = true
	c.session = s
	c.scheduler.RequestFrame(func(now float64) { c.stepShake(s, now) })
	c.log.Debug("interaction: shake start", zap.Float64("t", s.StartTime))
	return true
}

func (c *Context) stepShake(s *ShakeSession, now float64) {
	if c.session != s {
		return
	}
	next := func() {
		c.scheduler.RequestFrame(func(now float64) { c.stepShake(s, now) })
	}

	if s.settle != nil {
		select {
		case <-s.settle.Done():
			c.endShake(s)
		default:
			next()
		}
		return
	}

	obj := c.object
	p := s.Progress(now)
	if p < 1 {
		amount := ShakeAmount(p, s.Params)
		obj.Rotation[0] = s.OriginalRotation[0] + amount*s.Params.PitchFactor
		obj.Rotation[2] = s.OriginalRotation[2] + amount
		k := 1 + math.Abs(amount)*s.Params.ScalePulse
		obj.Scale = mgl64.Vec3{k, k, k}
		next()
		return
	}

	if c.tweens == nil {
		obj.Rotation[0] = s.OriginalRotation[0]
		obj.Rotation[2] = s.OriginalRotation[2]
		obj.Scale = mgl64.Vec3{1, 1, 1}
		c.endShake(s)
		return
	}

	tracks := []tween.Track{
		{Target: &obj.Rotation[0], To: s.OriginalRotation[0]},
		{Target: &obj.Rotation[2], To: s.OriginalRotation[2]},
	}
	tracks = append(tracks, tween.Vec3(&obj.Scale, mgl64.Vec3{1, 1, 1})...)
	s.settle = c.tweens.To(tracks, tween.Vars{
		Duration: s.Params.SettleDuration,
		Ease:     s.Params.SettleEase,
	})
	c.log.Debug("interaction: shake settling", zap.Float64("t", now))
	next()
}

func (c *Context) endShake(s *ShakeSession) {
	if c.session != s {
		return
	}
	c.session = nil
	c.shaking = false
	c.log.Debug("interaction: shake done", zap.Float64("t", c.clock.Elapsed()))
}
