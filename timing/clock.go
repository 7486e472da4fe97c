package timing

import "time"

// Clock reports seconds elapsed since it started.
type Clock interface {
	Elapsed() float64
}

type RealClock struct {
	start time.Time
	now   func() time.Time
}

func NewClock() *RealClock {
	return &RealClock{start: time.Now(), now: time.Now}
}

func (c *RealClock) Elapsed() float64 {
	if c == nil {
		return 0
	}
	return c.now().Sub(c.start).Seconds()
}

// ManualClock only moves when told to. Used by tests and headless stepping.
type ManualClock struct {
	t float64
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Elapsed() float64 {
	return c.t
}

func (c *ManualClock) Advance(dt float64) {
	if dt > 0 {
		c.t += dt
	}
}

func (c *ManualClock) Set(t float64) {
	c.t = t
}
