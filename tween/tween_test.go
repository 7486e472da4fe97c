package tween

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/timing"
	"github.com/stretchr/testify/require"
)

func TestParseEaseEndpoints(t *testing.T) {
	names := []string{
		"", "none", "linear", "power1.out", "power2.out", "power2.in", "power3.inOut",
		"sine.inOut", "sine.in", "sine.out", "expo.out", "circ.inOut",
		"back.out(1.7)", "bounce.out", "elastic.out(1, 0.5)", "elastic.inOut", "quad",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			fn, err := ParseEase(name)
			require.NoError(t, err)
			require.InDelta(t, 0, fn(0), 1e-9)
			require.InDelta(t, 1, fn(1), 1e-9)
		})
	}
}

func TestParseEaseUnknown(t *testing.T) {
	for _, name := range []string{"wiggle.out", "power2.sideways", "elastic.out(1, x)", "back.out(1"} {
		_, err := ParseEase(name)
		require.True(t, errors.Is(err, ErrUnknownEase), "name %q: %v", name, err)
	}
}

func TestPower2OutIsCubic(t *testing.T) {
	fn, err := ParseEase("power2.out")
	require.NoError(t, err)
	require.InDelta(t, 1-math.Pow(0.5, 3), fn(0.5), 1e-12)
}

func TestElasticOvershoots(t *testing.T) {
	fn, err := ParseEase("elastic.out(1, 0.5)")
	require.NoError(t, err)
	peak := 0.0
	for i := 0; i <= 100; i++ {
		peak = math.Max(peak, fn(float64(i)/100))
	}
	require.Greater(t, peak, 1.0)
}

func TestEngineTo(t *testing.T) {
	clock := timing.NewManualClock()
	e := NewEngine(clock)

	v := 0.0
	completed := 0
	tw := e.To([]Track{{Target: &v, To: 10}}, Vars{Duration: 1, Ease: "linear", OnComplete: func() { completed++ }})

	clock.Advance(0.25)
	e.Update()
	require.InDelta(t, 2.5, v, 1e-9)
	require.True(t, tw.Active())

	clock.Advance(1)
	e.Update()
	require.Equal(t, 10.0, v)
	require.Equal(t, 1, completed)
	require.True(t, tw.Completed())
	select {
	case <-tw.Done():
	default:
		t.Fatal("done channel should be closed after completion")
	}
	require.Zero(t, e.Active())
}

func TestEngineOverwriteKillsEmptiedTween(t *testing.T) {
	clock := timing.NewManualClock()
	e := NewEngine(clock)

	scale := mgl64.Vec3{1, 1, 1}
	first := e.To(Vec3(&scale, mgl64.Vec3{2, 2, 2}), Vars{Duration: 1, OnComplete: func() { t.Fatal("overwritten tween completed") }})
	clock.Advance(0.1)
	e.Update()

	second := e.To(Vec3(&scale, mgl64.Vec3{1, 1, 1}), Vars{Duration: 0.3})
	require.False(t, first.Active())
	require.False(t, first.Completed())
	<-first.Done()

	clock.Advance(1)
	e.Update()
	require.True(t, second.Completed())
	require.Equal(t, mgl64.Vec3{1, 1, 1}, scale)
}

func TestEngineOverwriteKeepsOtherTracks(t *testing.T) {
	clock := timing.NewManualClock()
	e := NewEngine(clock)

	a, b := 0.0, 0.0
	first := e.To([]Track{{Target: &a, To: 1}, {Target: &b, To: 1}}, Vars{Duration: 1, Ease: "linear"})
	e.To([]Track{{Target: &a, To: -1}}, Vars{Duration: 1, Ease: "linear"})
	require.True(t, first.Active())

	clock.Advance(1)
	e.Update()
	require.Equal(t, -1.0, a)
	require.Equal(t, 1.0, b)
}

func TestEngineYoyoRepeatForever(t *testing.T) {
	clock := timing.NewManualClock()
	e := NewEngine(clock)

	v := 1.0
	tw := e.To([]Track{{Target: &v, To: 2}}, Vars{Duration: 1, Ease: "linear", Repeat: -1, Yoyo: true})

	clock.Set(0.5)
	e.Update()
	require.InDelta(t, 1.5, v, 1e-9)

	clock.Set(1.25)
	e.Update()
	require.InDelta(t, 1.75, v, 1e-9, "second cycle runs backwards")

	clock.Set(100.5)
	e.Update()
	require.InDelta(t, 1.5, v, 1e-9)
	require.True(t, tw.Active())

	e.KillAll()
	require.False(t, tw.Active())
	require.Zero(t, e.Active())
}

func TestEngineFiniteYoyoEndsAtStart(t *testing.T) {
	clock := timing.NewManualClock()
	e := NewEngine(clock)

	v := 0.0
	tw := e.To([]Track{{Target: &v, To: 5}}, Vars{Duration: 0.5, Ease: "linear", Repeat: 1, Yoyo: true})
	clock.Set(2)
	e.Update()
	require.Equal(t, 0.0, v)
	require.True(t, tw.Completed())
}

func TestZeroDurationCompletesOnFirstUpdate(t *testing.T) {
	e := NewEngine(timing.NewManualClock())
	v := 0.0
	tw := e.To([]Track{{Target: &v, To: 3}}, Vars{})
	e.Update()
	require.Equal(t, 3.0, v)
	require.True(t, tw.Completed())
}

func TestNilTweenDoneIsClosed(t *testing.T) {
	var tw *Tween
	<-tw.Done()
	require.False(t, tw.Active())
	tw.Kill()
}

func TestRegisteredEaseWins(t *testing.T) {
	clock := timing.NewManualClock()
	e := NewEngine(clock)
	e.RegisterEase("script:half", func(p float64) float64 { return p / 2 })

	v := 0.0
	e.To([]Track{{Target: &v, To: 10}}, Vars{Duration: 1, Ease: "script:half", Repeat: -1})
	clock.Set(0.5)
	e.Update()
	require.InDelta(t, 2.5, v, 1e-9)
}

func TestCompileScriptEase(t *testing.T) {
	fn, err := CompileScriptEase([]byte("out := t * t"))
	require.NoError(t, err)
	require.InDelta(t, 0.25, fn(0.5), 1e-12)

	_, err = CompileScriptEase([]byte("x := t"))
	require.Error(t, err)

	_, err = CompileScriptEase([]byte("out := ("))
	require.Error(t, err)
}

func TestTweenRelease(t *testing.T) {
	clock := timing.NewManualClock()
	e := NewEngine(clock)
	var a, b, c float64
	tw := e.To([]Track{{Target: &a, To: 10}, {Target: &b, To: 10}}, Vars{Duration: 1, Ease: "linear"})

	tw.Release(&a, &c)
	require.True(t, tw.Active())

	clock.Advance(0.5)
	e.Update()
	require.Zero(t, a)
	require.InDelta(t, 5, b, 1e-9)

	tw.Release(&b)
	require.False(t, tw.Active())
	require.False(t, tw.Completed())
	select {
	case <-tw.Done():
	default:
		t.Fatal("released tween should resolve")
	}

	clock.Advance(1)
	e.Update()
	require.InDelta(t, 5, b, 1e-9)
	require.Zero(t, e.Active())

	var none *Tween
	none.Release(&a)
}
