package tween

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/timing"
)

// Track animates one float field toward To.
type Track struct {
	Target *float64
	To     float64

	from float64
}

// Vec3 builds tracks for all three components of v.
func Vec3(v *mgl64.Vec3, to mgl64.Vec3) []Track {
	return []Track{{Target: &v[0], To: to[0]}, {Target: &v[1], To: to[1]}, {Target: &v[2], To: to[2]}}
}

type Vars struct {
	// Duration in seconds.
	Duration float64
	Ease     string
	// Repeat counts extra cycles; -1 repeats forever.
	Repeat     int
	Yoyo       bool
	OnComplete func()
}

// Animator is the tweening capability consumed by the rest of the program.
type Animator interface {
	To(tracks []Track, vars Vars) *Tween
}

var closed = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

type Tween struct {
	tracks []Track
	vars   Vars
	ease   Ease
	start  float64

	done      chan struct{}
	completed bool
	killed    bool
}

// Done is closed once the tween completes or is killed.
func (t *Tween) Done() <-chan struct{} {
	if t == nil {
		return closed
	}
	return t.done
}

// Completed reports natural completion; killed tweens return false.
func (t *Tween) Completed() bool {
	return t != nil && t.completed
}

func (t *Tween) Active() bool {
	return t != nil && !t.completed && !t.killed
}

// Kill stops the tween where it is. OnComplete does not run.
func (t *Tween) Kill() {
	if !t.Active() {
		return
	}
	t.killed = true
	close(t.done)
}

// Release stops the tween driving the given fields, leaving them where they
// are. A tween left with nothing to drive is killed.
func (t *Tween) Release(fields ...*float64) {
	if !t.Active() {
		return
	}
	for _, p := range fields {
		if t.targets(p) {
			t.drop(p)
		}
		if !t.Active() {
			return
		}
	}
}

func (t *Tween) targets(p *float64) bool {
	for _, tr := range t.tracks {
		if tr.Target == p {
			return true
		}
	}
	return false
}

func (t *Tween) drop(p *float64) {
	kept := t.tracks[:0]
	for _, tr := range t.tracks {
		if tr.Target != p {
			kept = append(kept, tr)
		}
	}
	t.tracks = kept
	if len(t.tracks) == 0 {
		t.Kill()
	}
}

// sample returns eased progress for local time, plus whether the tween is over.
func (t *Tween) sample(elapsed float64) (float64, bool) {
	d := t.vars.Duration
	if d <= 0 {
		return t.ease(1), true
	}
	cycles := float64(t.vars.Repeat + 1)
	if t.vars.Repeat >= 0 && elapsed >= d*cycles {
		p := 1.0
		if t.vars.Yoyo && t.vars.Repeat%2 == 1 {
			p = 0
		}
		return t.ease(p), true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	cycle := math.Floor(elapsed / d)
	p := (elapsed - cycle*d) / d
	if t.vars.Yoyo && int(cycle)%2 == 1 {
		p = 1 - p
	}
	return t.ease(p), false
}

// Engine drives tweens from a shared clock. Call Update once per frame.
type Engine struct {
	clock  timing.Clock
	tweens []*Tween
	eases  map[string]Ease
}

var _ Animator = (*Engine)(nil)

func NewEngine(clock timing.Clock) *Engine {
	return &Engine{clock: clock, eases: map[string]Ease{}}
}

// RegisterEase makes fn available under name, e.g. "script:wobble".
func (e *Engine) RegisterEase(name string, fn Ease) {
	if e == nil || fn == nil {
		return
	}
	e.eases[name] = fn
}

func (e *Engine) resolve(name string) Ease {
	if fn, ok := e.eases[name]; ok {
		return fn
	}
	if fn, err := ParseEase(name); err == nil {
		return fn
	}
	fn, _ := ParseEase(DefaultEase)
	return fn
}

// To starts a tween from the current field values. Fields already driven by
// another tween are taken over by this one.
func (e *Engine) To(tracks []Track, vars Vars) *Tween {
	if e == nil {
		return nil
	}
	tw := &Tween{
		vars:  vars,
		ease:  e.resolve(vars.Ease),
		start: e.clock.Elapsed(),
		done:  make(chan struct{}),
	}
	for _, tr := range tracks {
		if tr.Target == nil {
			continue
		}
		for _, other := range e.tweens {
			if other.Active() && other.targets(tr.Target) {
				other.drop(tr.Target)
			}
		}
		tr.from = *tr.Target
		tw.tracks = append(tw.tracks, tr)
	}
	e.tweens = append(e.tweens, tw)
	return tw
}

func (e *Engine) Update() {
	if e == nil {
		return
	}
	now := e.clock.Elapsed()

	var finished []*Tween
	live := e.tweens[:0]
	for _, tw := range e.tweens {
		if !tw.Active() {
			continue
		}
		p, over := tw.sample(now - tw.start)
		for _, tr := range tw.tracks {
			if p == 1 {
				*tr.Target = tr.To
				continue
			}
			*tr.Target = tr.from + (tr.To-tr.from)*p
		}
		if over {
			finished = append(finished, tw)
			continue
		}
		live = append(live, tw)
	}
	for i := len(live); i < len(e.tweens); i++ {
		e.tweens[i] = nil
	}
	e.tweens = live

	for _, tw := range finished {
		if tw.killed {
			continue
		}
		tw.completed = true
		close(tw.done)
		if tw.vars.OnComplete != nil {
			tw.vars.OnComplete()
		}
	}
}

func (e *Engine) Active() int {
	if e == nil {
		return 0
	}
	n := 0
	for _, tw := range e.tweens {
		if tw.Active() {
			n++
		}
	}
	return n
}

// KillAll stops every running tween.
func (e *Engine) KillAll() {
	if e == nil {
		return
	}
	for _, tw := range e.tweens {
		tw.Kill()
	}
	e.tweens = nil
}
