// Package interaction is the pointer state machine around the pokeball: hover
// highlighting, drag rotation, tap-to-shake and the per-frame step that ties
// them to the camera controls and the tween engine.
package interaction

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/common"
	"github.com/milk9111/pokeball/input"
	"github.com/milk9111/pokeball/scene"
	"github.com/milk9111/pokeball/timing"
	"github.com/milk9111/pokeball/tween"
	"go.uber.org/zap"
)

type PointerState int

const (
	Idle PointerState = iota
	Hovering
	Dragging
)

func (s PointerState) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Dragging:
		return "dragging"
	}
	return "idle"
}

type CursorStyle int

const (
	CursorAuto CursorStyle = iota
	CursorPointer
)

type Cursor interface {
	SetCursor(CursorStyle)
}

// CameraControls is the part of the orbit controls the state machine drives.
type CameraControls interface {
	SetEnabled(bool)
	SetAutoRotate(bool)
	Update()
}

// Tweens is an animation engine advanced once per Frame.
type Tweens interface {
	tween.Animator
	Update()
}

type Options struct {
	Scene    *scene.Scene
	Object   *scene.Node
	Camera   *scene.PerspectiveCamera
	Controls CameraControls
	// Tweens may be nil, in which case every animated transition is applied
	// instantly or skipped.
	Tweens    Tweens
	Cursor    Cursor
	Clock     timing.Clock
	Scheduler *timing.Scheduler
	Logger    *zap.Logger
	Config    Config
}

// Context owns all interaction state. Handlers and Frame must be called from
// the same goroutine.
type Context struct {
	scene     *scene.Scene
	object    *scene.Node
	camera    *scene.PerspectiveCamera
	controls  CameraControls
	tweens    Tweens
	cursor    Cursor
	clock     timing.Clock
	scheduler *timing.Scheduler
	log       *zap.Logger
	cfg       Config

	raycaster *scene.Raycaster
	width     float64
	height    float64
	ndc       mgl64.Vec2

	hovering bool
	dragging bool
	target   mgl64.Vec3
	downTime float64

	shaking bool
	session *ShakeSession

	hoverTween    *tween.Tween
	releaseTweens []*tween.Tween
	// external holds object tweens started outside the context, like the intro.
	external      []*tween.Tween
	reenable      timing.TimerID

	frames int
	closed bool
}

func New(opts Options) *Context {
	if opts.Clock == nil {
		opts.Clock = timing.NewClock()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timing.NewScheduler(opts.Clock)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if e, ok := opts.Tweens.(*tween.Engine); ok && e == nil {
		opts.Tweens = nil
	}
	if opts.Config.Target == "" {
		opts.Config = DefaultConfig()
	}

	return &Context{
		scene:     opts.Scene,
		object:    opts.Object,
		camera:    opts.Camera,
		controls:  opts.Controls,
		tweens:    opts.Tweens,
		cursor:    opts.Cursor,
		clock:     opts.Clock,
		scheduler: opts.Scheduler,
		log:       opts.Logger,
		cfg:       opts.Config,
		raycaster: scene.NewRaycaster(),
	}
}

func (c *Context) State() PointerState {
	switch {
	case c.dragging:
		return Dragging
	case c.hovering:
		return Hovering
	}
	return Idle
}

func (c *Context) IsShaking() bool            { return c.shaking }
func (c *Context) IsDragging() bool           { return c.dragging }
func (c *Context) IsHovering() bool           { return c.hovering }
func (c *Context) TargetRotation() mgl64.Vec3 { return c.target }
func (c *Context) NDC() mgl64.Vec2            { return c.ndc }
func (c *Context) Object() *scene.Node        { return c.object }
func (c *Context) Config() Config             { return c.cfg }
func (c *Context) Session() *ShakeSession     { return c.session }
func (c *Context) Frames() int                { return c.frames }

// Track registers tweens on the object that were started elsewhere. A shake
// takes the rotation and scale fields away from them.
func (c *Context) Track(tws ...*tween.Tween) {
	for _, tw := range tws {
		if tw.Active() {
			c.external = append(c.external, tw)
		}
	}
}

func (c *Context) SetConfig(cfg Config) {
	c.cfg = cfg
}

// SetObject swaps the interactive object, abandoning any shake or tween that
// was driving the old one.
func (c *Context) SetObject(obj *scene.Node) {
	if obj == c.object {
		return
	}
	c.stopAnimations()
	c.external = nil
	c.object = obj
	c.dragging = false
	if obj != nil {
		c.target = obj.Rotation
	}
}

// Resize updates the viewport used for pointer coordinates and the camera
// aspect. Zero sizes are ignored.
func (c *Context) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	if c.camera != nil {
		c.camera.Aspect = width / height
		c.camera.UpdateProjectionMatrix()
	}
}

func (c *Context) updatePointer(ev input.Event) {
	if c.width <= 0 || c.height <= 0 {
		return
	}
	c.ndc = mgl64.Vec2{
		ev.X/c.width*2 - 1,
		-(ev.Y/c.height)*2 + 1,
	}
}

// hitTest casts a ray through the current pointer position and reports whether
// any intersected node belongs to the target object.
func (c *Context) hitTest() bool {
	if c.scene == nil || c.camera == nil || c.width <= 0 {
		return false
	}
	c.raycaster.SetFromCamera(c.ndc, c.camera)
	for _, hit := range c.raycaster.IntersectObjects(c.scene.Children(), true) {
		if hit.Object.HasAncestorNamed(c.cfg.Target) {
			return true
		}
	}
	return false
}

func (c *Context) OnPointerMove(ev input.Event) {
	if c.closed {
		return
	}
	c.updatePointer(ev)

	if c.dragging {
		if c.controls != nil {
			c.controls.SetEnabled(false)
		}
		c.target[1] += c.cfg.DragSpeed * (c.ndc[0] * c.cfg.DragYawFactor)
		c.target[0] += c.cfg.DragSpeed * (c.ndc[1] * c.cfg.DragPitchFactor)
		c.target[0] = common.Clamp(c.target[0], -c.cfg.PitchLimit, c.cfg.PitchLimit)
		return
	}

	hit := c.hitTest()
	switch {
	case hit && !c.hovering:
		c.hovering = true
		c.setCursor(CursorPointer)
		c.tweenHoverScale(c.cfg.HoverScale)
		c.log.Debug("interaction: hover enter")
	case !hit && c.hovering:
		c.hovering = false
		c.setCursor(CursorAuto)
		if !c.dragging {
			c.tweenHoverScale(1)
		}
		c.log.Debug("interaction: hover leave")
	}
}

func (c *Context) OnPointerDown(ev input.Event) {
	if c.closed {
		return
	}
	c.updatePointer(ev)
	if c.object == nil || !c.hitTest() {
		return
	}

	c.dragging = true
	c.target = c.object.Rotation
	if c.controls != nil {
		c.controls.SetAutoRotate(false)
		c.controls.SetEnabled(false)
	}
	if !c.shaking {
		c.downTime = c.clock.Elapsed()
	}
	c.log.Debug("interaction: drag start", zap.Float64("t", c.downTime), zap.Bool("touch", ev.Touch))
}

// OnPointerUp ends a drag. A short press on the object shakes it; a longer one
// settles the rotation onto the nearest step. Camera controls come back after
// ControlsDelay.
func (c *Context) OnPointerUp(ev input.Event) {
	if c.closed {
		return
	}
	if c.dragging {
		tap := c.clock.Elapsed() - c.downTime
		if tap < c.cfg.TapThreshold && !c.shaking {
			c.StartShake()
		} else {
			c.settleRelease()
		}
		c.log.Debug("interaction: drag end", zap.Float64("held", tap))

		c.scheduler.Cancel(c.reenable)
		c.reenable = c.scheduler.After(c.cfg.ControlsDelay, c.restoreControls)
	}
	c.dragging = false
}

// OnPointerLeave behaves like a release so a drag cannot outlive the pointer.
func (c *Context) OnPointerLeave(ev input.Event) {
	c.OnPointerUp(ev)
}

func (c *Context) OnPointerEnter(input.Event) {
	if c.closed {
		return
	}
	if c.controls != nil {
		c.controls.SetAutoRotate(false)
	}
}

// Handle dispatches a tracker event to its handler.
func (c *Context) Handle(ev input.Event) {
	switch ev.Kind {
	case input.EventEnter:
		c.OnPointerEnter(ev)
	case input.EventLeave:
		c.OnPointerLeave(ev)
	case input.EventDown:
		c.OnPointerDown(ev)
	case input.EventMove:
		c.OnPointerMove(ev)
	case input.EventUp:
		c.OnPointerUp(ev)
	}
}

func (c *Context) restoreControls() {
	c.reenable = 0
	if c.controls == nil {
		return
	}
	c.controls.SetEnabled(true)
	if !c.hovering {
		c.controls.SetAutoRotate(true)
	}
}

// settleRelease is skipped while shaking; the shake restores the pose itself.
func (c *Context) settleRelease() {
	if c.tweens == nil || c.object == nil || c.shaking {
		return
	}
	obj := c.object
	snapped := common.RoundToStep(obj.Rotation[0], c.cfg.SettleStep)
	c.releaseTweens = []*tween.Tween{
		c.tweens.To([]tween.Track{
			{Target: &obj.Rotation[0], To: snapped},
			{Target: &obj.Rotation[2], To: 0},
		}, tween.Vars{Duration: c.cfg.SettleDuration, Ease: c.cfg.SettleEase}),
		c.tweens.To(tween.Vec3(&obj.Scale, mgl64.Vec3{1, 1, 1}), tween.Vars{
			Duration: c.cfg.ReleaseScaleDuration,
			Ease:     c.cfg.ReleaseScaleEase,
		}),
	}
}

// tweenHoverScale animates the object scale. The shake owns the scale while it
// runs, so hover changes then are not animated.
func (c *Context) tweenHoverScale(to float64) {
	if c.tweens == nil || c.object == nil || c.shaking {
		return
	}
	c.hoverTween = c.tweens.To(tween.Vec3(&c.object.Scale, mgl64.Vec3{to, to, to}), tween.Vars{
		Duration: c.cfg.HoverDuration,
		Ease:     c.cfg.HoverEase,
	})
}

func (c *Context) setCursor(s CursorStyle) {
	if c.cursor != nil {
		c.cursor.SetCursor(s)
	}
}

func (c *Context) stopAnimations() {
	c.hoverTween.Kill()
	c.hoverTween = nil
	for _, tw := range c.releaseTweens {
		tw.Kill()
	}
	c.releaseTweens = nil
	if c.session != nil {
		c.session.settle.Kill()
		c.session = nil
	}
	c.shaking = false
}

// Close stops every animation the context started and drops its pending
// callbacks. Handlers and Frame do nothing afterwards.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.stopAnimations()
	c.scheduler.Reset()
	c.closed = true
}
