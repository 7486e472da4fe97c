package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/pokeball/controls"
	"github.com/milk9111/pokeball/input"
	"github.com/milk9111/pokeball/interaction"
	"github.com/milk9111/pokeball/pokeball"
	"github.com/milk9111/pokeball/prefabs"
	"github.com/milk9111/pokeball/render"
	"github.com/milk9111/pokeball/scene"
	"github.com/milk9111/pokeball/timing"
	"github.com/milk9111/pokeball/tween"
	"go.uber.org/zap"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type GameOptions struct {
	Debug   bool
	NoTween bool
	Watch   bool
	Logger  *zap.Logger
}

type Game struct {
	frames int
	debug  bool
	log    *zap.Logger

	clock     *timing.RealClock
	scheduler *timing.Scheduler
	engine    *tween.Engine

	scene    *scene.Scene
	camera   *scene.PerspectiveCamera
	orbit    *controls.OrbitControls
	renderer *render.Renderer

	ball      *scene.Node
	animating []*tween.Tween

	ctx     *interaction.Context
	sampler pointerSampler
	tracker *input.Tracker
	watcher *prefabs.Watcher

	width  float64
	height float64
}

func NewGame(opts GameOptions) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sceneSpec, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, err
	}
	ballSpec, err := prefabs.LoadPokeballSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:    opts.Debug,
		log:      logger,
		clock:    timing.NewClock(),
		scene:    scene.NewScene(sceneSpec.Name),
		camera:   scene.NewPerspectiveCamera(45, float64(baseWidth)/baseHeight, 1, 1000),
		renderer: render.NewRenderer(),
		tracker:  input.NewTracker(),
	}
	g.scheduler = timing.NewScheduler(g.clock)

	applyCamera(sceneSpec.Camera, g.camera)
	g.orbit = controls.NewOrbitControls(g.camera)
	applyControls(sceneSpec.Controls, sceneSpec.Camera.LookAt, g.orbit)
	applyLighting(sceneSpec, g.scene)
	applyRenderer(sceneSpec.Renderer, g.renderer)

	g.ball, err = pokeball.Build(ballSpec, g.scene.Environment)
	if err != nil {
		return nil, err
	}
	g.scene.Add(g.ball)

	// A nil interface, not a nil *Engine, marks the engine as unavailable.
	var tweens interaction.Tweens
	if !opts.NoTween {
		g.engine = tween.NewEngine(g.clock)
		g.registerScripts()
		tweens = g.engine
	}

	g.ctx = interaction.New(interaction.Options{
		Scene:     g.scene,
		Object:    g.ball,
		Camera:    g.camera,
		Controls:  g.orbit,
		Tweens:    tweens,
		Cursor:    ebitenCursor{},
		Clock:     g.clock,
		Scheduler: g.scheduler,
		Logger:    logger,
		Config:    interaction.ConfigFromSpec(sceneSpec.Interaction),
	})

	if tweens != nil {
		intro := pokeball.PlayIntro(tweens, g.ball, ballSpec.Intro)
		g.ctx.Track(intro...)
		g.animating = append(g.animating, intro...)
		g.animating = append(g.animating, pokeball.StartPulse(tweens, g.ball, ballSpec.Pulse)...)
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			logger.Warn("prefab watcher disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	logger.Info("pokeball ready",
		zap.Bool("tweens", tweens != nil),
		zap.Bool("watch", g.watcher != nil),
	)
	return g, nil
}

// registerScripts compiles every embedded ease script. A script that fails to
// compile is skipped and eases naming it fall back to the default curve.
func (g *Game) registerScripts() {
	names, err := prefabs.ScriptNames()
	if err != nil {
		g.log.Warn("list ease scripts", zap.Error(err))
		return
	}
	for _, name := range names {
		g.registerScript(name)
	}
}

func (g *Game) registerScript(name string) {
	if g.engine == nil {
		return
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		g.log.Warn("load ease script", zap.String("script", name), zap.Error(err))
		return
	}
	fn, err := tween.CompileScriptEase(src)
	if err != nil {
		g.log.Warn("compile ease script", zap.String("script", name), zap.Error(err))
		return
	}
	g.engine.RegisterEase(tween.ScriptPrefix+name, fn)
	g.log.Debug("registered ease script", zap.String("script", name))
}

func (g *Game) Update() error {
	g.frames++

	for _, ev := range g.tracker.Update(g.sampler.Sample(g.width, g.height)) {
		g.ctx.Handle(ev)
		switch ev.Kind {
		case input.EventDown:
			g.orbit.PointerDown(ev.X, ev.Y)
		case input.EventMove:
			g.orbit.PointerMove(ev.X, ev.Y)
		case input.EventUp, input.EventLeave:
			g.orbit.PointerUp()
		case input.EventWheel:
			g.orbit.Zoom(ev.Delta)
		}
	}

	g.reload()
	g.ctx.Frame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.scene, g.camera)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"Frames: %d    FPS: %.2f    Tris: %d\nState: %s    Shaking: %v    Distance: %.1f",
			g.frames, ebiten.ActualFPS(), g.renderer.Triangles(),
			g.ctx.State(), g.ctx.IsShaking(), g.orbit.Distance(),
		))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.ctx.Resize(outsideWidth, outsideHeight)
		g.renderer.SetSize(int(outsideWidth), int(outsideHeight))
		g.orbit.SetViewportHeight(outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	g.ctx.Close()
	if g.engine != nil {
		g.engine.KillAll()
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// reload applies prefab edits picked up by the watcher. Failed reloads keep
// the current scene.
func (g *Game) reload() {
	names, errs := g.watcher.Poll()
	for _, err := range errs {
		g.log.Warn("prefab watcher", zap.Error(err))
	}
	for _, name := range names {
		switch {
		case name == prefabs.PokeballFile:
			g.reloadBall()
		case name == prefabs.SceneFile:
			g.reloadScene()
		case strings.HasPrefix(name, "scripts/"):
			g.registerScript(strings.TrimSuffix(strings.TrimPrefix(name, "scripts/"), ".tengo"))
		}
	}
}

func (g *Game) reloadBall() {
	ball, spec, err := pokeball.Reload(g.scene, g.ball)
	if err != nil {
		g.log.Warn("reload pokeball", zap.Error(err))
		return
	}

	for _, tw := range g.animating {
		tw.Kill()
	}
	g.animating = nil

	g.ball = ball
	g.ctx.SetObject(ball)

	if g.engine != nil {
		g.animating = pokeball.StartPulse(g.engine, ball, spec.Pulse)
	}
	g.log.Info("reloaded pokeball", zap.Int("parts", len(spec.Parts)))
}

func (g *Game) reloadScene() {
	spec, err := prefabs.LoadSceneSpec()
	if err != nil {
		g.log.Warn("reload scene", zap.Error(err))
		return
	}
	applyLighting(spec, g.scene)
	applyRenderer(spec.Renderer, g.renderer)
	g.ctx.SetConfig(interaction.ConfigFromSpec(spec.Interaction))
	g.log.Info("reloaded scene",
		zap.Int("ambient", len(spec.Lights.Ambient)),
		zap.Int("directional", len(spec.Lights.Directional)),
	)
}
