// Command shaketrace replays a tap or a drag against the pokeball headlessly
// and prints the object's rotation and scale per frame as CSV. It is meant for
// tuning the interaction section of prefabs/scene.yaml.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/controls"
	"github.com/milk9111/pokeball/input"
	"github.com/milk9111/pokeball/interaction"
	"github.com/milk9111/pokeball/pokeball"
	"github.com/milk9111/pokeball/prefabs"
	"github.com/milk9111/pokeball/scene"
	"github.com/milk9111/pokeball/timing"
	"github.com/milk9111/pokeball/tween"
	"go.uber.org/zap"
)

const (
	width  = 800
	height = 600
)

func main() {
	mode := flag.String("mode", "tap", "gesture to replay: tap or drag")
	hold := flag.Float64("hold", 0.1, "seconds between press and release")
	dragX := flag.Float64("dx", 200, "horizontal drag distance in pixels (drag mode)")
	dragY := flag.Float64("dy", -120, "vertical drag distance in pixels (drag mode)")
	total := flag.Float64("t", 2.5, "seconds to simulate")
	fps := flag.Float64("fps", 60, "frames per second")
	noTween := flag.Bool("notween", false, "simulate without the tween engine")
	debug := flag.Bool("debug", false, "log state transitions to stderr")
	flag.Parse()

	if *fps <= 0 {
		log.Fatal("shaketrace: fps must be positive")
	}

	logger := zap.NewNop()
	if *debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		logger = l
	}

	sceneSpec, err := prefabs.LoadSceneSpec()
	if err != nil {
		log.Fatal(err)
	}
	ballSpec, err := prefabs.LoadPokeballSpec()
	if err != nil {
		log.Fatal(err)
	}

	sc := scene.NewScene(sceneSpec.Name)
	ball, err := pokeball.Build(ballSpec, sc.Environment)
	if err != nil {
		log.Fatal(err)
	}
	sc.Add(ball)

	cs := sceneSpec.Camera
	cam := scene.NewPerspectiveCamera(cs.Fov, float64(width)/height, cs.Near, cs.Far)
	cam.Position = mgl64.Vec3(cs.Position)
	cam.LookAt(mgl64.Vec3(cs.LookAt))
	orbit := controls.NewOrbitControls(cam)
	orbit.Target = mgl64.Vec3(cs.LookAt)

	clock := timing.NewManualClock()
	var tweens interaction.Tweens
	if !*noTween {
		engine := tween.NewEngine(clock)
		registerScripts(engine, logger)
		tweens = engine
	}

	ctx := interaction.New(interaction.Options{
		Scene:    sc,
		Object:   ball,
		Camera:   cam,
		Controls: orbit,
		Tweens:   tweens,
		Clock:    clock,
		Logger:   logger,
		Config:   interaction.ConfigFromSpec(sceneSpec.Interaction),
	})
	ctx.Resize(width, height)

	center := cam.Project(ball.Position)
	press := input.Event{
		X: (center[0]+1)/2*width + 3,
		Y: (1-center[1])/2*height + 2,
	}

	w := csv.NewWriter(os.Stdout)
	_ = w.Write([]string{"t", "state", "shaking", "rot_x", "rot_y", "rot_z", "scale", "controls"})

	dt := 1 / *fps
	released := false
	ctx.OnPointerMove(press)
	ctx.OnPointerDown(press)
	if !ctx.IsDragging() {
		log.Fatal("shaketrace: press missed the pokeball")
	}

	for frame := 0; float64(frame)*dt <= *total; frame++ {
		now := clock.Elapsed()
		if *mode == "drag" && !released {
			k := now / *hold
			if k > 1 {
				k = 1
			}
			ctx.OnPointerMove(input.Event{X: press.X + *dragX*k, Y: press.Y + *dragY*k})
		}
		if !released && now >= *hold {
			ctx.OnPointerUp(press)
			released = true
		}

		ctx.Frame()
		_ = w.Write([]string{
			fmt.Sprintf("%.4f", now),
			ctx.State().String(),
			fmt.Sprint(ctx.IsShaking()),
			fmt.Sprintf("%.5f", ball.Rotation[0]),
			fmt.Sprintf("%.5f", ball.Rotation[1]),
			fmt.Sprintf("%.5f", ball.Rotation[2]),
			fmt.Sprintf("%.5f", ball.Scale[0]),
			fmt.Sprint(orbit.Enabled()),
		})
		clock.Advance(dt)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal(err)
	}
}

func registerScripts(engine *tween.Engine, logger *zap.Logger) {
	names, err := prefabs.ScriptNames()
	if err != nil {
		logger.Warn("list ease scripts", zap.Error(err))
		return
	}
	for _, name := range names {
		src, err := prefabs.LoadScript(name)
		if err != nil {
			logger.Warn("load ease script", zap.String("script", name), zap.Error(err))
			continue
		}
		fn, err := tween.CompileScriptEase(src)
		if err != nil {
			logger.Warn("compile ease script", zap.String("script", name), zap.Error(err))
			continue
		}
		engine.RegisterEase(tween.ScriptPrefix+name, fn)
	}
}
