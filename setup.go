package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/controls"
	"github.com/milk9111/pokeball/prefabs"
	"github.com/milk9111/pokeball/render"
	"github.com/milk9111/pokeball/scene"
	"golang.org/x/image/colornames"
)

func applyCamera(spec prefabs.CameraSpec, cam *scene.PerspectiveCamera) {
	cam.Name = spec.Name
	cam.Fov = spec.Fov
	cam.Near = spec.Near
	cam.Far = spec.Far
	cam.Position = mgl64.Vec3(spec.Position)
	cam.LookAt(mgl64.Vec3(spec.LookAt))
	cam.UpdateProjectionMatrix()
}

func applyControls(spec prefabs.ControlsSpec, target prefabs.Vec3Spec, orbit *controls.OrbitControls) {
	orbit.Target = mgl64.Vec3(target)
	orbit.EnableDamping = spec.EnableDamping
	orbit.DampingFactor = spec.DampingFactor
	orbit.RotateSpeed = spec.RotateSpeed
	orbit.EnableZoom = spec.EnableZoom
	orbit.ZoomSpeed = spec.ZoomSpeed
	orbit.MinDistance = spec.MinDistance
	if spec.MaxDistance > 0 {
		orbit.MaxDistance = spec.MaxDistance
	}
	if spec.AutoRotateSpeed > 0 {
		orbit.AutoRotateSpeed = spec.AutoRotateSpeed
	}
	orbit.SetAutoRotate(spec.AutoRotate)
}

// applyLighting replaces the lights and updates the environment in place, so
// materials already pointing at it pick up the change.
func applyLighting(spec *prefabs.SceneSpec, sc *scene.Scene) {
	if sc.Environment == nil {
		sc.Environment = &scene.Environment{}
	}
	sc.Environment.Top = scene.FromColor(spec.Environment.Top.Or(colornames.Lightsteelblue))
	sc.Environment.Bottom = scene.FromColor(spec.Environment.Bottom.Or(colornames.Darkslateblue))

	sc.Ambient = sc.Ambient[:0]
	for _, a := range spec.Lights.Ambient {
		sc.Ambient = append(sc.Ambient, scene.AmbientLight{
			Name:      a.Name,
			Color:     scene.FromColor(a.Color.Or(colornames.White)),
			Intensity: a.Intensity,
		})
	}

	sc.Directional = sc.Directional[:0]
	for _, d := range spec.Lights.Directional {
		sc.Directional = append(sc.Directional, scene.DirectionalLight{
			Name:       d.Name,
			Color:      scene.FromColor(d.Color.Or(colornames.White)),
			Intensity:  d.Intensity,
			Position:   mgl64.Vec3(d.Position),
			CastShadow: d.CastShadow,
			Shadow: scene.ShadowConfig{
				MapWidth:  d.Shadow.MapWidth,
				MapHeight: d.Shadow.MapHeight,
				Near:      d.Shadow.Near,
				Far:       d.Shadow.Far,
				Left:      d.Shadow.Left,
				Right:     d.Shadow.Right,
				Top:       d.Shadow.Top,
				Bottom:    d.Shadow.Bottom,
				Bias:      d.Shadow.Bias,
			},
		})
	}
}

func applyRenderer(spec prefabs.RendererSpec, r *render.Renderer) {
	r.ToneMapping = render.ParseToneMapping(spec.ToneMapping)
	if spec.Exposure > 0 {
		r.Exposure = spec.Exposure
	}
	r.Antialias = spec.Antialias
	r.Background = spec.Background.Or(colornames.Black)
	r.Shadows = render.Shadows{Enabled: spec.Shadows.Enabled, Type: spec.Shadows.Type}
}
