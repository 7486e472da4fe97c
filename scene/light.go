package scene

import "github.com/go-gl/mathgl/mgl64"

type AmbientLight struct {
	Name      string
	Color     mgl64.Vec3
	Intensity float64
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Name       string
	Color      mgl64.Vec3
	Intensity  float64
	Position   mgl64.Vec3
	CastShadow bool
	Shadow     ShadowConfig
}

type ShadowConfig struct {
	MapWidth  int
	MapHeight int
	Near      float64
	Far       float64
	Left      float64
	Right     float64
	Top       float64
	Bottom    float64
	Bias      float64
}

// Direction points from the surface toward the light.
func (l DirectionalLight) Direction() mgl64.Vec3 {
	if l.Position.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return l.Position.Normalize()
}
