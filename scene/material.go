package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Material is a physically based surface description. Colors are sRGB in [0,1].
type Material struct {
	Name               string
	Color              mgl64.Vec3
	Metalness          float64
	Roughness          float64
	EnvMap             *Environment
	EnvMapIntensity    float64
	Clearcoat          float64
	ClearcoatRoughness float64
	Emissive           mgl64.Vec3
	EmissiveIntensity  float64
	Transparent        bool
	Opacity            float64
	Side               Side
}

func NewStandardMaterial() *Material {
	return &Material{
		Color:             mgl64.Vec3{1, 1, 1},
		Roughness:         1,
		EnvMapIntensity:   1,
		EmissiveIntensity: 1,
		Opacity:           1,
		Side:              FrontSide,
	}
}

// Environment is a vertical two-stop gradient used for reflections.
type Environment struct {
	Top    mgl64.Vec3
	Bottom mgl64.Vec3
}

// Sample returns the gradient color seen along a direction with the given
// vertical component in [-1,1].
func (e *Environment) Sample(y float64) mgl64.Vec3 {
	if e == nil {
		return mgl64.Vec3{}
	}
	t := (1 - y) / 2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return e.Top.Add(e.Bottom.Sub(e.Top).Mul(t))
}

// Hex converts 0xRRGGBB to an sRGB vector.
func Hex(v uint32) mgl64.Vec3 {
	return mgl64.Vec3{
		float64((v>>16)&0xff) / 255,
		float64((v>>8)&0xff) / 255,
		float64(v&0xff) / 255,
	}
}

func FromColor(c color.Color) mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return mgl64.Vec3{float64(n.R) / 255, float64(n.G) / 255, float64(n.B) / 255}
}

// Alpha returns the straight alpha of c in [0,1].
func Alpha(c color.Color) float64 {
	if c == nil {
		return 1
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float64(n.A) / 255
}
