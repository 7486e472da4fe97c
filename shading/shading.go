// Package shading holds the lighting and color math used by the rasterizer.
// Everything here is pure so it can run without a GPU.
package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/scene"
)

type ToneMapping int

const (
	NoToneMapping ToneMapping = iota
	LinearToneMapping
	ACESFilmicToneMapping
)

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

func SRGBToLinear(c mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{srgbToLinear(c[0]), srgbToLinear(c[1]), srgbToLinear(c[2])}
}

func LinearToSRGB(c mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{linearToSRGB(c[0]), linearToSRGB(c[1]), linearToSRGB(c[2])}
}

// aces is the Narkowicz fit of the ACES filmic curve.
func aces(x float64) float64 {
	const a, b, c, d, e = 2.51, 0.03, 2.43, 0.59, 0.14
	return clamp01((x * (a*x + b)) / (x*(c*x+d) + e))
}

// ToneMap maps linear HDR radiance to displayable linear values in [0,1].
func ToneMap(mode ToneMapping, c mgl64.Vec3, exposure float64) mgl64.Vec3 {
	switch mode {
	case LinearToneMapping:
		c = c.Mul(exposure)
	case ACESFilmicToneMapping:
		c = c.Mul(exposure)
		return mgl64.Vec3{aces(c[0]), aces(c[1]), aces(c[2])}
	}
	return mgl64.Vec3{clamp01(c[0]), clamp01(c[1]), clamp01(c[2])}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Fragment is one surface sample in world space.
type Fragment struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	// Eye is the camera position.
	Eye mgl64.Vec3
}

// Shade returns linear radiance and alpha for a surface sample.
func Shade(f Fragment, mat *scene.Material, sc *scene.Scene) (mgl64.Vec3, float64) {
	if mat == nil {
		return mgl64.Vec3{}, 1
	}
	n := f.Normal.Normalize()
	v := f.Eye.Sub(f.Position).Normalize()
	switch mat.Side {
	case scene.BackSide:
		n = n.Mul(-1)
	case scene.DoubleSide:
		if n.Dot(v) < 0 {
			n = n.Mul(-1)
		}
	}
	nv := math.Max(n.Dot(v), 0)

	base := SRGBToLinear(mat.Color)
	metal := clamp01(mat.Metalness)
	rough := math.Max(clamp01(mat.Roughness), 0.02)
	diffuse := base.Mul(1 - metal)
	f0 := lerp3(mgl64.Vec3{0.04, 0.04, 0.04}, base, metal)

	var out mgl64.Vec3
	if sc != nil {
		for _, a := range sc.Ambient {
			out = out.Add(mul3(diffuse, SRGBToLinear(a.Color)).Mul(a.Intensity))
		}
		for _, l := range sc.Directional {
			ldir := l.Direction()
			nl := n.Dot(ldir)
			if nl <= 0 {
				continue
			}
			radiance := SRGBToLinear(l.Color).Mul(l.Intensity * nl)
			spec := f0.Mul(specular(n, v, ldir, rough))
			out = out.Add(mul3(diffuse.Add(spec), radiance))
			if mat.Clearcoat > 0 {
				cc := specular(n, v, ldir, math.Max(mat.ClearcoatRoughness, 0.02)) * 0.04 * mat.Clearcoat
				out = out.Add(SRGBToLinear(l.Color).Mul(cc * l.Intensity * nl))
			}
		}
	}

	if env := mat.EnvMap; env != nil && mat.EnvMapIntensity > 0 {
		r := reflect(v.Mul(-1), n)
		fresnel := schlick(f0, nv)
		radiance := SRGBToLinear(env.Sample(r[1])).Mul(mat.EnvMapIntensity)
		irradiance := SRGBToLinear(env.Sample(n[1])).Mul(mat.EnvMapIntensity)

		out = out.Add(mul3(diffuse, irradiance).Mul(0.3))
		out = out.Add(mul3(fresnel, radiance).Mul(1 - rough*0.8))
		if mat.Clearcoat > 0 {
			ccF := 0.04 + 0.96*math.Pow(1-nv, 5)
			out = out.Add(radiance.Mul(ccF * mat.Clearcoat * (1 - mat.ClearcoatRoughness)))
		}
	}

	out = out.Add(SRGBToLinear(mat.Emissive).Mul(mat.EmissiveIntensity))

	alpha := 1.0
	if mat.Transparent {
		alpha = clamp01(mat.Opacity)
	}
	return out, alpha
}

// specular is a normalized Blinn-Phong lobe with shininess derived from roughness.
func specular(n, v, l mgl64.Vec3, roughness float64) float64 {
	h := v.Add(l)
	if h.Len() == 0 {
		return 0
	}
	h = h.Normalize()
	shininess := math.Min(math.Max(2/math.Pow(roughness, 4)-2, 1), 2048)
	return (shininess + 2) / 8 * math.Pow(math.Max(n.Dot(h), 0), shininess)
}

func schlick(f0 mgl64.Vec3, cos float64) mgl64.Vec3 {
	k := math.Pow(1-cos, 5)
	return f0.Add(mgl64.Vec3{1, 1, 1}.Sub(f0).Mul(k))
}

func reflect(d, n mgl64.Vec3) mgl64.Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

func mul3(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func lerp3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
