package shading

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/scene"
	"github.com/stretchr/testify/require"
)

func TestSRGBRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.01, 0.2, 0.5, 0.9, 1} {
		c := mgl64.Vec3{v, v, v}
		back := LinearToSRGB(SRGBToLinear(c))
		require.InDelta(t, v, back[0], 1e-9)
	}
}

func TestACESIsMonotonicAndBounded(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 200; i++ {
		x := float64(i) / 20
		got := ToneMap(ACESFilmicToneMapping, mgl64.Vec3{x, x, x}, 1.2)[0]
		require.GreaterOrEqual(t, got, prev)
		require.LessOrEqual(t, got, 1.0)
		require.GreaterOrEqual(t, got, 0.0)
		prev = got
	}
}

func TestToneMapNoneClamps(t *testing.T) {
	got := ToneMap(NoToneMapping, mgl64.Vec3{2, -1, 0.5}, 1)
	require.Equal(t, mgl64.Vec3{1, 0, 0.5}, got)
}

func litScene() *scene.Scene {
	sc := scene.NewScene("s")
	sc.Ambient = []scene.AmbientLight{{Color: mgl64.Vec3{1, 1, 1}, Intensity: 0.2}}
	sc.Directional = []scene.DirectionalLight{{Color: mgl64.Vec3{1, 1, 1}, Intensity: 1, Position: mgl64.Vec3{0, 0, 10}}}
	return sc
}

func TestShadeFacingLightIsBrighter(t *testing.T) {
	sc := litScene()
	mat := scene.NewStandardMaterial()
	mat.Side = scene.DoubleSide

	toward, _ := Shade(Fragment{Normal: mgl64.Vec3{0, 0, 1}, Eye: mgl64.Vec3{0, 0, 10}}, mat, sc)
	away, _ := Shade(Fragment{Normal: mgl64.Vec3{1, 0, 0}, Eye: mgl64.Vec3{10, 0, 0}}, mat, sc)
	require.Greater(t, toward[0], away[0])
	require.Greater(t, away[0], 0.0, "ambient keeps unlit faces visible")
}

func TestShadeEmissiveAndAlpha(t *testing.T) {
	mat := scene.NewStandardMaterial()
	mat.Color = mgl64.Vec3{}
	mat.Emissive = mgl64.Vec3{1, 1, 1}
	mat.EmissiveIntensity = 0.5
	mat.Transparent = true
	mat.Opacity = 0.6

	c, a := Shade(Fragment{Normal: mgl64.Vec3{0, 0, 1}, Eye: mgl64.Vec3{0, 0, 1}}, mat, nil)
	require.InDelta(t, 0.5, c[0], 1e-9)
	require.InDelta(t, 0.6, a, 1e-9)
}

func TestShadeEnvironmentReflects(t *testing.T) {
	mat := scene.NewStandardMaterial()
	mat.Color = mgl64.Vec3{}
	mat.Roughness = 0.2
	frag := Fragment{Normal: mgl64.Vec3{0, 0, 1}, Eye: mgl64.Vec3{0, 0, 5}}

	dark, _ := Shade(frag, mat, nil)
	mat.EnvMap = &scene.Environment{Top: mgl64.Vec3{1, 1, 1}, Bottom: mgl64.Vec3{1, 1, 1}}
	mat.EnvMapIntensity = 1
	bright, _ := Shade(frag, mat, nil)
	require.Greater(t, bright[0], dark[0])
}
