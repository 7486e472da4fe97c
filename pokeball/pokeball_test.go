package pokeball

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/prefabs"
	"github.com/milk9111/pokeball/scene"
	"github.com/milk9111/pokeball/timing"
	"github.com/milk9111/pokeball/tween"
	"github.com/stretchr/testify/require"
)

func loadBall(t *testing.T) *scene.Node {
	t.Helper()
	spec, err := prefabs.LoadPokeballSpec()
	require.NoError(t, err)
	ball, err := Build(spec, &scene.Environment{})
	require.NoError(t, err)
	return ball
}

func TestBuildHierarchy(t *testing.T) {
	ball := loadBall(t)
	require.Equal(t, "Pokeball", ball.Name)

	names := []string{
		"Pokeball upper side", "Pokeball upper closing", "Pokeball Lower side",
		"Pokeball lower closing", "Pokeball inner side", "Divider band",
		"Opening", "Outer", "Middle", "Button", "ButtonRing", "HighlightRing",
		"Upper seam", "Lower seam",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			n := ball.FindByName(name)
			require.NotNil(t, n)
			require.True(t, n.HasAncestorNamed("Pokeball"))
		})
	}

	opening := ball.FindByName("Opening")
	require.False(t, opening.IsMesh())
	require.Len(t, opening.Children, 5)
	require.InDelta(t, mgl64.DegToRad(90), opening.Rotation[0], 1e-12)
}

func TestBuildButtonFlags(t *testing.T) {
	ball := loadBall(t)
	for _, name := range []string{"Button", "ButtonRing", "HighlightRing"} {
		require.True(t, ball.FindByName(name).Flag(ButtonFlag), name)
	}
	require.False(t, ball.FindByName("Outer").Flag(ButtonFlag))
}

func TestBuildMaterials(t *testing.T) {
	env := &scene.Environment{Top: scene.Hex(0xaaaacc), Bottom: scene.Hex(0x444466)}
	spec, err := prefabs.LoadPokeballSpec()
	require.NoError(t, err)
	ball, err := Build(spec, env)
	require.NoError(t, err)

	upper := ball.FindByName("Pokeball upper side").Material
	require.Equal(t, scene.DoubleSide, upper.Side)
	require.Same(t, env, upper.EnvMap)
	require.InDelta(t, 0.8, upper.EnvMapIntensity, 1e-12)

	inner := ball.FindByName("Pokeball inner side").Material
	require.Nil(t, inner.EnvMap)
	require.Equal(t, scene.FrontSide, inner.Side)

	button := ball.FindByName("Button").Material
	require.InDelta(t, 0, button.EmissiveIntensity, 1e-12)

	seam := ball.FindByName("Upper seam").Material
	require.True(t, seam.Transparent)
	require.InDelta(t, 0.6, seam.Opacity, 1e-12)
	require.Same(t, seam, ball.FindByName("Lower seam").Material)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(nil, nil)
	require.Error(t, err)

	_, err = Build(&prefabs.PokeballSpec{Name: "Pokeball"}, nil)
	require.True(t, errors.Is(err, prefabs.ErrInvalidSpec))

	bad := &prefabs.PokeballSpec{
		Name:      "Pokeball",
		Materials: map[string]prefabs.MaterialSpec{"m": {}},
		Parts: []prefabs.PartSpec{
			{Name: "flat", Material: "m", Geometry: &prefabs.GeometrySpec{Type: "sphere", Radius: 0}},
		},
	}
	_, err = Build(bad, nil)
	require.True(t, errors.Is(err, scene.ErrInvalidGeometry), "%v", err)
}

func TestIntroAndPulse(t *testing.T) {
	clock := timing.NewManualClock()
	engine := tween.NewEngine(clock)
	spec, err := prefabs.LoadPokeballSpec()
	require.NoError(t, err)
	ball, err := Build(spec, nil)
	require.NoError(t, err)

	intro := PlayIntro(engine, ball, spec.Intro)
	require.Len(t, intro, 2)
	require.InDelta(t, 0.1, ball.Scale[0], 1e-12)
	require.InDelta(t, mgl64.DegToRad(-180), ball.Rotation[1], 1e-12)

	pulse := StartPulse(engine, ball, spec.Pulse)
	require.Len(t, pulse, 2)

	clock.Advance(2.5)
	engine.Update()
	for _, tw := range intro {
		require.True(t, tw.Completed())
	}
	require.InDelta(t, 1, ball.Scale[0], 1e-12)
	require.InDelta(t, 0, ball.Rotation[1], 1e-12)
	for _, tw := range pulse {
		require.True(t, tw.Active())
	}

	button := ball.FindByName("Button")
	require.Greater(t, button.Scale[0], 1.0)
	require.LessOrEqual(t, button.Scale[0], 1.1+1e-9)
}

func TestAnimationsWithoutEngine(t *testing.T) {
	ball := loadBall(t)
	spec, err := prefabs.LoadPokeballSpec()
	require.NoError(t, err)
	require.Nil(t, PlayIntro(nil, ball, spec.Intro))
	require.Nil(t, StartPulse(nil, ball, spec.Pulse))
	require.Equal(t, mgl64.Vec3{1, 1, 1}, ball.Scale)
}

func TestSwap(t *testing.T) {
	spec, err := prefabs.LoadPokeballSpec()
	require.NoError(t, err)
	sc := scene.NewScene("test")
	sc.Environment = &scene.Environment{Top: scene.Hex(0xaaaacc)}
	old, err := Build(spec, sc.Environment)
	require.NoError(t, err)
	old.Rotation[1] = 1.25
	sc.Add(old)

	ball, err := Swap(sc, old, spec)
	require.NoError(t, err)
	require.NotSame(t, old, ball)
	require.Len(t, sc.Children(), 1)
	require.Same(t, ball, sc.Children()[0])
	require.Nil(t, old.Parent)
	require.InDelta(t, 1.25, ball.Rotation[1], 1e-12)
	require.Same(t, sc.Environment, ball.FindByName("Pokeball upper side").Material.EnvMap)
}

func TestSwapErrorKeepsScene(t *testing.T) {
	sc := scene.NewScene("test")
	old := scene.NewGroup("Pokeball")
	sc.Add(old)

	_, err := Swap(sc, old, &prefabs.PokeballSpec{Name: "Pokeball"})
	require.True(t, errors.Is(err, prefabs.ErrInvalidSpec))
	require.Len(t, sc.Children(), 1)
	require.Same(t, old, sc.Children()[0])

	_, err = Swap(nil, old, &prefabs.PokeballSpec{})
	require.Error(t, err)
}

func TestReload(t *testing.T) {
	sc := scene.NewScene("test")
	old := scene.NewGroup("Pokeball")
	old.Rotation[1] = -0.5
	sc.Add(old)

	ball, spec, err := Reload(sc, old)
	require.NoError(t, err)
	require.Equal(t, "Pokeball", spec.Name)
	require.Same(t, ball, sc.Children()[0])
	require.InDelta(t, -0.5, ball.Rotation[1], 1e-12)
	require.NotNil(t, ball.FindByName("Button"))
}
