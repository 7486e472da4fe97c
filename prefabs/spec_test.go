package prefabs

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadEmbeddedSpecs(t *testing.T) {
	sc, err := LoadSceneSpec()
	require.NoError(t, err)
	require.Equal(t, "Pokeball", sc.Interaction.Target)
	require.Equal(t, Vec3Spec{-30, 20, 80}, sc.Camera.Position)
	require.Len(t, sc.Lights.Directional, 3)
	require.True(t, sc.Lights.Directional[0].CastShadow)
	require.Equal(t, 0.2, sc.Interaction.TapThreshold)
	require.Equal(t, color.NRGBA{R: 0x44, G: 0x44, B: 0x66, A: 0xff}, sc.Environment.Top.Color)

	pb, err := LoadPokeballSpec()
	require.NoError(t, err)
	require.Equal(t, "Pokeball", pb.Name)
	require.NotEmpty(t, pb.Parts)
	require.Contains(t, pb.Materials, "red")
	require.Equal(t, []string{"Button", "HighlightRing"}, pb.Pulse.Targets)
}

func TestSceneSpecValidate(t *testing.T) {
	base := func() SceneSpec {
		return SceneSpec{
			Camera:      CameraSpec{Fov: 45, Near: 1, Far: 100},
			Interaction: InteractionSpec{Target: "Pokeball"},
		}
	}
	cases := []struct {
		name   string
		mutate func(s *SceneSpec)
	}{
		{"fov", func(s *SceneSpec) { s.Camera.Fov = 0 }},
		{"near_far", func(s *SceneSpec) { s.Camera.Far = 0.5 }},
		{"distance", func(s *SceneSpec) { s.Controls.MinDistance, s.Controls.MaxDistance = 50, 10 }},
		{"target", func(s *SceneSpec) { s.Interaction.Target = "" }},
	}
	ok := base()
	require.NoError(t, ok.Validate())
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := base()
			c.mutate(&s)
			require.True(t, errors.Is(s.Validate(), ErrInvalidSpec))
		})
	}
}

func TestPokeballSpecValidate(t *testing.T) {
	spec := PokeballSpec{
		Name:      "Ball",
		Materials: map[string]MaterialSpec{"m": {}},
		Parts: []PartSpec{{
			Name: "group",
			Children: []PartSpec{
				{Name: "mesh", Geometry: &GeometrySpec{Type: "sphere", Radius: 1}, Material: "m"},
			},
		}},
	}
	require.NoError(t, spec.Validate())

	spec.Parts[0].Children[0].Material = "missing"
	require.True(t, errors.Is(spec.Validate(), ErrInvalidSpec))

	spec.Parts[0].Children[0].Material = "m"
	spec.Parts[0].Children[0].Geometry.Type = "cone"
	require.True(t, errors.Is(spec.Validate(), ErrInvalidSpec))

	empty := PokeballSpec{Name: "x"}
	require.True(t, errors.Is(empty.Validate(), ErrInvalidSpec))
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{`"#dd0000"`, color.NRGBA{R: 0xdd, A: 0xff}, false},
		{`"11223344"`, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, false},
		{`"#abc"`, nil, true},
		{`"#zz0000"`, nil, true},
		{`[1, 2]`, nil, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var out struct {
				C YAMLColor `yaml:"c"`
			}
			err := yaml.Unmarshal([]byte("c: "+c.in), &out)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.want, out.C.Color)
		})
	}

	var missing *YAMLColor
	require.Equal(t, color.White, missing.Or(color.White))
}

func TestPrefabName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"prefabs/pokeball.yaml", "pokeball.yaml", true},
		{"/abs/prefabs/scene.yml", "scene.yml", true},
		{"prefabs/scripts/breathe.tengo", "scripts/breathe.tengo", true},
		{"prefabs/notes.txt", "", false},
	}
	for _, c := range cases {
		got, ok := prefabName(c.in)
		require.Equal(t, c.ok, ok, c.in)
		require.Equal(t, c.want, got, c.in)
	}
}

func TestScripts(t *testing.T) {
	names, err := ScriptNames()
	require.NoError(t, err)
	require.Contains(t, names, "breathe")

	for _, name := range []string{"breathe", "scripts/breathe.tengo", "prefabs/scripts/breathe"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		require.Contains(t, string(data), "out :=")
	}
}
