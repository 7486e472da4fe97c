package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

const (
	SceneFile    = "scene.yaml"
	PokeballFile = "pokeball.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Vec3Spec is written as a three-element sequence, e.g. [30, 20, 50].
type Vec3Spec [3]float64

type SceneSpec struct {
	Name        string          `yaml:"name"`
	Renderer    RendererSpec    `yaml:"renderer"`
	Camera      CameraSpec      `yaml:"camera"`
	Controls    ControlsSpec    `yaml:"controls"`
	Environment EnvironmentSpec `yaml:"environment"`
	Lights      LightsSpec      `yaml:"lights"`
	Interaction InteractionSpec `yaml:"interaction"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](SceneFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *SceneSpec) Validate() error {
	if s.Camera.Fov <= 0 || s.Camera.Fov >= 180 {
		return fmt.Errorf("%w: camera fov %v", ErrInvalidSpec, s.Camera.Fov)
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		return fmt.Errorf("%w: camera near=%v far=%v", ErrInvalidSpec, s.Camera.Near, s.Camera.Far)
	}
	if s.Controls.MaxDistance > 0 && s.Controls.MinDistance > s.Controls.MaxDistance {
		return fmt.Errorf("%w: controls min_distance %v > max_distance %v", ErrInvalidSpec, s.Controls.MinDistance, s.Controls.MaxDistance)
	}
	if s.Interaction.Target == "" {
		return fmt.Errorf("%w: interaction target is empty", ErrInvalidSpec)
	}
	return nil
}

type RendererSpec struct {
	Antialias   bool        `yaml:"antialias"`
	PixelRatio  float64     `yaml:"pixel_ratio"`
	ToneMapping string      `yaml:"tone_mapping"`
	Exposure    float64     `yaml:"exposure"`
	Output      string      `yaml:"output_encoding"`
	Background  *YAMLColor  `yaml:"background"`
	Shadows     ShadowsSpec `yaml:"shadows"`
}

type ShadowsSpec struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type"`
}

type CameraSpec struct {
	Name     string   `yaml:"name"`
	Fov      float64  `yaml:"fov"`
	Near     float64  `yaml:"near"`
	Far      float64  `yaml:"far"`
	Position Vec3Spec `yaml:"position"`
	LookAt   Vec3Spec `yaml:"look_at"`
}

type ControlsSpec struct {
	EnableDamping   bool    `yaml:"enable_damping"`
	DampingFactor   float64 `yaml:"damping_factor"`
	RotateSpeed     float64 `yaml:"rotate_speed"`
	EnableZoom      bool    `yaml:"enable_zoom"`
	ZoomSpeed       float64 `yaml:"zoom_speed"`
	MinDistance     float64 `yaml:"min_distance"`
	MaxDistance     float64 `yaml:"max_distance"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"`
}

type EnvironmentSpec struct {
	Top    *YAMLColor `yaml:"top"`
	Bottom *YAMLColor `yaml:"bottom"`
}

type LightsSpec struct {
	Ambient     []AmbientLightSpec     `yaml:"ambient"`
	Directional []DirectionalLightSpec `yaml:"directional"`
}

type AmbientLightSpec struct {
	Name      string     `yaml:"name"`
	Color     *YAMLColor `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
}

type DirectionalLightSpec struct {
	Name       string     `yaml:"name"`
	Color      *YAMLColor `yaml:"color"`
	Intensity  float64    `yaml:"intensity"`
	Position   Vec3Spec   `yaml:"position"`
	CastShadow bool       `yaml:"cast_shadow"`
	Shadow     ShadowSpec `yaml:"shadow"`
}

type ShadowSpec struct {
	MapWidth  int     `yaml:"map_width"`
	MapHeight int     `yaml:"map_height"`
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
	Left      float64 `yaml:"left"`
	Right     float64 `yaml:"right"`
	Top       float64 `yaml:"top"`
	Bottom    float64 `yaml:"bottom"`
	Bias      float64 `yaml:"bias"`
}

// InteractionSpec tunes pointer handling. Angles are in degrees, times in seconds.
type InteractionSpec struct {
	Target          string     `yaml:"target"`
	DragSpeed       float64    `yaml:"drag_speed"`
	DragYawFactor   float64    `yaml:"drag_yaw_factor"`
	DragPitchFactor float64    `yaml:"drag_pitch_factor"`
	PitchLimitDeg   float64    `yaml:"pitch_limit_deg"`
	TapThreshold    float64    `yaml:"tap_threshold"`
	ControlsDelay   float64    `yaml:"controls_delay"`
	DragDamping     float64    `yaml:"drag_damping"`
	AutoSpin        float64    `yaml:"auto_spin"`
	Hover           HoverSpec  `yaml:"hover"`
	Settle          SettleSpec `yaml:"settle"`
	Shake           ShakeSpec  `yaml:"shake"`
}

type HoverSpec struct {
	Scale    float64 `yaml:"scale"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
}

type SettleSpec struct {
	StepDeg       float64 `yaml:"step_deg"`
	Duration      float64 `yaml:"duration"`
	Ease          string  `yaml:"ease"`
	ScaleDuration float64 `yaml:"scale_duration"`
	ScaleEase     string  `yaml:"scale_ease"`
}

type ShakeSpec struct {
	Duration       float64 `yaml:"duration"`
	Intensity      float64 `yaml:"intensity"`
	Oscillations   float64 `yaml:"oscillations"`
	PitchFactor    float64 `yaml:"pitch_factor"`
	ScalePulse     float64 `yaml:"scale_pulse"`
	SettleDuration float64 `yaml:"settle_duration"`
	SettleEase     string  `yaml:"settle_ease"`
}

type PokeballSpec struct {
	Name      string                  `yaml:"name"`
	Segments  int                     `yaml:"segments"`
	Materials map[string]MaterialSpec `yaml:"materials"`
	Parts     []PartSpec              `yaml:"parts"`
	Intro     IntroSpec               `yaml:"intro"`
	Pulse     PulseSpec               `yaml:"pulse"`
}

func LoadPokeballSpec() (*PokeballSpec, error) {
	spec, err := LoadSpec[PokeballSpec](PokeballFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *PokeballSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: pokeball name is empty", ErrInvalidSpec)
	}
	if len(s.Parts) == 0 {
		return fmt.Errorf("%w: pokeball has no parts", ErrInvalidSpec)
	}
	var check func(parts []PartSpec) error
	check = func(parts []PartSpec) error {
		for _, p := range parts {
			if p.Geometry != nil {
				if _, ok := s.Materials[p.Material]; !ok {
					return fmt.Errorf("%w: part %q uses unknown material %q", ErrInvalidSpec, p.Name, p.Material)
				}
				switch p.Geometry.Type {
				case "sphere", "circle", "torus", "cylinder":
				default:
					return fmt.Errorf("%w: part %q has geometry type %q", ErrInvalidSpec, p.Name, p.Geometry.Type)
				}
			}
			if err := check(p.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return check(s.Parts)
}

type MaterialSpec struct {
	Color              *YAMLColor `yaml:"color"`
	Metalness          float64    `yaml:"metalness"`
	Roughness          float64    `yaml:"roughness"`
	EnvMap             bool       `yaml:"env_map"`
	EnvMapIntensity    float64    `yaml:"env_map_intensity"`
	Clearcoat          float64    `yaml:"clearcoat"`
	ClearcoatRoughness float64    `yaml:"clearcoat_roughness"`
	Emissive           *YAMLColor `yaml:"emissive"`
	EmissiveIntensity  *float64   `yaml:"emissive_intensity"`
	Transparent        bool       `yaml:"transparent"`
	Opacity            *float64   `yaml:"opacity"`
	Side               string     `yaml:"side"`
}

// PartSpec is a mesh when Geometry is set, otherwise a group.
type PartSpec struct {
	Name          string          `yaml:"name"`
	Geometry      *GeometrySpec   `yaml:"geometry"`
	Material      string          `yaml:"material"`
	Position      Vec3Spec        `yaml:"position"`
	RotationDeg   Vec3Spec        `yaml:"rotation_deg"`
	CastShadow    bool            `yaml:"cast_shadow"`
	ReceiveShadow bool            `yaml:"receive_shadow"`
	UserData      map[string]bool `yaml:"user_data"`
	Children      []PartSpec      `yaml:"children"`
}

// GeometrySpec covers sphere, circle, torus and cylinder. Zero segment counts
// fall back to the pokeball-wide Segments value.
type GeometrySpec struct {
	Type            string   `yaml:"type"`
	Radius          float64  `yaml:"radius"`
	WidthSegments   int      `yaml:"width_segments"`
	HeightSegments  int      `yaml:"height_segments"`
	PhiStartDeg     float64  `yaml:"phi_start_deg"`
	PhiLengthDeg    *float64 `yaml:"phi_length_deg"`
	ThetaStartDeg   float64  `yaml:"theta_start_deg"`
	ThetaLengthDeg  *float64 `yaml:"theta_length_deg"`
	Segments        int      `yaml:"segments"`
	Tube            float64  `yaml:"tube"`
	RadialSegments  int      `yaml:"radial_segments"`
	TubularSegments int      `yaml:"tubular_segments"`
	RadiusTop       float64  `yaml:"radius_top"`
	RadiusBottom    float64  `yaml:"radius_bottom"`
	Height          float64  `yaml:"height"`
}

type IntroSpec struct {
	ScaleFrom     float64 `yaml:"scale_from"`
	ScaleDuration float64 `yaml:"scale_duration"`
	ScaleEase     string  `yaml:"scale_ease"`
	YawFromDeg    float64 `yaml:"yaw_from_deg"`
	YawDuration   float64 `yaml:"yaw_duration"`
	YawEase       string  `yaml:"yaw_ease"`
}

type PulseSpec struct {
	Targets           []string `yaml:"targets"`
	Scale             float64  `yaml:"scale"`
	Duration          float64  `yaml:"duration"`
	Ease              string   `yaml:"ease"`
	EmissiveTarget    string   `yaml:"emissive_target"`
	EmissiveIntensity float64  `yaml:"emissive_intensity"`
	EmissiveDuration  float64  `yaml:"emissive_duration"`
	EmissiveEase      string   `yaml:"emissive_ease"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or def when the field was omitted.
func (c *YAMLColor) Or(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}
