// Package pokeball assembles the pokeball node tree from its prefab spec and
// owns the decorative animations that run on it.
package pokeball

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/prefabs"
	"github.com/milk9111/pokeball/scene"
	"golang.org/x/image/colornames"
)

// ButtonFlag marks parts of the front button in Node.UserData.
const ButtonFlag = "is_button"

const defaultSegments = 32

// Build creates the pokeball group. Materials flagged env_map reflect env.
func Build(spec *prefabs.PokeballSpec, env *scene.Environment) (*scene.Node, error) {
	if spec == nil {
		return nil, fmt.Errorf("pokeball: nil spec")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	materials := make(map[string]*scene.Material, len(spec.Materials))
	for name, ms := range spec.Materials {
		m := buildMaterial(ms, env)
		m.Name = name
		materials[name] = m
	}

	segments := spec.Segments
	if segments <= 0 {
		segments = defaultSegments
	}

	root := scene.NewGroup(spec.Name)
	root.UserData["interactable"] = true
	for _, ps := range spec.Parts {
		n, err := buildPart(ps, materials, segments)
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	return root, nil
}

func buildPart(ps prefabs.PartSpec, materials map[string]*scene.Material, segments int) (*scene.Node, error) {
	var n *scene.Node
	if ps.Geometry != nil {
		g, err := buildGeometry(*ps.Geometry, segments)
		if err != nil {
			return nil, fmt.Errorf("pokeball: part %q: %w", ps.Name, err)
		}
		n = scene.NewMesh(ps.Name, g, materials[ps.Material])
	} else {
		n = scene.NewGroup(ps.Name)
	}

	n.Position = mgl64.Vec3(ps.Position)
	n.Rotation = mgl64.Vec3{
		mgl64.DegToRad(ps.RotationDeg[0]),
		mgl64.DegToRad(ps.RotationDeg[1]),
		mgl64.DegToRad(ps.RotationDeg[2]),
	}
	n.CastShadow = ps.CastShadow
	n.ReceiveShadow = ps.ReceiveShadow
	for k, v := range ps.UserData {
		n.UserData[k] = v
	}

	for _, cs := range ps.Children {
		c, err := buildPart(cs, materials, segments)
		if err != nil {
			return nil, err
		}
		n.Add(c)
	}
	return n, nil
}

func buildGeometry(gs prefabs.GeometrySpec, segments int) (*scene.Geometry, error) {
	or := func(v, def int) int {
		if v > 0 {
			return v
		}
		return def
	}
	deg := func(v *float64, def float64) float64 {
		if v == nil {
			return def
		}
		return mgl64.DegToRad(*v)
	}

	switch gs.Type {
	case "sphere":
		return scene.NewSphere(gs.Radius,
			or(gs.WidthSegments, segments), or(gs.HeightSegments, segments),
			mgl64.DegToRad(gs.PhiStartDeg), deg(gs.PhiLengthDeg, 2*math.Pi),
			mgl64.DegToRad(gs.ThetaStartDeg), deg(gs.ThetaLengthDeg, math.Pi))
	case "circle":
		return scene.NewCircle(gs.Radius, or(gs.Segments, segments))
	case "torus":
		return scene.NewTorus(gs.Radius, gs.Tube, or(gs.RadialSegments, 16), or(gs.TubularSegments, segments))
	case "cylinder":
		return scene.NewCylinder(gs.RadiusTop, gs.RadiusBottom, gs.Height, or(gs.RadialSegments, segments))
	}
	return nil, fmt.Errorf("%w: type %q", scene.ErrInvalidGeometry, gs.Type)
}

func buildMaterial(ms prefabs.MaterialSpec, env *scene.Environment) *scene.Material {
	m := scene.NewStandardMaterial()
	m.Color = scene.FromColor(ms.Color.Or(colornames.White))
	m.Metalness = ms.Metalness
	m.Roughness = ms.Roughness
	m.Clearcoat = ms.Clearcoat
	m.ClearcoatRoughness = ms.ClearcoatRoughness
	m.Emissive = scene.FromColor(ms.Emissive.Or(colornames.Black))
	if ms.EmissiveIntensity != nil {
		m.EmissiveIntensity = *ms.EmissiveIntensity
	}
	m.Transparent = ms.Transparent
	if ms.Opacity != nil {
		m.Opacity = *ms.Opacity
	}
	if ms.EnvMap {
		m.EnvMap = env
		m.EnvMapIntensity = ms.EnvMapIntensity
	}
	switch ms.Side {
	case "double":
		m.Side = scene.DoubleSide
	case "back":
		m.Side = scene.BackSide
	default:
		m.Side = scene.FrontSide
	}
	return m
}
