package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func mustSphere(t *testing.T, r float64) *Geometry {
	t.Helper()
	g, err := NewFullSphere(r, 24, 16)
	require.NoError(t, err)
	return g
}

func TestGeometryCounts(t *testing.T) {
	cases := []struct {
		name  string
		build func() (*Geometry, error)
		tris  int
	}{
		{"full_sphere", func() (*Geometry, error) { return NewFullSphere(1, 8, 4) }, 8*4*2 - 8*2},
		{"hemisphere", func() (*Geometry, error) { return NewSphere(1, 8, 4, 0, 2*math.Pi, 0, math.Pi/2) }, 8*4*2 - 8},
		{"circle", func() (*Geometry, error) { return NewCircle(1, 12) }, 12},
		{"torus", func() (*Geometry, error) { return NewTorus(2, 0.5, 6, 10) }, 6 * 10 * 2},
		{"cylinder", func() (*Geometry, error) { return NewCylinder(1, 1, 2, 10) }, 10*2 + 10*2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := c.build()
			require.NoError(t, err)
			require.Equal(t, c.tris, g.Triangles())
			require.Len(t, g.Normals, len(g.Positions))
		})
	}
}

func TestGeometryRejectsBadParams(t *testing.T) {
	_, err := NewFullSphere(0, 8, 8)
	require.True(t, errors.Is(err, ErrInvalidGeometry))
	_, err = NewCircle(1, 2)
	require.True(t, errors.Is(err, ErrInvalidGeometry))
	_, err = NewTorus(1, 0, 8, 8)
	require.True(t, errors.Is(err, ErrInvalidGeometry))
	_, err = NewCylinder(0, 0, 1, 8)
	require.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestBoundingSphere(t *testing.T) {
	g := mustSphere(t, 5)
	c, r := g.BoundingSphere()
	require.InDelta(t, 0, c.Len(), 1e-9)
	require.InDelta(t, 5, r, 1e-9)
}

func TestNodeHierarchy(t *testing.T) {
	root := NewGroup("root")
	ball := NewGroup("Ball")
	part := NewGroup("Part")
	leaf := NewMesh("Leaf", mustSphere(t, 1), NewStandardMaterial())
	root.Add(ball)
	ball.Add(part)
	part.Add(leaf)

	require.True(t, leaf.HasAncestorNamed("Ball"))
	require.False(t, ball.HasAncestorNamed("Ball"), "the chain starts above the node")
	require.Same(t, part, root.FindByName("Part"))
	require.Nil(t, root.FindByName("missing"))

	other := NewGroup("other")
	other.Add(part)
	require.Empty(t, ball.Children)
	require.Same(t, other, part.Parent)
	require.False(t, leaf.HasAncestorNamed("Ball"))
}

func TestWorldMatrixComposes(t *testing.T) {
	parent := NewGroup("p")
	parent.Position = mgl64.Vec3{10, 0, 0}
	parent.Rotation = mgl64.Vec3{0, math.Pi / 2, 0}
	child := NewGroup("c")
	child.Position = mgl64.Vec3{0, 0, 5}
	parent.Add(child)

	got := mgl64.TransformCoordinate(mgl64.Vec3{}, child.WorldMatrix())
	require.InDelta(t, 15, got[0], 1e-9)
	require.InDelta(t, 0, got[1], 1e-9)
	require.InDelta(t, 0, got[2], 1e-9)
}

func TestRaycastHitsNearestFirst(t *testing.T) {
	mat := NewStandardMaterial()
	mat.Side = DoubleSide
	near := NewMesh("near", mustSphere(t, 2), mat)
	near.Position = mgl64.Vec3{0, 0, 10}
	far := NewMesh("far", mustSphere(t, 2), mat)

	rc := NewRaycaster()
	rc.Ray = Ray{Origin: mgl64.Vec3{0.13, 0.07, 50}, Direction: mgl64.Vec3{0, 0, -1}}
	hits := rc.IntersectObjects([]*Node{far, near}, false)
	require.NotEmpty(t, hits)
	require.Same(t, near, hits[0].Object)
	require.InDelta(t, 38, hits[0].Distance, 0.1)
	for i := 1; i < len(hits); i++ {
		require.LessOrEqual(t, hits[i-1].Distance, hits[i].Distance)
	}
}

func TestRaycastFrontSideCullsInterior(t *testing.T) {
	mesh := NewMesh("s", mustSphere(t, 2), NewStandardMaterial())
	rc := NewRaycaster()
	rc.Ray = Ray{Origin: mgl64.Vec3{0.13, 0.07, 10}, Direction: mgl64.Vec3{0, 0, -1}}
	require.Len(t, rc.IntersectObject(mesh, false), 1, "only the outer front face is hit")

	mesh.Material.Side = DoubleSide
	require.Len(t, rc.IntersectObject(mesh, false), 2)

	mesh.Material.Side = BackSide
	hits := rc.IntersectObject(mesh, false)
	require.Len(t, hits, 1)
	require.InDelta(t, 12, hits[0].Distance, 0.1)
}

func TestRaycastRecursiveAndScaled(t *testing.T) {
	group := NewGroup("g")
	group.Scale = mgl64.Vec3{2, 2, 2}
	mesh := NewMesh("s", mustSphere(t, 1), NewStandardMaterial())
	group.Add(mesh)

	rc := NewRaycaster()
	rc.Ray = Ray{Origin: mgl64.Vec3{0.13, 0.07, 10}, Direction: mgl64.Vec3{0, 0, -1}}
	require.Empty(t, rc.IntersectObject(group, false))
	hits := rc.IntersectObject(group, true)
	require.Len(t, hits, 1)
	require.InDelta(t, 8, hits[0].Distance, 0.1)

	rc.Ray.Origin = mgl64.Vec3{5, 0, 10}
	require.Empty(t, rc.IntersectObject(group, true))
}

func TestCameraRayThroughCenter(t *testing.T) {
	cam := NewPerspectiveCamera(45, 16.0/9.0, 1, 1000)
	cam.Position = mgl64.Vec3{-30, 20, 80}
	cam.LookAt(mgl64.Vec3{})

	rc := NewRaycaster()
	rc.SetFromCamera(mgl64.Vec2{0, 0}, cam)
	want := cam.Position.Mul(-1).Normalize()
	require.InDelta(t, 1, rc.Ray.Direction.Dot(want), 1e-9)

	ndc := cam.Project(mgl64.Vec3{3, -2, 1})
	back := cam.Unproject(ndc)
	require.InDelta(t, 3, back[0], 1e-6)
	require.InDelta(t, -2, back[1], 1e-6)
	require.InDelta(t, 1, back[2], 1e-6)
}

func TestEnvironmentSample(t *testing.T) {
	env := &Environment{Top: Hex(0x444466), Bottom: Hex(0xaaaacc)}
	require.Equal(t, env.Top, env.Sample(1))
	bottom := env.Sample(-1)
	for k := 0; k < 3; k++ {
		require.InDelta(t, env.Bottom[k], bottom[k], 1e-12)
	}
	require.Equal(t, env.Top, env.Sample(5))
}
