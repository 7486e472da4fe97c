package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

type Intersection struct {
	Distance float64
	Point    mgl64.Vec3
	Object   *Node
	Face     int
}

type Raycaster struct {
	Ray  Ray
	Near float64
	Far  float64
}

func NewRaycaster() *Raycaster {
	return &Raycaster{Far: math.Inf(1)}
}

// SetFromCamera aims the ray from the camera through ndc (x right, y up, both in [-1,1]).
func (rc *Raycaster) SetFromCamera(ndc mgl64.Vec2, cam *PerspectiveCamera) {
	target := cam.Unproject(mgl64.Vec3{ndc[0], ndc[1], 0.5})
	rc.Ray = Ray{Origin: cam.Position, Direction: target.Sub(cam.Position).Normalize()}
}

// IntersectObjects tests nodes (and their descendants if recursive) and returns
// hits sorted nearest first.
func (rc *Raycaster) IntersectObjects(nodes []*Node, recursive bool) []Intersection {
	var hits []Intersection
	for _, n := range nodes {
		hits = rc.collect(n, recursive, hits)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func (rc *Raycaster) IntersectObject(n *Node, recursive bool) []Intersection {
	return rc.IntersectObjects([]*Node{n}, recursive)
}

func (rc *Raycaster) collect(n *Node, recursive bool, hits []Intersection) []Intersection {
	if n == nil {
		return hits
	}
	if n.IsMesh() {
		hits = rc.intersectMesh(n, hits)
	}
	if recursive {
		for _, c := range n.Children {
			hits = rc.collect(c, true, hits)
		}
	}
	return hits
}

func (rc *Raycaster) intersectMesh(n *Node, hits []Intersection) []Intersection {
	world := n.WorldMatrix()
	if math.Abs(world.Det()) < 1e-12 {
		return hits
	}
	inv := world.Inv()
	origin := mgl64.TransformCoordinate(rc.Ray.Origin, inv)
	dir := mgl64.TransformNormal(rc.Ray.Direction, inv)

	// Reject by bounding sphere before walking triangles.
	center, radius := n.Geometry.BoundingSphere()
	dd := dir.Dot(dir)
	if dd == 0 {
		return hits
	}
	tca := center.Sub(origin).Dot(dir) / dd
	closest := origin.Add(dir.Mul(tca))
	if closest.Sub(center).Len() > radius {
		return hits
	}

	cull, flip := true, false
	switch n.Material.Side {
	case DoubleSide:
		cull = false
	case BackSide:
		flip = true
	}

	for i := 0; i < n.Geometry.Triangles(); i++ {
		a, b, c := n.Geometry.Triangle(i)
		if flip {
			a, c = c, a
		}
		t, ok := intersectTriangle(origin, dir, a, b, c, cull)
		if !ok || t < rc.Near || t > rc.Far {
			continue
		}
		hits = append(hits, Intersection{
			Distance: t,
			Point:    rc.Ray.At(t),
			Object:   n,
			Face:     i,
		})
	}
	return hits
}

// intersectTriangle is Möller-Trumbore. t is in units of dir, so a local-space
// ray built from a normalized world ray yields world distances.
func intersectTriangle(origin, dir, a, b, c mgl64.Vec3, cullBack bool) (float64, bool) {
	const eps = 1e-12
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if cullBack {
		if det < eps {
			return 0, false
		}
	} else if math.Abs(det) < eps {
		return 0, false
	}
	invDet := 1 / det
	s := origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}
