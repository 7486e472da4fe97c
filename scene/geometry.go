package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidGeometry = errors.New("scene: invalid geometry")

// Geometry is an indexed triangle list in local space.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []uint32

	center mgl64.Vec3
	radius float64
}

func (g *Geometry) Triangles() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

// Triangle returns the corners of face i.
func (g *Geometry) Triangle(i int) (a, b, c mgl64.Vec3) {
	return g.Positions[g.Indices[3*i]], g.Positions[g.Indices[3*i+1]], g.Positions[g.Indices[3*i+2]]
}

// BoundingSphere returns a sphere enclosing every vertex.
func (g *Geometry) BoundingSphere() (mgl64.Vec3, float64) {
	return g.center, g.radius
}

func (g *Geometry) computeBounds() {
	if len(g.Positions) == 0 {
		return
	}
	lo, hi := g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	g.center = lo.Add(hi).Mul(0.5)
	g.radius = 0
	for _, p := range g.Positions {
		g.radius = math.Max(g.radius, p.Sub(g.center).Len())
	}
}

func (g *Geometry) vertex(p, n mgl64.Vec3) uint32 {
	g.Positions = append(g.Positions, p)
	g.Normals = append(g.Normals, n)
	return uint32(len(g.Positions) - 1)
}

func (g *Geometry) face(a, b, c uint32) {
	g.Indices = append(g.Indices, a, b, c)
}

// NewSphere builds a UV sphere segment. phi sweeps around Y, theta from the
// top pole downward.
func NewSphere(radius float64, widthSegments, heightSegments int, phiStart, phiLength, thetaStart, thetaLength float64) (*Geometry, error) {
	if radius <= 0 || widthSegments < 3 || heightSegments < 2 {
		return nil, fmt.Errorf("%w: sphere radius=%v segments=%dx%d", ErrInvalidGeometry, radius, widthSegments, heightSegments)
	}
	thetaEnd := math.Min(thetaStart+thetaLength, math.Pi)

	g := &Geometry{}
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := phiStart + u*phiLength
			theta := thetaStart + v*thetaLength
			p := mgl64.Vec3{
				-radius * math.Cos(phi) * math.Sin(theta),
				radius * math.Cos(theta),
				radius * math.Sin(phi) * math.Sin(theta),
			}
			grid[iy] = append(grid[iy], g.vertex(p, p.Normalize()))
		}
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 || thetaStart > 0 {
				g.face(a, b, d)
			}
			if iy != heightSegments-1 || thetaEnd < math.Pi {
				g.face(b, c, d)
			}
		}
	}
	g.computeBounds()
	return g, nil
}

// NewFullSphere is NewSphere over the whole surface.
func NewFullSphere(radius float64, widthSegments, heightSegments int) (*Geometry, error) {
	return NewSphere(radius, widthSegments, heightSegments, 0, 2*math.Pi, 0, math.Pi)
}

// NewCircle builds a flat disc in the XY plane facing +Z.
func NewCircle(radius float64, segments int) (*Geometry, error) {
	if radius <= 0 || segments < 3 {
		return nil, fmt.Errorf("%w: circle radius=%v segments=%d", ErrInvalidGeometry, radius, segments)
	}
	g := &Geometry{}
	normal := mgl64.Vec3{0, 0, 1}
	center := g.vertex(mgl64.Vec3{}, normal)
	for s := 0; s <= segments; s++ {
		a := float64(s) / float64(segments) * 2 * math.Pi
		g.vertex(mgl64.Vec3{radius * math.Cos(a), radius * math.Sin(a), 0}, normal)
	}
	for i := 1; i <= segments; i++ {
		g.face(uint32(i), uint32(i+1), center)
	}
	g.computeBounds()
	return g, nil
}

// NewTorus builds a ring in the XY plane around the Z axis.
func NewTorus(radius, tube float64, radialSegments, tubularSegments int) (*Geometry, error) {
	if radius <= 0 || tube <= 0 || radialSegments < 3 || tubularSegments < 3 {
		return nil, fmt.Errorf("%w: torus radius=%v tube=%v segments=%dx%d", ErrInvalidGeometry, radius, tube, radialSegments, tubularSegments)
	}
	g := &Geometry{}
	for j := 0; j <= radialSegments; j++ {
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			v := float64(j) / float64(radialSegments) * 2 * math.Pi
			p := mgl64.Vec3{
				(radius + tube*math.Cos(v)) * math.Cos(u),
				(radius + tube*math.Cos(v)) * math.Sin(u),
				tube * math.Sin(v),
			}
			center := mgl64.Vec3{radius * math.Cos(u), radius * math.Sin(u), 0}
			g.vertex(p, p.Sub(center).Normalize())
		}
	}
	row := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			g.face(a, b, d)
			g.face(b, c, d)
		}
	}
	g.computeBounds()
	return g, nil
}

// NewCylinder builds a capped cylinder along Y, centered at the origin.
func NewCylinder(radiusTop, radiusBottom, height float64, radialSegments int) (*Geometry, error) {
	if radiusTop < 0 || radiusBottom < 0 || radiusTop+radiusBottom == 0 || height <= 0 || radialSegments < 3 {
		return nil, fmt.Errorf("%w: cylinder top=%v bottom=%v height=%v segments=%d", ErrInvalidGeometry, radiusTop, radiusBottom, height, radialSegments)
	}
	g := &Geometry{}
	half := height / 2
	slope := (radiusBottom - radiusTop) / height

	var rows [2][]uint32
	for y := 0; y <= 1; y++ {
		r := float64(y)*(radiusBottom-radiusTop) + radiusTop
		for x := 0; x <= radialSegments; x++ {
			theta := float64(x) / float64(radialSegments) * 2 * math.Pi
			sin, cos := math.Sincos(theta)
			p := mgl64.Vec3{r * sin, -float64(y)*height + half, r * cos}
			n := mgl64.Vec3{sin, slope, cos}.Normalize()
			rows[y] = append(rows[y], g.vertex(p, n))
		}
	}
	for x := 0; x < radialSegments; x++ {
		a, b, c, d := rows[0][x], rows[1][x], rows[1][x+1], rows[0][x+1]
		g.face(a, b, d)
		g.face(b, c, d)
	}

	addCap := func(top bool) {
		r, sign := radiusBottom, -1.0
		if top {
			r, sign = radiusTop, 1.0
		}
		if r == 0 {
			return
		}
		normal := mgl64.Vec3{0, sign, 0}
		center := g.vertex(mgl64.Vec3{0, half * sign, 0}, normal)
		first := uint32(len(g.Positions))
		for x := 0; x <= radialSegments; x++ {
			theta := float64(x) / float64(radialSegments) * 2 * math.Pi
			sin, cos := math.Sincos(theta)
			g.vertex(mgl64.Vec3{r * sin, half * sign, r * cos}, normal)
		}
		for x := uint32(0); x < uint32(radialSegments); x++ {
			i := first + x
			if top {
				g.face(i, i+1, center)
			} else {
				g.face(i+1, i, center)
			}
		}
	}
	addCap(true)
	addCap(false)

	g.computeBounds()
	return g, nil
}
