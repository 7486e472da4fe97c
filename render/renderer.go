// Package render rasterizes a scene onto an ebiten image. Triangles are lit
// per vertex, depth sorted back to front and drawn with DrawTriangles.
package render

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pokeball/scene"
	"github.com/milk9111/pokeball/shading"
	"golang.org/x/image/colornames"
)

// DrawTriangles takes uint16 indices.
const maxVertices = 65535

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Shadows is the shadow-map setup carried with the scene. Directional lights
// hold their own frustum.
type Shadows struct {
	Enabled bool
	Type    string
}

type Renderer struct {
	ToneMapping shading.ToneMapping
	Exposure    float64
	Antialias   bool
	Background  color.Color
	Shadows     Shadows

	width  int
	height int

	tris     []triangle
	vertices []ebiten.Vertex
	indices  []uint16
}

type shadedVertex struct {
	screen mgl64.Vec2
	depth  float64
	ok     bool
	color  [4]float32
}

type triangle struct {
	v     [3]int
	depth float64
	lit   []shadedVertex
}

func NewRenderer() *Renderer {
	return &Renderer{
		ToneMapping: shading.ACESFilmicToneMapping,
		Exposure:    1,
		Antialias:   true,
		Background:  colornames.Black,
	}
}

func (r *Renderer) SetSize(width, height int) {
	if width > 0 && height > 0 {
		r.width, r.height = width, height
	}
}

// Triangles reports how many triangles the last Render drew.
func (r *Renderer) Triangles() int {
	return len(r.tris)
}

func (r *Renderer) Render(screen *ebiten.Image, sc *scene.Scene, cam *scene.PerspectiveCamera) {
	if r == nil || screen == nil {
		return
	}
	if r.width == 0 {
		b := screen.Bounds()
		r.width, r.height = b.Dx(), b.Dy()
	}
	screen.Fill(r.Background)
	if sc == nil || cam == nil {
		return
	}

	view := cam.ViewMatrix()
	r.tris = r.tris[:0]
	sc.Root.Traverse(func(n *scene.Node) {
		if !n.IsMesh() || !visible(n) {
			return
		}
		r.collect(n, view, sc, cam)
	})

	// Far to near; view space looks down -Z.
	sort.SliceStable(r.tris, func(i, j int) bool { return r.tris[i].depth < r.tris[j].depth })
	r.flush(screen)
}

func visible(n *scene.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

func (r *Renderer) collect(n *scene.Node, view mgl64.Mat4, sc *scene.Scene, cam *scene.PerspectiveCamera) {
	g, mat := n.Geometry, n.Material
	world := n.WorldMatrix()
	normalMat := world.Mat3().Inv().Transpose()
	viewProj := cam.ProjectionMatrix().Mul4(view)

	lit := make([]shadedVertex, len(g.Positions))
	worldPos := make([]mgl64.Vec3, len(g.Positions))
	for i, p := range g.Positions {
		wp := mgl64.TransformCoordinate(p, world)
		worldPos[i] = wp
		clip := viewProj.Mul4x1(wp.Vec4(1))
		if clip[3] <= cam.Near*0.5 {
			continue
		}
		ndc := clip.Vec3().Mul(1 / clip[3])
		wn := normalMat.Mul3x1(g.Normals[i])
		c, a := shading.Shade(shading.Fragment{Position: wp, Normal: wn, Eye: cam.Position}, mat, sc)
		c = shading.LinearToSRGB(shading.ToneMap(r.ToneMapping, c, r.Exposure))
		lit[i] = shadedVertex{
			screen: mgl64.Vec2{(ndc[0] + 1) / 2 * float64(r.width), (1 - ndc[1]) / 2 * float64(r.height)},
			depth:  view.Mul4x1(wp.Vec4(1))[2],
			ok:     ndc[2] >= -1 && ndc[2] <= 1,
			color:  [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(a)},
		}
	}

	for t := 0; t < g.Triangles(); t++ {
		i0, i1, i2 := int(g.Indices[3*t]), int(g.Indices[3*t+1]), int(g.Indices[3*t+2])
		if !lit[i0].ok || !lit[i1].ok || !lit[i2].ok {
			continue
		}
		if culled(mat.Side, worldPos[i0], worldPos[i1], worldPos[i2], cam.Position) {
			continue
		}
		r.tris = append(r.tris, triangle{
			v:     [3]int{i0, i1, i2},
			depth: (lit[i0].depth + lit[i1].depth + lit[i2].depth) / 3,
			lit:   lit,
		})
	}
}

func culled(side scene.Side, a, b, c, eye mgl64.Vec3) bool {
	if side == scene.DoubleSide {
		return false
	}
	facing := b.Sub(a).Cross(c.Sub(a)).Dot(eye.Sub(a)) > 0
	if side == scene.BackSide {
		return facing
	}
	return !facing
}

func (r *Renderer) flush(screen *ebiten.Image) {
	opts := &ebiten.DrawTrianglesOptions{AntiAlias: r.Antialias}
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, t := range r.tris {
		if len(r.vertices)+3 > maxVertices {
			screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, opts)
			r.vertices = r.vertices[:0]
			r.indices = r.indices[:0]
		}
		base := uint16(len(r.vertices))
		for _, idx := range t.v {
			sv := t.lit[idx]
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   float32(sv.screen[0]),
				DstY:   float32(sv.screen[1]),
				SrcX:   1.5,
				SrcY:   1.5,
				ColorR: sv.color[0],
				ColorG: sv.color[1],
				ColorB: sv.color[2],
				ColorA: sv.color[3],
			})
		}
		r.indices = append(r.indices, base, base+1, base+2)
	}
	if len(r.vertices) > 0 {
		screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, opts)
	}
}

// ParseToneMapping maps scene.yaml names onto shading modes.
func ParseToneMapping(name string) shading.ToneMapping {
	switch name {
	case "none":
		return shading.NoToneMapping
	case "linear":
		return shading.LinearToneMapping
	}
	return shading.ACESFilmicToneMapping
}
