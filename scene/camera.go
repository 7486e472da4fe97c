package scene

import "github.com/go-gl/mathgl/mgl64"

type PerspectiveCamera struct {
	Name string
	// Fov is the vertical field of view in degrees.
	Fov    float64
	Aspect float64
	Near   float64
	Far    float64

	Position mgl64.Vec3
	Up       mgl64.Vec3

	target     mgl64.Vec3
	projection mgl64.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl64.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix must be called after changing Fov, Aspect, Near or Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) LookAt(target mgl64.Vec3) {
	c.target = target
}

func (c *PerspectiveCamera) Target() mgl64.Vec3 {
	return c.target
}

func (c *PerspectiveCamera) ProjectionMatrix() mgl64.Mat4 {
	return c.projection
}

func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.target, c.Up)
}

// Project maps a world point to normalized device coordinates.
func (c *PerspectiveCamera) Project(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, c.projection.Mul4(c.ViewMatrix()))
}

// Unproject maps normalized device coordinates back to world space.
func (c *PerspectiveCamera) Unproject(ndc mgl64.Vec3) mgl64.Vec3 {
	inv := c.projection.Mul4(c.ViewMatrix()).Inv()
	return mgl64.TransformCoordinate(ndc, inv)
}
