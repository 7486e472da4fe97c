package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pokeball/scene"
)

const polarEpsilon = 1e-6

// OrbitControls orbits a camera around Target using spherical coordinates.
// Pointer drags rotate, wheel steps dolly. Update must run once per frame.
type OrbitControls struct {
	Target mgl64.Vec3

	EnableDamping   bool
	DampingFactor   float64
	RotateSpeed     float64
	EnableZoom      bool
	ZoomSpeed       float64
	MinDistance     float64
	MaxDistance     float64
	AutoRotateSpeed float64

	camera         *scene.PerspectiveCamera
	enabled        bool
	autoRotate     bool
	viewportHeight float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64

	rotating bool
	lastX    float64
	lastY    float64
}

func NewOrbitControls(camera *scene.PerspectiveCamera) *OrbitControls {
	return &OrbitControls{
		DampingFactor:   0.05,
		RotateSpeed:     1,
		EnableZoom:      true,
		ZoomSpeed:       1,
		MinDistance:     0,
		MaxDistance:     math.Inf(1),
		AutoRotateSpeed: 2,
		camera:          camera,
		enabled:         true,
		viewportHeight:  1,
		scale:           1,
	}
}

func (o *OrbitControls) Enabled() bool { return o.enabled }

func (o *OrbitControls) SetEnabled(enabled bool) {
	o.enabled = enabled
	if !enabled {
		o.rotating = false
	}
}

func (o *OrbitControls) AutoRotate() bool { return o.autoRotate }

func (o *OrbitControls) SetAutoRotate(on bool) { o.autoRotate = on }

// SetViewportHeight scales drag deltas so a full-height drag is one turn.
func (o *OrbitControls) SetViewportHeight(h float64) {
	if h > 0 {
		o.viewportHeight = h
	}
}

func (o *OrbitControls) PointerDown(x, y float64) {
	if !o.enabled {
		return
	}
	o.rotating = true
	o.lastX, o.lastY = x, y
}

func (o *OrbitControls) PointerMove(x, y float64) {
	if !o.enabled || !o.rotating {
		return
	}
	dx, dy := x-o.lastX, y-o.lastY
	o.lastX, o.lastY = x, y
	o.deltaTheta -= 2 * math.Pi * dx / o.viewportHeight * o.RotateSpeed
	o.deltaPhi -= 2 * math.Pi * dy / o.viewportHeight * o.RotateSpeed
}

func (o *OrbitControls) PointerUp() {
	o.rotating = false
}

// Zoom dollies by wheel steps; positive steps move the camera closer.
func (o *OrbitControls) Zoom(steps float64) {
	if !o.enabled || !o.EnableZoom || steps == 0 {
		return
	}
	o.scale *= math.Pow(math.Pow(0.95, o.ZoomSpeed), steps)
}

// Distance is the current camera-to-target radius.
func (o *OrbitControls) Distance() float64 {
	return o.camera.Position.Sub(o.Target).Len()
}

// Update applies pending rotation and zoom to the camera.
func (o *OrbitControls) Update() {
	if o == nil || o.camera == nil {
		return
	}
	offset := o.camera.Position.Sub(o.Target)
	radius := offset.Len()
	theta, phi := 0.0, math.Pi/2
	if radius > 0 {
		theta = math.Atan2(offset[0], offset[2])
		phi = math.Acos(math.Max(-1, math.Min(1, offset[1]/radius)))
	}

	if o.autoRotate && !o.rotating {
		o.deltaTheta -= 2 * math.Pi / 60 / 60 * o.AutoRotateSpeed
	}

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
	}
	phi = math.Max(polarEpsilon, math.Min(math.Pi-polarEpsilon, phi))

	radius *= o.scale
	radius = math.Max(o.MinDistance, math.Min(o.MaxDistance, radius))

	sinPhi := math.Sin(phi)
	o.camera.Position = o.Target.Add(mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	})
	o.camera.LookAt(o.Target)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
	}
	o.scale = 1
}
