package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultZoomScale is the distance factor of one wheel notch.
	DefaultZoomScale = 0.95

	polarEpsilon = 1e-6
)

// spherical coordinates around the orbit target. Phi is the polar angle from
// +Y, Theta the azimuth around Y measured from +Z.
type spherical struct {
	Radius, Phi, Theta float64
}

func sphericalFrom(v mgl32.Vec3) spherical {
	r := float64(v.Len())
	if r == 0 {
		return spherical{}
	}
	y := float64(v.Y()) / r
	y = math.Max(-1, math.Min(1, y))
	return spherical{
		Radius: r,
		Theta:  math.Atan2(float64(v.X()), float64(v.Z())),
		Phi:    math.Acos(y),
	}
}

func (s spherical) vec() mgl32.Vec3 {
	sinPhi := math.Sin(s.Phi) * s.Radius
	return mgl32.Vec3{
		float32(sinPhi * math.Sin(s.Theta)),
		float32(math.Cos(s.Phi) * s.Radius),
		float32(sinPhi * math.Cos(s.Theta)),
	}
}

// OrbitControls orbits a camera around a target point. Input accumulates a
// pending rotation that Update applies a fraction of each frame, giving the
// camera inertia.
type OrbitControls struct {
	Camera *Perspective
	Target mgl32.Vec3

	MinDistance float32
	MaxDistance float32

	// DampingFactor is the fraction of the pending rotation applied per
	// Update. Zero applies it all at once.
	DampingFactor float32
	RotateSpeed   float32
	ZoomScale     float32

	delta spherical
	scale float64
}

// NewOrbitControls attaches controls to cam, orbiting target. The camera is
// pointed at target immediately.
func NewOrbitControls(cam *Perspective, target mgl32.Vec3) *OrbitControls {
	cam.Target = target
	return &OrbitControls{
		Camera:      cam,
		Target:      target,
		MinDistance: 0,
		MaxDistance: float32(math.Inf(1)),
		RotateSpeed: 1,
		ZoomScale:   DefaultZoomScale,
		scale:       1,
	}
}

// Drag rotates by a pointer movement of (dx, dy) pixels in a viewport
// viewportHeight pixels tall. A full-height drag is one turn.
func (o *OrbitControls) Drag(dx, dy float32, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	h := float64(viewportHeight)
	o.delta.Theta -= 2 * math.Pi * float64(dx) / h * float64(o.RotateSpeed)
	o.delta.Phi -= 2 * math.Pi * float64(dy) / h * float64(o.RotateSpeed)
}

// Wheel zooms by wheel notches; positive moves closer.
func (o *OrbitControls) Wheel(notches float32) {
	if notches == 0 {
		return
	}
	o.scale *= math.Pow(float64(o.ZoomScale), float64(notches))
}

// Distance returns the current camera distance from the target.
func (o *OrbitControls) Distance() float32 {
	return o.Camera.Position.Sub(o.Target).Len()
}

// Update moves the camera. It must be called every frame for damping to
// settle.
func (o *OrbitControls) Update() {
	s := sphericalFrom(o.Camera.Position.Sub(o.Target))

	if o.DampingFactor > 0 {
		f := float64(o.DampingFactor)
		s.Theta += o.delta.Theta * f
		s.Phi += o.delta.Phi * f
	} else {
		s.Theta += o.delta.Theta
		s.Phi += o.delta.Phi
	}
	s.Phi = math.Max(polarEpsilon, math.Min(math.Pi-polarEpsilon, s.Phi))

	s.Radius *= o.scale
	s.Radius = math.Max(float64(o.MinDistance), math.Min(float64(o.MaxDistance), s.Radius))

	o.Camera.Position = o.Target.Add(s.vec())
	o.Camera.Target = o.Target

	if o.DampingFactor > 0 {
		keep := 1 - float64(o.DampingFactor)
		o.delta.Theta *= keep
		o.delta.Phi *= keep
	} else {
		o.delta = spherical{}
	}
	o.scale = 1
}
