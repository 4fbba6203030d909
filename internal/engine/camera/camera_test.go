package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newRig() (*Perspective, *OrbitControls) {
	cam := NewPerspective(45, 16.0/9.0, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 1.6, 4}
	ctl := NewOrbitControls(cam, mgl32.Vec3{})
	ctl.MinDistance = 2
	ctl.MaxDistance = 8
	ctl.DampingFactor = 0.05
	return cam, ctl
}

func TestSetAspect(t *testing.T) {
	cam := NewPerspective(45, 1, 0.1, 100)

	cam.SetAspect(1920, 1080)
	if math.Abs(float64(cam.Aspect)-16.0/9.0) > 1e-6 {
		t.Errorf("Aspect = %v, want 16/9", cam.Aspect)
	}

	cam.SetAspect(0, 0)
	if math.Abs(float64(cam.Aspect)-16.0/9.0) > 1e-6 {
		t.Errorf("zero size changed aspect to %v", cam.Aspect)
	}
}

func TestViewLooksAtTarget(t *testing.T) {
	cam, _ := newRig()

	// The target sits on the view axis, in front of the camera.
	p := cam.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(p.X())) > 1e-5 || math.Abs(float64(p.Y())) > 1e-5 {
		t.Errorf("target in view space = %v, want on -Z axis", p)
	}
	if p.Z() >= 0 {
		t.Errorf("target z = %v, want negative", p.Z())
	}
}

func TestUpdateWithoutInputKeepsPosition(t *testing.T) {
	cam, ctl := newRig()
	start := cam.Position

	for i := 0; i < 10; i++ {
		ctl.Update()
	}
	if !cam.Position.ApproxEqualThreshold(start, 1e-5) {
		t.Errorf("position drifted from %v to %v", start, cam.Position)
	}
}

func TestDragIsDamped(t *testing.T) {
	cam, ctl := newRig()
	start := sphericalFrom(cam.Position)

	ctl.Drag(100, 0, 720)
	want := -2 * math.Pi * 100 / 720

	ctl.Update()
	first := sphericalFrom(cam.Position).Theta - start.Theta
	if math.Abs(first-want*0.05) > 1e-4 {
		t.Errorf("first step = %v, want %v", first, want*0.05)
	}

	for i := 0; i < 400; i++ {
		ctl.Update()
	}
	total := sphericalFrom(cam.Position).Theta - start.Theta
	if math.Abs(total-want) > 1e-3 {
		t.Errorf("settled rotation = %v, want %v", total, want)
	}
	if d := ctl.Distance(); math.Abs(float64(d)-float64(start.Radius)) > 1e-4 {
		t.Errorf("rotation changed distance to %v", d)
	}
}

func TestDragWithoutDampingAppliesAtOnce(t *testing.T) {
	cam, ctl := newRig()
	ctl.DampingFactor = 0
	start := sphericalFrom(cam.Position)

	ctl.Drag(0, -90, 360)
	ctl.Update()

	got := sphericalFrom(cam.Position).Phi - start.Phi
	if want := math.Pi / 2; math.Abs(got-want) > 1e-4 {
		t.Errorf("phi change = %v, want %v", got, want)
	}
}

func TestPolarAngleIsClamped(t *testing.T) {
	cam, ctl := newRig()
	ctl.DampingFactor = 0

	ctl.Drag(0, 10000, 100)
	ctl.Update()

	if y := cam.Position.Y(); y <= 0 {
		t.Errorf("camera went over the top, y = %v", y)
	}
	if math.IsNaN(float64(cam.Position.X())) {
		t.Fatal("position is NaN")
	}
}

func TestWheelZoomsWithinLimits(t *testing.T) {
	tests := []struct {
		name    string
		notches float32
		want    func(d float32) bool
	}{
		{"one notch in", 1, func(d float32) bool { return math.Abs(float64(d)-4.308131*0.95) < 1e-3 }},
		{"far in clamps to min", 100, func(d float32) bool { return math.Abs(float64(d)-2) < 1e-4 }},
		{"far out clamps to max", -100, func(d float32) bool { return math.Abs(float64(d)-8) < 1e-4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ctl := newRig()
			ctl.Wheel(tt.notches)
			ctl.Update()
			if d := ctl.Distance(); !tt.want(d) {
				t.Errorf("distance = %v", d)
			}
		})
	}
}

func TestPixelRatio(t *testing.T) {
	tests := []struct {
		window, drawable int
		limit            float32
		want             float32
	}{
		{1280, 1280, 2, 1},
		{1280, 2560, 2, 2},
		{1280, 3840, 2, 2},
		{1280, 3840, 0, 3},
		{0, 100, 2, 1},
	}
	for _, tt := range tests {
		if got := PixelRatio(tt.window, tt.drawable, tt.limit); got != tt.want {
			t.Errorf("PixelRatio(%d, %d, %v) = %v, want %v", tt.window, tt.drawable, tt.limit, got, tt.want)
		}
	}
}

func TestRenderSize(t *testing.T) {
	w, h := RenderSize(1280, 720, 2)
	if w != 2560 || h != 1440 {
		t.Errorf("RenderSize = %dx%d, want 2560x1440", w, h)
	}
	w, h = RenderSize(0, 0, 2)
	if w != 1 || h != 1 {
		t.Errorf("RenderSize(0,0) = %dx%d, want 1x1", w, h)
	}
}
