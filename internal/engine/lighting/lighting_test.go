package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glowstage/internal/config"
)

func TestNewRigFromDefaults(t *testing.T) {
	r, err := NewRig(config.Default().Lighting)
	if err != nil {
		t.Fatalf("NewRig: %v", err)
	}

	if r.Hemisphere.Intensity != 0.7 {
		t.Errorf("hemisphere intensity = %v, want 0.7", r.Hemisphere.Intensity)
	}
	if !r.Key.Color.ApproxEqualThreshold(mgl32.Vec3{1, 1, 1}, 1e-6) {
		t.Errorf("key color = %v, want white", r.Key.Color)
	}
	if !r.Key.CastShadow {
		t.Error("key light should cast shadows")
	}
	if r.Key.Position != (mgl32.Vec3{3, 5, 6}) {
		t.Errorf("key position = %v", r.Key.Position)
	}

	if r.Points.Count != 1 {
		t.Fatalf("point lights = %d, want 1", r.Points.Count)
	}
	back := r.Points.Lights[0]
	if back.Range != 20 || back.Intensity != 1.5 || back.Position != [3]float32{0, 2, -2} {
		t.Errorf("back light = %+v", back)
	}
	// #00fff0: no red, full green, blue just under one.
	if back.Color[0] != 0 || math.Abs(float64(back.Color[1])-1) > 1e-6 || back.Color[2] >= 1 || back.Color[2] < 0.8 {
		t.Errorf("back color = %v", back.Color)
	}
}

func TestNewRigRejectsBadColors(t *testing.T) {
	cfg := config.Default().Lighting
	cfg.SkyColor = "teal"
	cfg.BackColor = "#12"

	if _, err := NewRig(cfg); err == nil {
		t.Fatal("NewRig accepted invalid colors")
	}
}

func TestKeyDirection(t *testing.T) {
	d := Directional{Position: mgl32.Vec3{0, 5, 0}}
	if got := d.Direction(); !got.ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, 1e-6) {
		t.Errorf("Direction = %v, want down", got)
	}

	same := Directional{}
	if got := same.Direction(); got != (mgl32.Vec3{0, -1, 0}) {
		t.Errorf("degenerate Direction = %v, want down", got)
	}
}

func TestHemisphereIrradiance(t *testing.T) {
	h := Hemisphere{Sky: mgl32.Vec3{1, 0, 0}, Ground: mgl32.Vec3{0, 0, 1}, Intensity: 2}

	tests := []struct {
		normal mgl32.Vec3
		want   mgl32.Vec3
	}{
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{2, 0, 0}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, 2}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 1}},
	}
	for _, tt := range tests {
		if got := h.Irradiance(tt.normal); !got.ApproxEqualThreshold(tt.want, 1e-6) {
			t.Errorf("Irradiance(%v) = %v, want %v", tt.normal, got, tt.want)
		}
	}
}

func TestPointLightAttenuation(t *testing.T) {
	l := PointLight{Range: 20}

	if got := l.Attenuation(20); got != 0 {
		t.Errorf("at range: %v, want 0", got)
	}
	if got := l.Attenuation(25); got != 0 {
		t.Errorf("beyond range: %v, want 0", got)
	}
	if l.Attenuation(1) <= l.Attenuation(2) {
		t.Error("attenuation should fall with distance")
	}

	unlimited := PointLight{}
	if got := unlimited.Attenuation(2); math.Abs(float64(got)-0.25) > 1e-6 {
		t.Errorf("unlimited at 2 = %v, want 0.25", got)
	}
}

func TestPointLightBuffer(t *testing.T) {
	b := NewPointLightBuffer()
	for i := 0; i < MaxPointLights; i++ {
		if !b.AddLight(PointLight{Position: [3]float32{float32(i), 0, 0}, Color: [3]float32{1, 0.5, 0}, Intensity: 2, Range: 5}) {
			t.Fatalf("AddLight %d failed", i)
		}
	}
	if b.AddLight(PointLight{}) {
		t.Error("AddLight past capacity succeeded")
	}

	pos := b.Positions()
	if len(pos) != MaxPointLights*3 || pos[3] != 1 {
		t.Errorf("Positions = %v", pos)
	}
	colors := b.Colors()
	if colors[0] != 2 || colors[1] != 1 || colors[2] != 0 {
		t.Errorf("Colors not premultiplied: %v", colors[:3])
	}
	if r := b.Ranges(); len(r) != MaxPointLights || r[0] != 5 {
		t.Errorf("Ranges = %v", r)
	}

	b.SetLights(make([]PointLight, MaxPointLights+3))
	if b.Count != MaxPointLights {
		t.Errorf("SetLights kept %d, want %d", b.Count, MaxPointLights)
	}

	b.Clear()
	if b.Count != 0 || len(b.Lights) != 0 {
		t.Error("Clear left lights behind")
	}
	if pos := b.Positions(); pos[0] != 0 {
		t.Error("cleared buffer still reports positions")
	}
}
