package shadow

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestResolution(t *testing.T) {
	tests := []struct {
		size int
		want int32
	}{
		{0, MinResolution},
		{100, MinResolution},
		{2048, 2048},
		{3000, 4096},
		{1 << 20, MaxResolution},
	}
	for _, tt := range tests {
		if got := Resolution(tt.size); got != tt.want {
			t.Errorf("Resolution(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestRenderWithoutMapOnlyFits(t *testing.T) {
	var sm *Map
	toLight := mgl32.Vec3{3, 5, 6}.Normalize()
	bounds := AABB{Min: mgl32.Vec3{-3, -1.2, -3}, Max: mgl32.Vec3{3, 3.1, 3}}

	drew := false
	vp := sm.Render(toLight, bounds, func(mgl32.Mat4) { drew = true })
	if drew {
		t.Error("depth pass drawn without a shadow map")
	}
	if want := CalculateDirectionalLightMatrix(toLight, bounds); vp != want {
		t.Errorf("Render = %v, want %v", vp, want)
	}
}
