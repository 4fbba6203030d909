package shadow

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAABB(t *testing.T) {
	b := AABB{Min: mgl32.Vec3{-1, 0, -1}, Max: mgl32.Vec3{1, 2, 1}}

	if c := b.Center(); c != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Center = %v", c)
	}
	if r := b.Radius(); math.Abs(float64(r)-math.Sqrt(3)) > 1e-6 {
		t.Errorf("Radius = %v, want sqrt(3)", r)
	}
}

func TestLightMatrixContainsBounds(t *testing.T) {
	b := AABB{Min: mgl32.Vec3{-3, -1.2, -3}, Max: mgl32.Vec3{3, 3.1, 3}}
	dirs := []mgl32.Vec3{
		mgl32.Vec3{3, 5, 6}.Normalize(),
		{0, 1, 0},
		mgl32.Vec3{-1, 0.2, 0}.Normalize(),
	}

	for _, dir := range dirs {
		m := CalculateDirectionalLightMatrix(dir, b)
		for i := 0; i < 8; i++ {
			corner := mgl32.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
			if i&1 != 0 {
				corner[0] = b.Max.X()
			}
			if i&2 != 0 {
				corner[1] = b.Max.Y()
			}
			if i&4 != 0 {
				corner[2] = b.Max.Z()
			}
			p := m.Mul4x1(corner.Vec4(1))
			for axis := 0; axis < 3; axis++ {
				if v := p[axis] / p[3]; v < -1 || v > 1 {
					t.Errorf("dir %v: corner %v outside light clip space: %v", dir, corner, p)
					break
				}
			}
		}
	}
}

func TestLightMatrixDepthOrder(t *testing.T) {
	b := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	dir := mgl32.Vec3{0, 0, 1}
	m := CalculateDirectionalLightMatrix(dir, b)

	near := m.Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	far := m.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	if near.Z() >= far.Z() {
		t.Errorf("point nearer the light has depth %v >= %v", near.Z(), far.Z())
	}
}

func TestBiasMatrix(t *testing.T) {
	m := BiasMatrix()
	tests := []struct{ in, want mgl32.Vec3 }{
		{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{0, 0, 0}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}},
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}},
	}
	for _, tt := range tests {
		got := m.Mul4x1(tt.in.Vec4(1)).Vec3()
		if !got.ApproxEqualThreshold(tt.want, 1e-6) {
			t.Errorf("Bias(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
