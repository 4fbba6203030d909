package shadow

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the center point of the AABB.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns the distance from center to corner (half-diagonal).
func (b AABB) Radius() float32 {
	return b.Max.Sub(b.Min).Len() / 2
}

// CalculateDirectionalLightMatrix computes view-projection for shadow map.
// lightDir is the normalized direction TO the light.
// sceneBounds is the AABB of the scene to be shadowed.
func CalculateDirectionalLightMatrix(lightDir mgl32.Vec3, sceneBounds AABB) mgl32.Mat4 {
	center := sceneBounds.Center()
	radius := sceneBounds.Radius()

	// Far enough back that the whole box is in front of the near plane.
	lightDistance := radius * 2.0
	lightPos := center.Add(lightDir.Mul(lightDistance))

	up := mgl32.Vec3{0, 1, 0}
	if float32(math.Abs(float64(lightDir.Y()))) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}

	view := mgl32.LookAtV(lightPos, center, up)

	// Padding avoids clipping at the map edges.
	padding := radius * 0.1
	halfSize := radius + padding
	near := float32(0.1)
	far := lightDistance + radius + padding

	proj := mgl32.Ortho(-halfSize, halfSize, -halfSize, halfSize, near, far)

	return proj.Mul4(view)
}

// BiasMatrix maps clip space [-1, 1] to texture space [0, 1].
func BiasMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(0.5, 0.5, 0.5).Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))
}
