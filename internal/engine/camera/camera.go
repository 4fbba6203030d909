// Package camera provides the perspective camera and the orbit controls that
// move it.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective is a look-at perspective camera.
type Perspective struct {
	// FovY is the vertical field of view in degrees.
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fovY, aspect, near, far float32) *Perspective {
	return &Perspective{
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
	}
}

// SetAspect updates the aspect ratio from a viewport size. Degenerate sizes
// (a minimized window) are ignored.
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Projection returns the projection matrix.
func (c *Perspective) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// View returns the view matrix.
func (c *Perspective) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ViewProjection returns Projection * View.
func (c *Perspective) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// PixelRatio returns the drawable-to-window scale, capped at maxRatio.
// A maxRatio <= 0 disables the cap.
func PixelRatio(windowWidth, drawableWidth int, maxRatio float32) float32 {
	if windowWidth <= 0 || drawableWidth <= 0 {
		return 1
	}
	r := float32(drawableWidth) / float32(windowWidth)
	if maxRatio > 0 && r > maxRatio {
		r = maxRatio
	}
	return r
}

// RenderSize returns the render target size for a window of the given logical
// size at pixel ratio ratio. Each dimension is at least 1.
func RenderSize(windowWidth, windowHeight int, ratio float32) (int, int) {
	w := int(float32(windowWidth)*ratio + 0.5)
	h := int(float32(windowHeight)*ratio + 0.5)
	return max(w, 1), max(h, 1)
}
