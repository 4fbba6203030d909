// Package shadow renders the key light's depth map and fits its projection
// to the stage.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Resolution limits for the square depth map.
const (
	MinResolution = 256
	MaxResolution = 8192
)

// Resolution rounds a configured map size up to a power of two within
// [MinResolution, MaxResolution].
func Resolution(size int) int32 {
	r := int32(MinResolution)
	for r < int32(size) && r < MaxResolution {
		r <<= 1
	}
	return r
}

// Map is a depth-only framebuffer sampled with sampler2DShadow in the lit pass.
type Map struct {
	FBO          uint32
	DepthTexture uint32
	Resolution   int32

	saved [4]int32 // viewport active before Bind
}

// NewMap allocates a depth map for the configured size. The size is passed
// through Resolution first.
func NewMap(size int) (*Map, error) {
	sm := &Map{Resolution: Resolution(size)}

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)

	gl.GenTextures(1, &sm.DepthTexture)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, sm.Resolution, sm.Resolution,
		0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Outside the light frustum reads as lit.
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: status 0x%x", status)
	}
	return sm, nil
}

// Render fits the key light's camera to bounds and returns its
// view-projection. When the map is usable, draw is called between Bind and
// Unbind to fill the depth texture. A nil or destroyed map only fits.
func (sm *Map) Render(toLight mgl32.Vec3, bounds AABB, draw func(lightVP mgl32.Mat4)) mgl32.Mat4 {
	vp := CalculateDirectionalLightMatrix(toLight, bounds)
	if sm.IsValid() {
		sm.Bind()
		draw(vp)
		sm.Unbind()
	}
	return vp
}

// Bind targets the depth map with front-face culling against acne.
func (sm *Map) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &sm.saved[0])
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.Viewport(0, 0, sm.Resolution, sm.Resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
}

// Unbind restores the default framebuffer, the saved viewport and back-face culling.
func (sm *Map) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(sm.saved[0], sm.saved[1], sm.saved[2], sm.saved[3])
	gl.CullFace(gl.BACK)
}

// BindTexture binds the depth texture to textureUnit for sampling.
func (sm *Map) BindTexture(textureUnit uint32) {
	gl.ActiveTexture(textureUnit)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
}

// Destroy releases the GL objects. It is safe to call twice.
func (sm *Map) Destroy() {
	if sm.FBO != 0 {
		gl.DeleteFramebuffers(1, &sm.FBO)
		sm.FBO = 0
	}
	if sm.DepthTexture != 0 {
		gl.DeleteTextures(1, &sm.DepthTexture)
		sm.DepthTexture = 0
	}
}

// IsValid reports whether the map holds live GL objects. A nil map is invalid.
func (sm *Map) IsValid() bool {
	return sm != nil && sm.FBO != 0 && sm.DepthTexture != 0
}
