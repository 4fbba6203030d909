// Package renderer draws the scene graph with the lit shader and renders the
// key light's depth pass.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glowstage/internal/engine/lighting"
	"github.com/Faultbox/glowstage/internal/engine/shader"
	"github.com/Faultbox/glowstage/internal/engine/shadow"
	"github.com/Faultbox/glowstage/internal/logger"
	"github.com/Faultbox/glowstage/internal/scene"
)

// Texture units used by the lit program.
const (
	unitMap    = 0
	unitShadow = 1
)

// Frame carries the per-frame camera, lights and shadow state.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Rig        *lighting.Rig

	// LightViewProjection is the key light's shadow camera. ShadowMap may be
	// nil, in which case nothing is shadowed.
	LightViewProjection mgl32.Mat4
	ShadowMap           *shadow.Map
}

// Renderer handles all OpenGL scene drawing.
type Renderer struct {
	width, height int

	lit   *shader.Program
	depth *shader.Program

	meshes   map[*scene.Mesh]*gpuMesh
	textures map[image.Image]uint32

	// shadowed is set per frame when a valid shadow map is bound.
	shadowed bool
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	r := &Renderer{
		meshes:   make(map[*scene.Mesh]*gpuMesh),
		textures: make(map[image.Image]uint32),
	}

	var err error
	if r.lit, err = shader.Load("lit"); err != nil {
		return nil, err
	}
	if r.depth, err = shader.Load("depth"); err != nil {
		r.lit.Destroy()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	r.Resize(width, height)
	return r, nil
}

// Close releases every GL resource the renderer created.
func (r *Renderer) Close() {
	logger.Info("closing renderer",
		zap.Int("meshes", len(r.meshes)),
		zap.Int("textures", len(r.textures)),
	)
	for _, g := range r.meshes {
		g.destroy()
	}
	for _, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
	}
	r.meshes = nil
	r.textures = nil
	r.lit.Destroy()
	r.depth.Destroy()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *Renderer) gpu(m *scene.Mesh) *gpuMesh {
	g, ok := r.meshes[m]
	if !ok {
		g = uploadMesh(m)
		r.meshes[m] = g
	}
	return g
}

func (r *Renderer) texture(img image.Image) uint32 {
	tex, ok := r.textures[img]
	if !ok {
		tex = uploadTexture(img)
		r.textures[img] = tex
	}
	return tex
}

// Prepare uploads new meshes under root and re-poses skinned ones. Call it
// once per frame before the depth and color passes.
func (r *Renderer) Prepare(root *scene.Node) {
	root.TraverseWorld(func(n *scene.Node, world mgl32.Mat4) {
		for _, m := range n.Meshes {
			if m.VertexCount() == 0 {
				continue
			}
			g := r.gpu(m)
			if g.skinned && n.Skin != nil && n.WorldVisible() {
				g.deform(m, n.Skin, world)
			}
		}
	})
}

// DrawDepth renders shadow casters under root into the currently bound
// depth target.
func (r *Renderer) DrawDepth(root *scene.Node, lightViewProjection mgl32.Mat4) {
	opaque, transparent := collect(root, mgl32.Ident4())

	r.depth.Use()
	r.depth.SetMat4("uLightViewProjection", lightViewProjection)
	for _, list := range [][]drawItem{opaque, transparent} {
		for _, it := range list {
			if !it.mesh.CastShadow {
				continue
			}
			r.depth.SetMat4("uModel", it.world)
			r.gpu(it.mesh).draw()
		}
	}
	gl.BindVertexArray(0)
}

// DrawScene renders root into the currently bound color target: opaque
// meshes first, then transparent meshes far to near with blending.
func (r *Renderer) DrawScene(root *scene.Node, f Frame) {
	opaque, transparent := collect(root, f.View)

	r.lit.Use()
	r.setFrameUniforms(f)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, it := range opaque {
		r.drawLit(it)
	}

	if len(transparent) > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
		for _, it := range transparent {
			r.drawLit(it)
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) setFrameUniforms(f Frame) {
	p := r.lit
	p.SetMat4("uView", f.View)
	p.SetMat4("uProjection", f.Projection)

	rig := f.Rig
	hemi := rig.Hemisphere
	p.SetVec3("uSkyColor", hemi.Sky.Mul(hemi.Intensity))
	p.SetVec3("uGroundColor", hemi.Ground.Mul(hemi.Intensity))
	p.SetVec3("uKeyDirection", rig.Key.Direction().Mul(-1))
	p.SetVec3("uKeyColor", rig.KeyRadiance())

	p.SetInt("uPointCount", int32(rig.Points.Count))
	p.SetVec3s("uPointPositions", rig.Points.Positions())
	p.SetVec3s("uPointColors", rig.Points.Colors())
	p.SetFloats("uPointRanges", rig.Points.Ranges())

	p.SetInt("uMap", unitMap)
	p.SetInt("uShadowMap", unitShadow)
	p.SetMat4("uLightSpace", shadow.BiasMatrix().Mul4(f.LightViewProjection))
	if f.ShadowMap.IsValid() && rig.Key.CastShadow {
		f.ShadowMap.BindTexture(gl.TEXTURE0 + unitShadow)
	}
	r.shadowed = f.ShadowMap.IsValid() && rig.Key.CastShadow
}

func (r *Renderer) drawLit(it drawItem) {
	p := r.lit
	mat := it.mesh.Material
	if mat == nil {
		mat = defaultMaterial
	}

	p.SetMat4("uModel", it.world)
	p.SetMat3("uNormalMatrix", it.world.Mat3().Inv().Transpose())

	p.SetVec3("uBaseColor", mat.BaseColor)
	p.SetFloat("uOpacity", mat.Opacity)
	p.SetVec3("uEmissive", mat.Emissive)
	p.SetFloat("uEmissiveIntensity", mat.EmissiveIntensity)
	p.SetBool("uUnlit", mat.Unlit)
	p.SetBool("uReceiveShadow", r.shadowed && it.mesh.ReceiveShadow)

	repeat := mat.MapRepeat
	if repeat == (mgl32.Vec2{}) {
		repeat = mgl32.Vec2{1, 1}
	}
	p.SetVec2("uMapRepeat", repeat)

	if mat.Map != nil {
		gl.ActiveTexture(gl.TEXTURE0 + unitMap)
		gl.BindTexture(gl.TEXTURE_2D, r.texture(mat.Map))
		p.SetBool("uHasMap", true)
	} else {
		p.SetBool("uHasMap", false)
	}

	r.gpu(it.mesh).draw()
}

var defaultMaterial = scene.NewMaterial("default")
