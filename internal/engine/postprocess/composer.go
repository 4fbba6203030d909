// Package postprocess renders the scene into an HDR target and composites it
// to the screen with bloom.
package postprocess

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glowstage/internal/config"
	"github.com/Faultbox/glowstage/internal/engine/framebuffer"
	"github.com/Faultbox/glowstage/internal/engine/shader"
	"github.com/Faultbox/glowstage/internal/logger"
)

// Composer owns the offscreen targets and the post-processing programs.
type Composer struct {
	cfg    config.BloomConfig
	width  int
	height int

	// Output viewport on the default framebuffer; differs from the scene
	// size when the pixel ratio is capped below the drawable's.
	outWidth  int
	outHeight int

	scene *framebuffer.Framebuffer
	ping  *framebuffer.Framebuffer
	pong  *framebuffer.Framebuffer

	bright    *shader.Program
	blur      *shader.Program
	composite *shader.Program

	// Fullscreen draws generate vertices from gl_VertexID but core profile
	// still needs a bound VAO.
	emptyVAO uint32

	weights []float32
	passes  int
}

// New creates a composer for a width x height drawable.
func New(width, height int, cfg config.BloomConfig) (*Composer, error) {
	c := &Composer{
		cfg:    cfg,
		width:  max(width, 1),
		height: max(height, 1),
	}
	c.outWidth, c.outHeight = c.width, c.height
	c.weights = gaussianWeights(kernelRadius(cfg.Radius))
	c.passes = blurPasses(cfg.Radius)

	var err error
	if c.scene, err = framebuffer.New(int32(c.width), int32(c.height), framebuffer.Options{Format: framebuffer.RGBA16F, Depth: true}); err != nil {
		return nil, fmt.Errorf("scene target: %w", err)
	}
	bw, bh := bloomSize(c.width, c.height)
	if c.ping, err = framebuffer.New(bw, bh, framebuffer.Options{Format: framebuffer.RGBA16F}); err != nil {
		c.Destroy()
		return nil, fmt.Errorf("bloom target: %w", err)
	}
	if c.pong, err = framebuffer.New(bw, bh, framebuffer.Options{Format: framebuffer.RGBA16F}); err != nil {
		c.Destroy()
		return nil, fmt.Errorf("bloom target: %w", err)
	}

	for _, p := range []struct {
		name string
		dst  **shader.Program
	}{
		{"bright", &c.bright},
		{"blur", &c.blur},
		{"composite", &c.composite},
	} {
		if *p.dst, err = shader.Load(p.name); err != nil {
			c.Destroy()
			return nil, err
		}
	}

	gl.GenVertexArrays(1, &c.emptyVAO)

	logger.Info("composer ready",
		zap.Int("width", c.width),
		zap.Int("height", c.height),
		zap.Bool("bloom", cfg.Enabled),
		zap.Int("kernel", len(c.weights)),
		zap.Int("passes", c.passes),
	)
	return c, nil
}

// SetSize resizes every target.
func (c *Composer) SetSize(width, height int) {
	c.width, c.height = max(width, 1), max(height, 1)
	c.scene.Resize(int32(c.width), int32(c.height))
	bw, bh := bloomSize(c.width, c.height)
	c.ping.Resize(bw, bh)
	c.pong.Resize(bw, bh)
}

// SetViewport sets the area of the default framebuffer the composite fills.
func (c *Composer) SetViewport(width, height int) {
	c.outWidth, c.outHeight = max(width, 1), max(height, 1)
}

// Size returns the scene target size.
func (c *Composer) Size() (int, int) {
	return c.width, c.height
}

// SetBloomEnabled toggles the bloom pass.
func (c *Composer) SetBloomEnabled(on bool) {
	c.cfg.Enabled = on
}

// BloomEnabled reports whether the bloom pass runs.
func (c *Composer) BloomEnabled() bool {
	return c.cfg.Enabled
}

// BeginScene binds the HDR scene target and clears it to background.
func (c *Composer) BeginScene(background mgl32.Vec3) {
	c.scene.Bind()
	c.scene.Clear(background[0], background[1], background[2], 1)
	gl.Enable(gl.DEPTH_TEST)
}

// Render runs the bloom passes and composites to the default framebuffer.
func (c *Composer) Render() {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(c.emptyVAO)

	if c.cfg.Enabled {
		c.bloom()
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(c.outWidth), int32(c.outHeight))

	c.composite.Use()
	c.bindTexture(0, c.scene.ColorTexture())
	c.bindTexture(1, c.ping.ColorTexture())
	c.composite.SetInt("uScene", 0)
	c.composite.SetInt("uBloom", 1)
	c.composite.SetBool("uBloomEnabled", c.cfg.Enabled)
	c.composite.SetFloat("uBloomStrength", c.cfg.Strength)
	drawFullscreen()

	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (c *Composer) bloom() {
	// Bright pass into ping.
	c.ping.Bind()
	c.bright.Use()
	c.bindTexture(0, c.scene.ColorTexture())
	c.bright.SetInt("uScene", 0)
	c.bright.SetFloat("uThreshold", c.cfg.Threshold)
	c.bright.SetFloat("uSmoothWidth", smoothWidth)
	drawFullscreen()

	// Separable blur, ping -> pong horizontally then pong -> ping vertically.
	bw, bh := c.ping.Size()
	texel := mgl32.Vec2{1 / float32(bw), 1 / float32(bh)}

	c.blur.Use()
	c.blur.SetInt("uSource", 0)
	c.blur.SetInt("uKernelRadius", int32(len(c.weights)))
	c.blur.SetFloats("uWeights", c.weights)
	for i := 0; i < c.passes; i++ {
		c.pong.Bind()
		c.bindTexture(0, c.ping.ColorTexture())
		c.blur.SetVec2("uDirection", mgl32.Vec2{texel[0], 0})
		drawFullscreen()

		c.ping.Bind()
		c.bindTexture(0, c.pong.ColorTexture())
		c.blur.SetVec2("uDirection", mgl32.Vec2{0, texel[1]})
		drawFullscreen()
	}
}

func (c *Composer) bindTexture(unit uint32, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func drawFullscreen() {
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

// Destroy releases every GL resource.
func (c *Composer) Destroy() {
	for _, fb := range []*framebuffer.Framebuffer{c.scene, c.ping, c.pong} {
		if fb != nil {
			fb.Destroy()
		}
	}
	for _, p := range []*shader.Program{c.bright, c.blur, c.composite} {
		if p != nil {
			p.Destroy()
		}
	}
	if c.emptyVAO != 0 {
		gl.DeleteVertexArrays(1, &c.emptyVAO)
		c.emptyVAO = 0
	}
}
