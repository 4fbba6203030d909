// Package viewer runs the interactive stage: window, render loop, and the
// background model load.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glowstage/internal/animation"
	"github.com/Faultbox/glowstage/internal/asset"
	"github.com/Faultbox/glowstage/internal/config"
	"github.com/Faultbox/glowstage/internal/engine/camera"
	"github.com/Faultbox/glowstage/internal/engine/debug"
	"github.com/Faultbox/glowstage/internal/engine/framebuffer"
	"github.com/Faultbox/glowstage/internal/engine/input"
	"github.com/Faultbox/glowstage/internal/engine/lighting"
	"github.com/Faultbox/glowstage/internal/engine/postprocess"
	"github.com/Faultbox/glowstage/internal/engine/renderer"
	"github.com/Faultbox/glowstage/internal/engine/shadow"
	"github.com/Faultbox/glowstage/internal/engine/window"
	"github.com/Faultbox/glowstage/internal/logger"
	"github.com/Faultbox/glowstage/internal/scene"
)

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	composer *postprocess.Composer
	shadows  *shadow.Map
	input    *input.Input

	camera   *camera.Perspective
	controls *camera.OrbitControls
	rig      *lighting.Rig
	stage    *scene.Stage

	controller *animation.Controller
	loader     *modelLoader
	cancelLoad context.CancelFunc

	screenshots *debug.ScreenshotCapture

	// Window size in screen coordinates and the drawable size in pixels.
	winW, winH   int
	drawW, drawH int
}

// New creates the window and every GL resource, then starts loading the
// model in the background.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("model", cfg.Scene.ModelPath),
	)

	a := &App{
		cfg:         cfg,
		input:       input.New(),
		controller:  animation.NewController(cfg.Scene.RestingHeight),
		screenshots: debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix),
	}

	var err error
	if a.stage, err = buildStage(cfg); err != nil {
		return nil, err
	}
	if a.rig, err = lighting.NewRig(cfg.Lighting); err != nil {
		return nil, err
	}
	glow, err := glowStyle(cfg.Scene)
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:      "glowstage",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.winW, a.winH = a.window.GetSize()
	renderW, renderH := a.renderSize()

	// Renderer first: it initializes the GL function pointers.
	if a.renderer, err = renderer.New(renderW, renderH); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if a.composer, err = postprocess.New(renderW, renderH, cfg.Bloom); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create composer: %w", err)
	}
	a.composer.SetViewport(a.drawW, a.drawH)

	if a.shadows, err = shadow.NewMap(cfg.Graphics.ShadowMapSize); err != nil {
		logger.Warn("shadows disabled", zap.Error(err))
	}

	a.camera = camera.NewPerspective(cfg.Camera.FOV, float32(renderW)/float32(renderH), cfg.Camera.Near, cfg.Camera.Far)
	a.camera.Position = mgl32.Vec3(cfg.Camera.Position)
	a.controls = camera.NewOrbitControls(a.camera, mgl32.Vec3{})
	a.controls.MinDistance = cfg.Camera.MinDistance
	a.controls.MaxDistance = cfg.Camera.MaxDistance
	a.controls.DampingFactor = cfg.Camera.Damping

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelLoad = cancel
	a.loader = &modelLoader{
		results:    asset.LoadAsync(ctx, cfg.Scene.ModelPath, glow),
		controller: a.controller,
		stage:      a.stage,
		setTitle:   a.window.SetTitle,
	}

	logger.Info("viewer initialized")
	return a, nil
}

// renderSize refreshes the drawable size and returns the render target size
// for the capped pixel ratio.
func (a *App) renderSize() (int, int) {
	a.drawW, a.drawH = a.window.DrawableSize()
	ratio := camera.PixelRatio(a.winW, a.drawW, float32(a.cfg.Graphics.PixelRatioCap))
	return camera.RenderSize(a.winW, a.winH, ratio)
}

// resize resyncs the camera, renderer and composer with the window.
func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.winW, a.winH = width, height
	renderW, renderH := a.renderSize()

	a.camera.SetAspect(renderW, renderH)
	a.renderer.Resize(renderW, renderH)
	a.composer.SetSize(renderW, renderH)
	a.composer.SetViewport(a.drawW, a.drawH)
}

// Run starts the main loop and returns when the window is closed or Esc is
// pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	var fps fpsCounter

	logger.Info("starting render loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}

		events := a.input.Events()
		capture := a.handleEvents(events)

		a.loader.poll()
		a.controller.Update(dt)
		a.controls.Update()

		a.render()

		if capture {
			a.screenshot()
		}

		a.window.SwapBuffers()

		if rate, ok := fps.tick(now); ok {
			logger.Debug("fps",
				zap.Float64("fps", rate),
				zap.Float64("frame_ms", dt*1000),
				zap.Stringer("mode", a.controller.Mode()),
			)
		}
	}

	return nil
}

// handleEvents applies this frame's input and reports whether a screenshot
// was requested.
func (a *App) handleEvents(events []input.Event) bool {
	if w, h, ok := input.LastResize(events); ok {
		a.resize(w, h)
	}
	if input.KeyPressed(events, sdl.SCANCODE_ESCAPE) {
		a.running = false
	}
	if input.KeyPressed(events, sdl.SCANCODE_B) {
		a.composer.SetBloomEnabled(!a.composer.BloomEnabled())
		logger.Info("bloom toggled", zap.Bool("enabled", a.composer.BloomEnabled()))
	}

	if dx, dy := input.Drag(events, sdl.BUTTON_LEFT); dx != 0 || dy != 0 {
		a.controls.Drag(float32(dx), float32(dy), a.winH)
	}
	if n := input.WheelNotches(events); n != 0 {
		a.controls.Wheel(n)
	}

	return input.KeyPressed(events, sdl.SCANCODE_F12)
}

func (a *App) render() {
	root := a.stage.Root
	a.renderer.Prepare(root)

	lo, hi := a.stage.ShadowBounds()
	toLight := a.rig.Key.Direction().Mul(-1)
	lightVP := a.shadows.Render(toLight, shadow.AABB{Min: lo, Max: hi}, func(vp mgl32.Mat4) {
		a.renderer.DrawDepth(root, vp)
	})

	a.composer.BeginScene(a.stage.Background)
	a.renderer.DrawScene(root, renderer.Frame{
		View:                a.camera.View(),
		Projection:          a.camera.Projection(),
		Rig:                 a.rig,
		LightViewProjection: lightVP,
		ShadowMap:           a.shadows,
	})
	a.composer.Render()
}

func (a *App) screenshot() {
	pixels := framebuffer.ReadDefault(int32(a.drawW), int32(a.drawH))
	path, err := a.screenshots.CaptureFromPixels(pixels, a.drawW, a.drawH)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases everything New created. It is safe on a partially built
// App.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.cancelLoad != nil {
		a.cancelLoad()
	}
	if a.shadows != nil {
		a.shadows.Destroy()
	}
	if a.composer != nil {
		a.composer.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
