package viewer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glowstage/internal/asset"
	"github.com/Faultbox/glowstage/internal/config"
	"github.com/Faultbox/glowstage/internal/scene"
	"github.com/Faultbox/glowstage/internal/texture"
)

// buildStage generates the grid texture and lays out the stage.
func buildStage(cfg *config.Config) (*scene.Stage, error) {
	grid, err := texture.GenerateGrid(cfg.Grid.Size, cfg.Grid.LineColor, cfg.Grid.Thickness)
	if err != nil {
		return nil, fmt.Errorf("grid texture: %w", err)
	}

	var errs []error
	color := func(field, hex string) mgl32.Vec3 {
		c, err := scene.ColorFromHex(hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return c
	}

	sc := scene.StageConfig{
		Background:    color("scene.background", cfg.Scene.Background),
		Grid:          grid,
		GridTint:      color("grid.tint", cfg.Grid.Tint),
		GridOpacity:   cfg.Grid.Opacity,
		GridRepeat:    cfg.Grid.Repeat,
		GroundColor:   color("scene.ground_color", cfg.Scene.GroundColor),
		ModelScale:    cfg.Scene.ModelScale,
		RestingHeight: cfg.Scene.RestingHeight,
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return scene.NewStage(sc), nil
}

// glowStyle builds the model's emissive override from configuration.
func glowStyle(cfg config.SceneConfig) (asset.GlowStyle, error) {
	glow := asset.DefaultGlow()
	c, err := scene.ColorFromHex(cfg.GlowColor)
	if err != nil {
		return glow, fmt.Errorf("scene.glow_color: %w", err)
	}
	glow.Color = c
	glow.Intensity = cfg.GlowIntensity
	return glow, nil
}
