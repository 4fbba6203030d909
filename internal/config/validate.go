package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalid is returned by Validate for any out-of-range setting.
var ErrInvalid = errors.New("invalid config")

// Validate checks sizes, ranges and color strings.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Graphics.Width > 0, "graphics.width must be positive, got %d", c.Graphics.Width)
	check(c.Graphics.Height > 0, "graphics.height must be positive, got %d", c.Graphics.Height)
	check(c.Graphics.PixelRatioCap >= 1, "graphics.pixel_ratio_cap must be >= 1, got %g", c.Graphics.PixelRatioCap)
	check(c.Graphics.ShadowMapSize > 0, "graphics.shadow_map_size must be positive, got %d", c.Graphics.ShadowMapSize)

	check(c.Grid.Size > 0, "grid.size must be positive, got %d", c.Grid.Size)
	check(c.Grid.Thickness > 0 && c.Grid.Thickness < 1, "grid.thickness must be in (0,1), got %g", c.Grid.Thickness)
	check(c.Grid.Repeat > 0, "grid.repeat must be positive, got %g", c.Grid.Repeat)
	check(c.Grid.Opacity >= 0 && c.Grid.Opacity <= 1, "grid.opacity must be in [0,1], got %g", c.Grid.Opacity)

	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov must be in (0,180), got %g", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera near/far must satisfy 0 < near < far, got %g/%g", c.Camera.Near, c.Camera.Far)
	check(c.Camera.MinDistance > 0 && c.Camera.MaxDistance >= c.Camera.MinDistance,
		"camera distances must satisfy 0 < min <= max, got %g/%g", c.Camera.MinDistance, c.Camera.MaxDistance)
	check(c.Camera.Damping > 0 && c.Camera.Damping <= 1, "camera.damping must be in (0,1], got %g", c.Camera.Damping)

	check(c.Bloom.Strength >= 0, "bloom.strength must be >= 0, got %g", c.Bloom.Strength)
	check(c.Bloom.Radius >= 0 && c.Bloom.Radius <= 1, "bloom.radius must be in [0,1], got %g", c.Bloom.Radius)

	colors := map[string]string{
		"scene.background":      c.Scene.Background,
		"scene.ground_color":    c.Scene.GroundColor,
		"scene.glow_color":      c.Scene.GlowColor,
		"grid.line_color":       c.Grid.LineColor,
		"grid.tint":             c.Grid.Tint,
		"lighting.sky_color":    c.Lighting.SkyColor,
		"lighting.ground_color": c.Lighting.GroundColor,
		"lighting.key_color":    c.Lighting.KeyColor,
		"lighting.back_color":   c.Lighting.BackColor,
	}
	for key, value := range colors {
		_, err := colorful.Hex(value)
		check(err == nil, "%s: bad color %q", key, value)
	}

	return errors.Join(errs...)
}
