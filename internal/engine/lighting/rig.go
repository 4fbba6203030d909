// Package lighting describes the stage light rig and packs it for the lit
// shader.
package lighting

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/glowstage/internal/config"
)

// Hemisphere is an ambient light blending from Sky (straight up) to Ground
// (straight down) by surface normal.
type Hemisphere struct {
	Sky       mgl32.Vec3
	Ground    mgl32.Vec3
	Intensity float32
}

// Irradiance returns the hemisphere contribution for a unit normal.
func (h Hemisphere) Irradiance(normal mgl32.Vec3) mgl32.Vec3 {
	w := 0.5*normal.Y() + 0.5
	c := h.Ground.Mul(1 - w).Add(h.Sky.Mul(w))
	return c.Mul(h.Intensity)
}

// Directional is a light shining from Position toward Target. Only the
// direction matters for shading; Position also places the shadow camera.
type Directional struct {
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Color      mgl32.Vec3
	Intensity  float32
	CastShadow bool
}

// Direction returns the unit vector the light travels along.
func (d Directional) Direction() mgl32.Vec3 {
	dir := d.Target.Sub(d.Position)
	if dir.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return dir.Normalize()
}

// Rig is the full set of stage lights.
type Rig struct {
	Hemisphere Hemisphere
	Key        Directional
	Points     *PointLightBuffer
}

// NewRig builds the rig from configuration. Colors are converted to linear
// RGB.
func NewRig(cfg config.LightingConfig) (*Rig, error) {
	var errs []error
	color := func(field, hex string) mgl32.Vec3 {
		c, err := colorful.Hex(hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("lighting.%s: %w", field, err))
			return mgl32.Vec3{}
		}
		r, g, b := c.LinearRgb()
		return mgl32.Vec3{float32(r), float32(g), float32(b)}
	}

	r := &Rig{
		Hemisphere: Hemisphere{
			Sky:       color("sky_color", cfg.SkyColor),
			Ground:    color("ground_color", cfg.GroundColor),
			Intensity: cfg.HemisphereStrength,
		},
		Key: Directional{
			Position:   mgl32.Vec3(cfg.KeyPosition),
			Color:      color("key_color", cfg.KeyColor),
			Intensity:  cfg.KeyIntensity,
			CastShadow: true,
		},
		Points: NewPointLightBuffer(),
	}

	back := color("back_color", cfg.BackColor)
	r.Points.AddLight(PointLight{
		Position:  cfg.BackPosition,
		Color:     [3]float32(back),
		Range:     cfg.BackRange,
		Intensity: cfg.BackIntensity,
	})

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

// KeyRadiance returns the key light color scaled by its intensity.
func (r *Rig) KeyRadiance() mgl32.Vec3 {
	return r.Key.Color.Mul(r.Key.Intensity)
}
