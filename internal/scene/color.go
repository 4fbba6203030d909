package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorFromHex parses a "#rrggbb" string into linear RGB, the space the
// shaders light in.
func ColorFromHex(hex string) (mgl32.Vec3, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("parsing color %q: %w", hex, err)
	}
	r, g, b := c.LinearRgb()
	return mgl32.Vec3{float32(r), float32(g), float32(b)}, nil
}

// MustColor is ColorFromHex for compile-time constants; it panics on a bad
// string.
func MustColor(hex string) mgl32.Vec3 {
	c, err := ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}
