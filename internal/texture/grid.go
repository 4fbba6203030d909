// Package texture generates procedural raster textures.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"
)

// ErrInvalidArgument is returned for grid parameters that cannot produce an image.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	// GridDivisions is the number of cells along each axis.
	GridDivisions = 16

	// GridBackground is the fill color behind the lines.
	GridBackground = "#06110f"

	// GridLineAlpha is the opacity applied to every line stroke.
	GridLineAlpha = 0.7
)

// GridSpec describes a square grid texture.
type GridSpec struct {
	Size                  int
	Background            string
	LineColor             string
	LineThicknessFraction float64
	Divisions             int
}

// NewGridSpec returns a spec with the fixed background and division count.
func NewGridSpec(size int, lineColor string, thicknessFraction float64) GridSpec {
	return GridSpec{
		Size:                  size,
		Background:            GridBackground,
		LineColor:             lineColor,
		LineThicknessFraction: thicknessFraction,
		Divisions:             GridDivisions,
	}
}

// Step returns the distance in pixels between neighbouring lines.
func (s GridSpec) Step() float64 {
	return float64(s.Size) / float64(s.Divisions)
}

// StrokeWidth returns the line width in pixels.
func (s GridSpec) StrokeWidth() float64 {
	return float64(s.Size) * s.LineThicknessFraction
}

// LinePositions returns the centre coordinate of every line along one axis.
// Both edges are included, so there are Divisions+1 positions and the last
// one equals Size.
func (s GridSpec) LinePositions() []float64 {
	step := s.Step()
	positions := make([]float64, s.Divisions+1)
	for i := range positions {
		positions[i] = float64(i) * step
	}
	positions[s.Divisions] = float64(s.Size)
	return positions
}

// Validate reports whether the spec can be rasterized.
func (s GridSpec) Validate() error {
	if s.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidArgument, s.Size)
	}
	if s.Divisions <= 0 {
		return fmt.Errorf("%w: divisions must be positive, got %d", ErrInvalidArgument, s.Divisions)
	}
	if !(s.LineThicknessFraction > 0 && s.LineThicknessFraction < 1) {
		return fmt.Errorf("%w: thickness must be in (0,1), got %g", ErrInvalidArgument, s.LineThicknessFraction)
	}
	if _, err := colorful.Hex(s.LineColor); err != nil {
		return fmt.Errorf("%w: line color %q: %v", ErrInvalidArgument, s.LineColor, err)
	}
	if _, err := colorful.Hex(s.Background); err != nil {
		return fmt.Errorf("%w: background %q: %v", ErrInvalidArgument, s.Background, err)
	}
	return nil
}

// GenerateGrid renders a size x size grid with the stock background and
// sixteen divisions.
func GenerateGrid(size int, lineColor string, thicknessFraction float64) (*image.RGBA, error) {
	return Generate(NewGridSpec(size, lineColor, thicknessFraction))
}

// Generate renders the grid described by spec. Each line is stroked and
// composited on its own, so crossings receive the line color twice.
func Generate(spec GridSpec) (*image.RGBA, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	bg, _ := colorful.Hex(spec.Background)
	line, _ := colorful.Hex(spec.LineColor)

	img := image.NewRGBA(image.Rect(0, 0, spec.Size, spec.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(opaque(bg)), image.Point{}, draw.Src)

	src := image.NewUniform(withAlpha(line, GridLineAlpha))
	size := float64(spec.Size)
	half := spec.StrokeWidth() / 2

	r := vector.NewRasterizer(spec.Size, spec.Size)
	for _, p := range spec.LinePositions() {
		// vertical
		stroke(r, img, src, p-half, 0, p+half, size, size)
		// horizontal
		stroke(r, img, src, 0, p-half, size, p+half, size)
	}

	return img, nil
}

// stroke fills the axis-aligned rectangle (x0,y0)-(x1,y1), clipped to the
// canvas, and composites it over dst.
func stroke(r *vector.Rasterizer, dst *image.RGBA, src image.Image, x0, y0, x1, y1, size float64) {
	x0, x1 = clamp(x0, 0, size), clamp(x1, 0, size)
	y0, y1 = clamp(y0, 0, size), clamp(y1, 0, size)
	if x1 <= x0 || y1 <= y0 {
		return
	}

	r.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	r.DrawOp = draw.Over
	r.MoveTo(float32(x0), float32(y0))
	r.LineTo(float32(x1), float32(y0))
	r.LineTo(float32(x1), float32(y1))
	r.LineTo(float32(x0), float32(y1))
	r.ClosePath()
	r.Draw(dst, dst.Bounds(), src, image.Point{})
}

func opaque(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func withAlpha(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
