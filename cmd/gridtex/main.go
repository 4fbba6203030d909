// gridtex writes the procedural backdrop grid texture to a PNG file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/glowstage/internal/config"
	"github.com/Faultbox/glowstage/internal/logger"
	"github.com/Faultbox/glowstage/internal/texture"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	def := config.Default().Grid

	fs := flag.NewFlagSet("gridtex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	size := fs.Int("size", def.Size, "Texture edge length in pixels")
	color := fs.String("color", def.LineColor, "Line color as #rrggbb")
	thickness := fs.Float64("thickness", def.Thickness, "Line thickness as a fraction of the texture size")
	out := fs.String("o", "grid.png", "Output PNG path")
	verbose := fs.Bool("v", false, "Log at debug level")
	fs.Usage = func() {
		fmt.Fprintln(stderr, `gridtex - write the backdrop grid texture

Usage:
  gridtex [options]

Examples:
  gridtex -size 1024 -color '#00ffbf' -thickness 0.08 -o grid.png

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	img, err := texture.GenerateGrid(*size, *color, *thickness)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	logger.Debug("grid texture written",
		zap.String("path", *out),
		zap.Int("size", *size),
		zap.String("color", *color),
		zap.Float64("thickness", *thickness),
	)
	return nil
}
