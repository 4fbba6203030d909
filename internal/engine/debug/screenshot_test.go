package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 250_000_000, time.UTC)
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "glowstage")
	sc.Now = fixedClock

	want := filepath.Join("shots", "glowstage_2024-03-09_14-05-07.250.png")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("GenerateFilename() = %q, want %q", got, want)
	}

	sc = NewScreenshotCapture("", "glowstage")
	sc.Now = fixedClock
	if got := sc.GenerateFilename(); got != "glowstage_2024-03-09_14-05-07.250.png" {
		t.Errorf("without dir = %q", got)
	}
}

func TestFlipRows(t *testing.T) {
	// Two rows: bottom row red, top row blue, as OpenGL returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRows(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRows: %v", err)
	}
	if c := img.RGBAAt(0, 0); c != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("top = %v, want blue", c)
	}
	if c := img.RGBAAt(0, 1); c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom = %v, want red", c)
	}
}

func TestFlipRowsSizeMismatch(t *testing.T) {
	tests := []struct {
		name          string
		n             int
		width, height int
	}{
		{"short", 7, 1, 2},
		{"long", 12, 1, 2},
		{"zero width", 0, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FlipRows(make([]byte, tt.n), tt.width, tt.height); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCaptureFromPixelsWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shots")
	sc := NewScreenshotCapture(dir, "test")
	sc.Now = fixedClock

	pixels := make([]byte, 4*3*4)
	for i := range pixels {
		pixels[i] = 200
	}
	path, err := sc.CaptureFromPixels(pixels, 4, 3)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("path = %q, want inside %q", path, dir)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestCaptureFromImageBadDir(t *testing.T) {
	// A regular file where the directory should be.
	file := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	sc := NewScreenshotCapture(file, "x")
	if _, err := sc.CaptureFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected error writing under a file")
	}
}
