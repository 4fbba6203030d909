package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.PixelRatioCap != 2 {
		t.Errorf("expected pixel ratio cap 2, got %g", cfg.Graphics.PixelRatioCap)
	}

	if cfg.Scene.RestingHeight != -1.1 {
		t.Errorf("expected resting height -1.1, got %g", cfg.Scene.RestingHeight)
	}
	if cfg.Scene.ModelScale != 1.2 {
		t.Errorf("expected model scale 1.2, got %g", cfg.Scene.ModelScale)
	}

	if cfg.Grid.Size != 1024 {
		t.Errorf("expected grid size 1024, got %d", cfg.Grid.Size)
	}
	if cfg.Grid.LineColor != "#00ffbf" {
		t.Errorf("expected grid line color #00ffbf, got %s", cfg.Grid.LineColor)
	}
	if cfg.Grid.Thickness != 0.08 {
		t.Errorf("expected grid thickness 0.08, got %g", cfg.Grid.Thickness)
	}

	if cfg.Camera.MinDistance != 2 || cfg.Camera.MaxDistance != 8 {
		t.Errorf("expected camera distance [2,8], got [%g,%g]", cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}

	if !cfg.Bloom.Enabled {
		t.Error("expected bloom to be enabled by default")
	}
	if cfg.Bloom.Strength != 0.9 || cfg.Bloom.Radius != 0.6 || cfg.Bloom.Threshold != 0.85 {
		t.Errorf("unexpected bloom defaults: %+v", cfg.Bloom)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

scene:
  model_path: "models/suit.glb"
  resting_height: -0.5

grid:
  size: 512
  line_color: "#ff00aa"
  thickness: 0.02

camera:
  position: [1, 2, 3]

bloom:
  enabled: false

logging:
  level: "debug"
  log_file: "viewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Scene.ModelPath != "models/suit.glb" {
		t.Errorf("expected model path models/suit.glb, got %s", cfg.Scene.ModelPath)
	}
	if cfg.Scene.RestingHeight != -0.5 {
		t.Errorf("expected resting height -0.5, got %g", cfg.Scene.RestingHeight)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Scene.ModelScale != 1.2 {
		t.Errorf("expected default model scale 1.2, got %g", cfg.Scene.ModelScale)
	}
	if cfg.Grid.Size != 512 || cfg.Grid.LineColor != "#ff00aa" || cfg.Grid.Thickness != 0.02 {
		t.Errorf("unexpected grid config: %+v", cfg.Grid)
	}
	if cfg.Camera.Position != [3]float32{1, 2, 3} {
		t.Errorf("expected camera position [1 2 3], got %v", cfg.Camera.Position)
	}
	if cfg.Bloom.Enabled {
		t.Error("expected bloom to be disabled")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative grid size", func(c *Config) { c.Grid.Size = -1 }},
		{"thickness one", func(c *Config) { c.Grid.Thickness = 1 }},
		{"thickness zero", func(c *Config) { c.Grid.Thickness = 0 }},
		{"bad line color", func(c *Config) { c.Grid.LineColor = "teal" }},
		{"bad background", func(c *Config) { c.Scene.Background = "#12345" }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"min above max distance", func(c *Config) { c.Camera.MinDistance = 10 }},
		{"damping zero", func(c *Config) { c.Camera.Damping = 0 }},
		{"pixel ratio below one", func(c *Config) { c.Graphics.PixelRatioCap = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "model flag",
			setup: func() { *flagModel = "other.glb" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.ModelPath != "other.glb" {
					t.Errorf("expected model path other.glb, got %s", cfg.Scene.ModelPath)
				}
			},
			teardown: func() { *flagModel = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "no-bloom flag",
			setup: func() { *flagNoBloom = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bloom.Enabled {
					t.Error("expected bloom to be disabled")
				}
			},
			teardown: func() { *flagNoBloom = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("grid:\n  thickness: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.ModelPath = "saved.glb"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Scene.ModelPath != "saved.glb" {
		t.Errorf("expected saved.glb, got %s", loaded.Scene.ModelPath)
	}
}

func TestSaveWritesToConfigDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir is not overridable on this OS")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Bloom.Enabled = false
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(ConfigDir(), "config.yaml"); path != want {
		t.Errorf("Save wrote %s, want %s", path, want)
	}
	if got := findConfigFile(); got != path && got != "./config.yaml" {
		t.Errorf("findConfigFile = %q, want %q", got, path)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Bloom.Enabled {
		t.Error("bloom setting was not saved")
	}
}

func TestSaveRequestedFollowsFlag(t *testing.T) {
	if SaveRequested() {
		t.Fatal("save requested without the flag")
	}
	*flagSave = true
	defer func() { *flagSave = false }()
	if !SaveRequested() {
		t.Error("save not requested with the flag set")
	}
}
