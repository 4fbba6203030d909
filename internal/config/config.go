// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Scene      SceneConfig      `yaml:"scene"`
	Grid       GridConfig       `yaml:"grid"`
	Camera     CameraConfig     `yaml:"camera"`
	Bloom      BloomConfig      `yaml:"bloom"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	PixelRatioCap float64 `yaml:"pixel_ratio_cap"`
	ShadowMapSize int     `yaml:"shadow_map_size"`
}

// SceneConfig describes the stage and the character model placed on it.
type SceneConfig struct {
	ModelPath     string  `yaml:"model_path"`
	Background    string  `yaml:"background"`
	GroundColor   string  `yaml:"ground_color"`
	ModelScale    float32 `yaml:"model_scale"`
	RestingHeight float32 `yaml:"resting_height"`
	GlowColor     string  `yaml:"glow_color"`
	GlowIntensity float32 `yaml:"glow_intensity"`
}

// GridConfig holds the procedural backdrop texture settings.
type GridConfig struct {
	Size      int     `yaml:"size"`
	LineColor string  `yaml:"line_color"`
	Thickness float64 `yaml:"thickness"`
	Repeat    float32 `yaml:"repeat"`
	Tint      string  `yaml:"tint"`
	Opacity   float32 `yaml:"opacity"`
}

// CameraConfig holds the perspective camera and orbit control settings.
type CameraConfig struct {
	FOV         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Position    [3]float32 `yaml:"position,flow"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
	Damping     float32    `yaml:"damping"`
}

// BloomConfig holds the bloom post-processing settings.
type BloomConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Strength  float32 `yaml:"strength"`
	Radius    float32 `yaml:"radius"`
	Threshold float32 `yaml:"threshold"`
}

// LightingConfig holds the three-light rig.
type LightingConfig struct {
	SkyColor           string     `yaml:"sky_color"`
	GroundColor        string     `yaml:"ground_color"`
	HemisphereStrength float32    `yaml:"hemisphere_intensity"`
	KeyColor           string     `yaml:"key_color"`
	KeyIntensity       float32    `yaml:"key_intensity"`
	KeyPosition        [3]float32 `yaml:"key_position,flow"`
	BackColor          string     `yaml:"back_color"`
	BackIntensity      float32    `yaml:"back_intensity"`
	BackRange          float32    `yaml:"back_range"`
	BackPosition       [3]float32 `yaml:"back_position,flow"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock stage setup.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			VSync:         true,
			PixelRatioCap: 2,
			ShadowMapSize: 2048,
		},
		Scene: SceneConfig{
			ModelPath:     "assets/model.glb",
			Background:    "#06110f",
			GroundColor:   "#071a18",
			ModelScale:    1.2,
			RestingHeight: -1.1,
			GlowColor:     "#72fff7",
			GlowIntensity: 3.5,
		},
		Grid: GridConfig{
			Size:      1024,
			LineColor: "#00ffbf",
			Thickness: 0.08,
			Repeat:    2,
			Tint:      "#0affd1",
			Opacity:   0.35,
		},
		Camera: CameraConfig{
			FOV:         45,
			Near:        0.1,
			Far:         100,
			Position:    [3]float32{0, 1.6, 4},
			MinDistance: 2,
			MaxDistance: 8,
			Damping:     0.05,
		},
		Bloom: BloomConfig{
			Enabled:   true,
			Strength:  0.9,
			Radius:    0.6,
			Threshold: 0.85,
		},
		Lighting: LightingConfig{
			SkyColor:           "#66ffe0",
			GroundColor:        "#06110f",
			HemisphereStrength: 0.7,
			KeyColor:           "#ffffff",
			KeyIntensity:       1.2,
			KeyPosition:        [3]float32{3, 5, 6},
			BackColor:          "#00fff0",
			BackIntensity:      1.5,
			BackRange:          20,
			BackPosition:       [3]float32{0, 2, -2},
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "glowstage",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
