package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the converter settings.
type Config struct {
	// Paths
	DataDir string `json:"data_dir"`
	LogFile string `json:"log_file"`

	// Conversion
	Render      bool   `json:"render"`
	ColorExt    string `json:"color_ext"`
	ColorFormat string `json:"color_format"`

	// Render camera (pixels / millimetres)
	RenderWidth  int     `json:"render_width"`
	RenderHeight int     `json:"render_height"`
	Fx           float64 `json:"fx"`
	Fy           float64 `json:"fy"`
	Cx           float64 `json:"cx"`
	Cy           float64 `json:"cy"`
	Near         float64 `json:"near"`
	Far          float64 `json:"far"`

	LogLevel string `json:"log_level"`
}

// LINEMOD Kinect intrinsics.
const (
	DefaultFx = 572.41140
	DefaultFy = 573.57043
	DefaultCx = 325.26110
	DefaultCy = 242.04899
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir string
	LogFile string
	Render  bool
	Verbose bool
}

// Resolve applies CLI overrides and fills any empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.DataDir != "" {
		c.DataDir = flags.DataDir
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.Render {
		c.Render = true
	}
	if flags.Verbose {
		c.LogLevel = "debug"
	}

	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.ColorExt == "" {
		c.ColorExt = "jpg"
	}
	if c.ColorFormat == "" {
		c.ColorFormat = "png"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.RenderWidth <= 0 {
		c.RenderWidth = 640
	}
	if c.RenderHeight <= 0 {
		c.RenderHeight = 480
	}
	if c.Fx == 0 {
		c.Fx = DefaultFx
	}
	if c.Fy == 0 {
		c.Fy = DefaultFy
	}
	if c.Cx == 0 {
		c.Cx = DefaultCx
	}
	if c.Cy == 0 {
		c.Cy = DefaultCy
	}
	if c.Near == 0 {
		c.Near = 10
	}
	if c.Far == 0 {
		c.Far = 10000
	}
}

// Validate rejects settings the converter cannot run with.
func (c Config) Validate() error {
	switch c.ColorFormat {
	case "png", "webp":
	default:
		return fmt.Errorf("config: unknown color_format %q", c.ColorFormat)
	}
	switch c.ColorExt {
	case "jpg", "jpeg", "png", "tga":
	default:
		return fmt.Errorf("config: unknown color_ext %q", c.ColorExt)
	}
	if c.RenderWidth <= 0 || c.RenderHeight <= 0 {
		return fmt.Errorf("config: bad render size %dx%d", c.RenderWidth, c.RenderHeight)
	}
	if c.Fx <= 0 || c.Fy <= 0 {
		return fmt.Errorf("config: bad focal length %g/%g", c.Fx, c.Fy)
	}
	if c.Near <= 0 || c.Near >= c.Far {
		return fmt.Errorf("config: bad clip range [%g, %g]", c.Near, c.Far)
	}
	return nil
}
