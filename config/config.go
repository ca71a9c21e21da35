package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// RGBA is a color written as an [r, g, b, a] list in config.yaml.
type RGBA [4]uint8

// Color converts the list to a drawable color.
func (c RGBA) Color() color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// ShadowConfig describes a drop shadow.
type ShadowConfig struct {
	Offset [2]int  `yaml:"offset"`
	Blur   float64 `yaml:"blur"`
	Color  RGBA    `yaml:"color"`
}

// Config represents the application configuration
type Config struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Background BackgroundConfig `yaml:"background"`
	Text       TextConfig       `yaml:"text"`
	Icons      IconsConfig      `yaml:"icons"`
	Layout     LayoutConfig     `yaml:"layout"`
	Output     OutputConfig     `yaml:"output"`
	Search     SearchConfig     `yaml:"search"`
	Server     ServerConfig     `yaml:"server"`
	Watch      WatchConfig      `yaml:"watch"`
	Ntfy       NtfyConfig       `yaml:"ntfy"`
	LogLevel   string           `yaml:"log_level"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type BackgroundConfig struct {
	BlurRadius float64 `yaml:"blur_radius"`
}

type TextConfig struct {
	MaxWidth    float64 `yaml:"max_width"` // fraction of canvas width
	LineSpacing float64 `yaml:"line_spacing"`
	Color       RGBA    `yaml:"color"`
	StartSize   int     `yaml:"start_size"`
	MinSize     int     `yaml:"min_size"`
	MaxLines    int     `yaml:"max_lines"`
	FontFile    string  `yaml:"font_file"` // empty selects the embedded Go font

	OuterShadow ShadowConfig `yaml:"outer_shadow"`
	// Accepted for compatibility with old config files. The renderer
	// draws a single blurred drop shadow.
	InnerShadow ShadowConfig `yaml:"inner_shadow"`
}

type IconsConfig struct {
	MaxWidth    int          `yaml:"max_width"`
	Gap         int          `yaml:"gap"`
	OuterShadow ShadowConfig `yaml:"outer_shadow"`
}

type LayoutConfig struct {
	TextOffsetY  int `yaml:"text_offset_y"`
	IconsOffsetY int `yaml:"icons_offset_y"`
}

type OutputConfig struct {
	PNGCompression string `yaml:"png_compression"` // default, speed, best, none
	JPEGQuality    int    `yaml:"jpeg_quality"`
	WebPQuality    int    `yaml:"webp_quality"`
	FaviconSizes   []int  `yaml:"favicon_sizes"`
}

type SearchConfig struct {
	Enabled        bool   `yaml:"enabled"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
	MinIconPx      int    `yaml:"min_icon_px"`
}

type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	UploadDir      string `yaml:"upload_dir"`
	ResultsDir     string `yaml:"results_dir"`
	MaxUploadMB    int64  `yaml:"max_upload_mb"`
	RetentionHours int    `yaml:"retention_hours"`
}

type WatchConfig struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	Format    string `yaml:"format"`
}

type NtfyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Server  string `yaml:"server"`
	Topic   string `yaml:"topic"`
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Default returns the built-in configuration. Values loaded from a
// config file are merged over these.
func Default() *Config {
	return &Config{
		Canvas:     CanvasConfig{Width: 1920, Height: 1080},
		Background: BackgroundConfig{BlurRadius: 25},
		Text: TextConfig{
			MaxWidth:    0.8,
			LineSpacing: 1.1,
			Color:       RGBA{255, 255, 255, 255},
			StartSize:   160,
			MinSize:     20,
			MaxLines:    3,
			OuterShadow: ShadowConfig{Offset: [2]int{4, 4}, Blur: 8, Color: RGBA{0, 0, 0, 180}},
			InnerShadow: ShadowConfig{Offset: [2]int{3, 3}, Blur: 6, Color: RGBA{0, 0, 0, 120}},
		},
		Icons: IconsConfig{
			MaxWidth:    200,
			Gap:         30,
			OuterShadow: ShadowConfig{Offset: [2]int{4, 4}, Blur: 8, Color: RGBA{0, 0, 0, 180}},
		},
		Layout: LayoutConfig{TextOffsetY: -80, IconsOffsetY: 40},
		Output: OutputConfig{
			PNGCompression: "default",
			JPEGQuality:    90,
			WebPQuality:    85,
			FaviconSizes:   []int{16, 32, 48},
		},
		Search: SearchConfig{
			Enabled:        true,
			TimeoutSeconds: 10,
			UserAgent:      defaultUserAgent,
			MinIconPx:      64,
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           5000,
			UploadDir:      ".uploads",
			ResultsDir:     ".results",
			MaxUploadMB:    50,
			RetentionHours: 24,
		},
		Watch:    WatchConfig{Format: "png"},
		Ntfy:     NtfyConfig{Server: "https://ntfy.sh"},
		LogLevel: "info",
	}
}

// Load reads and parses the configuration file. A missing file is not
// an error: the defaults are used as-is. Values from a .env file and
// the environment override both.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		// Unmarshalling over the default struct leaves absent keys at
		// their default values.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides selected settings from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("THUMBFORGE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("THUMBFORGE_NTFY_SERVER"); v != "" {
		c.Ntfy.Server = v
	}
	if v := os.Getenv("THUMBFORGE_NTFY_TOPIC"); v != "" {
		c.Ntfy.Topic = v
		c.Ntfy.Enabled = true
	}
}

// Validate checks if required configuration fields are sane
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas dimensions must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Text.MaxWidth <= 0 || c.Text.MaxWidth > 1 {
		return fmt.Errorf("text.max_width must be in (0, 1], got %v", c.Text.MaxWidth)
	}
	if c.Text.MinSize <= 0 || c.Text.StartSize < c.Text.MinSize {
		return fmt.Errorf("text sizes invalid: start_size %d, min_size %d", c.Text.StartSize, c.Text.MinSize)
	}
	if c.Text.MaxLines < 1 {
		return fmt.Errorf("text.max_lines must be at least 1, got %d", c.Text.MaxLines)
	}
	if c.Icons.MaxWidth <= 0 {
		return fmt.Errorf("icons.max_width must be positive, got %d", c.Icons.MaxWidth)
	}
	if q := c.Output.JPEGQuality; q < 1 || q > 100 {
		return fmt.Errorf("output.jpeg_quality must be 1-100, got %d", q)
	}
	if q := c.Output.WebPQuality; q < 1 || q > 100 {
		return fmt.Errorf("output.webp_quality must be 1-100, got %d", q)
	}
	switch c.Output.PNGCompression {
	case "default", "speed", "best", "none":
	default:
		return fmt.Errorf("output.png_compression must be default, speed, best or none, got %q", c.Output.PNGCompression)
	}
	if c.Ntfy.Enabled && c.Ntfy.Topic == "" {
		return fmt.Errorf("ntfy.topic is required when ntfy is enabled")
	}
	return nil
}
