package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
canvas:
  width: 1280
  height: 720

background:
  blur_radius: 10

text:
  start_size: 120
  color: [200, 200, 200, 255]
  outer_shadow:
    offset: [2, 2]
    blur: 4
    color: [0, 0, 0, 128]

server:
  port: 8080

ntfy:
  enabled: true
  topic: thumbnails
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Canvas.Width != 1280 || cfg.Canvas.Height != 720 {
		t.Errorf("Expected canvas 1280x720, got %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}

	if cfg.Background.BlurRadius != 10 {
		t.Errorf("Expected blur_radius 10, got %v", cfg.Background.BlurRadius)
	}

	if cfg.Text.StartSize != 120 {
		t.Errorf("Expected start_size 120, got %d", cfg.Text.StartSize)
	}

	if cfg.Text.OuterShadow.Color != (RGBA{0, 0, 0, 128}) {
		t.Errorf("Expected shadow color [0 0 0 128], got %v", cfg.Text.OuterShadow.Color)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected server port 8080, got %d", cfg.Server.Port)
	}

	if !cfg.Ntfy.Enabled || cfg.Ntfy.Topic != "thumbnails" {
		t.Errorf("Expected ntfy enabled with topic 'thumbnails', got %+v", cfg.Ntfy)
	}

	// Keys absent from the file keep their defaults.
	if cfg.Text.LineSpacing != 1.1 {
		t.Errorf("Expected default line_spacing 1.1, got %v", cfg.Text.LineSpacing)
	}
	if cfg.Icons.MaxWidth != 200 {
		t.Errorf("Expected default icons.max_width 200, got %d", cfg.Icons.MaxWidth)
	}
	if cfg.Output.JPEGQuality != 90 {
		t.Errorf("Expected default jpeg_quality 90, got %d", cfg.Output.JPEGQuality)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := Default()
	if cfg.Canvas != def.Canvas {
		t.Errorf("Expected default canvas %+v, got %+v", def.Canvas, cfg.Canvas)
	}
	if cfg.Text.StartSize != def.Text.StartSize {
		t.Errorf("Expected default start_size %d, got %d", def.Text.StartSize, cfg.Text.StartSize)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero canvas width",
			mutate:  func(c *Config) { c.Canvas.Width = 0 },
			wantErr: true,
		},
		{
			name:    "text max_width over 1",
			mutate:  func(c *Config) { c.Text.MaxWidth = 1.5 },
			wantErr: true,
		},
		{
			name:    "start_size below min_size",
			mutate:  func(c *Config) { c.Text.StartSize = 10 },
			wantErr: true,
		},
		{
			name:    "zero max_lines",
			mutate:  func(c *Config) { c.Text.MaxLines = 0 },
			wantErr: true,
		},
		{
			name:    "jpeg quality out of range",
			mutate:  func(c *Config) { c.Output.JPEGQuality = 101 },
			wantErr: true,
		},
		{
			name:    "unknown png compression",
			mutate:  func(c *Config) { c.Output.PNGCompression = "turbo" },
			wantErr: true,
		},
		{
			name:    "ntfy enabled without topic",
			mutate:  func(c *Config) { c.Ntfy.Enabled = true },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRGBAColor(t *testing.T) {
	c := RGBA{10, 20, 30, 40}
	want := color.NRGBA{R: 10, G: 20, B: 30, A: 40}
	if c.Color() != want {
		t.Errorf("Color() = %v, want %v", c.Color(), want)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("THUMBFORGE_LOG_LEVEL", "debug")
	t.Setenv("THUMBFORGE_NTFY_TOPIC", "covers")

	cfg := Default()
	cfg.applyEnv()

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug', got %q", cfg.LogLevel)
	}
	if !cfg.Ntfy.Enabled || cfg.Ntfy.Topic != "covers" {
		t.Errorf("Expected ntfy enabled with topic 'covers', got %+v", cfg.Ntfy)
	}
}
