package thumbnail

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"

	"thumbforge/common"
	"thumbforge/config"
)

// stubIcons returns a fixed solid square without touching the network.
type stubIcons struct{}

func (stubIcons) Search(ctx context.Context, query string) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 200
		img.Pix[i+3] = 255
	}
	return img
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Canvas.Width = 320
	cfg.Canvas.Height = 180
	cfg.Text.StartSize = 40
	cfg.Text.MinSize = 10
	cfg.Icons.MaxWidth = 48
	return cfg
}

func writeBackground(t *testing.T, dir string) string {
	t.Helper()
	img := imaging.New(640, 360, color.NRGBA{R: 30, G: 60, B: 90, A: 255})
	path := filepath.Join(dir, "background.png")
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("Failed to write background: %v", err)
	}
	return path
}

func TestCompose(t *testing.T) {
	cfg := testConfig()
	g, err := NewGenerator(cfg, stubIcons{})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	req := Request{
		Title:          "My First Post",
		BackgroundPath: writeBackground(t, t.TempDir()),
		IconQueries:    []string{"go", "docker"},
	}

	comp, err := g.Compose(context.Background(), req)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	wantLayers := []string{"Background", "Title", "Icon 1", "Icon 2"}
	if len(comp.Layers) != len(wantLayers) {
		t.Fatalf("Expected %d layers, got %d", len(wantLayers), len(comp.Layers))
	}
	for i, name := range wantLayers {
		if comp.Layers[i].Name != name {
			t.Errorf("Layer %d named %q, want %q", i, comp.Layers[i].Name, name)
		}
		b := comp.Layers[i].Image.Bounds()
		if b.Dx() != cfg.Canvas.Width || b.Dy() != cfg.Canvas.Height {
			t.Errorf("Layer %q is %v, want canvas size", name, b)
		}
	}

	flat := comp.Flatten()
	if flat.Bounds().Dx() != cfg.Canvas.Width || flat.Bounds().Dy() != cfg.Canvas.Height {
		t.Errorf("Flatten returned %v", flat.Bounds())
	}
	// Background is opaque, so the flattened corner must be too.
	if _, _, _, a := flat.At(0, 0).RGBA(); a == 0 {
		t.Error("Expected opaque flattened image")
	}
}

func TestComposeEmptyTitle(t *testing.T) {
	g, err := NewGenerator(testConfig(), stubIcons{})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	if _, err := g.Compose(context.Background(), Request{Title: "   "}); err == nil {
		t.Error("Expected error for blank title")
	}
}

func TestComposeMissingBackground(t *testing.T) {
	g, err := NewGenerator(testConfig(), stubIcons{})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	req := Request{Title: "Post", BackgroundPath: "/nonexistent/background.jpg"}
	if _, err := g.Compose(context.Background(), req); err == nil {
		t.Error("Expected error for missing background")
	}
}

func TestComposeSkipsBrokenIconFile(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(broken, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write broken icon: %v", err)
	}

	g, err := NewGenerator(testConfig(), stubIcons{})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	req := Request{
		Title:          "Post",
		BackgroundPath: writeBackground(t, dir),
		IconPaths:      []string{broken},
		IconQueries:    []string{"go"},
	}

	comp, err := g.Compose(context.Background(), req)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	// Broken file is dropped, the query icon survives.
	if len(comp.Layers) != 3 {
		t.Errorf("Expected 3 layers, got %d", len(comp.Layers))
	}
}

func TestOpenIconSVG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><circle cx="5" cy="5" r="4" fill="#0f0"/></svg>`
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		t.Fatalf("Failed to write svg: %v", err)
	}

	img, err := openIcon(path)
	if err != nil {
		t.Fatalf("openIcon failed: %v", err)
	}
	if img.Bounds().Dx() != 512 {
		t.Errorf("Expected 512px raster, got %d", img.Bounds().Dx())
	}
}

func TestResizeIcon(t *testing.T) {
	g, err := NewGenerator(testConfig(), stubIcons{})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	big := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	if got := g.resizeIcon(big); got.Bounds().Dx() != 48 || got.Bounds().Dy() != 24 {
		t.Errorf("Expected 48x24 resize, got %v", got.Bounds())
	}

	small := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	if got := g.resizeIcon(small); got.Bounds().Dx() != 20 {
		t.Errorf("Expected small icon untouched, got %v", got.Bounds())
	}
}

func TestWrapWords(t *testing.T) {
	f, err := common.LoadFont("")
	if err != nil {
		t.Fatalf("Failed to load font: %v", err)
	}
	face, err := common.NewFace(f, 20)
	if err != nil {
		t.Fatalf("Failed to create face: %v", err)
	}
	defer face.Close()

	t.Run("single short line", func(t *testing.T) {
		lines := wrapWords(strings.Fields("hello world"), face, 10000)
		if len(lines) != 1 || lines[0] != "hello world" {
			t.Errorf("Got %v, want one line", lines)
		}
	})

	t.Run("wraps at width", func(t *testing.T) {
		text := "one two three four five six seven eight"
		maxWidth := 120
		lines := wrapWords(strings.Fields(text), face, maxWidth)
		if len(lines) < 2 {
			t.Fatalf("Expected wrapping, got %v", lines)
		}
		// No words lost or reordered, and every multi-word line fits.
		if strings.Join(lines, " ") != text {
			t.Errorf("Words changed: %v", lines)
		}
		for _, line := range lines {
			if strings.Contains(line, " ") && font.MeasureString(face, line).Ceil() > maxWidth {
				t.Errorf("Line %q wider than %d", line, maxWidth)
			}
		}
	})

	t.Run("overlong word gets own line", func(t *testing.T) {
		lines := wrapWords(strings.Fields("supercalifragilisticexpialidocious ok"), face, 40)
		if len(lines) != 2 || lines[0] != "supercalifragilisticexpialidocious" {
			t.Errorf("Got %v, want the long word on its own line", lines)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if lines := wrapWords(nil, face, 100); len(lines) != 0 {
			t.Errorf("Got %v, want no lines", lines)
		}
	})
}

func TestFitTitleRespectsMaxLines(t *testing.T) {
	cfg := testConfig()
	cfg.Text.MaxLines = 2

	g, err := NewGenerator(cfg, stubIcons{})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	long := "a very long title with far too many words to ever fit on two lines at any size"
	face, lines, size, err := g.fitTitle(long)
	if err != nil {
		t.Fatalf("fitTitle failed: %v", err)
	}
	defer face.Close()

	if len(lines) > cfg.Text.MaxLines {
		t.Errorf("Got %d lines, max is %d", len(lines), cfg.Text.MaxLines)
	}
	if size < cfg.Text.MinSize || size > cfg.Text.StartSize {
		t.Errorf("Size %d outside [%d, %d]", size, cfg.Text.MinSize, cfg.Text.StartSize)
	}
}

func TestFitTitleShortStaysAtStartSize(t *testing.T) {
	g, err := NewGenerator(testConfig(), stubIcons{})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	face, lines, size, err := g.fitTitle("Hi")
	if err != nil {
		t.Fatalf("fitTitle failed: %v", err)
	}
	defer face.Close()

	if size != g.cfg.Text.StartSize {
		t.Errorf("Expected start size %d, got %d", g.cfg.Text.StartSize, size)
	}
	if len(lines) != 1 || lines[0] != "Hi" {
		t.Errorf("Expected single line, got %v", lines)
	}
}

func TestSilhouette(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	// (1,0) left transparent

	sil := silhouette(src, color.NRGBA{R: 0, G: 0, B: 0, A: 128})

	got := sil.NRGBAAt(0, 0)
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("Expected shadow color, got %v", got)
	}
	if got.A != 128 {
		t.Errorf("Expected alpha 128, got %d", got.A)
	}
	if sil.NRGBAAt(1, 0).A != 0 {
		t.Error("Expected transparent pixel to stay transparent")
	}
}
