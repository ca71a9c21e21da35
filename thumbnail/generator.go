package thumbnail

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/opentype"

	"thumbforge/common"
	"thumbforge/config"
	"thumbforge/icons"
	"thumbforge/logging"
)

// IconSource resolves a search term to an icon image.
type IconSource interface {
	Search(ctx context.Context, query string) image.Image
}

// Request describes one thumbnail to compose.
type Request struct {
	Title          string
	BackgroundPath string
	IconPaths      []string // local image files, used as-is
	IconQueries    []string // resolved through the icon source

	// TextColor overrides the configured title color when set.
	TextColor *color.NRGBA
}

// Generator runs the compositing pipeline.
type Generator struct {
	cfg   *config.Config
	icons IconSource
	font  *opentype.Font
	log   *logrus.Entry
}

// NewGenerator creates a generator. The title font is loaded once here.
func NewGenerator(cfg *config.Config, icons IconSource) (*Generator, error) {
	f, err := common.LoadFont(cfg.Text.FontFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load title font: %w", err)
	}
	return &Generator{
		cfg:   cfg,
		icons: icons,
		font:  f,
		log:   logging.WithFields(logging.Fields{"component": "thumbnail"}),
	}, nil
}

// Compose builds the layer stack for a request: background, title, one
// layer per icon. Inputs are never mutated.
func (g *Generator) Compose(ctx context.Context, req Request) (*Composition, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title must not be empty")
	}

	g.log.Infof("Composing thumbnail %q", req.Title)

	background, err := g.prepareBackground(req.BackgroundPath)
	if err != nil {
		return nil, err
	}

	w, h := g.cfg.Canvas.Width, g.cfg.Canvas.Height
	titleLayer := image.NewNRGBA(image.Rect(0, 0, w, h))
	if err := g.renderTitle(titleLayer, req.Title, req.TextColor); err != nil {
		return nil, fmt.Errorf("failed to render title: %w", err)
	}

	comp := &Composition{
		Width:  w,
		Height: h,
		Layers: []Layer{
			{Name: "Background", Image: background},
			{Name: "Title", Image: titleLayer},
		},
	}
	comp.Layers = append(comp.Layers, g.iconLayers(g.collectIcons(ctx, req))...)

	return comp, nil
}

// collectIcons loads local icon files, then resolves search queries.
// A broken icon file is skipped with a warning rather than failing the
// whole thumbnail.
func (g *Generator) collectIcons(ctx context.Context, req Request) []image.Image {
	out := make([]image.Image, 0, len(req.IconPaths)+len(req.IconQueries))

	for _, path := range req.IconPaths {
		img, err := openIcon(path)
		if err != nil {
			g.log.Warnf("Skipping icon file %s: %v", path, err)
			continue
		}
		out = append(out, img)
	}

	for _, query := range req.IconQueries {
		if strings.TrimSpace(query) == "" {
			continue
		}
		out = append(out, g.icons.Search(ctx, query))
	}

	return out
}

// openIcon loads an icon file, rasterizing SVG markup to a 512px canvas
// and deferring to the image decoders for everything else.
func openIcon(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return icons.RasterizeSVG(data, 512, 512)
	}
	return imaging.Open(path)
}
