package thumbnail

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// Allow webp backgrounds in addition to imaging's built-in formats.
	_ "golang.org/x/image/webp"
)

// prepareBackground loads the photo, center-crops it to the canvas and
// applies the configured gaussian blur.
func (g *Generator) prepareBackground(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open background %s: %w", path, err)
	}

	filled := imaging.Fill(img, g.cfg.Canvas.Width, g.cfg.Canvas.Height, imaging.Center, imaging.Lanczos)

	if sigma := g.cfg.Background.BlurRadius; sigma > 0 {
		filled = imaging.Blur(filled, sigma)
	}

	return filled, nil
}
