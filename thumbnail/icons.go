package thumbnail

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// iconLayers lays the icons out as a centered row below the title, one
// composition layer per icon with its own blurred drop shadow.
func (g *Generator) iconLayers(iconImages []image.Image) []Layer {
	if len(iconImages) == 0 {
		return nil
	}

	resized := make([]*image.NRGBA, len(iconImages))
	totalWidth := g.cfg.Icons.Gap * (len(iconImages) - 1)
	for i, icon := range iconImages {
		resized[i] = g.resizeIcon(icon)
		totalWidth += resized[i].Bounds().Dx()
	}

	w, h := g.cfg.Canvas.Width, g.cfg.Canvas.Height
	x := (w - totalWidth) / 2
	y := h/2 + g.cfg.Layout.IconsOffsetY

	shadow := g.cfg.Icons.OuterShadow
	layers := make([]Layer, 0, len(resized))
	for i, icon := range resized {
		layer := image.NewNRGBA(image.Rect(0, 0, w, h))

		if shadow.Color[3] > 0 {
			sil := silhouette(icon, shadow.Color.Color())
			if shadow.Blur > 0 {
				sil = imaging.Blur(sil, shadow.Blur)
			}
			pasteOver(layer, sil, x+shadow.Offset[0], y+shadow.Offset[1])
		}
		pasteOver(layer, icon, x, y)

		layers = append(layers, Layer{Name: fmt.Sprintf("Icon %d", i+1), Image: layer})
		x += icon.Bounds().Dx() + g.cfg.Icons.Gap
	}

	return layers
}

// resizeIcon shrinks an icon to the configured maximum width, keeping
// aspect. Smaller icons are left at their native size.
func (g *Generator) resizeIcon(icon image.Image) *image.NRGBA {
	if icon.Bounds().Dx() > g.cfg.Icons.MaxWidth {
		return imaging.Resize(icon, g.cfg.Icons.MaxWidth, 0, imaging.Lanczos)
	}
	return imaging.Clone(icon)
}

// silhouette returns the alpha mask of src filled with col.
func silhouette(src *image.NRGBA, col color.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	for i := 0; i < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		if a == 0 {
			continue
		}
		out.Pix[i] = col.R
		out.Pix[i+1] = col.G
		out.Pix[i+2] = col.B
		out.Pix[i+3] = uint8(uint16(a) * uint16(col.A) / 255)
	}
	return out
}

// pasteOver alpha-composites src onto dst with its top-left at (x, y).
func pasteOver(dst *image.NRGBA, src *image.NRGBA, x, y int) {
	r := image.Rect(x, y, x+src.Bounds().Dx(), y+src.Bounds().Dy())
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
}
