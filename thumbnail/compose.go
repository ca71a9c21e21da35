// Package thumbnail composes blog thumbnails: a blurred background, a
// centered shadowed title and a row of icons, kept as separate layers
// until export.
package thumbnail

import (
	"image"
	"image/draw"
)

// Layer is one element of a composition. All layers share the canvas
// size; Name is carried into layered exports.
type Layer struct {
	Name  string
	Image *image.NRGBA
}

// Composition is a layer stack in bottom-up paint order.
type Composition struct {
	Width  int
	Height int
	Layers []Layer
}

// Flatten paints the layers onto a single canvas.
func (c *Composition) Flatten() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for _, layer := range c.Layers {
		draw.Draw(out, out.Bounds(), layer.Image, image.Point{}, draw.Over)
	}
	return out
}
