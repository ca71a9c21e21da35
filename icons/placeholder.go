package icons

import (
	"image"
	"image/color"
	"strings"
	"unicode"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"thumbforge/common"
)

const placeholderSize = 512

var (
	placeholderFill = color.NRGBA{R: 70, G: 130, B: 180, A: 255}
	placeholderRing = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
)

// Placeholder draws a generic icon: a steel blue disc with a white ring
// and the query's first letter centered in the embedded font. It is the
// floor of the fallback chain and cannot fail.
func Placeholder(query string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))

	const (
		center = float64(placeholderSize) / 2
		radius = float64(placeholderSize)/2 - float64(placeholderSize)/8
		ring   = 8
	)

	scanner := rasterx.NewScannerGV(placeholderSize, placeholderSize, img, img.Bounds())
	filler := rasterx.NewFiller(placeholderSize, placeholderSize, scanner)

	filler.SetColor(placeholderRing)
	rasterx.AddCircle(center, center, radius, filler)
	filler.Draw()
	filler.Clear()

	filler.SetColor(placeholderFill)
	rasterx.AddCircle(center, center, radius-ring, filler)
	filler.Draw()

	drawLetter(img, initialOf(query))
	return img
}

// initialOf picks the badge letter: the first letter or digit of the
// query, uppercased, or "?" when there is none.
func initialOf(query string) string {
	for _, r := range strings.TrimSpace(query) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return string(unicode.ToUpper(r))
		}
	}
	return "?"
}

func drawLetter(img *image.RGBA, letter string) {
	f, err := common.LoadFont("")
	if err != nil {
		return // embedded font failed to parse, leave the blank disc
	}
	face, err := common.NewFace(f, float64(placeholderSize)/3)
	if err != nil {
		return
	}
	defer face.Close()

	// Center on the actual glyph bounds rather than the font metrics.
	bounds, _ := font.BoundString(face, letter)
	glyphW := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphH := (bounds.Max.Y - bounds.Min.Y).Ceil()
	originX := (placeholderSize-glyphW)/2 - bounds.Min.X.Floor()
	originY := (placeholderSize-glyphH)/2 - bounds.Min.Y.Floor()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: face,
	}
	d.Dot = fixed.P(originX, originY)
	d.DrawString(letter)
}
