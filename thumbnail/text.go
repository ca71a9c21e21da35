package thumbnail

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"thumbforge/common"
)

// fontSizeStep is how much the title size shrinks per fitting attempt.
const fontSizeStep = 10

// renderTitle draws the wrapped, centered title with its drop shadow
// onto dst.
func (g *Generator) renderTitle(dst *image.NRGBA, title string, override *color.NRGBA) error {
	face, lines, size, err := g.fitTitle(title)
	if err != nil {
		return err
	}
	defer face.Close()

	w, h := g.cfg.Canvas.Width, g.cfg.Canvas.Height
	lineHeight := int(float64(size) * g.cfg.Text.LineSpacing)
	startY := (h-lineHeight*len(lines))/2 + g.cfg.Layout.TextOffsetY

	// The shadow is the glyph mask in shadow color, offset and blurred,
	// composited under the fill text.
	shadow := g.cfg.Text.OuterShadow
	if shadow.Color[3] > 0 {
		mask := image.NewNRGBA(dst.Bounds())
		offset := image.Pt(shadow.Offset[0], shadow.Offset[1])
		drawTitleLines(mask, lines, face, w, startY, lineHeight, offset, shadow.Color.Color())
		if shadow.Blur > 0 {
			mask = imaging.Blur(mask, shadow.Blur)
		}
		draw.Draw(dst, dst.Bounds(), mask, image.Point{}, draw.Over)
	}

	textColor := g.cfg.Text.Color.Color()
	if override != nil {
		textColor = *override
	}
	drawTitleLines(dst, lines, face, w, startY, lineHeight, image.Point{}, textColor)

	return nil
}

// fitTitle finds the largest font size whose wrapped title fits within
// max_lines, stepping down from start_size. At the floor size the
// title is truncated instead.
func (g *Generator) fitTitle(title string) (font.Face, []string, int, error) {
	words := strings.Fields(title)
	maxWidth := int(float64(g.cfg.Canvas.Width) * g.cfg.Text.MaxWidth)

	for size := g.cfg.Text.StartSize; size > g.cfg.Text.MinSize; size -= fontSizeStep {
		face, err := common.NewFace(g.font, float64(size))
		if err != nil {
			return nil, nil, 0, err
		}
		lines := wrapWords(words, face, maxWidth)
		if len(lines) <= g.cfg.Text.MaxLines {
			return face, lines, size, nil
		}
		face.Close()
	}

	size := g.cfg.Text.MinSize
	face, err := common.NewFace(g.font, float64(size))
	if err != nil {
		return nil, nil, 0, err
	}
	lines := wrapWords(words, face, maxWidth)
	if len(lines) > g.cfg.Text.MaxLines {
		lines = lines[:g.cfg.Text.MaxLines]
	}
	return face, lines, size, nil
}

// wrapWords greedily packs words into lines no wider than maxWidth.
// A single word wider than the column becomes its own overwide line.
func wrapWords(words []string, face font.Face, maxWidth int) []string {
	var lines []string
	var current []string

	for _, word := range words {
		candidate := strings.Join(append(append([]string{}, current...), word), " ")
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
		} else {
			lines = append(lines, word)
		}
	}

	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// drawTitleLines paints each line horizontally centered, shifted by
// offset.
func drawTitleLines(dst *image.NRGBA, lines []string, face font.Face, canvasWidth, startY, lineHeight int, offset image.Point, col color.NRGBA) {
	ascent := face.Metrics().Ascent.Ceil()
	src := image.NewUniform(col)

	for i, line := range lines {
		lineWidth := font.MeasureString(face, line).Ceil()
		x := (canvasWidth-lineWidth)/2 + offset.X
		y := startY + i*lineHeight + ascent + offset.Y

		d := &font.Drawer{
			Dst:  dst,
			Src:  src,
			Face: face,
			Dot:  fixed.P(x, y),
		}
		d.DrawString(line)
	}
}
