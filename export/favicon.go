package export

import (
	"fmt"
	"image"
	"io"
	"math"

	ico "github.com/sergeymakinen/go-ico"
	xdraw "golang.org/x/image/draw"
)

// WriteFavicon renders src at each requested size and writes a
// multi-size ICO.
func WriteFavicon(src image.Image, path string, sizes []int) error {
	if len(sizes) == 0 {
		sizes = []int{16, 32, 48}
	}

	images := make([]image.Image, 0, len(sizes))
	for _, size := range sizes {
		if size <= 0 || size > 256 {
			return fmt.Errorf("favicon size %d out of range (1-256)", size)
		}
		images = append(images, scaleSquare(src, size))
	}

	return atomicWrite(path, func(w io.Writer) error {
		return ico.EncodeAll(w, images)
	})
}

// scaleSquare fits src into a size×size transparent canvas, centered,
// preserving aspect.
func scaleSquare(src image.Image, size int) *image.NRGBA {
	srcBounds := src.Bounds()
	scale := math.Min(
		float64(size)/float64(srcBounds.Dx()),
		float64(size)/float64(srcBounds.Dy()),
	)
	newW := int(math.Round(float64(srcBounds.Dx()) * scale))
	newH := int(math.Round(float64(srcBounds.Dy()) * scale))

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	offX := (size - newW) / 2
	offY := (size - newH) / 2
	dr := image.Rect(offX, offY, offX+newW, offY+newH)
	xdraw.CatmullRom.Scale(dst, dr, src, srcBounds, xdraw.Over, nil)
	return dst
}
