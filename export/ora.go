package export

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	"thumbforge/thumbnail"
)

// OpenRaster constants. The mimetype entry must be the first file in
// the archive and stored uncompressed for readers to sniff it.
const (
	oraMimetype     = "image/openraster"
	oraVersion      = "0.0.3"
	oraThumbnailMax = 256
)

type oraImage struct {
	XMLName xml.Name `xml:"image"`
	W       int      `xml:"w,attr"`
	H       int      `xml:"h,attr"`
	Version string   `xml:"version,attr"`
	XRes    int      `xml:"xres,attr"`
	YRes    int      `xml:"yres,attr"`
	Stack   oraStack `xml:"stack"`
}

type oraStack struct {
	Layers []oraLayer `xml:"layer"`
}

type oraLayer struct {
	Name       string  `xml:"name,attr"`
	Src        string  `xml:"src,attr"`
	X          int     `xml:"x,attr"`
	Y          int     `xml:"y,attr"`
	Opacity    float64 `xml:"opacity,attr"`
	Visibility string  `xml:"visibility,attr"`
}

// WriteORA writes the composition as an OpenRaster file: the editable,
// layered format GIMP and Krita open natively.
func WriteORA(comp *thumbnail.Composition, path string) error {
	return atomicWrite(path, func(w io.Writer) error {
		zw := zip.NewWriter(w)

		mt, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
		if err != nil {
			return fmt.Errorf("failed to create mimetype entry: %w", err)
		}
		if _, err := mt.Write([]byte(oraMimetype)); err != nil {
			return fmt.Errorf("failed to write mimetype: %w", err)
		}

		if err := writeStackXML(zw, comp); err != nil {
			return err
		}

		for i, layer := range comp.Layers {
			if err := zipPNG(zw, fmt.Sprintf("data/layer%d.png", i), layer.Image); err != nil {
				return err
			}
		}

		merged := comp.Flatten()
		if err := zipPNG(zw, "mergedimage.png", merged); err != nil {
			return err
		}
		preview := imaging.Fit(merged, oraThumbnailMax, oraThumbnailMax, imaging.Lanczos)
		if err := zipPNG(zw, "Thumbnails/thumbnail.png", preview); err != nil {
			return err
		}

		return zw.Close()
	})
}

// writeStackXML emits the layer index. OpenRaster stacks are listed
// top-down, the reverse of our paint order.
func writeStackXML(zw *zip.Writer, comp *thumbnail.Composition) error {
	doc := oraImage{
		W:       comp.Width,
		H:       comp.Height,
		Version: oraVersion,
		XRes:    72,
		YRes:    72,
	}
	for i := len(comp.Layers) - 1; i >= 0; i-- {
		doc.Stack.Layers = append(doc.Stack.Layers, oraLayer{
			Name:       comp.Layers[i].Name,
			Src:        fmt.Sprintf("data/layer%d.png", i),
			Opacity:    1.0,
			Visibility: "visible",
		})
	}

	f, err := zw.Create("stack.xml")
	if err != nil {
		return fmt.Errorf("failed to create stack.xml: %w", err)
	}
	if _, err := f.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("failed to write stack.xml: %w", err)
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode stack.xml: %w", err)
	}
	return nil
}

func zipPNG(zw *zip.Writer, name string, img image.Image) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return nil
}
