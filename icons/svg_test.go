package icons

import "testing"

func TestRasterizeSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10" fill="#ff0000"/></svg>`)

	img, err := RasterizeSVG(svg, 64, 64)
	if err != nil {
		t.Fatalf("RasterizeSVG failed: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("Expected 64x64 raster, got %v", img.Bounds())
	}

	r, _, _, a := img.At(32, 32).RGBA()
	if a == 0 || r == 0 {
		t.Errorf("Expected red fill at center, got r=%d a=%d", r, a)
	}
}

func TestRasterizeSVGInvalid(t *testing.T) {
	if _, err := RasterizeSVG([]byte("not svg at all"), 64, 64); err == nil {
		t.Error("Expected error for invalid SVG data")
	}
}
