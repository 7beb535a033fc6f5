package imageio_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/ashgillman/patchmatch/imageio"
)

func TestMaskFromImageThresholdsLuminance(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 1)
	src := image.NewGray(bounds)
	src.SetGray(0, 0, color.Gray{Y: 0})   // black -> hole
	src.SetGray(1, 0, color.Gray{Y: 255}) // white -> valid
	src.SetGray(2, 0, color.Gray{Y: 64})
	src.SetGray(3, 0, color.Gray{Y: 200})

	mask := imageio.MaskFromImage(src)
	if !mask.IsHolePixel(image.Pt(0, 0)) {
		t.Errorf("black pixel should be classified Hole")
	}
	if !mask.IsValidPixel(image.Pt(1, 0)) {
		t.Errorf("white pixel should be classified Valid")
	}
	if !mask.IsHolePixel(image.Pt(2, 0)) {
		t.Errorf("dark gray pixel should be classified Hole")
	}
	if !mask.IsValidPixel(image.Pt(3, 0)) {
		t.Errorf("light gray pixel should be classified Valid")
	}
}

func TestRasterizeMaskResamples(t *testing.T) {
	small := image.NewGray(image.Rect(0, 0, 2, 1))
	small.SetGray(0, 0, color.Gray{Y: 0})
	small.SetGray(1, 0, color.Gray{Y: 255})

	mask := imageio.RasterizeMask(small, image.Rect(0, 0, 4, 2))
	if got, want := mask.Bounds(), image.Rect(0, 0, 4, 2); got != want {
		t.Fatalf("RasterizeMask bounds = %v, want %v", got, want)
	}
	if !mask.IsHolePixel(image.Pt(0, 0)) {
		t.Errorf("left half should resample to Hole")
	}
	if !mask.IsValidPixel(image.Pt(3, 0)) {
		t.Errorf("right half should resample to Valid")
	}
}
