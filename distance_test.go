package patchmatch

import (
	"image"
	"math"
	"testing"
)

func solidImage(bounds image.Rectangle, r, g, b float32) *FloatImage {
	img := NewFloatImage(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(image.Pt(x, y), r, g, b)
		}
	}
	return img
}

func allValidMask(bounds image.Rectangle) *Mask {
	return NewMaskFromLabelFunc(bounds, func(image.Point) Label { return Valid })
}

func TestSSDDistanceIdenticalPatchesAreZero(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	img := solidImage(bounds, 0.5, 0.25, 0.75)
	mask := allValidMask(bounds)
	d := &SSD{Image: img, SourceMask: mask}

	source := patchRegion(image.Pt(3, 3), 1)
	target := patchRegion(image.Pt(6, 6), 1)
	if got := d.Distance(source, target); got != 0 {
		t.Errorf("Distance on identical-colored patches = %v, want 0", got)
	}
}

func TestSSDDistanceOutOfBoundsIsInf(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	img := solidImage(bounds, 0, 0, 0)
	mask := allValidMask(bounds)
	d := &SSD{Image: img, SourceMask: mask}

	source := patchRegion(image.Pt(0, 0), 3) // extends to x=-3, out of bounds
	target := patchRegion(image.Pt(5, 5), 3)
	if got := d.Distance(source, target); !math.IsInf(float64(got), 1) {
		t.Errorf("Distance with out-of-bounds source = %v, want +Inf", got)
	}
}

func TestSSDDistanceInvalidSourceIsInf(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	img := solidImage(bounds, 0, 0, 0)
	mask := NewMaskFromLabelFunc(bounds, func(p image.Point) Label {
		if p.X < 5 {
			return Hole
		}
		return Valid
	})
	d := &SSD{Image: img, SourceMask: mask}

	source := patchRegion(image.Pt(2, 2), 1) // inside the hole half
	target := patchRegion(image.Pt(7, 7), 1)
	if got := d.Distance(source, target); !math.IsInf(float64(got), 1) {
		t.Errorf("Distance over a hole-overlapping source region = %v, want +Inf", got)
	}
}

func TestSSDDistanceBoundedMatchesDistanceForFullWindow(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	img := NewFloatImage(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(image.Pt(x, y), float32(x)/10, float32(y)/10, 0)
		}
	}
	mask := allValidMask(bounds)
	d := &SSD{Image: img, SourceMask: mask}

	source := patchRegion(image.Pt(2, 2), 2)
	target := patchRegion(image.Pt(7, 7), 2)
	full := d.DistanceBounded(source, target, float32(math.Inf(1)))
	plain := d.Distance(source, target)
	if full != plain {
		t.Errorf("DistanceBounded with +Inf threshold = %v, want equal to Distance() = %v", full, plain)
	}
}

func TestPerceptualSSDIdenticalPatchesAreZero(t *testing.T) {
	bounds := image.Rect(0, 0, 6, 6)
	img := solidImage(bounds, 0.4, 0.4, 0.4)
	mask := allValidMask(bounds)
	d := &PerceptualSSD{Image: img, SourceMask: mask}

	source := patchRegion(image.Pt(2, 2), 1)
	target := patchRegion(image.Pt(3, 3), 1)
	if got := d.Distance(source, target); got != 0 {
		t.Errorf("PerceptualSSD.Distance on identical patches = %v, want 0", got)
	}
}

func TestPCADistanceIdentityBasis(t *testing.T) {
	bounds := image.Rect(0, 0, 6, 6)
	img := NewFloatImage(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(image.Pt(x, y), float32(x), float32(y), 1)
		}
	}
	mask := allValidMask(bounds)

	// A 1-patch (radius 0) has a 3-float vector; an identity basis with no
	// mean-centering should reduce PCADistance to the plain squared
	// L2 distance between the two pixels' colors.
	basis := &PCABasis{
		Mean: []float32{0, 0, 0},
		Components: [][]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	}
	d := &PCADistance{Image: img, SourceMask: mask, Basis: basis, Radius: 0}

	source := patchRegion(image.Pt(1, 1), 0)
	target := patchRegion(image.Pt(4, 4), 0)
	got := d.Distance(source, target)
	want := float32((1-4)*(1-4) + (1-4)*(1-4) + 0)
	if got != want {
		t.Errorf("PCADistance with identity basis = %v, want %v", got, want)
	}
}
