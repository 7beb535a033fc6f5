package patchmatch

import "image"

// FloatImage is the in-memory 3-channel floating-point pixel grid spec.md
// §6 names as the algorithm's input representation. Decoding real image
// files into this shape (and encoding it back out) is the imageio
// package's job (spec.md §1: file I/O is an external collaborator); this
// type is the narrow in-memory contract the core algorithm depends on.
type FloatImage struct {
	Bounds image.Rectangle
	// Pix holds row-major, 3 floats per pixel (R, G, B — or equivalent
	// channels for non-color data), length Bounds.Dx()*Bounds.Dy()*3.
	Pix []float32
}

// NewFloatImage allocates a zeroed FloatImage over bounds.
func NewFloatImage(bounds image.Rectangle) *FloatImage {
	return &FloatImage{
		Bounds: bounds,
		Pix:    make([]float32, bounds.Dx()*bounds.Dy()*3),
	}
}

func (img *FloatImage) offset(p image.Point) int {
	return ((p.Y-img.Bounds.Min.Y)*img.Bounds.Dx() + (p.X - img.Bounds.Min.X)) * 3
}

// At returns the 3 channel values at p. It does not check bounds: an
// out-of-bounds p either panics or reads another pixel's values, so
// callers must check p.In(img.Bounds) first (the core algorithm always
// does, via Mask and region containment checks).
func (img *FloatImage) At(p image.Point) (r, g, b float32) {
	i := img.offset(p)
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// Set writes the 3 channel values at p.
func (img *FloatImage) Set(p image.Point, r, g, b float32) {
	i := img.offset(p)
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = r, g, b
}
