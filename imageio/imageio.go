// Package imageio adapts the standard image.Image ecosystem to the
// patchmatch package's narrow FloatImage/Mask contracts (spec.md §1: file
// I/O is an external collaborator, not part of the core algorithm).
//
// Decoders for PNG, JPEG, GIF, TIFF and BMP are registered by importing
// this package, mirroring the teacher's (xswordsx/perceptualdiff)
// doc_test.go/metric_test.go idiom of blank-importing format packages
// next to a plain image.Decode call.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/ashgillman/patchmatch"
)

// ReadImage decodes r into a *patchmatch.FloatImage, normalizing every
// channel to [0, 1]. Any format registered via image.RegisterFormat (which
// importing this package does for PNG/JPEG/GIF/TIFF/BMP) is accepted.
func ReadImage(r io.Reader) (*patchmatch.FloatImage, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode image: %w", err)
	}
	return FromImage(src), nil
}

// FromImage converts an already-decoded image.Image into a FloatImage,
// normalizing color.Color's 16-bit channels down to [0, 1] float32.
func FromImage(src image.Image) *patchmatch.FloatImage {
	bounds := src.Bounds()
	out := patchmatch.NewFloatImage(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := image.Pt(x, y)
			r, g, b, _ := src.At(x, y).RGBA()
			out.Set(p, float32(r)/65535, float32(g)/65535, float32(b)/65535)
		}
	}
	return out
}

// WriteImage encodes img as PNG, clamping each channel back into [0, 1]
// before scaling to 8 bits, matching the teacher's doc_test.go use of
// image/png.Encode for its difference image.
func WriteImage(w io.Writer, img *patchmatch.FloatImage) error {
	return png.Encode(w, toRGBA(img))
}

// WriteBMP encodes img as BMP via golang.org/x/image/bmp, the second
// format the teacher's own go.mod dependency provides encode support for.
func WriteBMP(w io.Writer, img *patchmatch.FloatImage) error {
	return bmp.Encode(w, toRGBA(img))
}

func toRGBA(img *patchmatch.FloatImage) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds)
	for y := img.Bounds.Min.Y; y < img.Bounds.Max.Y; y++ {
		for x := img.Bounds.Min.X; x < img.Bounds.Max.X; x++ {
			p := image.Pt(x, y)
			r, g, b := img.At(p)
			out.SetNRGBA(x, y, clampColor(r, g, b))
		}
	}
	return out
}

func clampColor(r, g, b float32) color.NRGBA {
	return color.NRGBA{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b), A: 255}
}

func clampChannel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
