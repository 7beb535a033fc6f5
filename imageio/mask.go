package imageio

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"golang.org/x/image/draw"

	"github.com/ashgillman/patchmatch"
)

// HoleThreshold is the luminance (out of 0xffff) below which a mask pixel
// is classified as patchmatch.Hole rather than patchmatch.Valid, following
// the common inpainting-mask convention (black = hole to fill, white =
// known source) carried over from original_source/'s mask handling.
const HoleThreshold = 0x8000

// ReadMask decodes r as an image and classifies each pixel Hole or Valid by
// thresholding its luminance against HoleThreshold.
func ReadMask(r io.Reader) (*patchmatch.Mask, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode mask: %w", err)
	}
	return MaskFromImage(src), nil
}

// MaskFromImage classifies src's pixels directly, without requiring a
// Reader, for callers that already hold a decoded image.Image (e.g. a mask
// rasterized by RasterizeMask).
func MaskFromImage(src image.Image) *patchmatch.Mask {
	bounds := src.Bounds()
	return patchmatch.NewMaskFromLabelFunc(bounds, func(p image.Point) patchmatch.Label {
		r, g, b, _ := src.At(p.X, p.Y).RGBA()
		luma := (r + g + b) / 3
		if luma < HoleThreshold {
			return patchmatch.Hole
		}
		return patchmatch.Valid
	})
}

// RasterizeMask nearest-neighbor-resamples src onto bounds via
// golang.org/x/image/draw, then classifies the result — for callers whose
// mask image is a different resolution than the working image (SPEC_FULL.md
// DOMAIN STACK: golang.org/x/image/draw).
func RasterizeMask(src image.Image, bounds image.Rectangle) *patchmatch.Mask {
	dst := image.NewGray(bounds)
	draw.NearestNeighbor.Scale(dst, bounds, src, src.Bounds(), draw.Over, nil)
	return MaskFromImage(dst)
}

// centersMagic tags the raw centers-image format WriteCenters/ReadCenters
// use: PNG cannot round-trip float32 match_score/NaN data, so the
// "centers image" spec.md §6 and SPEC_FULL.md's supplemented feature 2
// describe is serialized as a small length-prefixed binary stream instead
// of an actual codec-registered image format.
const centersMagic = "PMC1"

// WriteCenters serializes centers (as produced by NNF.CentersImage) to w:
// a 4-byte magic, width/height as big-endian uint32, then width*height*3
// big-endian float32 values in raster order.
func WriteCenters(w io.Writer, centers *patchmatch.FloatImage) error {
	if _, err := io.WriteString(w, centersMagic); err != nil {
		return err
	}
	dims := []uint32{uint32(centers.Bounds.Dx()), uint32(centers.Bounds.Dy())}
	if err := binary.Write(w, binary.BigEndian, dims); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, centers.Pix)
}

// ReadCenters deserializes a stream written by WriteCenters.
func ReadCenters(r io.Reader) (*patchmatch.FloatImage, error) {
	magic := make([]byte, len(centersMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("imageio: read centers magic: %w", err)
	}
	if string(magic) != centersMagic {
		return nil, fmt.Errorf("imageio: not a centers stream (got magic %q)", magic)
	}
	var dims [2]uint32
	if err := binary.Read(r, binary.BigEndian, &dims); err != nil {
		return nil, fmt.Errorf("imageio: read centers dimensions: %w", err)
	}
	w, h := int(dims[0]), int(dims[1])
	bounds := image.Rect(0, 0, w, h)
	out := patchmatch.NewFloatImage(bounds)
	if err := binary.Read(r, binary.BigEndian, out.Pix); err != nil {
		return nil, fmt.Errorf("imageio: read centers pixels: %w", err)
	}
	return out, nil
}
