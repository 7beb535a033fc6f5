package imageio_test

import (
	"bytes"
	"image"
	"testing"

	"github.com/ashgillman/patchmatch"
	"github.com/ashgillman/patchmatch/imageio"
)

func TestWriteImageReadImageRoundTrip(t *testing.T) {
	bounds := image.Rect(0, 0, 8, 8)
	img := patchmatch.NewFloatImage(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(image.Pt(x, y), float32(x)/7, float32(y)/7, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := imageio.WriteImage(&buf, img); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	got, err := imageio.ReadImage(&buf)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if got.Bounds != img.Bounds {
		t.Fatalf("round-tripped bounds = %v, want %v", got.Bounds, img.Bounds)
	}

	// PNG is 8-bit per channel, so round-tripping loses precision; allow a
	// small tolerance rather than requiring bit-exact floats.
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := image.Pt(x, y)
			wr, wg, wb := img.At(p)
			gr, gg, gb := got.At(p)
			if abs(wr-gr) > 0.01 || abs(wg-gg) > 0.01 || abs(wb-gb) > 0.01 {
				t.Fatalf("pixel %v round-tripped to (%v,%v,%v), want approximately (%v,%v,%v)", p, gr, gg, gb, wr, wg, wb)
			}
		}
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestWriteCentersReadCentersRoundTrip(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 3)
	centers := patchmatch.NewFloatImage(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			centers.Set(image.Pt(x, y), float32(x), float32(y), float32(x+y))
		}
	}

	var buf bytes.Buffer
	if err := imageio.WriteCenters(&buf, centers); err != nil {
		t.Fatalf("WriteCenters: %v", err)
	}

	got, err := imageio.ReadCenters(&buf)
	if err != nil {
		t.Fatalf("ReadCenters: %v", err)
	}
	if got.Bounds != centers.Bounds {
		t.Fatalf("round-tripped bounds = %v, want %v", got.Bounds, centers.Bounds)
	}
	for i := range centers.Pix {
		if got.Pix[i] != centers.Pix[i] {
			t.Fatalf("Pix[%d] = %v, want %v (centers codec must round-trip exactly)", i, got.Pix[i], centers.Pix[i])
		}
	}
}

func TestReadCentersRejectsBadMagic(t *testing.T) {
	_, err := imageio.ReadCenters(bytes.NewReader([]byte("NOPE0000")))
	if err == nil {
		t.Fatalf("expected an error for a stream with the wrong magic")
	}
}
