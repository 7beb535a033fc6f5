package patchmatch

import (
	"image"

	"github.com/steakknife/hamming"
)

// histogramBins is the number of buckets per channel; 4 bins/channel gives
// a 4*4*4=64-bit signature, one bit per bucket, matching the 64-bit
// hamming.Uint64 comparison steakknife/hamming provides.
const histogramBins = 4

// colorHistogramSignature summarizes a patch's color distribution as a
// 64-bit binary signature: one bit per (R,G,B) bucket, set when that
// bucket's pixel count is at or above the patch's mean bucket count. This
// is the same "compare against a threshold to get a bit" idea
// lafin-brief/brief.go uses for its BRIEF descriptor, applied to histogram
// buckets instead of raw intensity pairs, so that two patches with a
// similar color distribution (not necessarily pixel-aligned, unlike SSD)
// produce signatures with a small Hamming distance.
func colorHistogramSignature(img *FloatImage, region image.Rectangle) uint64 {
	var counts [histogramBins * histogramBins * histogramBins]int
	n := 0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			r, g, b := img.At(image.Pt(x, y))
			bi := bucketIndex(r)*histogramBins*histogramBins + bucketIndex(g)*histogramBins + bucketIndex(b)
			counts[bi]++
			n++
		}
	}
	if n == 0 {
		return 0
	}
	// c >= n/len(counts), compared without integer division so a mean
	// below one pixel per bucket does not truncate to 0.
	var sig uint64
	for i, c := range counts {
		if c*len(counts) >= n {
			sig |= 1 << uint(i)
		}
	}
	return sig
}

// bucketIndex maps a [0,1]-ish channel value into [0, histogramBins).
func bucketIndex(v float32) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	bi := int(v * float32(histogramBins))
	if bi >= histogramBins {
		bi = histogramBins - 1
	}
	return bi
}

// histogramDistance returns the normalized (0..1) Hamming distance between
// two patch color-histogram signatures, used as the CompositeAcceptance
// secondary check's verification score.
func histogramDistance(a, b uint64) float32 {
	return float32(hamming.Uint64(a, b)) / 64.0
}
