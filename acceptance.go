package patchmatch

import (
	"image"
	"math"
)

// AcceptanceTest decides whether a candidate match should replace the
// current incumbent for a query patch (spec.md §4.2). Implementations must
// be deterministic for fixed inputs — no hidden state dependence.
type AcceptanceTest interface {
	// IsBetter returns whether candidate should replace incumbent for
	// queryRegion, and the verification score to record on the match (NaN
	// if the policy computes none).
	IsBetter(queryRegion image.Rectangle, incumbent, candidate Match) (accepted bool, verificationScore float32)
}

// SSDBetterAcceptance is the trivial policy: accept iff the candidate's
// SSD score improves on the incumbent's (spec.md §4.2).
type SSDBetterAcceptance struct{}

var _ AcceptanceTest = SSDBetterAcceptance{}

func (SSDBetterAcceptance) IsBetter(_ image.Rectangle, incumbent, candidate Match) (bool, float32) {
	if math.IsNaN(float64(candidate.SSDScore)) {
		return false, float32(math.NaN())
	}
	if math.IsNaN(float64(incumbent.SSDScore)) {
		return true, float32(math.NaN())
	}
	return candidate.SSDScore < incumbent.SSDScore, float32(math.NaN())
}

// AcceptAllAcceptance accepts any valid candidate unconditionally. It is
// used only for the final force-fill pass (spec.md §4.2, §4.5).
type AcceptAllAcceptance struct{}

var _ AcceptanceTest = AcceptAllAcceptance{}

func (AcceptAllAcceptance) IsBetter(_ image.Rectangle, _, candidate Match) (bool, float32) {
	if math.IsNaN(float64(candidate.SSDScore)) || candidate.Region.Empty() {
		return false, float32(math.NaN())
	}
	return true, float32(math.NaN())
}

// CompositeAcceptance requires both an SSD improvement and a secondary
// color-histogram distance at or below Threshold, storing the
// similarity in the match's VerificationScore and setting Verified=true on
// acceptance (spec.md §4.2). The histogram signature is computed against
// Image, so both queryRegion (target) and candidate.Region (source) can be
// summarized and compared with Hamming distance (histogram.go).
type CompositeAcceptance struct {
	Image     *FloatImage
	Threshold float32
}

var _ AcceptanceTest = (*CompositeAcceptance)(nil)

func (c *CompositeAcceptance) IsBetter(queryRegion image.Rectangle, incumbent, candidate Match) (bool, float32) {
	if math.IsNaN(float64(candidate.SSDScore)) {
		return false, float32(math.NaN())
	}
	improves := math.IsNaN(float64(incumbent.SSDScore)) || candidate.SSDScore < incumbent.SSDScore
	if !improves {
		return false, float32(math.NaN())
	}

	targetSig := colorHistogramSignature(c.Image, queryRegion)
	sourceSig := colorHistogramSignature(c.Image, candidate.Region)
	verification := histogramDistance(targetSig, sourceSig)

	if verification > c.Threshold {
		return false, verification
	}
	return true, verification
}
