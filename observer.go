package patchmatch

import "image"

// Observer lets a caller instrument a Compute run without mutating the NNF
// (spec.md §9: a replacement for the source's ProcessPixelSignal /
// AcceptedSignal / PropagatedSignal slots). All methods are optional; embed
// NoopObserver to satisfy the interface with no-ops for the hooks you don't
// need.
type Observer interface {
	// OnPixelVisited is called once per pixel considered by a propagation
	// or random-search pass, after the process-predicate has let it
	// through.
	OnPixelVisited(p image.Point)

	// OnMatchAccepted is called whenever an AcceptanceTest accepts a
	// candidate, with the pixel it was accepted for and the new match.
	OnMatchAccepted(p image.Point, m Match)

	// OnPassCompleted is called once at the end of each propagation or
	// random-search pass, naming the pass and the number of pixels it
	// improved.
	OnPassCompleted(passName string, improved int)
}

// NoopObserver implements Observer with no-ops. Embed it to avoid
// implementing methods you don't care about.
type NoopObserver struct{}

func (NoopObserver) OnPixelVisited(image.Point)          {}
func (NoopObserver) OnMatchAccepted(image.Point, Match)  {}
func (NoopObserver) OnPassCompleted(string, int)         {}

var _ Observer = NoopObserver{}
