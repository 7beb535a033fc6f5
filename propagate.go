package patchmatch

import "image"

// ProcessPredicate decides whether a target pixel should be processed by a
// propagation or random-search pass (spec.md §4.5 step 1). The standard
// predicate is StandardPredicate; the force-fill pass uses
// InvalidOnlyPredicate.
type ProcessPredicate func(nnf *NNF, targetMask *Mask, p image.Point) bool

// StandardPredicate processes a pixel iff it is a Hole (target) pixel of
// the target mask and its current best score is not exactly 0 (an exact match needs no
// further work — spec.md §4.5, mirroring the original source's "most of
// the NN-field will be an exact match" short-circuit).
func StandardPredicate(nnf *NNF, targetMask *Mask, p image.Point) bool {
	if !targetMask.IsHolePixel(p) {
		return false
	}
	best := nnf.Best(p)
	return !(best.Valid() && best.SSDScore == 0)
}

// InvalidOnlyPredicate processes a pixel iff it currently has no valid
// match at all — the force-fill pass's predicate (spec.md §4.5).
func InvalidOnlyPredicate(nnf *NNF, targetMask *Mask, p image.Point) bool {
	return targetMask.IsHolePixel(p) && !nnf.Best(p).Valid()
}

// TraversalOrder controls the direction target pixels are visited in
// during one propagation pass (spec.md §5: forward propagation must
// traverse raster order, backward must traverse the reverse).
type TraversalOrder int

const (
	RasterOrder TraversalOrder = iota
	ReverseRasterOrder
)

// Propagator runs one forward-or-backward scan over target pixels,
// proposing neighbor-derived candidates (spec.md §4.5). It is
// parameterized by the same four capabilities spec.md names: a
// NeighborFunctor, a ProcessPredicate, a PatchDistance and an
// AcceptanceTest.
type Propagator struct {
	Radius     int
	Image      *FloatImage
	SourceMask *Mask
	TargetMask *Mask
	Distance   PatchDistance
	Accept     AcceptanceTest
	Observer   Observer
}

// Propagate runs one pass over p in the given traversal order, testing
// candidates proposed by neighbors and gated by predicate. It returns the
// number of pixels to which a better match was propagated (spec.md §4.5).
// passLabel is only used for Observer.OnPassCompleted's pass name.
func (pr *Propagator) Propagate(nnf *NNF, neighbors NeighborFunctor, predicate ProcessPredicate, order TraversalOrder, passLabel string) int {
	obs := pr.Observer
	if obs == nil {
		obs = NoopObserver{}
	}
	improved := 0
	for _, p := range traversalPixels(nnf.Bounds, order) {
		if !predicate(nnf, pr.TargetMask, p) {
			continue
		}

		target := patchRegion(p, pr.Radius)
		if !insideImage(target, pr.Image.Bounds) {
			continue
		}
		obs.OnPixelVisited(p)

		for _, q := range neighbors.Neighbors(p) {
			if !q.In(nnf.Bounds) {
				continue
			}
			qBest := nnf.Best(q)
			if !qBest.Valid() {
				continue
			}

			delta := q.Sub(p)
			candidateCenter := regionCenter(qBest.Region).Sub(delta)
			source := patchRegion(candidateCenter, pr.Radius)

			if !insideImage(source, pr.Image.Bounds) {
				continue
			}
			if !pr.SourceMask.IsValidRegion(source) {
				continue
			}

			d := pr.Distance.Distance(source, target)
			candidate := Match{Region: source, SSDScore: d}

			set := nnf.At(p)
			accepted, _ := set.Add(target, candidate, pr.Accept)
			if accepted {
				improved++
				obs.OnMatchAccepted(p, set.Best())
			}
		}
	}
	obs.OnPassCompleted(passLabel, improved)
	return improved
}

// ForceFill runs the force-fill pass (spec.md §4.5, §4.7): All-8
// neighbors, the invalid-only predicate, and accept-all. It is run once
// after the final propagation/search iteration.
func (pr *Propagator) ForceFill(nnf *NNF) int {
	saved := pr.Accept
	pr.Accept = AcceptAllAcceptance{}
	defer func() { pr.Accept = saved }()

	improved := pr.Propagate(nnf, AllEightNeighbors(nnf.Bounds), InvalidOnlyPredicate, RasterOrder, "force-fill")
	return improved
}

// traversalPixels enumerates every pixel of bounds in the requested order.
func traversalPixels(bounds image.Rectangle, order TraversalOrder) []image.Point {
	pts := make([]image.Point, 0, bounds.Dx()*bounds.Dy())
	if order == RasterOrder {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pts = append(pts, image.Pt(x, y))
			}
		}
		return pts
	}
	for y := bounds.Max.Y - 1; y >= bounds.Min.Y; y-- {
		for x := bounds.Max.X - 1; x >= bounds.Min.X; x-- {
			pts = append(pts, image.Pt(x, y))
		}
	}
	return pts
}
