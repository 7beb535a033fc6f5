package patchmatch

import (
	"image"
	"math"
)

// NNF is a grid of MatchSet, one per pixel, spanning the same extent as
// the working image (spec.md §3). It is exclusively mutated by the
// Driver's stages: initializers write it, propagators and searchers
// read-modify-write it, acceptance tests only read from it.
type NNF struct {
	Bounds image.Rectangle
	K      int
	sets   []*MatchSet
}

// NewNNF allocates an NNF over bounds with every pixel holding an empty
// MatchSet of capacity k.
func NewNNF(bounds image.Rectangle, k int) *NNF {
	if k < 1 {
		k = 1
	}
	n := &NNF{Bounds: bounds, K: k, sets: make([]*MatchSet, bounds.Dx()*bounds.Dy())}
	for i := range n.sets {
		n.sets[i] = NewMatchSet(k)
	}
	return n
}

func (n *NNF) index(p image.Point) (int, bool) {
	if !p.In(n.Bounds) {
		return 0, false
	}
	return (p.Y-n.Bounds.Min.Y)*n.Bounds.Dx() + (p.X - n.Bounds.Min.X), true
}

// At returns the MatchSet for p. Panics if p is outside Bounds, matching
// the driver-owns-the-grid contract: callers must stay in bounds (spec.md
// §3's Lifecycle).
func (n *NNF) At(p image.Point) *MatchSet {
	i, ok := n.index(p)
	if !ok {
		panic("patchmatch: NNF.At called with out-of-bounds pixel")
	}
	return n.sets[i]
}

// Best returns the best match at p, or an invalid Match if p is out of
// bounds or has no entries yet.
func (n *NNF) Best(p image.Point) Match {
	i, ok := n.index(p)
	if !ok {
		return invalidMatch()
	}
	return n.sets[i].Best()
}

// Clone deep-copies the NNF, used by the driver to accept a
// caller-provided initial NNF without aliasing the caller's data (spec.md
// §4.4's "Caller-provided initial NNF").
func (n *NNF) Clone() *NNF {
	out := NewNNF(n.Bounds, n.K)
	for i, s := range n.sets {
		out.sets[i].entries = append(out.sets[i].entries[:0], s.entries...)
	}
	return out
}

// ScoreSum returns the sum of best-match SSD scores over every pixel with
// a valid match, used by the monotonicity property test in spec.md §8.
// Invalid (unfilled) pixels do not contribute.
func (n *NNF) ScoreSum() float64 {
	var sum float64
	for _, s := range n.sets {
		best := s.Best()
		if best.Valid() {
			sum += float64(best.SSDScore)
		}
	}
	return sum
}

// CountInvalid returns the number of targetMask Hole (target) pixels
// whose best match is still invalid — the post-run diagnostic
// spec.md §7 calls for after force-fill.
func (n *NNF) CountInvalid(targetMask *Mask) int {
	count := 0
	for y := n.Bounds.Min.Y; y < n.Bounds.Max.Y; y++ {
		for x := n.Bounds.Min.X; x < n.Bounds.Max.X; x++ {
			p := image.Pt(x, y)
			if targetMask.IsHolePixel(p) && !n.Best(p).Valid() {
				count++
			}
		}
	}
	return count
}

// CentersImage derives the 3-component "centers image" spec.md §6
// describes: per pixel, (match_center_x, match_center_y, match_score),
// directly modeled on the original source's GetPatchCentersImage
// (SPEC_FULL.md's supplemented-features item 2). Pixels with no valid
// match get (0, 0, NaN).
func (n *NNF) CentersImage() *FloatImage {
	out := NewFloatImage(n.Bounds)
	for y := n.Bounds.Min.Y; y < n.Bounds.Max.Y; y++ {
		for x := n.Bounds.Min.X; x < n.Bounds.Max.X; x++ {
			p := image.Pt(x, y)
			best := n.Best(p)
			if !best.Valid() {
				out.Set(p, 0, 0, float32(math.NaN()))
				continue
			}
			c := regionCenter(best.Region)
			out.Set(p, float32(c.X), float32(c.Y), best.SSDScore)
		}
	}
	return out
}
