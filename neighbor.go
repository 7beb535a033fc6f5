package patchmatch

import "image"

// NeighborFunctor enumerates the potential propagation-source pixels for a
// query pixel (spec.md §4.3). Returned pixels are interpreted by the
// Propagator as "copy the nearest neighbor from this pixel, shifted by the
// inverse offset, and test it at the query." A NeighborFunctor must not
// return pixels outside the image; bounds-checking may otherwise be
// delegated to the Propagator.
type NeighborFunctor interface {
	Neighbors(query image.Point) []image.Point
}

var forwardOffsets = []image.Point{{X: -1, Y: 0}, {X: 0, Y: -1}}
var backwardOffsets = []image.Point{{X: 1, Y: 0}, {X: 0, Y: 1}}
var eightOffsets = []image.Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// offsetFunctor returns the pixels at query+offset for each offset in
// offsets, dropping any that fall outside bounds.
type offsetFunctor struct {
	offsets []image.Point
	bounds  image.Rectangle
}

func (f offsetFunctor) Neighbors(query image.Point) []image.Point {
	out := make([]image.Point, 0, len(f.offsets))
	for _, off := range f.offsets {
		p := query.Add(off)
		if p.In(f.bounds) {
			out = append(out, p)
		}
	}
	return out
}

// ForwardNeighbors returns the {(-1,0), (0,-1)} functor used during
// forward propagation passes (spec.md §4.3).
func ForwardNeighbors(bounds image.Rectangle) NeighborFunctor {
	return offsetFunctor{offsets: forwardOffsets, bounds: bounds}
}

// BackwardNeighbors returns the {(+1,0), (0,+1)} functor used during
// backward propagation passes.
func BackwardNeighbors(bounds image.Rectangle) NeighborFunctor {
	return offsetFunctor{offsets: backwardOffsets, bounds: bounds}
}

// AllEightNeighbors returns the eight Chebyshev-distance-1 neighbors,
// used by the force-fill pass.
func AllEightNeighbors(bounds image.Rectangle) NeighborFunctor {
	return offsetFunctor{offsets: eightOffsets, bounds: bounds}
}

// AllowedPropagationMask marks, per pixel, whether that pixel may serve as
// a propagation source (spec.md §4.3's "Allowed-propagation" variant) —
// e.g. to forbid propagating across a seam in a tiled composite.
type AllowedPropagationMask struct {
	bounds  image.Rectangle
	allowed []bool
}

// NewAllowedPropagationMask returns a mask over bounds with every pixel
// initially allowed.
func NewAllowedPropagationMask(bounds image.Rectangle) *AllowedPropagationMask {
	allowed := make([]bool, bounds.Dx()*bounds.Dy())
	for i := range allowed {
		allowed[i] = true
	}
	return &AllowedPropagationMask{bounds: bounds, allowed: allowed}
}

func (m *AllowedPropagationMask) index(p image.Point) (int, bool) {
	if !p.In(m.bounds) {
		return 0, false
	}
	return (p.Y-m.bounds.Min.Y)*m.bounds.Dx() + (p.X - m.bounds.Min.X), true
}

// Allow marks p as a legal propagation source.
func (m *AllowedPropagationMask) Allow(p image.Point) {
	if i, ok := m.index(p); ok {
		m.allowed[i] = true
	}
}

// Forbid marks p as an illegal propagation source.
func (m *AllowedPropagationMask) Forbid(p image.Point) {
	if i, ok := m.index(p); ok {
		m.allowed[i] = false
	}
}

// IsAllowed reports whether p is inside bounds and marked allowed.
func (m *AllowedPropagationMask) IsAllowed(p image.Point) bool {
	i, ok := m.index(p)
	return ok && m.allowed[i]
}

// allowedPropagationFunctor returns any of the 8 Chebyshev neighbors of the
// query pixel that are inside the image and marked allowed in Mask
// (spec.md §4.3).
type allowedPropagationFunctor struct {
	bounds image.Rectangle
	mask   *AllowedPropagationMask
}

// AllowedPropagationNeighbors returns the "Allowed-propagation" functor.
func AllowedPropagationNeighbors(bounds image.Rectangle, mask *AllowedPropagationMask) NeighborFunctor {
	return allowedPropagationFunctor{bounds: bounds, mask: mask}
}

func (f allowedPropagationFunctor) Neighbors(query image.Point) []image.Point {
	out := make([]image.Point, 0, len(eightOffsets))
	for _, off := range eightOffsets {
		p := query.Add(off)
		if p.In(f.bounds) && f.mask.IsAllowed(p) {
			out = append(out, p)
		}
	}
	return out
}
