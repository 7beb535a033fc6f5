package patchmatch

import "image"

// Label classifies one pixel of a Mask (spec.md §3).
type Label uint8

const (
	// Undefined pixels are neither a valid source nor a hole/target pixel.
	Undefined Label = iota
	// Valid marks a source pixel: its surrounding patches are legal match
	// candidates.
	Valid
	// Hole marks a target/to-fill pixel: the complement of Valid.
	Hole
)

// Mask grids classify every pixel of an image as Valid (source), Hole
// (target), or Undefined, and answer the region queries the Initializer,
// Propagator and RandomSearcher need (spec.md §3).
type Mask struct {
	bounds image.Rectangle
	labels []Label // row-major, len == bounds.Dx()*bounds.Dy()
}

// NewMask returns a Mask over bounds with every pixel labeled Undefined.
func NewMask(bounds image.Rectangle) *Mask {
	return &Mask{
		bounds: bounds,
		labels: make([]Label, bounds.Dx()*bounds.Dy()),
	}
}

// NewMaskFromLabelFunc builds a Mask over bounds by evaluating label for
// every pixel. Used by imageio's MaskReader implementations and by tests
// that synthesize masks procedurally.
func NewMaskFromLabelFunc(bounds image.Rectangle, label func(p image.Point) Label) *Mask {
	m := NewMask(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := image.Pt(x, y)
			m.set(p, label(p))
		}
	}
	return m
}

// Bounds returns the mask's extent.
func (m *Mask) Bounds() image.Rectangle { return m.bounds }

func (m *Mask) index(p image.Point) (int, bool) {
	if !p.In(m.bounds) {
		return 0, false
	}
	return (p.Y-m.bounds.Min.Y)*m.bounds.Dx() + (p.X - m.bounds.Min.X), true
}

func (m *Mask) get(p image.Point) Label {
	i, ok := m.index(p)
	if !ok {
		return Undefined
	}
	return m.labels[i]
}

func (m *Mask) set(p image.Point, l Label) {
	if i, ok := m.index(p); ok {
		m.labels[i] = l
	}
}

// IsValidPixel reports whether p is inside bounds and labeled Valid.
func (m *Mask) IsValidPixel(p image.Point) bool {
	return m.get(p) == Valid
}

// IsHolePixel reports whether p is inside bounds and labeled Hole.
func (m *Mask) IsHolePixel(p image.Point) bool {
	return m.get(p) == Hole
}

// IsValidRegion reports whether every pixel of region is inside the mask's
// bounds and labeled Valid.
func (m *Mask) IsValidRegion(region image.Rectangle) bool {
	if !region.In(m.bounds) {
		return false
	}
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if m.get(image.Pt(x, y)) != Valid {
				return false
			}
		}
	}
	return true
}

// HasAnyValid reports whether region contains at least one Valid pixel.
func (m *Mask) HasAnyValid(region image.Rectangle) bool {
	clipped := region.Intersect(m.bounds)
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			if m.get(image.Pt(x, y)) == Valid {
				return true
			}
		}
	}
	return false
}

// ValidPixels enumerates every Valid pixel in raster order.
func (m *Mask) ValidPixels() []image.Point {
	var pts []image.Point
	for y := m.bounds.Min.Y; y < m.bounds.Max.Y; y++ {
		for x := m.bounds.Min.X; x < m.bounds.Max.X; x++ {
			p := image.Pt(x, y)
			if m.get(p) == Valid {
				pts = append(pts, p)
			}
		}
	}
	return pts
}

// HolePixels enumerates every Hole pixel in raster order.
func (m *Mask) HolePixels() []image.Point {
	var pts []image.Point
	for y := m.bounds.Min.Y; y < m.bounds.Max.Y; y++ {
		for x := m.bounds.Min.X; x < m.bounds.Max.X; x++ {
			p := image.Pt(x, y)
			if m.get(p) == Hole {
				pts = append(pts, p)
			}
		}
	}
	return pts
}

// ValidBoundingBox returns the smallest rectangle enclosing every Valid
// pixel. It returns the zero Rectangle if there are no Valid pixels.
func (m *Mask) ValidBoundingBox() image.Rectangle {
	return m.boundingBoxOf(Valid)
}

// HoleBoundingBox returns the smallest rectangle enclosing every Hole
// pixel, mirroring the original source's ComputeHoleBoundingBox.
func (m *Mask) HoleBoundingBox() image.Rectangle {
	return m.boundingBoxOf(Hole)
}

func (m *Mask) boundingBoxOf(want Label) image.Rectangle {
	minX, minY := m.bounds.Max.X, m.bounds.Max.Y
	maxX, maxY := m.bounds.Min.X, m.bounds.Min.Y
	found := false
	for y := m.bounds.Min.Y; y < m.bounds.Max.Y; y++ {
		for x := m.bounds.Min.X; x < m.bounds.Max.X; x++ {
			if m.get(image.Pt(x, y)) == want {
				found = true
				if x < minX {
					minX = x
				}
				if x+1 > maxX {
					maxX = x + 1
				}
				if y < minY {
					minY = y
				}
				if y+1 > maxY {
					maxY = y + 1
				}
			}
		}
	}
	if !found {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}

// ExpandHole returns a copy of m in which every pixel within Chebyshev
// distance r of a Hole pixel is itself relabeled Hole — morphological
// dilation of the hole by a (2r+1)-square structuring element, matching the
// square patch footprint used throughout (spec.md §4.4's boundary
// initializer: "dilate the source mask's hole by r"). Implemented as two
// separable sliding-window max passes (horizontal, then vertical) so the
// cost is O(width*height*r) rather than O(width*height*r²).
func (m *Mask) ExpandHole(r int) *Mask {
	if r <= 0 {
		return m.clone()
	}
	w, h := m.bounds.Dx(), m.bounds.Dy()
	isHole := make([]bool, w*h)
	for i, l := range m.labels {
		isHole[i] = l == Hole
	}

	rowDilated := slidingWindowOr(isHole, w, h, r, true)
	fullyDilated := slidingWindowOr(rowDilated, w, h, r, false)

	out := &Mask{bounds: m.bounds, labels: make([]Label, len(m.labels))}
	copy(out.labels, m.labels)
	for i, hole := range fullyDilated {
		if hole {
			out.labels[i] = Hole
		}
	}
	return out
}

// slidingWindowOr computes, for every pixel, the logical OR of in's values
// within ±r along one axis (rows if horizontal, else columns).
func slidingWindowOr(in []bool, w, h, r int, horizontal bool) []bool {
	out := make([]bool, len(in))
	if horizontal {
		for y := 0; y < h; y++ {
			base := y * w
			for x := 0; x < w; x++ {
				lo, hi := x-r, x+r
				if lo < 0 {
					lo = 0
				}
				if hi > w-1 {
					hi = w - 1
				}
				any := false
				for xx := lo; xx <= hi && !any; xx++ {
					any = in[base+xx]
				}
				out[base+x] = any
			}
		}
	} else {
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				lo, hi := y-r, y+r
				if lo < 0 {
					lo = 0
				}
				if hi > h-1 {
					hi = h - 1
				}
				any := false
				for yy := lo; yy <= hi && !any; yy++ {
					any = in[yy*w+x]
				}
				out[y*w+x] = any
			}
		}
	}
	return out
}

func (m *Mask) clone() *Mask {
	out := &Mask{bounds: m.bounds, labels: make([]Label, len(m.labels))}
	copy(out.labels, m.labels)
	return out
}

// Boundary returns every Valid pixel that has at least one Hole pixel
// within Chebyshev distance 1 (8-connected), per spec.md §3's
// `boundary()`. This is used directly by the boundary initializer.
func (m *Mask) Boundary() []image.Point {
	var pts []image.Point
	for y := m.bounds.Min.Y; y < m.bounds.Max.Y; y++ {
		for x := m.bounds.Min.X; x < m.bounds.Max.X; x++ {
			p := image.Pt(x, y)
			if m.get(p) != Valid {
				continue
			}
			if m.touchesHole(p) {
				pts = append(pts, p)
			}
		}
	}
	return pts
}

func (m *Mask) touchesHole(p image.Point) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if m.get(image.Pt(p.X+dx, p.Y+dy)) == Hole {
				return true
			}
		}
	}
	return false
}
