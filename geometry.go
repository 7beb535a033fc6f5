package patchmatch

import "image"

// patchRegion returns the region of radius r centered on center: a square of
// side 2r+1 with corners center±r, per spec.md §3.
func patchRegion(center image.Point, r int) image.Rectangle {
	return image.Rect(center.X-r, center.Y-r, center.X+r+1, center.Y+r+1)
}

// regionCenter returns the pixel at the center of a patch region produced by
// patchRegion. It is the inverse of patchRegion for odd-sided regions.
func regionCenter(region image.Rectangle) image.Point {
	return image.Pt(region.Min.X+region.Dx()/2, region.Min.Y+region.Dy()/2)
}

// insideImage reports whether region lies entirely within bounds.
func insideImage(region, bounds image.Rectangle) bool {
	return region.In(bounds)
}

// chebyshevDist returns the Chebyshev (L∞) distance between two pixels.
// The boundary initializer's closestPixel does not use it: it ranks by
// squaredDist and breaks ties by candidate order.
func chebyshevDist(a, b image.Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// squaredDist returns the squared Euclidean distance between two pixels.
func squaredDist(a, b image.Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// rasterLess orders pixels in raster order: increasing Y, then increasing X.
// Used by Match.less for tie-breaking (spec.md §9's Open Question on
// MatchSet ordering); traversalPixels builds its order directly.
func rasterLess(a, b image.Point) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
