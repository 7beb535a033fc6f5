package patchmatch

import "image"

// InitStrategy selects how a Driver seeds the NNF before propagation
// begins (spec.md §4.4, §6).
type InitStrategy int

const (
	// InitRandom fills every pixel whose patch is not already fully valid
	// in the source mask with a uniformly random valid source patch.
	InitRandom InitStrategy = iota
	// InitBoundary runs InitRandom, then overwrites pixels in the dilated
	// hole with the patch centered on their closest source-mask boundary
	// pixel (spec.md §4.4's rationale: spatially coherent seeds near the
	// hole accelerate convergence).
	InitBoundary
	// InitKnownRegion only seeds pixels whose surrounding patch is
	// entirely valid source, as perfect (score-0) attractors, leaving
	// every other pixel invalid (SPEC_FULL.md supplemented feature 1).
	InitKnownRegion
	// InitProvided bypasses all strategies: the driver deep-copies a
	// caller-supplied NNF.
	InitProvided
)

func (s InitStrategy) String() string {
	switch s {
	case InitRandom:
		return "random"
	case InitBoundary:
		return "boundary"
	case InitKnownRegion:
		return "known-region"
	case InitProvided:
		return "provided"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the defined InitStrategy values.
func (s InitStrategy) IsValid() bool {
	return s >= InitRandom && s <= InitProvided
}

// internalRegion returns the sub-rectangle of bounds whose pixels can have
// a fully-in-image patch of radius r, i.e. bounds shrunk by r on every
// side, mirroring the original source's GetInternalRegion.
func internalRegion(bounds image.Rectangle, r int) image.Rectangle {
	return bounds.Inset(r)
}

// validSourceRegions enumerates every patch-radius-r region inside
// internal that is fully valid in sourceMask, i.e. spec.md §4.4's set V.
func validSourceRegions(sourceMask *Mask, internal image.Rectangle, r int) []image.Rectangle {
	var regions []image.Rectangle
	for y := internal.Min.Y; y < internal.Max.Y; y++ {
		for x := internal.Min.X; x < internal.Max.X; x++ {
			region := patchRegion(image.Pt(x, y), r)
			if sourceMask.IsValidRegion(region) {
				regions = append(regions, region)
			}
		}
	}
	return regions
}

// initKnownRegion seeds nnf[p] = Match{patch(p,r), 0} for every pixel p in
// internal whose surrounding patch is entirely valid source (spec.md
// §4.4's "Known-region seed"). Pixels it does not touch are left however
// they were (typically invalid).
func initKnownRegion(nnf *NNF, sourceMask *Mask, internal image.Rectangle, r int) int {
	seeded := 0
	for y := internal.Min.Y; y < internal.Max.Y; y++ {
		for x := internal.Min.X; x < internal.Max.X; x++ {
			p := image.Pt(x, y)
			region := patchRegion(p, r)
			if sourceMask.IsValidRegion(region) {
				nnf.At(p).Set(Match{Region: region, SSDScore: 0})
				seeded++
			}
		}
	}
	return seeded
}

// initRandom implements spec.md §4.4's random initializer, resolved
// against the original source's actual behavior (SPEC_FULL.md): it first
// seeds known-good pixels via initKnownRegion, computes V once, and then
// assigns every remaining pixel of internal a uniformly random member of
// V. Returns ErrNoValidSourceRegions if V is empty.
func initRandom(nnf *NNF, img *FloatImage, sourceMask *Mask, r int, dist PatchDistance, r64 *rng) error {
	internal := internalRegion(img.Bounds, r)
	initKnownRegion(nnf, sourceMask, internal, r)

	v := validSourceRegions(sourceMask, internal, r)
	if len(v) == 0 {
		return ErrNoValidSourceRegions
	}

	for y := internal.Min.Y; y < internal.Max.Y; y++ {
		for x := internal.Min.X; x < internal.Max.X; x++ {
			p := image.Pt(x, y)
			if nnf.Best(p).Valid() {
				continue
			}
			target := patchRegion(p, r)
			chosen := v[r64.intn(len(v))]
			d := dist.Distance(chosen, target)
			nnf.At(p).Set(Match{Region: chosen, SSDScore: d})
		}
	}
	return nil
}

// initBoundary implements spec.md §4.4's boundary initializer: random
// init, then dilate the source mask's hole by r and overwrite every pixel
// inside the dilated hole with the patch of its closest valid boundary
// pixel of the dilated mask.
func initBoundary(nnf *NNF, img *FloatImage, sourceMask *Mask, r int, dist PatchDistance, r64 *rng) error {
	if err := initRandom(nnf, img, sourceMask, r, dist, r64); err != nil {
		return err
	}

	dilated := sourceMask.ExpandHole(r)
	boundary := dilated.Boundary()

	internal := internalRegion(img.Bounds, r)
	for y := internal.Min.Y; y < internal.Max.Y; y++ {
		for x := internal.Min.X; x < internal.Max.X; x++ {
			p := image.Pt(x, y)
			if !dilated.IsHolePixel(p) {
				continue
			}
			closest, ok := closestPixel(p, boundary)
			if !ok {
				continue
			}
			source := patchRegion(closest, r)
			target := patchRegion(p, r)
			d := dist.Distance(source, target)
			nnf.At(p).Set(Match{Region: source, SSDScore: d})
		}
	}
	return nil
}

// closestPixel returns the member of candidates closest to p under squared
// Euclidean distance, tie-broken by index order (the first candidate
// encountered wins ties), per spec.md §4.4.
func closestPixel(p image.Point, candidates []image.Point) (image.Point, bool) {
	if len(candidates) == 0 {
		return image.Point{}, false
	}
	best := candidates[0]
	bestDist := squaredDist(p, best)
	for _, c := range candidates[1:] {
		if d := squaredDist(p, c); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best, true
}
