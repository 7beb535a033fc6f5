package patchmatch

import "errors"

// Fatal, sentinel errors per spec.md §7's taxonomy. Per-pixel transient
// conditions (out-of-bounds candidates, hole-overlapping candidates,
// exhausted random-search attempts) are never returned as errors — they
// are skipped silently and are not counted; Diagnostics reports only
// improvement counts, remaining invalid pixels and the final score sum.
var (
	// ErrNoValidSourceRegions is returned when no patch of radius r is both
	// fully inside the image and fully on valid source-mask pixels
	// (spec.md §4.4, §8).
	ErrNoValidSourceRegions = errors.New("patchmatch: no valid source regions")

	// ErrMissingFunctor is returned when Compute is called without a
	// PatchDistance or AcceptanceTest set. Neighbor functors are built by
	// Compute itself and are not configurable.
	ErrMissingFunctor = errors.New("patchmatch: required functor not configured")

	// ErrInvalidConfiguration is returned for patch_radius == 0,
	// iterations == 0, an image smaller than one patch, or an unrecognized
	// enum value.
	ErrInvalidConfiguration = errors.New("patchmatch: invalid configuration")
)
