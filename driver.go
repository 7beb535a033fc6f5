package patchmatch

import (
	"fmt"
	"time"
)

// Config mirrors the teacher's Parameters/DefaultParameters pattern
// (metric.go), plain fields plus a defaulting constructor, rather than a
// functional-options API (SPEC_FULL.md's AMBIENT STACK: Configuration).
type Config struct {
	// Radius is the patch radius r; patches are (2r+1)x(2r+1) (spec.md §2).
	Radius int
	// Iterations is the number of propagate+search passes to run before
	// the final force-fill (spec.md §4.7).
	Iterations int
	// K is the MatchSet capacity. K=1 is the basic single-nearest-neighbor
	// variant; K>1 enables the k-NN variant (spec.md §3).
	K int

	// Init selects the initializer (spec.md §4.4).
	Init InitStrategy
	// InitialNNF is required when Init == InitProvided; it is deep-copied,
	// never aliased (spec.md §4.4's "Caller-provided initial NNF").
	InitialNNF *NNF

	// Random selects the RNG seeding mode: false (the default) seeds from
	// a fixed value of 0 for reproducibility; true seeds from the system
	// clock (spec.md §6/§7, §9).
	Random bool

	Distance PatchDistance
	Accept   AcceptanceTest
	Observer Observer
	Logger   Logger
}

// DefaultConfig returns a Config with the teacher-style conservative
// defaults: radius 3, 4 iterations, k=1, random initializer, fixed seed,
// SSD distance over img, and SSD-improves acceptance. Distance and Accept
// still need img/sourceMask bound in, so DefaultConfig takes them.
func DefaultConfig(img *FloatImage, sourceMask *Mask) Config {
	dist := &SSD{Image: img, SourceMask: sourceMask}
	return Config{
		Radius:     3,
		Iterations: 4,
		K:          1,
		Init:       InitRandom,
		Random:     false,
		Distance:   dist,
		Accept:     SSDBetterAcceptance{},
		Observer:   NoopObserver{},
		Logger:     NewLogger(nil),
	}
}

// validate checks the preconditions spec.md §7 names as fatal
// configuration errors.
func (c Config) validate(img *FloatImage) error {
	if c.Radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %d", ErrInvalidConfiguration, c.Radius)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfiguration, c.Iterations)
	}
	if !c.Init.IsValid() {
		return fmt.Errorf("%w: unrecognized init strategy %d", ErrInvalidConfiguration, c.Init)
	}
	if c.Init == InitProvided && c.InitialNNF == nil {
		return fmt.Errorf("%w: InitProvided requires InitialNNF", ErrInvalidConfiguration)
	}
	side := 2*c.Radius + 1
	if img.Bounds.Dx() < side || img.Bounds.Dy() < side {
		return fmt.Errorf("%w: image %dx%d smaller than one patch (%dx%d)",
			ErrInvalidConfiguration, img.Bounds.Dx(), img.Bounds.Dy(), side, side)
	}
	if c.Distance == nil {
		return fmt.Errorf("%w: Distance", ErrMissingFunctor)
	}
	if c.Accept == nil {
		return fmt.Errorf("%w: Accept", ErrMissingFunctor)
	}
	return nil
}

// Diagnostics reports per-run counters, mirroring the teacher's
// CompareResult (NumPixelsFailed, ErrorSum): a plain return-value-plus-
// diagnostics pair rather than baking counters into logged side effects
// only.
type Diagnostics struct {
	// PerIterationPropagated[i] is how many pixels improved during
	// iteration i's propagation pass.
	PerIterationPropagated []int
	// PerIterationSearched[i] is how many pixels improved during
	// iteration i's random-search pass.
	PerIterationSearched []int
	// ForceFillImproved is how many pixels the final force-fill pass
	// filled in.
	ForceFillImproved int
	// RemainingInvalid is how many target-mask pixels still have no valid
	// match after force-fill (spec.md §7's post-run diagnostic).
	RemainingInvalid int
	// FinalScoreSum is NNF.ScoreSum() after force-fill.
	FinalScoreSum float64
}

// Driver runs the INIT -> ITERATE -> FORCE_FILL -> DONE state machine
// spec.md §4.7 and §9 describe, wiring together an Initializer, a
// Propagator and a RandomSearcher around one NNF.
type Driver struct {
	Config Config
}

// NewDriver returns a Driver with the given configuration.
func NewDriver(cfg Config) *Driver {
	return &Driver{Config: cfg}
}

// Compute runs the full algorithm over img, matching targetMask's Hole
// pixels against sourceMask's Valid region, and returns the resulting NNF
// and run diagnostics. It returns a fatal error (per spec.md §7) without a
// usable NNF if validation fails or no initializer can find a single
// valid source region.
func (d *Driver) Compute(img *FloatImage, sourceMask, targetMask *Mask) (*NNF, Diagnostics, error) {
	cfg := d.Config
	var diag Diagnostics

	if err := cfg.validate(img); err != nil {
		return nil, diag, err
	}

	log := cfg.Logger
	log.Logf("INIT: strategy=%s radius=%d iterations=%d k=%d", cfg.Init, cfg.Radius, cfg.Iterations, cfg.K)

	r := newRNG(cfg.Random, time.Now().UnixNano())

	nnf := NewNNF(img.Bounds, cfg.K)
	switch cfg.Init {
	case InitProvided:
		nnf = cfg.InitialNNF.Clone()
	case InitKnownRegion:
		internal := internalRegion(img.Bounds, cfg.Radius)
		initKnownRegion(nnf, sourceMask, internal, cfg.Radius)
	case InitBoundary:
		if err := initBoundary(nnf, img, sourceMask, cfg.Radius, cfg.Distance, r); err != nil {
			return nil, diag, err
		}
	default: // InitRandom
		if err := initRandom(nnf, img, sourceMask, cfg.Radius, cfg.Distance, r); err != nil {
			return nil, diag, err
		}
	}

	prop := &Propagator{
		Radius:     cfg.Radius,
		Image:      img,
		SourceMask: sourceMask,
		TargetMask: targetMask,
		Distance:   cfg.Distance,
		Accept:     cfg.Accept,
		Observer:   cfg.Observer,
	}
	search := &RandomSearcher{
		Radius:     cfg.Radius,
		Image:      img,
		SourceMask: sourceMask,
		TargetMask: targetMask,
		Distance:   cfg.Distance,
		Accept:     cfg.Accept,
		Observer:   cfg.Observer,
	}

	for i := 0; i < cfg.Iterations; i++ {
		// SPEC_FULL.md supplemented feature 3: the first iteration is
		// always forward, then alternates by parity, matching the
		// original source's `forwardSearch = true` initial state.
		forward := i%2 == 0

		var neighbors NeighborFunctor
		var order TraversalOrder
		var passLabel string
		if forward {
			neighbors = ForwardNeighbors(nnf.Bounds)
			order = RasterOrder
			passLabel = fmt.Sprintf("propagate-forward-%d", i)
		} else {
			neighbors = BackwardNeighbors(nnf.Bounds)
			order = ReverseRasterOrder
			passLabel = fmt.Sprintf("propagate-backward-%d", i)
		}

		propagated := prop.Propagate(nnf, neighbors, StandardPredicate, order, passLabel)
		searched := search.Search(nnf, r)

		diag.PerIterationPropagated = append(diag.PerIterationPropagated, propagated)
		diag.PerIterationSearched = append(diag.PerIterationSearched, searched)

		log.Logf("ITERATE %d: forward=%t propagated=%d searched=%d", i, forward, propagated, searched)
	}

	diag.ForceFillImproved = prop.ForceFill(nnf)
	log.Logf("FORCE_FILL: improved=%d", diag.ForceFillImproved)

	diag.RemainingInvalid = nnf.CountInvalid(targetMask)
	diag.FinalScoreSum = nnf.ScoreSum()
	log.Logf("DONE: remaining_invalid=%d final_score_sum=%f", diag.RemainingInvalid, diag.FinalScoreSum)

	return nnf, diag, nil
}
