package patchmatch

import (
	"math/rand"
)

// rng is the single mutable random source for one Driver.Compute run
// (spec.md §9: "Global RNG is retained as a process-wide resource with
// explicit seeding, scoped for the lifetime of one Compute call"). It is
// not a package-level variable — each Compute call owns one — so that
// concurrent Compute calls on different Drivers never share state.
type rng struct {
	src *rand.Rand
}

// newRNG seeds from the system clock when random is true, else from a
// fixed seed of 0, per spec.md §6/§7's determinism contract.
func newRNG(random bool, clockSeed int64) *rng {
	seed := int64(0)
	if random {
		seed = clockSeed
	}
	return &rng{src: rand.New(rand.NewSource(seed))}
}

// intn returns a uniform random integer in [0, n).
func (r *rng) intn(n int) int {
	return r.src.Intn(n)
}

// sub derives an independent sub-stream from the master seed, for the
// parallel propagation/search variant (spec.md §9: "Parallel
// implementations must replace it with per-thread sub-streams derived from
// the master seed"). Each stripe/worker gets its own *rand.Rand seeded
// deterministically from the master stream plus its index, so a parallel
// run with a fixed seed is reproducible across runs (though not
// bit-identical to the sequential run, which spec.md does not require).
var goldenRatio64 uint64 = 0x9E3779B97F4A7C15

func (r *rng) sub(index int) *rand.Rand {
	return rand.New(rand.NewSource(r.src.Int63() ^ int64(index)*int64(goldenRatio64)))
}
