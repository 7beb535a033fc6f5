package patchmatch

import (
	"image"
	"math"
)

// Match is one candidate nearest neighbor for a target patch: a source
// region plus the scores that qualify it. See spec.md §3.
type Match struct {
	// Region is the source patch.
	Region image.Rectangle

	// SSDScore is the primary patch-distance value. NaN marks the match
	// invalid.
	SSDScore float32

	// VerificationScore is a secondary score set by acceptance tests that
	// perform a secondary check (e.g. CompositeAcceptance). NaN if unset.
	VerificationScore float32

	// Verified is set by acceptance tests that passed a secondary check.
	// Verified implies Valid.
	Verified bool
}

// invalidMatch is the zero-size, NaN-scored sentinel used for target
// pixels that have not yet been assigned a candidate.
func invalidMatch() Match {
	return Match{
		SSDScore:          float32(math.NaN()),
		VerificationScore: float32(math.NaN()),
	}
}

// Valid reports whether m has a non-NaN score and a non-empty region, per
// spec.md §3's definition. Verified implies Valid: acceptance tests must
// never set Verified on a match that fails this check.
func (m Match) Valid() bool {
	return !math.IsNaN(float64(m.SSDScore)) && !m.Region.Empty()
}

// Equal implements the equality spec.md §9 mandates: verified, region and
// both scores must match, treating NaN == NaN. This deliberately departs
// from the source's suspected-buggy operator== (see spec.md §9).
func (m Match) Equal(other Match) bool {
	if m.Verified != other.Verified {
		return false
	}
	if m.Region != other.Region {
		return false
	}
	if !floatEqualNaN(m.SSDScore, other.SSDScore) {
		return false
	}
	return floatEqualNaN(m.VerificationScore, other.VerificationScore)
}

func floatEqualNaN(a, b float32) bool {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return math.IsNaN(float64(a)) == math.IsNaN(float64(b))
	}
	return a == b
}

// less orders matches ascending by SSDScore, tie-broken by raster order of
// the region's top-left corner (SPEC_FULL.md item 5 — spec.md leaves the
// MatchSet tie-break as an Open Question).
func (m Match) less(other Match) bool {
	if m.SSDScore != other.SSDScore {
		return m.SSDScore < other.SSDScore
	}
	return rasterLess(m.Region.Min, other.Region.Min)
}

// MatchSet is an ordered sequence of up to K matches for the k-NN variant
// (spec.md §3), sorted ascending by SSDScore, with no duplicate regions.
type MatchSet struct {
	k       int
	entries []Match
}

// NewMatchSet returns an empty MatchSet with capacity k (k=1 for the basic
// PatchMatch variant).
func NewMatchSet(k int) *MatchSet {
	if k < 1 {
		k = 1
	}
	return &MatchSet{k: k}
}

// K returns the set's capacity.
func (s *MatchSet) K() int { return s.k }

// Len returns the number of matches currently held.
func (s *MatchSet) Len() int { return len(s.entries) }

// Best returns the best (lowest-score) match, or the NaN-scored invalid
// sentinel (invalidMatch) if the set is empty.
func (s *MatchSet) Best() Match {
	if len(s.entries) == 0 {
		return invalidMatch()
	}
	return s.entries[0]
}

// All returns the matches in ascending-score order. The returned slice must
// not be mutated by the caller.
func (s *MatchSet) All() []Match {
	return s.entries
}

// Worst returns the highest-score entry, or ok=false if empty.
func (s *MatchSet) Worst() (Match, bool) {
	if len(s.entries) == 0 {
		return Match{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Reset clears the set, e.g. so an initializer can seed it from scratch.
func (s *MatchSet) Reset() {
	s.entries = s.entries[:0]
}

// Set replaces the set's sole entry, sized to k=1 semantics. It is a
// convenience used by initializers writing the basic (non-k-NN) variant.
func (s *MatchSet) Set(m Match) {
	s.entries = append(s.entries[:0], m)
}

// Add inserts candidate into the set if it improves on an existing entry,
// per spec.md §3: "if the set has fewer than k entries, insert; else
// replace the worst entry iff the candidate is better under the current
// acceptance test." It returns whether the candidate was accepted and the
// verification score the acceptance test computed.
//
// If candidate.Region already exists in the set, Add only ever replaces
// that entry (never both), preserving the "no duplicate regions" invariant
// tested in spec.md §8 scenario 6.
func (s *MatchSet) Add(query image.Rectangle, candidate Match, test AcceptanceTest) (accepted bool, verification float32) {
	if idx := s.indexOfRegion(candidate.Region); idx >= 0 {
		ok, v := test.IsBetter(query, s.entries[idx], candidate)
		if !ok {
			return false, float32(math.NaN())
		}
		candidate.VerificationScore = v
		candidate.Verified = ok && candidate.Valid() && !math.IsNaN(float64(v))
		s.entries[idx] = candidate
		s.resort()
		return true, v
	}

	if len(s.entries) < s.k {
		incumbent := invalidMatch()
		ok, v := test.IsBetter(query, incumbent, candidate)
		if !ok {
			return false, float32(math.NaN())
		}
		candidate.VerificationScore = v
		candidate.Verified = ok && candidate.Valid() && !math.IsNaN(float64(v))
		s.entries = append(s.entries, candidate)
		s.resort()
		return true, v
	}

	worst, ok := s.Worst()
	if !ok {
		return false, float32(math.NaN())
	}
	accept, v := test.IsBetter(query, worst, candidate)
	if !accept {
		return false, float32(math.NaN())
	}
	candidate.VerificationScore = v
	candidate.Verified = accept && candidate.Valid() && !math.IsNaN(float64(v))
	s.entries[len(s.entries)-1] = candidate
	s.resort()
	return true, v
}

func (s *MatchSet) indexOfRegion(r image.Rectangle) int {
	for i, e := range s.entries {
		if e.Region == r {
			return i
		}
	}
	return -1
}

func (s *MatchSet) resort() {
	// Insertion sort: entries are nearly sorted after a single Add, and k
	// is small (typically single digits), so this beats the overhead of
	// sort.Slice's reflection-free but still-general implementation.
	for i := 1; i < len(s.entries); i++ {
		for j := i; j > 0 && s.entries[j].less(s.entries[j-1]); j-- {
			s.entries[j], s.entries[j-1] = s.entries[j-1], s.entries[j]
		}
	}
}
