package patchmatch

import (
	"image"
	"math"
	"testing"
)

func TestMatchValid(t *testing.T) {
	cases := []struct {
		name string
		m    Match
		want bool
	}{
		{"zero value", Match{}, false},
		{"invalid sentinel", invalidMatch(), false},
		{"valid", Match{Region: image.Rect(0, 0, 3, 3), SSDScore: 1.5}, true},
		{"nan score", Match{Region: image.Rect(0, 0, 3, 3), SSDScore: float32(math.NaN())}, false},
		{"empty region", Match{Region: image.Rectangle{}, SSDScore: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchEqualNaN(t *testing.T) {
	a := Match{Region: image.Rect(0, 0, 3, 3), SSDScore: float32(math.NaN())}
	b := Match{Region: image.Rect(0, 0, 3, 3), SSDScore: float32(math.NaN())}
	if !a.Equal(b) {
		t.Errorf("two NaN-scored matches with identical regions should be Equal")
	}
	c := Match{Region: image.Rect(0, 0, 3, 3), SSDScore: 1}
	if a.Equal(c) {
		t.Errorf("NaN score should not equal a real score")
	}
}

func TestMatchSetAddBasicReplacement(t *testing.T) {
	s := NewMatchSet(1)
	query := image.Rect(10, 10, 13, 13)

	first := Match{Region: image.Rect(0, 0, 3, 3), SSDScore: 5}
	accepted, _ := s.Add(query, first, SSDBetterAcceptance{})
	if !accepted {
		t.Fatalf("first insert into empty set should be accepted")
	}

	worse := Match{Region: image.Rect(3, 3, 6, 6), SSDScore: 10}
	accepted, _ = s.Add(query, worse, SSDBetterAcceptance{})
	if accepted {
		t.Errorf("a worse candidate should not replace a better incumbent")
	}
	if s.Best().SSDScore != 5 {
		t.Errorf("Best() changed after a rejected candidate, got %v", s.Best())
	}

	better := Match{Region: image.Rect(6, 6, 9, 9), SSDScore: 1}
	accepted, _ = s.Add(query, better, SSDBetterAcceptance{})
	if !accepted {
		t.Errorf("a better candidate should replace the incumbent")
	}
	if s.Best().SSDScore != 1 {
		t.Errorf("Best() = %v, want score 1", s.Best())
	}
}

func TestMatchSetNoDuplicateRegions(t *testing.T) {
	s := NewMatchSet(3)
	query := image.Rect(10, 10, 13, 13)
	region := image.Rect(0, 0, 3, 3)

	s.Add(query, Match{Region: region, SSDScore: 5}, SSDBetterAcceptance{})
	s.Add(query, Match{Region: image.Rect(3, 3, 6, 6), SSDScore: 4}, SSDBetterAcceptance{})

	// Re-submitting the same region with a better score must update the
	// existing entry in place, not add a second entry for the same region.
	accepted, _ := s.Add(query, Match{Region: region, SSDScore: 1}, SSDBetterAcceptance{})
	if !accepted {
		t.Fatalf("improved resubmission of an existing region should be accepted")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (no duplicate region entries)", s.Len())
	}
	if s.Best().Region != region || s.Best().SSDScore != 1 {
		t.Errorf("Best() = %+v, want the updated region-0 entry", s.Best())
	}
}

func TestMatchSetCapacityAndOrdering(t *testing.T) {
	s := NewMatchSet(2)
	query := image.Rect(10, 10, 13, 13)

	s.Add(query, Match{Region: image.Rect(0, 0, 3, 3), SSDScore: 5}, SSDBetterAcceptance{})
	s.Add(query, Match{Region: image.Rect(3, 3, 6, 6), SSDScore: 2}, SSDBetterAcceptance{})
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	// At capacity: a candidate worse than the worst entry must be rejected.
	accepted, _ := s.Add(query, Match{Region: image.Rect(6, 6, 9, 9), SSDScore: 9}, SSDBetterAcceptance{})
	if accepted {
		t.Errorf("candidate worse than the current worst entry should be rejected at capacity")
	}

	// A candidate better than the worst entry replaces it.
	accepted, _ = s.Add(query, Match{Region: image.Rect(9, 9, 12, 12), SSDScore: 1}, SSDBetterAcceptance{})
	if !accepted {
		t.Fatalf("candidate better than the worst entry should be accepted")
	}

	all := s.All()
	for i := 1; i < len(all); i++ {
		if all[i].SSDScore < all[i-1].SSDScore {
			t.Fatalf("All() not sorted ascending: %+v", all)
		}
	}
	if all[0].SSDScore != 1 {
		t.Errorf("Best() after replacement = %v, want score 1", all[0].SSDScore)
	}
}

func TestMatchSetVerifiedOnlyFromCompositeAcceptance(t *testing.T) {
	img := NewFloatImage(image.Rect(0, 0, 10, 10))
	query := patchRegion(image.Pt(5, 5), 1)

	s := NewMatchSet(1)
	m := Match{Region: patchRegion(image.Pt(2, 2), 1), SSDScore: 1}
	accepted, _ := s.Add(query, m, SSDBetterAcceptance{})
	if !accepted {
		t.Fatalf("expected acceptance")
	}
	if s.Best().Verified {
		t.Errorf("SSDBetterAcceptance never verifies a secondary check; Verified should stay false")
	}

	comp := &CompositeAcceptance{Image: img, Threshold: 1.0}
	s2 := NewMatchSet(1)
	accepted, _ = s2.Add(query, m, comp)
	if !accepted {
		t.Fatalf("expected acceptance under a permissive threshold")
	}
	if !s2.Best().Verified {
		t.Errorf("CompositeAcceptance performs a secondary check; Verified should be true on acceptance")
	}
}

func TestFloatEqualNaN(t *testing.T) {
	nan := float32(math.NaN())
	if !floatEqualNaN(nan, nan) {
		t.Errorf("floatEqualNaN(NaN, NaN) should be true")
	}
	if floatEqualNaN(nan, 1) || floatEqualNaN(1, nan) {
		t.Errorf("floatEqualNaN should not treat NaN as equal to a real number")
	}
	if !floatEqualNaN(2, 2) {
		t.Errorf("floatEqualNaN(2, 2) should be true")
	}
}
