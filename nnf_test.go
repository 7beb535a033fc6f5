package patchmatch

import (
	"image"
	"math"
	"testing"
)

func TestNNFAtAndBest(t *testing.T) {
	bounds := image.Rect(0, 0, 5, 5)
	nnf := NewNNF(bounds, 1)

	p := image.Pt(2, 2)
	if nnf.Best(p).Valid() {
		t.Errorf("freshly allocated NNF should have no valid match yet")
	}

	m := Match{Region: patchRegion(image.Pt(1, 1), 1), SSDScore: 3}
	nnf.At(p).Set(m)
	if got := nnf.Best(p); got.SSDScore != 3 {
		t.Errorf("Best(%v) = %+v, want score 3", p, got)
	}

	if nnf.Best(image.Pt(100, 100)).Valid() {
		t.Errorf("Best() outside bounds should be invalid, not panic")
	}
}

func TestNNFAtPanicsOutOfBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("At() with an out-of-bounds pixel should panic")
		}
	}()
	nnf := NewNNF(image.Rect(0, 0, 5, 5), 1)
	nnf.At(image.Pt(100, 100))
}

func TestNNFCloneIsIndependent(t *testing.T) {
	bounds := image.Rect(0, 0, 5, 5)
	nnf := NewNNF(bounds, 1)
	p := image.Pt(1, 1)
	nnf.At(p).Set(Match{Region: patchRegion(p, 1), SSDScore: 1})

	clone := nnf.Clone()
	clone.At(p).Set(Match{Region: patchRegion(p, 1), SSDScore: 99})

	if nnf.Best(p).SSDScore == 99 {
		t.Errorf("mutating a clone must not affect the original NNF")
	}
}

func TestNNFScoreSumIgnoresInvalid(t *testing.T) {
	bounds := image.Rect(0, 0, 2, 1)
	nnf := NewNNF(bounds, 1)
	nnf.At(image.Pt(0, 0)).Set(Match{Region: patchRegion(image.Pt(0, 0), 0), SSDScore: 4})
	// (1,0) is left invalid.

	if got, want := nnf.ScoreSum(), 4.0; got != want {
		t.Errorf("ScoreSum() = %v, want %v (invalid pixels contribute nothing)", got, want)
	}
}

func TestNNFCountInvalid(t *testing.T) {
	bounds := image.Rect(0, 0, 2, 1)
	targetMask := NewMaskFromLabelFunc(bounds, func(image.Point) Label { return Hole })
	nnf := NewNNF(bounds, 1)
	nnf.At(image.Pt(0, 0)).Set(Match{Region: patchRegion(image.Pt(0, 0), 0), SSDScore: 0})

	if got, want := nnf.CountInvalid(targetMask), 1; got != want {
		t.Errorf("CountInvalid() = %d, want %d", got, want)
	}
}

func TestNNFCentersImageNaNForInvalid(t *testing.T) {
	bounds := image.Rect(0, 0, 2, 1)
	nnf := NewNNF(bounds, 1)
	source := patchRegion(image.Pt(5, 5), 1)
	nnf.At(image.Pt(0, 0)).Set(Match{Region: source, SSDScore: 2})

	centers := nnf.CentersImage()
	cx, cy, score := centers.At(image.Pt(0, 0))
	if cx != 5 || cy != 5 || score != 2 {
		t.Errorf("CentersImage()[0,0] = (%v,%v,%v), want (5,5,2)", cx, cy, score)
	}

	_, _, invalidScore := centers.At(image.Pt(1, 0))
	if !math.IsNaN(float64(invalidScore)) {
		t.Errorf("CentersImage() score for an unmatched pixel should be NaN, got %v", invalidScore)
	}
}
