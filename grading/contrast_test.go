package grading

import "testing"

func TestContrastIdentityAtOne(t *testing.T) {
	rgb := [3]float32{0.1, 0.5, 0.9}
	got := Contrast(rgb, 1.0, 0.435)
	if got != rgb {
		t.Errorf("Contrast(rgb, 1.0, ...) = %v, want unchanged %v", got, rgb)
	}
}

func TestContrastAtPivotIsUnchanged(t *testing.T) {
	pivot := float32(0.435)
	rgb := [3]float32{pivot, pivot, pivot}
	got := Contrast(rgb, 2.0, pivot)
	for i := range rgb {
		if !floatNear(got[i], pivot, 1e-4) {
			t.Errorf("component %d: Contrast at pivot = %v, want %v", i, got[i], pivot)
		}
	}
}

func TestShadowsHighlightsIdentityAtZero(t *testing.T) {
	rgb := [3]float32{0.1, 0.5, 0.9}
	got := ShadowsHighlights(rgb, 0, 0)
	if got != rgb {
		t.Errorf("ShadowsHighlights(rgb, 0, 0) = %v, want unchanged %v", got, rgb)
	}
}

func TestSaturationHueLumaMixIdentity(t *testing.T) {
	rgb := [3]float32{0.2, 0.5, 0.8}
	got := SaturationHueLumaMix(rgb, 1, 0, 0)
	if got != rgb {
		t.Errorf("SaturationHueLumaMix identity = %v, want unchanged %v", got, rgb)
	}
}

func TestSaturationZeroProducesGray(t *testing.T) {
	rgb := [3]float32{0.9, 0.1, 0.3}
	l := Luma709(rgb)
	got := SaturationHueLumaMix(rgb, 0, 0, 0)
	for i := range got {
		if !floatNear(got[i], l, 1e-4) {
			t.Errorf("component %d: saturation=0 = %v, want luma %v", i, got[i], l)
		}
	}
}
