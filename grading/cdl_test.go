package grading

import "testing"

func TestCDLIdentity(t *testing.T) {
	lift, gamma, gain, offset := IdentityCDL()
	rgb := [3]float32{0.1, 0.5, 0.9}
	got := CDL(rgb, lift, gamma, gain, offset)
	for i := range rgb {
		if !floatNear(got[i], rgb[i], 1e-6) {
			t.Errorf("component %d: CDL with identity params = %v, want %v", i, got[i], rgb[i])
		}
	}
}

func TestCDLGainDoublesInput(t *testing.T) {
	lift, gamma, _, offset := IdentityCDL()
	gain := [4]float32{2, 2, 2, 1}
	rgb := [3]float32{0.1, 0.2, 0.3}

	got := CDL(rgb, lift, gamma, gain, offset)
	want := [3]float32{0.2, 0.4, 0.6}

	for i := range want {
		if !floatNear(got[i], want[i], 1e-5) {
			t.Errorf("component %d: CDL with gain=2 = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCDLClampsNegativeBase(t *testing.T) {
	lift, gamma, gain, _ := IdentityCDL()
	offset := [4]float32{-1, -1, -1, 0}
	rgb := [3]float32{0.1, 0.1, 0.1}

	got := CDL(rgb, lift, gamma, gain, offset)
	for i := range got {
		// base clamps to 0 before the power, so result should be exactly lift (0 here).
		if !floatNear(got[i], 0, 1e-6) {
			t.Errorf("component %d: CDL with negative base = %v, want 0", i, got[i])
		}
	}
}

func floatNear(a, b, epsilon float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < epsilon
}
