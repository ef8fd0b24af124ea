// Package grading implements the per-pixel grading operators applied in a
// fixed order by the transform chain: white balance, CDL, contrast,
// shadows/highlights, saturation/hue/luma-mix and parametric curves, plus
// the image-driven auto-balance/shot-matching entry points.
//
// Every operator here is a pure function over a single RGB triplet (plus
// the curve bake step, which produces a lookup table ahead of time). None
// of them allocate in the hot path.
package grading

import "github.com/chewxy/math32"

// cdlEpsilon guards the CDL gamma division and the contrast power base
// against exact zero, matching the shader's fixed constant.
const cdlEpsilon = 1e-4

// CDL applies the ASC Color Decision List transform extended with an
// additive master lift, per channel c with channel value lift/gamma/gain/
// offset and shared master values at index 3:
//
//	out_c = pow(max(in_c*gain_c*gain_m + offset_c + offset_m, 0), 1/max(gamma_c*gamma_m, eps)) + lift_c + lift_m
func CDL(rgb [3]float32, lift, gamma, gain, offset [4]float32) [3]float32 {
	var out [3]float32
	for c := 0; c < 3; c++ {
		gainTotal := gain[c] * gain[3]
		offsetTotal := offset[c] + offset[3]
		gammaTotal := gamma[c] * gamma[3]
		if gammaTotal < cdlEpsilon {
			gammaTotal = cdlEpsilon
		}

		base := rgb[c]*gainTotal + offsetTotal
		if base < 0 {
			base = 0
		}

		out[c] = math32.Pow(base, 1.0/gammaTotal) + lift[c] + lift[3]
	}
	return out
}

// IdentityCDL returns the CDL parameter set that leaves input unchanged.
func IdentityCDL() (lift, gamma, gain, offset [4]float32) {
	return [4]float32{0, 0, 0, 0},
		[4]float32{1, 1, 1, 1},
		[4]float32{1, 1, 1, 1},
		[4]float32{0, 0, 0, 0}
}
