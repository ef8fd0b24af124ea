package grading

import "github.com/chewxy/math32"

// Contrast applies a power curve around pivot: out = pivot * pow(max(in/pivot, eps), contrast).
// contrast == 1 is an early-exit identity regardless of pivot.
func Contrast(rgb [3]float32, contrast, pivot float32) [3]float32 {
	if contrast == 1 {
		return rgb
	}

	var out [3]float32
	for c := 0; c < 3; c++ {
		ratio := rgb[c] / pivot
		if ratio < cdlEpsilon {
			ratio = cdlEpsilon
		}
		out[c] = pivot * math32.Pow(ratio, contrast)
	}
	return out
}
