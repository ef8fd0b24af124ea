package grading

import "gonum.org/v1/gonum/mat"

// MatchShot fits a per-channel gain+offset (a CDL slope/intercept pair)
// that maps srcPercentiles onto tgtPercentiles by least squares. Both
// arguments hold one sample slice per channel (typically percentile-matched
// samples from a histogram comparison, e.g. the 1st/5th/25th/50th/75th/
// 95th/99th percentile values of each image). The result is meant to
// populate a CDL's gain/offset fields, leaving lift/gamma at identity —
// a single linear node is exact enough for a shot-matching estimate while
// staying representable as one grading operator.
func MatchShot(srcPercentiles, tgtPercentiles [3][]float32) (gain, offset [4]float32) {
	gain = [4]float32{1, 1, 1, 1}
	offset = [4]float32{0, 0, 0, 0}

	for c := 0; c < 3; c++ {
		g, o := fitGainOffset(srcPercentiles[c], tgtPercentiles[c])
		gain[c] = g
		offset[c] = o
	}
	return gain, offset
}

// fitGainOffset solves the least-squares linear fit tgt ≈ gain*src + offset
// via QR decomposition. Falls back to the identity fit when there aren't
// enough samples or the system is degenerate.
func fitGainOffset(src, tgt []float32) (gain, offset float32) {
	n := len(src)
	if n < 2 || n != len(tgt) {
		return 1, 0
	}

	a := mat.NewDense(n, 2, nil)
	b := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, float64(src[i]))
		a.Set(i, 1, 1)
		b.Set(i, 0, float64(tgt[i]))
	}

	var qr mat.QR
	qr.Factorize(a)

	var x mat.Dense
	if err := qr.SolveTo(&x, false, b); err != nil {
		return 1, 0
	}

	return float32(x.At(0, 0)), float32(x.At(1, 0))
}
