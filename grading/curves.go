package grading

// Curve is a set of control points, sorted by x in [0,1], evaluated with a
// Catmull-Rom spline. An empty curve evaluates to its identity value
// everywhere (0 for the additive hue-offset curve, 1 for the multiplicative
// curves).
type Curve struct {
	Points [][2]float32
}

// Eval samples the curve at t, clamping to the first/last control point
// outside the defined range.
func (c Curve) Eval(t, identity float32) float32 {
	n := len(c.Points)
	switch {
	case n == 0:
		return identity
	case n == 1:
		return c.Points[0][1]
	}

	if t <= c.Points[0][0] {
		return c.Points[0][1]
	}
	if t >= c.Points[n-1][0] {
		return c.Points[n-1][1]
	}

	i := 0
	for i < n-2 && c.Points[i+1][0] < t {
		i++
	}
	p1 := c.Points[i]
	p2 := c.Points[i+1]

	var p0, p3 [2]float32
	if i == 0 {
		p0 = [2]float32{p1[0] - (p2[0] - p1[0]), p1[1] - (p2[1] - p1[1])}
	} else {
		p0 = c.Points[i-1]
	}
	if i+2 >= n {
		p3 = [2]float32{p2[0] + (p2[0] - p1[0]), p2[1] + (p2[1] - p1[1])}
	} else {
		p3 = c.Points[i+2]
	}

	span := p2[0] - p1[0]
	if span < 1e-9 {
		return p1[1]
	}
	u := (t - p1[0]) / span
	return catmullRom(p0[1], p1[1], p2[1], p3[1], u)
}

// catmullRom evaluates the uniform Catmull-Rom cubic through p1,p2 (with
// tangents derived from p0,p3) at parameter u in [0,1].
func catmullRom(p0, p1, p2, p3, u float32) float32 {
	u2 := u * u
	u3 := u2 * u
	return 0.5 * (2*p1 +
		(-p0+p2)*u +
		(2*p0-5*p1+4*p2-p3)*u2 +
		(-p0+3*p1-3*p2+p3)*u3)
}

// Bake evaluates the curve at size evenly spaced points across [0,1],
// producing the 1D lookup table the GPU pipeline uploads as an R32Float
// texture and the CPU reference samples for parity.
func (c Curve) Bake(size int, identity float32) []float32 {
	table := make([]float32, size)
	for i := 0; i < size; i++ {
		t := float32(i) / float32(size-1)
		table[i] = c.Eval(t, identity)
	}
	return table
}

// CurveSet holds the four grading curves applied after saturation/hue, in
// the order the transform chain evaluates them.
type CurveSet struct {
	HueVsHue Curve // additive hue offset, identity 0, normalized to a turn
	HueVsSat Curve // multiplicative, identity 1
	LumVsSat Curve // multiplicative, identity 1
	SatVsSat Curve // multiplicative, identity 1
}

// BakedCurves is the pre-baked table form of a CurveSet, computed once per
// parameter change and reused for every pixel.
type BakedCurves struct {
	HueVsHue []float32
	HueVsSat []float32
	LumVsSat []float32
	SatVsSat []float32
}

// DefaultCurveBakeSize is the table length used when the caller doesn't
// need a specific LUT bake resolution.
const DefaultCurveBakeSize = 256

// Bake produces the table form of every curve in the set at the given
// resolution.
func (cs *CurveSet) Bake(size int) *BakedCurves {
	return &BakedCurves{
		HueVsHue: cs.HueVsHue.Bake(size, 0),
		HueVsSat: cs.HueVsSat.Bake(size, 1),
		LumVsSat: cs.LumVsSat.Bake(size, 1),
		SatVsSat: cs.SatVsSat.Bake(size, 1),
	}
}

// sampleWrapped linearly interpolates a circular table (hue axis) at t,
// wrapping at the 0/1 seam.
func sampleWrapped(table []float32, t float32) float32 {
	n := len(table)
	if n == 0 {
		return 0
	}
	t -= float32(int(t))
	if t < 0 {
		t += 1
	}
	pos := t * float32(n)
	i0 := int(pos) % n
	i1 := (i0 + 1) % n
	frac := pos - float32(int(pos))
	return table[i0] + (table[i1]-table[i0])*frac
}

// sampleClamped linearly interpolates a table at t, clamping t to [0,1].
func sampleClamped(table []float32, t float32) float32 {
	n := len(table)
	if n == 0 {
		return 1
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if n == 1 {
		return table[0]
	}
	pos := t * float32(n-1)
	i0 := int(pos)
	if i0 >= n-1 {
		return table[n-1]
	}
	frac := pos - float32(i0)
	return table[i0] + (table[i0+1]-table[i0])*frac
}

// ApplyCurves converts rgb to HSL, applies the additive hue-offset curve
// and the three multiplicative saturation curves (indexed by hue,
// lightness, and the incoming saturation respectively), then converts back
// to RGB. The hue offset is added to the hue; the three saturation curves
// compose by multiplication.
func ApplyCurves(rgb [3]float32, baked *BakedCurves) [3]float32 {
	h, s, l := rgbToHSL(rgb)

	hOffset := sampleWrapped(baked.HueVsHue, h)
	hNew := h + hOffset
	hNew -= float32(int(hNew))
	if hNew < 0 {
		hNew += 1
	}

	sNew := s *
		sampleWrapped(baked.HueVsSat, h) *
		sampleClamped(baked.LumVsSat, l) *
		sampleClamped(baked.SatVsSat, s)

	if sNew < 0 {
		sNew = 0
	} else if sNew > 1 {
		sNew = 1
	}

	return hslToRGB(hNew, sNew, l)
}
