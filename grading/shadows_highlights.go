package grading

// ShadowsHighlights lifts shadows and compresses/recovers highlights based
// on Rec. 709 luma weighting: shadow weight fades in below mid-gray,
// highlight weight fades in above it, and both scale the same additive
// term so shadows=highlights=0 is an identity.
func ShadowsHighlights(rgb [3]float32, shadows, highlights float32) [3]float32 {
	if shadows == 0 && highlights == 0 {
		return rgb
	}

	l := Luma709(rgb)
	wShadow := 1 - smoothstep(0, 0.5, l)
	wHighlight := smoothstep(0.5, 1, l)
	weight := shadows*wShadow + highlights*wHighlight

	return [3]float32{
		rgb[0] + rgb[0]*weight,
		rgb[1] + rgb[1]*weight,
		rgb[2] + rgb[2]*weight,
	}
}
