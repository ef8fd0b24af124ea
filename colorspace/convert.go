package colorspace

// Convert transforms an RGB triplet from one color space to another: it
// linearizes with from's transfer function, converts gamut through the
// CIE XYZ D65 hub (with Bradford adaptation when the source or destination
// white point differs), then re-encodes with to's transfer function.
//
// Convert is a no-op (returns rgb unchanged) when from == to.
func Convert(rgb [3]float32, from, to ID) [3]float32 {
	if from == to {
		return rgb
	}

	linear := [3]float32{
		ToLinear(from, rgb[0]),
		ToLinear(from, rgb[1]),
		ToLinear(from, rgb[2]),
	}

	xyz := ToXYZD65(from, linear)
	dstLinear := FromXYZD65(to, xyz)

	return [3]float32{
		ToEncoded(to, dstLinear[0]),
		ToEncoded(to, dstLinear[1]),
		ToEncoded(to, dstLinear[2]),
	}
}

// ToWorkingLinear linearizes and gamut-converts rgb from id into
// scene-linear values in the working space's gamut, without re-encoding —
// this is the form every grading operator expects to receive.
func ToWorkingLinear(rgb [3]float32, id, working ID) [3]float32 {
	linear := [3]float32{
		ToLinear(id, rgb[0]),
		ToLinear(id, rgb[1]),
		ToLinear(id, rgb[2]),
	}
	if id == working {
		return linear
	}
	xyz := ToXYZD65(id, linear)
	return FromXYZD65(working, xyz)
}

// FromWorkingLinear converts scene-linear values in the working space's
// gamut to output's gamut and re-encodes with output's transfer function.
func FromWorkingLinear(rgb [3]float32, working, output ID) [3]float32 {
	var linear [3]float32
	if working == output {
		linear = rgb
	} else {
		xyz := ToXYZD65(working, rgb)
		linear = FromXYZD65(output, xyz)
	}
	return [3]float32{
		ToEncoded(output, linear[0]),
		ToEncoded(output, linear[1]),
		ToEncoded(output, linear[2]),
	}
}
