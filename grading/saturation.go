package grading

import "github.com/chewxy/math32"

// achromaticAxis is (1,1,1)/sqrt(3), the axis hue rotation turns around in
// RGB space.
var achromaticAxis = [3]float32{1 / math32.Sqrt(3), 1 / math32.Sqrt(3), 1 / math32.Sqrt(3)}

// SaturationHueLumaMix desaturates/saturates toward luma, rotates hue
// around the achromatic axis via Rodrigues' rotation formula, and
// optionally rescales the result to preserve the original luma.
// saturation=1, hue=0, lumaMix=0 is an identity.
func SaturationHueLumaMix(rgb [3]float32, saturation, hueDegrees, lumaMix float32) [3]float32 {
	if saturation == 1 && hueDegrees == 0 && lumaMix == 0 {
		return rgb
	}

	l := Luma709(rgb)
	sat := [3]float32{
		l + (rgb[0]-l)*saturation,
		l + (rgb[1]-l)*saturation,
		l + (rgb[2]-l)*saturation,
	}

	rotated := rodrigues(sat, achromaticAxis, hueDegrees*math32.Pi/180)

	if lumaMix == 0 {
		return rotated
	}

	lNew := Luma709(rotated)
	if lNew < cdlEpsilon {
		lNew = cdlEpsilon
	}
	rescaled := [3]float32{
		rotated[0] * (l / lNew),
		rotated[1] * (l / lNew),
		rotated[2] * (l / lNew),
	}

	return mix3(rotated, rescaled, lumaMix)
}

// rodrigues rotates v by angle radians around the unit axis k.
func rodrigues(v, k [3]float32, angle float32) [3]float32 {
	cosT := math32.Cos(angle)
	sinT := math32.Sin(angle)

	kCrossV := [3]float32{
		k[1]*v[2] - k[2]*v[1],
		k[2]*v[0] - k[0]*v[2],
		k[0]*v[1] - k[1]*v[0],
	}
	kDotV := k[0]*v[0] + k[1]*v[1] + k[2]*v[2]

	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = v[i]*cosT + kCrossV[i]*sinT + k[i]*kDotV*(1-cosT)
	}
	return out
}

func mix3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}
