package grading

import "github.com/chewxy/math32"

// rgbToHSL converts a linear RGB triplet to hue (as a turn fraction in
// [0,1)), saturation, and lightness, all in [0,1].
func rgbToHSL(rgb [3]float32) (h, s, l float32) {
	r, g, b := rgb[0], rgb[1], rgb[2]

	max := math32.Max(r, math32.Max(g, b))
	min := math32.Min(r, math32.Min(g, b))
	l = (max + min) / 2

	delta := max - min
	if delta < 1e-7 {
		return 0, 0, l
	}

	if l < 0.5 {
		s = delta / (max + min)
	} else {
		s = delta / (2 - max - min)
	}

	switch max {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h /= 6

	return h, s, l
}

// hslToRGB converts hue (turn fraction), saturation, and lightness back to
// a linear RGB triplet.
func hslToRGB(h, s, l float32) [3]float32 {
	if s < 1e-7 {
		return [3]float32{l, l, l}
	}

	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return [3]float32{
		hueToRGBChannel(p, q, h+1.0/3.0),
		hueToRGBChannel(p, q, h),
		hueToRGBChannel(p, q, h-1.0/3.0),
	}
}

func hueToRGBChannel(p, q, t float32) float32 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
