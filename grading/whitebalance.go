package grading

import (
	"github.com/chewxy/math32"
	"github.com/crispen/gradingcore/colorspace"
)

// referenceKelvin is the neutral correlated color temperature (temperature
// and tint both 0.0).
const referenceKelvin = 6500.0

// kelvinPerUnit scales the temperature slider into an approximate CCT
// shift; tintPerUnit scales the tint slider along the CIE daylight-locus
// perpendicular (green-magenta) direction.
const (
	kelvinPerUnit = 100.0
	tintPerUnit   = 0.05
)

// WhiteBalance shifts rgb's white point by temperature (blue-yellow axis)
// and tint (green-magenta axis), via a CIE daylight-locus approximation and
// Bradford adaptation from D65 to the resulting destination white.
// temperature=0, tint=0 is an identity. White balance operates against the
// Rec. 709/sRGB primaries regardless of the working space: the surrounding
// gamut conversion to/from the true working space happens in the input and
// output transform steps.
func WhiteBalance(rgb [3]float32, temperature, tint float32) [3]float32 {
	if temperature == 0 && tint == 0 {
		return rgb
	}

	destWhite := daylightWhitePoint(temperature, tint)
	xyz := colorspace.GamutToXYZ(colorspace.LinearSrgb, rgb)
	adapted := colorspace.ChromaticAdapt(xyz, colorspace.D65White(), destWhite)
	return colorspace.XYZToGamut(colorspace.LinearSrgb, adapted)
}

// daylightWhitePoint approximates the CIE XYZ white point at the CCT
// implied by temperature, shifted off the Planckian/daylight locus by tint.
func daylightWhitePoint(temperature, tint float32) [3]float32 {
	kelvin := referenceKelvin - temperature*kelvinPerUnit
	if kelvin < 4000 {
		kelvin = 4000
	} else if kelvin > 25000 {
		kelvin = 25000
	}

	invT := 1000.0 / kelvin
	var xd float32
	if kelvin <= 7000 {
		xd = -4.6070*invT*invT*invT + 2.9678*invT*invT + 0.09911*invT + 0.244063
	} else {
		xd = -2.0064*invT*invT*invT + 1.9018*invT*invT + 0.24748*invT + 0.237040
	}
	yd := -3.000*xd*xd + 2.870*xd - 0.275 + tint*tintPerUnit

	if yd < 1e-4 {
		yd = 1e-4
	}
	return [3]float32{xd / yd, 1.0, (1 - xd - yd) / yd}
}

// AutoWhiteBalance estimates the (temperature, tint) pair that would map
// avgLinearRGB — the gray-world average of an image's linear RGB — onto the
// achromatic axis, by inverting the same daylight-locus model WhiteBalance
// uses.
func AutoWhiteBalance(avgLinearRGB [3]float32) (temperature, tint float32) {
	xyz := colorspace.GamutToXYZ(colorspace.LinearSrgb, avgLinearRGB)
	sum := xyz[0] + xyz[1] + xyz[2]
	if sum < 1e-6 {
		return 0, 0
	}
	x, y := xyz[0]/sum, xyz[1]/sum

	// Coarse search over kelvin: the daylight locus isn't analytically
	// invertible in closed form, so step through the valid range and keep
	// the closest chromaticity match.
	bestKelvin := referenceKelvin
	bestDist := math32.MaxFloat32
	for k := float32(4000); k <= 25000; k += 25 {
		invT := 1000.0 / k
		var xd float32
		if k <= 7000 {
			xd = -4.6070*invT*invT*invT + 2.9678*invT*invT + 0.09911*invT + 0.244063
		} else {
			xd = -2.0064*invT*invT*invT + 1.9018*invT*invT + 0.24748*invT + 0.237040
		}
		yd := -3.000*xd*xd + 2.870*xd - 0.275

		dx, dy := x-xd, y-yd
		dist := dx*dx + dy*dy
		if dist < bestDist {
			bestDist = dist
			bestKelvin = k
		}
	}

	temperature = (referenceKelvin - bestKelvin) / kelvinPerUnit

	invT := 1000.0 / bestKelvin
	var xd float32
	if bestKelvin <= 7000 {
		xd = -4.6070*invT*invT*invT + 2.9678*invT*invT + 0.09911*invT + 0.244063
	} else {
		xd = -2.0064*invT*invT*invT + 1.9018*invT*invT + 0.24748*invT + 0.237040
	}
	ydOnLocus := -3.000*xd*xd + 2.870*xd - 0.275
	tint = (y - ydOnLocus) / tintPerUnit

	return temperature, tint
}
