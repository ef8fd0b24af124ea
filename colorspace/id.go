// Package colorspace implements the color-management primitives shared by
// every stage of the grading pipeline: color-space identifiers, RGB-to-XYZ
// gamut matrices, Bradford chromatic adaptation, and the transfer functions
// (OETF/EOTF) that convert between scene-linear light and each space's
// non-linear encoding.
//
// All math here runs per-pixel on the CPU reference path, so it is written
// against float32 throughout rather than round-tripping through float64.
package colorspace

// ID identifies a color space used as an input, working, or output space
// for the grading pipeline. The zero value is Aces2065_1.
type ID int32

const (
	// Aces2065_1 is ACES 2065-1 (AP0 primaries, linear, D60 white point).
	Aces2065_1 ID = iota
	// AcesCg is ACEScg (AP1 primaries, linear). The default working space.
	AcesCg
	// AcesCc is ACEScc (AP1 primaries, logarithmic).
	AcesCc
	// AcesCct is ACEScct (AP1 primaries, logarithmic with a linear toe).
	AcesCct
	// Srgb is sRGB (Rec. 709 primaries, sRGB transfer function).
	Srgb
	// LinearSrgb is linear-light Rec. 709 (Rec. 709 primaries, no transfer).
	LinearSrgb
	// Rec2020 is ITU-R BT.2020 (wide-gamut primaries, linear).
	Rec2020
	// DciP3 is Display/DCI-P3 (D65 white point, linear).
	DciP3
	// ArriLogC3 is ARRI LogC3, ALEXA classic cameras at EI 800.
	ArriLogC3
	// ArriLogC4 is ARRI LogC4, ALEXA 35 cameras.
	ArriLogC4
	// SLog3 is Sony S-Log3 / S-Gamut3.Cine.
	SLog3
	// RedLog3G10 is RED Log3G10 / REDWideGamutRGB.
	RedLog3G10
	// VLog is Panasonic V-Log / V-Gamut.
	VLog

	numBuiltin
)

// CustomBase is the first ID value available for user-defined color spaces
// registered at runtime. IDs below CustomBase are reserved for the builtin
// spaces above.
const CustomBase ID = 1000

// String returns the human-readable name of a builtin color space, or
// "custom" / "unknown" for IDs outside the builtin range.
func (id ID) String() string {
	if id >= CustomBase {
		return "custom"
	}
	switch id {
	case Aces2065_1:
		return "ACES2065-1"
	case AcesCg:
		return "ACEScg"
	case AcesCc:
		return "ACEScc"
	case AcesCct:
		return "ACEScct"
	case Srgb:
		return "sRGB"
	case LinearSrgb:
		return "Linear sRGB"
	case Rec2020:
		return "Rec.2020"
	case DciP3:
		return "DCI-P3"
	case ArriLogC3:
		return "ARRI LogC3"
	case ArriLogC4:
		return "ARRI LogC4"
	case SLog3:
		return "S-Log3"
	case RedLog3G10:
		return "RED Log3G10"
	case VLog:
		return "V-Log"
	default:
		return "unknown"
	}
}

// IsLinear reports whether the space encodes scene-linear light directly,
// i.e. has no transfer function to invert before working with it.
func (id ID) IsLinear() bool {
	switch id {
	case Aces2065_1, AcesCg, LinearSrgb, Rec2020, DciP3:
		return true
	default:
		return false
	}
}
