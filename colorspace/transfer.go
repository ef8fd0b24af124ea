package colorspace

import "github.com/chewxy/math32"

// Transfer converts a single component between non-linear (encoded) and
// scene-linear light. All builtin transfer functions in this package
// satisfy it.
type Transfer interface {
	ToLinear(encoded float32) float32
	ToEncoded(linear float32) float32
}

// TransferFor returns the transfer function for id, or nil if id encodes
// scene-linear light directly (see ID.IsLinear).
func TransferFor(id ID) Transfer {
	switch id {
	case Srgb:
		return srgbTransfer{}
	case AcesCc:
		return acesCcTransfer{}
	case AcesCct:
		return acesCctTransfer{}
	case ArriLogC3:
		return arriLogC3Transfer{}
	case ArriLogC4:
		return arriLogC4Transfer{}
	case SLog3:
		return sLog3Transfer{}
	case RedLog3G10:
		return redLog3G10Transfer{}
	case VLog:
		return vLogTransfer{}
	default:
		return nil
	}
}

// ToLinear converts a single component from id's encoding to scene-linear
// light. Linear spaces return encoded unchanged.
func ToLinear(id ID, encoded float32) float32 {
	if tf := TransferFor(id); tf != nil {
		return tf.ToLinear(encoded)
	}
	return encoded
}

// ToEncoded converts a single component from scene-linear light to id's
// encoding. Linear spaces return linear unchanged.
func ToEncoded(id ID, linear float32) float32 {
	if tf := TransferFor(id); tf != nil {
		return tf.ToEncoded(linear)
	}
	return linear
}

// sRGB (IEC 61966-2-1).
type srgbTransfer struct{}

func (srgbTransfer) ToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

func (srgbTransfer) ToEncoded(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1.0/2.4) - 0.055
}

// ARRI LogC3, EI 800 constants from the ARRI LogC specification.
type arriLogC3Transfer struct{}

const (
	logC3A     = 5.555556
	logC3B     = 0.052272
	logC3C     = 0.247190
	logC3D     = 0.385537
	logC3Cut   = 0.010591
	logC3E     = 5.367655
	logC3F     = 0.092809
	logC3ECut  = 0.149658 // logC3E*logC3Cut + logC3F
)

func (arriLogC3Transfer) ToLinear(t float32) float32 {
	if t <= logC3ECut {
		return (t - logC3F) / logC3E
	}
	return (math32.Pow(10, (t-logC3D)/logC3C) - logC3B) / logC3A
}

func (arriLogC3Transfer) ToEncoded(x float32) float32 {
	if x <= logC3Cut {
		return logC3E*x + logC3F
	}
	return logC3C*math32.Log10(logC3A*x+logC3B) + logC3D
}

// ARRI LogC4, ALEXA 35.
type arriLogC4Transfer struct{}

const (
	logC4A    = 2231.8263
	logC4B    = 64.0
	logC4C    = 0.07410756
	logC4D    = 0.09286412
	logC4Cut  = -0.02344045
	logC4ECut = 0.09060096
)

func (arriLogC4Transfer) ToLinear(t float32) float32 {
	if t <= logC4ECut {
		return (t - logC4D) / logC4C
	}
	return (math32.Pow(2, (t-logC4D)/logC4C) - logC4B) / logC4A
}

func (arriLogC4Transfer) ToEncoded(x float32) float32 {
	if x <= logC4Cut {
		return logC4C*x + logC4D
	}
	return logC4C*math32.Log2(logC4A*x+logC4B) + logC4D
}

// Sony S-Log3 / S-Gamut3.Cine.
type sLog3Transfer struct{}

const (
	sLog3Threshold  = 0.01125
	sLog3ThresholdE = 0.167360 // 171.2102946929 / 1023
)

func (sLog3Transfer) ToLinear(t float32) float32 {
	if t >= sLog3ThresholdE {
		return 0.19*math32.Pow(10, (t*1023.0-420.0)/261.5) - 0.01
	}
	return (t*1023.0 - 95.0) * 0.01125 / (171.2103 - 95.0)
}

func (sLog3Transfer) ToEncoded(x float32) float32 {
	if x >= sLog3Threshold {
		return (420.0 + 261.5*math32.Log10((x+0.01)/0.19)) / 1023.0
	}
	return (x*(171.2103-95.0)/0.01125 + 95.0) / 1023.0
}

// RED Log3G10 / REDWideGamutRGB.
type redLog3G10Transfer struct{}

const (
	redA = 155.97533
	redB = 0.01
	redC = 0.224282
)

func (redLog3G10Transfer) ToLinear(t float32) float32 {
	if t < 0 {
		return (t - redB) / redA
	}
	return (math32.Pow(10, t/redC) - 1.0) / redA
}

func (redLog3G10Transfer) ToEncoded(linear float32) float32 {
	x := linear * redA
	if x < 0 {
		return x + redB
	}
	return redC * math32.Log10(x+1.0)
}

// Panasonic V-Log / V-Gamut.
type vLogTransfer struct{}

const (
	vLogB         = 0.00873
	vLogC         = 0.241514
	vLogD         = 0.598206
	vLogCut       = 0.01
	vLogCutEncode = 0.181 // 5.6*vLogCut + 0.125
)

func (vLogTransfer) ToLinear(t float32) float32 {
	if t < vLogCutEncode {
		return (t - 0.125) / 5.6
	}
	return math32.Pow(10, (t-vLogD)/vLogC) - vLogB
}

func (vLogTransfer) ToEncoded(x float32) float32 {
	if x < vLogCut {
		return 5.6*x + 0.125
	}
	return vLogC*math32.Log10(x+vLogB) + vLogD
}

// ACEScc — pure logarithmic encoding in AP1 (S-2014-003).
type acesCcTransfer struct{}

func (acesCcTransfer) ToLinear(t float32) float32 {
	if t <= -0.3014 {
		return (math32.Pow(2, t*17.52-9.72) - 1e-15) * 2.0
	}
	return math32.Pow(2, t*17.52-9.72)
}

func (acesCcTransfer) ToEncoded(x float32) float32 {
	const minVal = float32(1.0 / 32768.0) // 2^-15
	switch {
	case x <= 0:
		return (math32.Log2(1e-15) + 9.72) / 17.52
	case x < minVal:
		return (math32.Log2(1e-15+x*0.5) + 9.72) / 17.52
	default:
		return (math32.Log2(x) + 9.72) / 17.52
	}
}

// ACEScct — quasi-logarithmic encoding with a linear toe (S-2016-001).
type acesCctTransfer struct{}

const (
	acesCctCut     = 0.0078125 // 2^-7
	acesCctCutEnc  = 0.15525114
	acesCctSlope   = 10.540238
	acesCctOffset  = 0.072905534
)

func (acesCctTransfer) ToLinear(t float32) float32 {
	if t <= acesCctCutEnc {
		return (t - acesCctOffset) / acesCctSlope
	}
	return math32.Pow(2, t*17.52-9.72)
}

func (acesCctTransfer) ToEncoded(x float32) float32 {
	if x <= acesCctCut {
		return acesCctSlope*x + acesCctOffset
	}
	return (math32.Log2(x) + 9.72) / 17.52
}
