package colorspace

// Matrix3 is a row-major 3x3 matrix used for RGB<->XYZ gamut transforms and
// chromatic adaptation.
type Matrix3 [3][3]float32

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Apply transforms rgb by the matrix: result = M * rgb.
func (m Matrix3) Apply(rgb [3]float32) [3]float32 {
	return [3]float32{
		m[0][0]*rgb[0] + m[0][1]*rgb[1] + m[0][2]*rgb[2],
		m[1][0]*rgb[0] + m[1][1]*rgb[1] + m[1][2]*rgb[2],
		m[2][0]*rgb[0] + m[2][1]*rgb[1] + m[2][2]*rgb[2],
	}
}

// Multiply returns m * other (apply other first, then m).
func (m Matrix3) Multiply(other Matrix3) Matrix3 {
	var r Matrix3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += m[row][k] * other[k][col]
			}
			r[row][col] = sum
		}
	}
	return r
}

// Inverse returns the matrix inverse. Gamut and Bradford matrices used in
// this package are always non-singular by construction.
func (m Matrix3) Inverse() Matrix3 {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	invDet := 1.0 / det

	return Matrix3{
		{(e*i - f*h) * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet},
		{(f*g - d*i) * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet},
		{(d*h - e*g) * invDet, (b*g - a*h) * invDet, (a*e - b*d) * invDet},
	}
}

// whitePoint is a CIE XYZ tristimulus white point normalized to Y=1.
type whitePoint [3]float32

var (
	whiteD65 = whitePoint{0.95047, 1.0, 1.08883}
	whiteD60 = whitePoint{0.952646074, 1.0, 1.008825184} // ACES white point
)

// gamut describes a working color space's primaries as an RGB->XYZ matrix
// and the white point that matrix is balanced against.
type gamut struct {
	toXYZ Matrix3
	white whitePoint
}

// Primaries reported per published specifications (Rec. 709, Rec. 2020,
// Display P3, ACES AP0/AP1). Camera log spaces are graded against the
// Rec. 709 gamut here: the pack's original_source stubbed out its own
// per-camera gamut matrices (color_space.rs is a todo!() placeholder), so
// this package picks the same simplification the grading UI would use when
// no camera-specific IDT is loaded.
var gamuts = map[ID]gamut{
	Srgb:       {toXYZ: rec709ToXYZ, white: whiteD65},
	LinearSrgb: {toXYZ: rec709ToXYZ, white: whiteD65},
	ArriLogC3:  {toXYZ: rec709ToXYZ, white: whiteD65},
	ArriLogC4:  {toXYZ: rec709ToXYZ, white: whiteD65},
	SLog3:      {toXYZ: rec709ToXYZ, white: whiteD65},
	RedLog3G10: {toXYZ: rec709ToXYZ, white: whiteD65},
	VLog:       {toXYZ: rec709ToXYZ, white: whiteD65},
	Rec2020:    {toXYZ: rec2020ToXYZ, white: whiteD65},
	DciP3:      {toXYZ: p3ToXYZ, white: whiteD65},
	Aces2065_1: {toXYZ: ap0ToXYZ, white: whiteD60},
	AcesCg:     {toXYZ: ap1ToXYZ, white: whiteD60},
	AcesCc:     {toXYZ: ap1ToXYZ, white: whiteD60},
	AcesCct:    {toXYZ: ap1ToXYZ, white: whiteD60},
}

var rec709ToXYZ = Matrix3{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

var rec2020ToXYZ = Matrix3{
	{0.6369580, 0.1446169, 0.1688810},
	{0.2627002, 0.6779981, 0.0593017},
	{0.0000000, 0.0280727, 1.0609851},
}

var p3ToXYZ = Matrix3{
	{0.4865709, 0.2656677, 0.1982173},
	{0.2289746, 0.6917385, 0.0792869},
	{0.0000000, 0.0451134, 1.0439444},
}

var ap0ToXYZ = Matrix3{
	{0.9525524, 0.0000000, 0.0000937},
	{0.3439665, 0.7281661, -0.0721325},
	{0.0000000, 0.0000000, 1.0088252},
}

var ap1ToXYZ = Matrix3{
	{0.6624542, 0.1340042, 0.1561877},
	{0.2722287, 0.6740818, 0.0536895},
	{-0.0055746, 0.0040607, 1.0103391},
}

// bradfordM is the Bradford cone-response matrix (XYZ -> LMS-like cone space).
var bradfordM = Matrix3{
	{0.8951000, 0.2664000, -0.1614000},
	{-0.7502000, 1.7135000, 0.0367000},
	{0.0389000, -0.0685000, 1.0296000},
}

var bradfordMInv = bradfordM.Inverse()

// ChromaticAdapt maps an XYZ tristimulus value observed under srcWhite to
// its equivalent under dstWhite using the Bradford transform.
func ChromaticAdapt(xyz [3]float32, srcWhite, dstWhite [3]float32) [3]float32 {
	cat := bradfordCAT(srcWhite, dstWhite)
	return cat.Apply(xyz)
}

// bradfordCAT builds the 3x3 chromatic-adaptation matrix that maps XYZ
// tristimulus values from srcWhite to dstWhite via the Bradford cone
// response.
func bradfordCAT(srcWhite, dstWhite [3]float32) Matrix3 {
	srcLMS := bradfordM.Apply(srcWhite)
	dstLMS := bradfordM.Apply(dstWhite)

	scale := Matrix3{
		{dstLMS[0] / srcLMS[0], 0, 0},
		{0, dstLMS[1] / srcLMS[1], 0},
		{0, 0, dstLMS[2] / srcLMS[2]},
	}

	return bradfordMInv.Multiply(scale).Multiply(bradfordM)
}

// GamutToXYZ converts a scene-linear RGB triplet in id's gamut to CIE XYZ
// under id's native white point. Returns rgb unchanged for spaces without a
// registered gamut (custom spaces default to identity/D65).
func GamutToXYZ(id ID, rgb [3]float32) [3]float32 {
	g, ok := gamuts[id]
	if !ok {
		return rgb
	}
	return g.toXYZ.Apply(rgb)
}

// XYZToGamut converts a CIE XYZ triplet under id's native white point back
// to scene-linear RGB in id's gamut.
func XYZToGamut(id ID, xyz [3]float32) [3]float32 {
	g, ok := gamuts[id]
	if !ok {
		return xyz
	}
	return g.toXYZ.Inverse().Apply(xyz)
}

// D65White returns the CIE D65 tristimulus white point (Y=1) used as the
// color-management hub illuminant.
func D65White() [3]float32 {
	return [3]float32(whiteD65)
}

// WhitePoint returns the native white point of id's gamut, or D65 if id has
// no registered gamut.
func WhitePoint(id ID) [3]float32 {
	if g, ok := gamuts[id]; ok {
		return [3]float32(g.white)
	}
	return [3]float32(whiteD65)
}

// ToXYZD65 converts scene-linear RGB in id's gamut to CIE XYZ under the D65
// hub white point, chromatically adapting from id's native white point
// first when it differs (e.g. ACES's D60).
func ToXYZD65(id ID, rgb [3]float32) [3]float32 {
	xyz := GamutToXYZ(id, rgb)
	white := WhitePoint(id)
	if white == [3]float32(whiteD65) {
		return xyz
	}
	return ChromaticAdapt(xyz, white, [3]float32(whiteD65))
}

// FromXYZD65 converts CIE XYZ under the D65 hub white point to scene-linear
// RGB in id's gamut, chromatically adapting to id's native white point
// first when it differs.
func FromXYZD65(id ID, xyz [3]float32) [3]float32 {
	white := WhitePoint(id)
	if white != [3]float32(whiteD65) {
		xyz = ChromaticAdapt(xyz, [3]float32(whiteD65), white)
	}
	return XYZToGamut(id, xyz)
}
