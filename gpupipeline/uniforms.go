package gpupipeline

import "github.com/crispen/gradingcore/transform"

// Uniforms is the packed, 16-byte-aligned uniform buffer layout the bake
// compute shader reads. Field order and size are part of the wire
// contract with bake_lut.wgsl; changing either
// side without the other silently breaks the shader.
//
// Layout (matches the WGSL struct exactly):
//
//	lift: vec4       gamma: vec4       gain: vec4        offset: vec4
//	temperature: f32 tint: f32         contrast: f32     pivot: f32
//	shadows: f32     highlights: f32   saturation: f32    hue_deg: f32
//	luma_mix: f32    input_space: u32  working_space: u32 output_space: u32
//
// Curves are bound separately as four 1D textures and are not part of
// this struct; the LUT size is its own scalar uniform, also bound
// separately.
type Uniforms struct {
	Lift   [4]float32
	Gamma  [4]float32
	Gain   [4]float32
	Offset [4]float32

	Temperature float32
	Tint        float32
	Contrast    float32
	Pivot       float32

	Shadows    float32
	Highlights float32
	Saturation float32
	HueDeg     float32

	LumaMix      float32
	InputSpace   uint32
	WorkingSpace uint32
	OutputSpace  uint32
}

// UniformsFromParams packs a Params value into the shader-ready layout.
func UniformsFromParams(p *transform.Params) Uniforms {
	return Uniforms{
		Lift:   p.Lift,
		Gamma:  p.Gamma,
		Gain:   p.Gain,
		Offset: p.Offset,

		Temperature: p.Temperature,
		Tint:        p.Tint,
		Contrast:    p.Contrast,
		Pivot:       p.Pivot,

		Shadows:    p.Shadows,
		Highlights: p.Highlights,
		Saturation: p.Saturation,
		HueDeg:     p.Hue,

		LumaMix:      p.LumaMix,
		InputSpace:   uint32(p.ColorManagement.InputSpace),
		WorkingSpace: uint32(p.ColorManagement.WorkingSpace),
		OutputSpace:  uint32(p.ColorManagement.OutputSpace),
	}
}
