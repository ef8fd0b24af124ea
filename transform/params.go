// Package transform defines the grading parameter block and the fixed
// eight-step evaluator that is the single source of truth for both the CPU
// reference path and the GPU bake shader.
package transform

import (
	"github.com/crispen/gradingcore/colorspace"
	"github.com/crispen/gradingcore/grading"
)

// ColorManagement selects the input, working, and output color spaces for
// the transform chain's input and output steps.
type ColorManagement struct {
	InputSpace   colorspace.ID
	WorkingSpace colorspace.ID
	OutputSpace  colorspace.ID
}

// DefaultColorManagement matches the reference implementation's defaults:
// linear sRGB in, ACEScg working, sRGB out.
func DefaultColorManagement() ColorManagement {
	return ColorManagement{
		InputSpace:   colorspace.LinearSrgb,
		WorkingSpace: colorspace.AcesCg,
		OutputSpace:  colorspace.Srgb,
	}
}

// Params is the single source of truth for a grading operation. Every UI
// tool and command writes into a Params value; Evaluate and the LUT bake
// pass both read the whole struct.
type Params struct {
	ColorManagement ColorManagement

	// Primary wheels, [R, G, B, Master].
	Lift   [4]float32
	Gamma  [4]float32
	Gain   [4]float32
	Offset [4]float32

	// Sliders.
	Temperature   float32
	Tint          float32
	Contrast      float32
	Pivot         float32
	MidtoneDetail float32
	Shadows       float32
	Highlights    float32
	Saturation    float32
	Hue           float32
	LumaMix       float32

	// Curve control points, pre-bake. Bake() compiles these into lookup
	// tables of the resolution passed to it.
	Curves grading.CurveSet
}

// DefaultParams returns the identity grade: every operator is a no-op and
// evaluate(rgb, params) == rgb after any input/output color-space round
// trip through the same space.
func DefaultParams() *Params {
	lift, gamma, gain, offset := grading.IdentityCDL()
	return &Params{
		ColorManagement: DefaultColorManagement(),
		Lift:            lift,
		Gamma:           gamma,
		Gain:            gain,
		Offset:          offset,
		Temperature:     0,
		Tint:            0,
		Contrast:        1,
		Pivot:           0.435,
		MidtoneDetail:   0,
		Shadows:         0,
		Highlights:      0,
		Saturation:      1,
		Hue:             0,
		LumaMix:         0,
	}
}

// Baked holds the pre-computed curve lookup tables for a Params value. It
// is separate from Params because baking is only needed when the curve
// control points change, not on every Evaluate call.
type Baked struct {
	Curves *grading.BakedCurves
}

// Bake compiles p's curve control points into lookup tables of the given
// resolution. The resolution is independent of the 3D LUT size: callers
// choose it separately (the engine defaults to 256 table entries).
func (p *Params) Bake(curveResolution int) *Baked {
	return &Baked{Curves: p.Curves.Bake(curveResolution)}
}
