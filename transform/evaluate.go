package transform

import (
	"github.com/crispen/gradingcore/colorspace"
	"github.com/crispen/gradingcore/grading"
)

// Evaluate runs the canonical eight-step grading chain on a single RGB
// triplet. The order is part of the contract shared with the GPU bake
// shader: reordering these steps changes the graded result.
//
//  1. Input transform: linearize by the input transfer function, then
//     gamut-convert input->working through the XYZ D65 hub.
//  2. White balance.
//  3. CDL (lift/gamma/gain/offset).
//  4. Contrast with pivot.
//  5. Shadows/highlights.
//  6. Saturation + hue + luma mix.
//  7. Curves.
//  8. Output transform: gamut-convert working->output, encode with the
//     output transfer function.
func Evaluate(rgb [3]float32, p *Params, baked *Baked) [3]float32 {
	cm := p.ColorManagement

	working := colorspace.ToWorkingLinear(rgb, cm.InputSpace, cm.WorkingSpace)

	working = grading.WhiteBalance(working, p.Temperature, p.Tint)
	working = grading.CDL(working, p.Lift, p.Gamma, p.Gain, p.Offset)
	working = grading.Contrast(working, p.Contrast, p.Pivot)
	working = grading.ShadowsHighlights(working, p.Shadows, p.Highlights)
	working = grading.SaturationHueLumaMix(working, p.Saturation, p.Hue, p.LumaMix)
	working = grading.ApplyCurves(working, baked.Curves)

	return colorspace.FromWorkingLinear(working, cm.WorkingSpace, cm.OutputSpace)
}
