// Package gradingcore is the root of the Crispen grading core: a real-time
// color grading engine built around one composite transform chain shared,
// bit-for-bit, between a CPU reference path and a GPU compute (wgpu) path.
//
// # Overview
//
// The engine adjusts an image's color through wheels, sliders, and curves;
// every parameter change recomputes a baked 3D LUT and re-applies it to the
// source image, while a scope engine reads back histogram, waveform,
// vectorscope, and CIE statistics from the graded result. See the
// sub-packages:
//
//   - [github.com/crispen/gradingcore/colorspace] — gamut matrices, transfer
//     functions, chromatic adaptation
//   - [github.com/crispen/gradingcore/grading] — CDL, contrast,
//     shadows/highlights, saturation/hue, curves, auto-balance
//   - [github.com/crispen/gradingcore/transform] — the fixed-order
//     evaluator and its parameter struct
//   - [github.com/crispen/gradingcore/lut] — 3D LUT bake/apply and
//     `.cube` file I/O
//   - [github.com/crispen/gradingcore/scope] — histogram/waveform/
//     vectorscope/CIE/parade compute passes
//   - [github.com/crispen/gradingcore/gpupipeline] — the compute-shader
//     mirror of the transform chain, with CPU fallback
//   - [github.com/crispen/gradingcore/engine] — the Parameter Store and
//     Frame Controller that tie everything together
//
// This root package holds only the ambient logging facility shared by every
// sub-package, so that setting a logger once configures the whole engine.
package gradingcore
