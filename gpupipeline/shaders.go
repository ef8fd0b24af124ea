package gpupipeline

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed wgsl/bake_lut.wgsl
var bakeLutWGSL string

//go:embed wgsl/apply_lut.wgsl
var applyLutWGSL string

//go:embed wgsl/scope_histogram.wgsl
var scopeHistogramWGSL string

//go:embed wgsl/scope_waveform.wgsl
var scopeWaveformWGSL string

//go:embed wgsl/scope_vectorscope.wgsl
var scopeVectorscopeWGSL string

//go:embed wgsl/scope_cie.wgsl
var scopeCieWGSL string

//go:embed wgsl/midtone_detail.wgsl
var midtoneDetailWGSL string

// shaderSet names every WGSL source this package ships, keyed by the
// label it is compiled and registered under.
var shaderSet = map[string]string{
	"bake_lut":          bakeLutWGSL,
	"apply_lut":         applyLutWGSL,
	"scope_histogram":   scopeHistogramWGSL,
	"scope_waveform":    scopeWaveformWGSL,
	"scope_vectorscope": scopeVectorscopeWGSL,
	"scope_cie":         scopeCieWGSL,
	"midtone_detail":    midtoneDetailWGSL,
}

// compileShader compiles WGSL source to SPIR-V words via naga and wraps
// any failure with the shader's label.
func compileShader(label string) ([]uint32, error) {
	src, ok := shaderSet[label]
	if !ok {
		return nil, fmt.Errorf("gpupipeline: unknown shader %q", label)
	}
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("gpupipeline: compile %s: %w", label, err)
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
