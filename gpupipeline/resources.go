package gpupipeline

import "github.com/gogpu/gputypes"

// bindGroupSpec is one @group(N) block of a WGSL shader, expressed as
// the gputypes entries hal.Device.CreateBindGroupLayout expects. Every
// shader's binding numbers and types are copied straight from its
// embedded WGSL source (gpupipeline/wgsl/*.wgsl) so the layout this
// package hands the device always matches what naga compiled.
type bindGroupSpec struct {
	label   string
	entries []gputypes.BindGroupLayoutEntry
}

// shaderSpec is everything Pipeline.init needs to stand up one
// compiled module as one or more compute pipelines: its bind groups,
// in @group order, and the entry points sharing that layout.
type shaderSpec struct {
	label       string
	groups      []bindGroupSpec
	entryPoints []string
}

func uniformEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return bufferBindingLayout(binding, gputypes.BufferBindingTypeUniform)
}

func storageEntry(binding uint32, readOnly bool) gputypes.BindGroupLayoutEntry {
	if readOnly {
		return bufferBindingLayout(binding, gputypes.BufferBindingTypeReadOnlyStorage)
	}
	return bufferBindingLayout(binding, gputypes.BufferBindingTypeStorage)
}

func sampledTextureEntry(binding uint32, dim gputypes.TextureViewDimension) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageCompute,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: dim,
		},
	}
}

func samplerEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageCompute,
		Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
	}
}

func storageTextureEntry(binding uint32, dim gputypes.TextureViewDimension, channels int) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageCompute,
		Storage: &gputypes.StorageTextureBindingLayout{
			Access:        gputypes.StorageTextureAccessWriteOnly,
			Format:        textureFormatFor(channels),
			ViewDimension: dim,
		},
	}
}

// shaderSpecs describes every WGSL module this package embeds. Binding
// layouts mirror the @group/@binding annotations in gpupipeline/wgsl
// exactly; see each .wgsl file's header comment for the shader this
// entry compiles.
var shaderSpecs = []shaderSpec{
	{
		label: "bake_lut",
		groups: []bindGroupSpec{
			{
				label: "bake_lut_uniforms",
				entries: []gputypes.BindGroupLayoutEntry{
					uniformEntry(0),
					sampledTextureEntry(1, gputypes.TextureViewDimension1D),
					sampledTextureEntry(2, gputypes.TextureViewDimension1D),
					sampledTextureEntry(3, gputypes.TextureViewDimension1D),
					sampledTextureEntry(4, gputypes.TextureViewDimension1D),
				},
			},
			{
				label:   "bake_lut_output",
				entries: []gputypes.BindGroupLayoutEntry{storageTextureEntry(0, gputypes.TextureViewDimension3D, 4)},
			},
		},
		entryPoints: []string{"cs_bake"},
	},
	{
		label: "apply_lut",
		groups: []bindGroupSpec{
			{
				label: "apply_lut_input",
				entries: []gputypes.BindGroupLayoutEntry{
					sampledTextureEntry(0, gputypes.TextureViewDimension3D),
					samplerEntry(1),
					sampledTextureEntry(2, gputypes.TextureViewDimension2D),
				},
			},
			{
				label:   "apply_lut_output",
				entries: []gputypes.BindGroupLayoutEntry{storageTextureEntry(0, gputypes.TextureViewDimension2D, 4)},
			},
		},
		entryPoints: []string{"cs_apply"},
	},
	{
		label: "scope_histogram",
		groups: []bindGroupSpec{
			{
				label: "scope_histogram_bindings",
				entries: []gputypes.BindGroupLayoutEntry{
					sampledTextureEntry(0, gputypes.TextureViewDimension2D),
					storageEntry(1, true),
					storageEntry(2, false),
					storageEntry(3, false),
				},
			},
		},
		entryPoints: []string{"cs_histogram"},
	},
	{
		label: "scope_waveform",
		groups: []bindGroupSpec{
			{
				label: "scope_waveform_bindings",
				entries: []gputypes.BindGroupLayoutEntry{
					sampledTextureEntry(0, gputypes.TextureViewDimension2D),
					storageEntry(1, true),
					storageEntry(2, false),
					storageEntry(3, false),
					storageEntry(4, false),
				},
			},
			{
				label:   "scope_waveform_uniforms",
				entries: []gputypes.BindGroupLayoutEntry{uniformEntry(0)},
			},
		},
		entryPoints: []string{"cs_waveform"},
	},
	{
		label: "scope_vectorscope",
		groups: []bindGroupSpec{
			{
				label: "scope_vectorscope_bindings",
				entries: []gputypes.BindGroupLayoutEntry{
					sampledTextureEntry(0, gputypes.TextureViewDimension2D),
					storageEntry(1, true),
					storageEntry(2, false),
				},
			},
			{
				label:   "scope_vectorscope_uniforms",
				entries: []gputypes.BindGroupLayoutEntry{uniformEntry(0)},
			},
		},
		entryPoints: []string{"cs_vectorscope"},
	},
	{
		label: "scope_cie",
		groups: []bindGroupSpec{
			{
				label: "scope_cie_bindings",
				entries: []gputypes.BindGroupLayoutEntry{
					sampledTextureEntry(0, gputypes.TextureViewDimension2D),
					storageEntry(1, true),
					storageEntry(2, false),
				},
			},
			{
				label:   "scope_cie_uniforms",
				entries: []gputypes.BindGroupLayoutEntry{uniformEntry(0)},
			},
		},
		entryPoints: []string{"cs_cie"},
	},
	{
		label: "midtone_detail",
		groups: []bindGroupSpec{
			{
				label: "midtone_detail_bindings",
				entries: []gputypes.BindGroupLayoutEntry{
					uniformEntry(0),
					storageEntry(1, true),
					sampledTextureEntry(2, gputypes.TextureViewDimension2D),
					storageEntry(3, false),
				},
			},
		},
		// Two entry points share one module, one layout: the horizontal and
		// vertical passes of the separable blur (see midtone_detail.wgsl).
		entryPoints: []string{"cs_blur_horizontal", "cs_blur_vertical"},
	},
}
