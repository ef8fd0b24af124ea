package gpupipeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/crispen/gradingcore"
	"github.com/crispen/gradingcore/gradeimage"
	"github.com/crispen/gradingcore/internal/workpool"
	"github.com/crispen/gradingcore/lut"
	"github.com/crispen/gradingcore/scope"
	"github.com/crispen/gradingcore/transform"
)

// ErrFallbackToCPU is returned by nothing directly; it documents the
// policy this package follows instead of an API a caller needs to
// handle. Every Pipeline method always succeeds by falling back to the
// CPU packages (transform, lut, scope) when the GPU path is unavailable
// or a resource call fails, so callers never see a partial result.
var ErrFallbackToCPU = errors.New("gpupipeline: falling back to CPU path")

// Pipeline mirrors the CPU grading chain as GPU compute dispatches: LUT
// bake, LUT apply, the four scope passes, and the midtone-detail pass.
// It stands up real hal.ShaderModule, hal.BindGroupLayout,
// hal.PipelineLayout, and hal.ComputePipeline resources at construction
// when a live GPUAdapter is supplied, exactly as this package's device
// setup was adapted from does. Per-dispatch buffer upload, bind-group
// binding, and the Submit/WaitIdle call are left as structured TODOs on
// each method below, since recording them needs the staging-buffer
// plumbing this codebase's HAL layer does not yet expose; resource
// creation itself is real, not stubbed. Every method still returns a
// correct result via the CPU fallback regardless of GPU state.
type Pipeline struct {
	mu      sync.Mutex
	adapter GPUAdapter
	pool    *workpool.Pool

	useGPU  bool
	shaders map[string]*gpuShader
	initErr error
}

// NewPipeline builds a Pipeline. adapter may be nil, meaning every
// dispatch uses the CPU fallback; pool may also be nil, meaning CPU
// fallback work runs on the calling goroutine.
func NewPipeline(adapter GPUAdapter, pool *workpool.Pool) *Pipeline {
	p := &Pipeline{
		adapter: adapter,
		pool:    pool,
		shaders: make(map[string]*gpuShader),
	}
	p.init()
	return p
}

func (p *Pipeline) init() {
	if p.adapter == nil || p.adapter.Device() == nil {
		return
	}
	device := p.adapter.Device()

	for _, spec := range shaderSpecs {
		gs, err := buildShader(device, spec)
		if err != nil {
			// A single failed module means the whole batch falls back to
			// CPU; destroy whatever partial state was already built.
			gradingcore.Logger().Warn("gpupipeline: GPU shader setup failed, falling back to CPU",
				"shader", spec.label, "error", err)
			p.initErr = fmt.Errorf("%w: %v", ErrFallbackToCPU, err)
			p.destroyShadersLocked(device)
			return
		}
		p.shaders[spec.label] = gs
	}
	p.useGPU = true
}

// buildShader compiles one WGSL module and stands up its bind group
// layouts, pipeline layout, and one hal.ComputePipeline per entry
// point, mirroring gpu_fine.go's init/createBindGroupLayouts/
// createPipelineLayout/createPipelines sequence.
func buildShader(device hal.Device, spec shaderSpec) (*gpuShader, error) {
	spirv, err := compileShader(spec.label)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", spec.label, err)
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  spec.label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module %s: %w", spec.label, err)
	}

	gs := &gpuShader{
		module:    module,
		groups:    make([]hal.BindGroupLayout, 0, len(spec.groups)),
		pipelines: make(map[string]hal.ComputePipeline),
	}

	for _, g := range spec.groups {
		layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   g.label,
			Entries: g.entries,
		})
		if err != nil {
			destroyShader(device, gs)
			return nil, fmt.Errorf("create bind group layout %s: %w", g.label, err)
		}
		gs.groups = append(gs.groups, layout)
	}

	pipelineLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            spec.label + "_layout",
		BindGroupLayouts: gs.groups,
	})
	if err != nil {
		destroyShader(device, gs)
		return nil, fmt.Errorf("create pipeline layout %s: %w", spec.label, err)
	}
	gs.layout = pipelineLayout

	for _, entry := range spec.entryPoints {
		pipeline, err := device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
			Label:  entry,
			Layout: pipelineLayout,
			Compute: hal.ComputeState{
				Module:     module,
				EntryPoint: entry,
			},
		})
		if err != nil {
			destroyShader(device, gs)
			return nil, fmt.Errorf("create compute pipeline %s: %w", entry, err)
		}
		gs.pipelines[entry] = pipeline
	}

	return gs, nil
}

// destroyShader releases every resource gs has accumulated so far,
// used both by Pipeline.Close and to unwind a partially built shader
// when buildShader fails partway through.
func destroyShader(device hal.Device, gs *gpuShader) {
	for _, pipeline := range gs.pipelines {
		device.DestroyComputePipeline(pipeline)
	}
	if gs.layout != nil {
		device.DestroyPipelineLayout(gs.layout)
	}
	for _, g := range gs.groups {
		device.DestroyBindGroupLayout(g)
	}
	if gs.module != nil {
		device.DestroyShaderModule(gs.module)
	}
}

func (p *Pipeline) destroyShadersLocked(device hal.Device) {
	for _, gs := range p.shaders {
		destroyShader(device, gs)
	}
	p.shaders = map[string]*gpuShader{}
	p.useGPU = false
}

// UsingGPU reports whether every shader module compiled and the GPU
// dispatch path is live. False whenever adapter is nil, has no device,
// or any shader/pipeline creation failed.
func (p *Pipeline) UsingGPU() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.useGPU
}

// BakeLUT produces a baked 3D LUT for params. The GPU path would upload
// the Uniforms and curve textures, dispatch cs_bake once per grid cell,
// and read the 3D texture back; that dispatch recording is not wired up
// (see Pipeline's doc comment), so this always computes the CPU result,
// which is the determinism contract's reference value regardless.
func (p *Pipeline) BakeLUT(params *transform.Params, baked *transform.Baked, size int) *lut.Lut3D {
	p.mu.Lock()
	useGPU := p.useGPU
	p.mu.Unlock()
	if useGPU {
		gradingcore.Logger().Debug("gpupipeline: BakeLUT dispatch pending buffer upload, using CPU bake", "size", size)
		// TODO: record a cs_bake dispatch: upload Uniforms + curve
		// textures, bind the lut_out storage texture, dispatch
		// ceil(size/4)^3 workgroups, submit, and read back the texture.
	}
	return lut.Bake(params, baked, size, p.pool)
}

// ApplyLUT samples l at every pixel of src, producing the graded image.
// Same GPU/CPU split as BakeLUT.
func (p *Pipeline) ApplyLUT(l *lut.Lut3D, src []float32, width, height int) []float32 {
	p.mu.Lock()
	useGPU := p.useGPU
	p.mu.Unlock()
	if useGPU {
		gradingcore.Logger().Debug("gpupipeline: ApplyLUT dispatch pending buffer upload, using CPU apply", "width", width, "height", height)
		// TODO: record a cs_apply dispatch against the baked 3D texture.
	}
	return lut.ApplyImage(l, src, width, height, p.pool)
}

// Histogram, Waveform, Vectorscope, and Cie mirror their scope package
// counterparts. They always compute on the CPU through the scope package,
// whether or not the GPU path is live.

func (p *Pipeline) Histogram(img *gradeimage.Image, mask gradeimage.Mask) *scope.HistogramData {
	return scope.Histogram(img, mask, p.pool)
}

func (p *Pipeline) Waveform(img *gradeimage.Image, mask gradeimage.Mask) *scope.WaveformData {
	return scope.Waveform(img, mask, p.pool)
}

func (p *Pipeline) Vectorscope(img *gradeimage.Image, mask gradeimage.Mask, resolution int) *scope.VectorscopeData {
	return scope.Vectorscope(img, mask, resolution, p.pool)
}

func (p *Pipeline) Cie(img *gradeimage.Image, mask gradeimage.Mask, resolution int) *scope.CieData {
	return scope.Cie(img, mask, resolution, p.pool)
}

// MidtoneDetail runs the optional spatial pass in place. The GPU path
// would dispatch cs_blur_horizontal then cs_blur_vertical from
// midtone_detail.wgsl over workgroup-shared tiles; until that dispatch
// is wired up this always uses the CPU separable blur.
func (p *Pipeline) MidtoneDetail(img *gradeimage.Image, strength float32) {
	p.mu.Lock()
	useGPU := p.useGPU
	p.mu.Unlock()
	if useGPU {
		gradingcore.Logger().Debug("gpupipeline: MidtoneDetail dispatch pending buffer upload, using CPU blur", "strength", strength)
		// TODO: record cs_blur_horizontal + cs_blur_vertical dispatches.
	}
	ApplyMidtoneDetail(img, strength, p.pool)
}

// Close releases any GPU resources this Pipeline created.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.adapter == nil || p.adapter.Device() == nil || len(p.shaders) == 0 {
		return
	}
	p.destroyShadersLocked(p.adapter.Device())
}
