package gpupipeline

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// GPUAdapter is the compute-only device handle a Pipeline binds its
// resources against: a device to create shader modules, buffers, and
// pipelines on, plus the queue that dispatches to them. It is a narrow
// slice of what a full rendering backend would expose: no swapchain,
// no render pass, no rasterization or blend state, since the grading
// pipeline never draws a path or a glyph.
type GPUAdapter interface {
	Device() hal.Device
	Queue() hal.Queue
}

// deviceAdapter is the concrete GPUAdapter backing every real caller:
// a plain wrapper over the hal.Device/hal.Queue pair the host process
// obtained from whatever hal backend it registered (Vulkan, Metal,
// D3D12 - selection happens below this package, same as every other
// GPU-backed package in this tree).
type deviceAdapter struct {
	device hal.Device
	queue  hal.Queue
}

// NewDeviceAdapter wraps an already-opened hal.Device and hal.Queue as
// a GPUAdapter. Passing a nil device is valid and means "no GPU
// available"; Pipeline treats that the same as a nil adapter.
func NewDeviceAdapter(device hal.Device, queue hal.Queue) GPUAdapter {
	return &deviceAdapter{device: device, queue: queue}
}

func (a *deviceAdapter) Device() hal.Device { return a.device }
func (a *deviceAdapter) Queue() hal.Queue   { return a.queue }

// gpuShader holds every hal resource one compiled module needs to run
// its entry points as compute pipelines: the module itself, its bind
// group layouts in @group order, the pipeline layout wrapping all of
// them, and one hal.ComputePipeline per entry point (several WGSL files
// in this package export more than one).
type gpuShader struct {
	module    hal.ShaderModule
	groups    []hal.BindGroupLayout
	layout    hal.PipelineLayout
	pipelines map[string]hal.ComputePipeline
}

// bufferBindingLayout returns a compute-visible storage or uniform
// buffer binding at the given slot. kind selects a
// gputypes.BufferBindingType.
func bufferBindingLayout(binding uint32, kind gputypes.BufferBindingType) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageCompute,
		Buffer:     &gputypes.BufferBindingLayout{Type: kind},
	}
}

// textureFormatFor maps this package's own notion of a scope/LUT
// texture's channel layout onto the gputypes.TextureFormat the device
// actually allocates against.
func textureFormatFor(channels int) gputypes.TextureFormat {
	switch channels {
	case 1:
		return gputypes.TextureFormatR32Float
	default:
		return gputypes.TextureFormatRGBA32Float
	}
}
