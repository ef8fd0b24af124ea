package engine

import (
	"time"

	"github.com/crispen/gradingcore/gradeimage"
	"github.com/crispen/gradingcore/internal/workpool"
)

// ImageLoader produces a GradingImage from an external path. Decoding
// PNG/JPEG/EXR and any other format is an external collaborator's
// responsibility; the Controller only calls this function.
type ImageLoader func(path string) (img *gradeimage.Image, bitDepth int, err error)

// Option configures a Controller during construction.
type Option func(*controllerOptions)

type controllerOptions struct {
	pool            *workpool.Pool
	curveResolution int
	lutSize         int
	vectorscopeRes  int
	cieRes          int
	scopeTickRate   time.Duration
	loader          ImageLoader
	commandBuffer   int
	notifyBuffer    int
}

func defaultControllerOptions() controllerOptions {
	return controllerOptions{
		pool:            nil,
		curveResolution: 256,
		lutSize:         33,
		vectorscopeRes:  256,
		cieRes:          256,
		scopeTickRate:   time.Second / 15,
		loader:          nil,
		commandBuffer:   16,
		notifyBuffer:    16,
	}
}

// WithWorkerPool assigns a pool for LUT bake and scope compute. Without
// one, work runs on the calling goroutine.
func WithWorkerPool(pool *workpool.Pool) Option {
	return func(o *controllerOptions) {
		o.pool = pool
	}
}

// WithCurveResolution sets the length of the pre-baked 1D curve tables.
func WithCurveResolution(n int) Option {
	return func(o *controllerOptions) {
		o.curveResolution = n
	}
}

// WithLutSize sets the 3D LUT edge length baked on each params change.
// The documented resolutions are 33 and 65; the value is not validated.
func WithLutSize(n int) Option {
	return func(o *controllerOptions) {
		o.lutSize = n
	}
}

// WithScopeResolution sets the vectorscope and CIE grid resolutions.
func WithScopeResolution(vectorscope, cie int) Option {
	return func(o *controllerOptions) {
		o.vectorscopeRes = vectorscope
		o.cieRes = cie
	}
}

// WithScopeTickRate sets the cadence at which scopes_due is raised
// independent of params changes. Defaults to 15 Hz.
func WithScopeTickRate(hz float64) Option {
	return func(o *controllerOptions) {
		if hz > 0 {
			o.scopeTickRate = time.Duration(float64(time.Second) / hz)
		}
	}
}

// WithImageLoader injects the external image loader LoadImage dispatches
// to. Without one, LoadImage commands fail with an Error notification.
func WithImageLoader(loader ImageLoader) Option {
	return func(o *controllerOptions) {
		o.loader = loader
	}
}

// WithChannelBuffers sets the command/notification channel buffer sizes.
func WithChannelBuffers(commands, notifications int) Option {
	return func(o *controllerOptions) {
		o.commandBuffer = commands
		o.notifyBuffer = notifications
	}
}
