// Package engine ties the color primitives, grading operators, transform
// chain, LUT engine, and scope engine into the Parameter Store and Frame
// Controller: the single control loop that drains commands, bakes and
// applies the composite transform, dispatches scope passes, and publishes
// results.
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/crispen/gradingcore"
	"github.com/crispen/gradingcore/gpupipeline"
	"github.com/crispen/gradingcore/gradeimage"
	"github.com/crispen/gradingcore/grading"
	"github.com/crispen/gradingcore/internal/workpool"
	"github.com/crispen/gradingcore/lut"
	"github.com/crispen/gradingcore/scope"
	"github.com/crispen/gradingcore/transform"
)

// Controller is the Frame Controller and Parameter Store combined: it owns
// GradingParams for the process lifetime, mutating it only in response to
// commands processed on its single control-loop goroutine (driven by
// repeated calls to Tick, typically from a caller-owned frame loop).
//
// paramsDirty, sourceDirty, and scopesDue are the three flags spec.md's
// Frame Controller names; a tile-granularity dirty bitmap has no
// counterpart here since the whole frame is baked and applied as one unit.
type Controller struct {
	mu     sync.Mutex
	params *transform.Params
	baked  *transform.Baked

	source   *gradeimage.Image
	graded   *gradeimage.Image
	lut      *lut.Lut3D
	postLuts map[int]*lut.Lut3D

	paramsDirty atomic.Bool
	sourceDirty atomic.Bool
	scopesDue   atomic.Bool

	activeScopes map[ScopeKind]bool

	commands      chan Command
	notifications chan Notification
	pendingScopes chan ScopeResults

	opts       controllerOptions
	nextTick   time.Time
	closed     atomic.Bool
}

// New creates a Controller with an identity-grade default params and no
// source image loaded. It publishes an Initialize notification carrying
// the starting params.
func New(opts ...Option) *Controller {
	o := defaultControllerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		params:        transform.DefaultParams(),
		commands:      make(chan Command, o.commandBuffer),
		notifications: make(chan Notification, o.notifyBuffer),
		pendingScopes: make(chan ScopeResults, 1),
		postLuts:      make(map[int]*lut.Lut3D),
		activeScopes: map[ScopeKind]bool{
			ScopeHistogram:   true,
			ScopeWaveform:    true,
			ScopeVectorscope: true,
			ScopeCie:         true,
			ScopeParade:      false,
		},
		opts:     o,
		nextTick: time.Time{},
	}
	c.baked = c.params.Bake(o.curveResolution)
	c.paramsDirty.Store(true)

	c.publish(Initialize{Params: *c.params})
	return c
}

// Commands returns the send-only handle the UI transport uses to enqueue
// commands.
func (c *Controller) Commands() chan<- Command {
	return c.commands
}

// Notifications returns the receive-only handle the UI transport drains
// for outbound events.
func (c *Controller) Notifications() <-chan Notification {
	return c.notifications
}

// Close stops accepting further work from Tick's perspective; queued
// commands already in the channel are dropped, not drained.
func (c *Controller) Close() {
	c.closed.Store(true)
}

func (c *Controller) publish(n Notification) {
	select {
	case c.notifications <- n:
	default:
		// Notification channel full: drop the oldest slot rather than
		// block the control loop, matching the non-blocking-steady-state
		// requirement for readback.
		select {
		case <-c.notifications:
		default:
		}
		select {
		case c.notifications <- n:
		default:
		}
	}
}

// Drain processes every currently queued command without blocking. It is
// the first of Tick's five steps but is also exposed standalone for
// callers that want finer control over scheduling.
func (c *Controller) Drain() {
	for {
		select {
		case cmd := <-c.commands:
			c.apply(cmd)
		default:
			return
		}
	}
}

func (c *Controller) apply(cmd Command) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch v := cmd.(type) {
	case RequestState:
		c.publish(ParamsUpdated{Params: *c.params})

	case SetParams:
		p := v.Params
		c.params = &p
		c.baked = c.params.Bake(c.opts.curveResolution)
		c.paramsDirty.Store(true)
		c.publish(ParamsUpdated{Params: *c.params})

	case AutoBalance:
		if c.source == nil {
			c.publish(Error{Message: "engine: AutoBalance with no source image loaded"})
			return
		}
		avg := averageRGB(c.source)
		temp, tint := grading.AutoWhiteBalance(avg)
		c.params.Temperature = temp
		c.params.Tint = tint
		c.paramsDirty.Store(true)
		c.publish(ParamsUpdated{Params: *c.params})

	case ResetGrade:
		cm := c.params.ColorManagement
		c.params = transform.DefaultParams()
		c.params.ColorManagement = cm
		c.baked = c.params.Bake(c.opts.curveResolution)
		c.paramsDirty.Store(true)
		c.publish(ParamsUpdated{Params: *c.params})

	case LoadImage:
		if c.opts.loader == nil {
			c.publish(Error{Message: "engine: LoadImage with no image loader configured"})
			return
		}
		img, depth, err := c.opts.loader(v.Path)
		if err != nil {
			c.publish(Error{Message: "engine: load image: " + err.Error()})
			return
		}
		img.SourceBitDepth = depth
		c.source = img
		c.sourceDirty.Store(true)
		c.publish(ImageLoaded{Path: v.Path, Width: img.Width, Height: img.Height, Depth: depth})

	case LoadLut:
		l, err := lut.ReadCube(v.Path)
		if err != nil {
			c.publish(Error{Message: "engine: load lut: " + err.Error()})
			return
		}
		if err := l.Validate(); err != nil {
			c.publish(Error{Message: "engine: load lut: " + err.Error()})
			return
		}
		c.postLuts[v.Slot] = l
		c.sourceDirty.Store(true)

	case ExportLut:
		size := v.Size
		if size <= 0 {
			size = c.opts.lutSize
		}
		baked := c.params.Bake(c.opts.curveResolution)
		l := lut.Bake(c.params, baked, size, c.opts.pool)
		if err := lut.WriteCube(v.Path, l, ""); err != nil {
			c.publish(Error{Message: "engine: export lut: " + err.Error()})
		}

	case ToggleScope:
		c.activeScopes[v.Kind] = v.Visible

	default:
		c.publish(Error{Message: "engine: unknown command"})
	}
}

func averageRGB(img *gradeimage.Image) [3]float32 {
	var sum [3]float64
	n := img.Width * img.Height
	if n == 0 {
		return [3]float32{}
	}
	for i := 0; i < n; i++ {
		off := i * 4
		sum[0] += float64(img.Pixels[off])
		sum[1] += float64(img.Pixels[off+1])
		sum[2] += float64(img.Pixels[off+2])
	}
	return [3]float32{
		float32(sum[0] / float64(n)),
		float32(sum[1] / float64(n)),
		float32(sum[2] / float64(n)),
	}
}

// Tick runs the Frame Controller's five-step schedule once: drain
// commands, bake if params changed, apply if params or source changed,
// dispatch scopes if due, and poll pending readbacks non-blockingly.
func (c *Controller) Tick(now time.Time) {
	if c.closed.Load() {
		return
	}
	c.Drain()

	c.mu.Lock()
	wasParamsDirty := c.paramsDirty.Load()
	wasSourceDirty := c.sourceDirty.Load()

	if wasParamsDirty {
		gradingcore.Logger().Debug("engine: rebaking LUT", "size", c.opts.lutSize)
		c.lut = lut.Bake(c.params, c.baked, c.opts.lutSize, c.opts.pool)
		c.paramsDirty.Store(false)
	}

	if (wasParamsDirty || wasSourceDirty) && c.source != nil && c.lut != nil {
		gradingcore.Logger().Debug("engine: applying LUT to source",
			"width", c.source.Width, "height", c.source.Height)
		out := lut.ApplyImage(c.lut, c.source.Pixels, c.source.Width, c.source.Height, c.opts.pool)
		c.graded = &gradeimage.Image{
			Width:          c.source.Width,
			Height:         c.source.Height,
			Pixels:         out,
			SourceBitDepth: c.source.SourceBitDepth,
		}
		if l, ok := c.postLuts[0]; ok {
			applied := lut.ApplyImage(l, c.graded.Pixels, c.graded.Width, c.graded.Height, c.opts.pool)
			c.graded.Pixels = applied
		}
		if c.params.MidtoneDetail != 0 {
			gpupipeline.ApplyMidtoneDetail(c.graded, c.params.MidtoneDetail, c.opts.pool)
		}
		c.sourceDirty.Store(false)
	}

	if now.After(c.nextTick) {
		c.scopesDue.Store(true)
		c.nextTick = now.Add(c.opts.scopeTickRate)
	}

	shouldDispatchScopes := wasParamsDirty || wasSourceDirty || c.scopesDue.Load()
	graded := c.graded
	pool := c.opts.pool
	vecRes := c.opts.vectorscopeRes
	cieRes := c.opts.cieRes
	activeScopes := make(map[ScopeKind]bool, len(c.activeScopes))
	for k, v := range c.activeScopes {
		activeScopes[k] = v
	}
	c.mu.Unlock()

	if shouldDispatchScopes && graded != nil {
		c.scopesDue.Store(false)
		results := dispatchScopes(graded, nil, pool, vecRes, cieRes, activeScopes)
		select {
		case c.pendingScopes <- results:
		default:
			select {
			case <-c.pendingScopes:
			default:
			}
			c.pendingScopes <- results
		}
	}

	c.pollReadback()
}

func dispatchScopes(img *gradeimage.Image, mask gradeimage.Mask, pool *workpool.Pool, vecRes, cieRes int, active map[ScopeKind]bool) ScopeResults {
	var results ScopeResults

	if active[ScopeHistogram] {
		results.Histogram = scope.Histogram(img, mask, pool)
	}
	var wave *scope.WaveformData
	if active[ScopeWaveform] || active[ScopeParade] {
		wave = scope.Waveform(img, mask, pool)
	}
	if active[ScopeWaveform] {
		results.Waveform = wave
	}
	if active[ScopeParade] && wave != nil {
		results.Parade = scope.Parade(wave)
	}
	if active[ScopeVectorscope] {
		results.Vectorscope = scope.Vectorscope(img, mask, vecRes, pool)
	}
	if active[ScopeCie] {
		results.Cie = scope.Cie(img, mask, cieRes, pool)
	}
	return results
}

// pollReadback checks for a completed scope dispatch and publishes it
// without blocking, mirroring the non-blocking steady-state readback
// discipline: the control loop must never wait on GPU (or, here, CPU
// batch) completion.
func (c *Controller) pollReadback() {
	select {
	case results := <-c.pendingScopes:
		c.publish(ScopeData{Results: results})
	default:
	}
}
