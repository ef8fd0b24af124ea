package engine

import (
	"github.com/crispen/gradingcore/scope"
	"github.com/crispen/gradingcore/transform"
)

// Notification is the closed set of events a Controller publishes outbound.
// Only the types declared in this file implement it.
type Notification interface {
	isNotification()
}

// Initialize is published once, when the Controller starts, carrying the
// starting params.
type Initialize struct {
	Params transform.Params
}

// ParamsUpdated is published whenever params change, carrying the new
// value.
type ParamsUpdated struct {
	Params transform.Params
}

// ScopeResults bundles one tick's worth of scope readback.
type ScopeResults struct {
	Histogram   *scope.HistogramData
	Waveform    *scope.WaveformData
	Vectorscope *scope.VectorscopeData
	Cie         *scope.CieData
	Parade      *scope.ParadeData
}

// ScopeData is published after a scope dispatch completes and its
// readback has been consumed.
type ScopeData struct {
	Results ScopeResults
}

// ImageLoaded is published after LoadImage succeeds.
type ImageLoaded struct {
	Path   string
	Width  int
	Height int
	Depth  int
}

// Error is published for any recoverable failure: parse errors, resource
// errors, invalid commands. The Controller never panics on these.
type Error struct {
	Message string
}

func (Initialize) isNotification()   {}
func (ParamsUpdated) isNotification() {}
func (ScopeData) isNotification()     {}
func (ImageLoaded) isNotification()   {}
func (Error) isNotification()         {}
