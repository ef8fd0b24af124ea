package engine

import "github.com/crispen/gradingcore/transform"

// ScopeKind identifies one of the five scope displays a caller can toggle.
type ScopeKind int

const (
	ScopeHistogram ScopeKind = iota
	ScopeWaveform
	ScopeVectorscope
	ScopeCie
	ScopeParade
)

// Command is the closed set of operations the UI transport can send to a
// Controller. Only the types declared in this file implement it.
type Command interface {
	isCommand()
}

// RequestState asks the Controller to publish its full current params on
// the notification channel.
type RequestState struct{}

// SetParams replaces the Controller's params wholesale. The wire contract
// is delta-free: callers always send full state.
type SetParams struct {
	Params transform.Params
}

// AutoBalance computes a gray-world white balance from the current source
// image and applies it to params.
type AutoBalance struct{}

// ResetGrade resets params to the identity grade, keeping the current
// color-management selection.
type ResetGrade struct{}

// LoadImage asks the injected image loader to produce a source image. On
// success it raises source_dirty.
type LoadImage struct {
	Path string
}

// LoadLut parses a .cube file and installs it as a post-chain LUT in the
// given slot.
type LoadLut struct {
	Path string
	Slot int
}

// ExportLut bakes the current params at the given resolution and writes
// the result as a .cube file.
type ExportLut struct {
	Path string
	Size int
}

// ToggleScope enables or disables one scope kind's dispatch. It never
// marks params or source dirty by itself.
type ToggleScope struct {
	Kind    ScopeKind
	Visible bool
}

func (RequestState) isCommand() {}
func (SetParams) isCommand()    {}
func (AutoBalance) isCommand()  {}
func (ResetGrade) isCommand()   {}
func (LoadImage) isCommand()    {}
func (LoadLut) isCommand()      {}
func (ExportLut) isCommand()    {}
func (ToggleScope) isCommand()  {}
