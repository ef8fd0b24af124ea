package scope

import (
	"github.com/crispen/gradingcore/gradeimage"
	"github.com/crispen/gradingcore/internal/workpool"
)

// ParadeData presents the waveform's three channels as separate,
// individually addressable density grids — the "RGB parade" display,
// side-by-side waveforms for R, G, and B.
type ParadeData struct {
	Width  int
	Height int
	Red    []uint32
	Green  []uint32
	Blue   []uint32
}

// Parade reshapes w into the parade presentation. It does not recompute
// anything; Waveform already bins all three channels identically, so
// Parade is a relabeling of the same data a caller may have already paid
// for.
func Parade(w *WaveformData) *ParadeData {
	return &ParadeData{
		Width:  w.Width,
		Height: w.Height,
		Red:    w.Data[0],
		Green:  w.Data[1],
		Blue:   w.Data[2],
	}
}

// ParadeFromImage computes the waveform and immediately reshapes it, for
// callers that only need the parade view.
func ParadeFromImage(img *gradeimage.Image, mask gradeimage.Mask, pool *workpool.Pool) *ParadeData {
	return Parade(Waveform(img, mask, pool))
}
