package scope

import (
	"github.com/crispen/gradingcore/gradeimage"
	"github.com/crispen/gradingcore/internal/workpool"
)

// WaveformData holds, per channel, a width*height grid where column x's
// Height values are row counts: Data[c][x*Height+bin] is the number of
// pixels in column x whose channel-c value mapped to row bin.
type WaveformData struct {
	Width  int
	Height int
	Data   [3][]uint32
}

func newWaveformData(width, height int) *WaveformData {
	w := &WaveformData{Width: width, Height: height}
	for c := range w.Data {
		w.Data[c] = make([]uint32, width*height)
	}
	return w
}

// Waveform bins every unmasked pixel's channel values by column and code
// value, one row per bin; a value v lands in row floor(v*(height-1)), so
// there are height possible bins. Columns are independent
// so row bands can be computed in parallel with no merge step needed: each
// worker writes into disjoint columns of the same backing slices only if
// split by column, but here we split by row and sum per-band waveforms,
// matching Histogram's merge-at-the-end shape for consistency.
func Waveform(img *gradeimage.Image, mask gradeimage.Mask, pool *workpool.Pool) *WaveformData {
	bands := 1
	if pool != nil {
		bands = pool.Workers()
	}
	partials := make([]*WaveformData, bands)
	for i := range partials {
		partials[i] = newWaveformData(img.Width, img.Height)
	}

	rowMax := img.Height - 1
	if rowMax < 0 {
		rowMax = 0
	}

	accumulate := func(band, startRow, endRow int) {
		w := partials[band]
		for row := startRow; row < endRow; row++ {
			rowBase := row * img.Width
			for col := 0; col < img.Width; col++ {
				idx := rowBase + col
				if !mask.Includes(idx) {
					continue
				}
				off := idx * 4
				for c := 0; c < 3; c++ {
					v := clamp01(img.Pixels[off+c])
					bin := int(v * float32(rowMax))
					if bin > rowMax {
						bin = rowMax
					}
					w.Data[c][col*img.Height+bin]++
				}
			}
		}
	}

	if pool == nil {
		accumulate(0, 0, img.Height)
	} else {
		bandHeight := (img.Height + bands - 1) / bands
		if bandHeight < 1 {
			bandHeight = 1
		}
		work := make([]func(), 0, bands)
		band := 0
		for start := 0; start < img.Height; start += bandHeight {
			end := min(start+bandHeight, img.Height)
			b, s, e := band, start, end
			work = append(work, func() { accumulate(b, s, e) })
			band++
		}
		pool.RunBatch(work)
	}

	out := newWaveformData(img.Width, img.Height)
	for _, p := range partials {
		for c := 0; c < 3; c++ {
			for i, v := range p.Data[c] {
				out.Data[c][i] += v
			}
		}
	}
	return out
}

// Sum returns the total count across one channel's grid, used by tests as
// the waveform analogue of the histogram's width*height invariant.
func (w *WaveformData) Sum(channel int) uint64 {
	var total uint64
	for _, v := range w.Data[channel] {
		total += uint64(v)
	}
	return total
}
