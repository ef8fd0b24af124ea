// Package scope computes the readback statistics the UI displays alongside
// the graded image: histogram, waveform, vectorscope, CIE chromaticity, and
// an RGB parade. Every pass has a CPU implementation here; gpupipeline
// mirrors the same semantics in compute shaders for the hot path.
package scope

import (
	"github.com/crispen/gradingcore/grading"
	"github.com/crispen/gradingcore/gradeimage"
	"github.com/crispen/gradingcore/internal/workpool"
)

// HistogramData holds 256 bins for each of R, G, B, and Rec.709 luma
// (index 3), plus the peak bin count across all four channels — used by
// the UI to normalize the display.
type HistogramData struct {
	Bins [4][256]uint32
	Peak uint32
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func binOf(v float32) int {
	b := int(clamp01(v) * 255)
	if b > 255 {
		b = 255
	}
	if b < 0 {
		b = 0
	}
	return b
}

// Histogram computes bin counts for every unmasked pixel of img. Work is
// split across row bands with each worker accumulating into a private set
// of bins, merged with a plain add at the end (no atomics needed since
// bands don't overlap in their own accumulator, only in the final merge,
// which runs single-threaded).
func Histogram(img *gradeimage.Image, mask gradeimage.Mask, pool *workpool.Pool) *HistogramData {
	bands := 1
	if pool != nil {
		bands = pool.Workers()
	}
	partials := make([]*HistogramData, bands)
	for i := range partials {
		partials[i] = &HistogramData{}
	}

	accumulate := func(band, startRow, endRow int) {
		h := partials[band]
		for row := startRow; row < endRow; row++ {
			rowBase := row * img.Width
			for col := 0; col < img.Width; col++ {
				idx := rowBase + col
				if !mask.Includes(idx) {
					continue
				}
				off := idx * 4
				r, g, b := img.Pixels[off], img.Pixels[off+1], img.Pixels[off+2]
				h.Bins[0][binOf(r)]++
				h.Bins[1][binOf(g)]++
				h.Bins[2][binOf(b)]++
				h.Bins[3][binOf(grading.Luma709([3]float32{r, g, b}))]++
			}
		}
	}

	if pool == nil {
		accumulate(0, 0, img.Height)
	} else {
		rowsPerBand := (img.Height + bands - 1) / bands
		if rowsPerBand < 1 {
			rowsPerBand = 1
		}
		work := make([]func(), 0, bands)
		band := 0
		for start := 0; start < img.Height; start += rowsPerBand {
			end := min(start+rowsPerBand, img.Height)
			b, s, e := band, start, end
			work = append(work, func() { accumulate(b, s, e) })
			band++
		}
		pool.RunBatch(work)
	}

	out := &HistogramData{}
	for _, p := range partials {
		for c := 0; c < 4; c++ {
			for b := 0; b < 256; b++ {
				out.Bins[c][b] += p.Bins[c][b]
				if out.Bins[c][b] > out.Peak {
					out.Peak = out.Bins[c][b]
				}
			}
		}
	}
	return out
}
