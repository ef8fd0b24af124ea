package scope

import (
	"github.com/crispen/gradingcore/gradeimage"
	"github.com/crispen/gradingcore/internal/workpool"
)

// VectorscopeData is a resolution*resolution density grid over BT.709
// Cb/Cr space, used to display hue/saturation concentration.
type VectorscopeData struct {
	Resolution int
	Density    []uint32
}

// rgbToYCbCr709 converts linear RGB (treated as already gamma-encoded
// display values for scope purposes, matching the waveform/histogram's
// direct read of the graded buffer) to BT.709 YCbCr, Cb/Cr in [-0.5, 0.5].
func rgbToYCbCr709(rgb [3]float32) (y, cb, cr float32) {
	r, g, b := rgb[0], rgb[1], rgb[2]
	y = 0.2126*r + 0.7152*g + 0.0722*b
	cb = (b - y) / 1.8556
	cr = (r - y) / 1.5748
	return
}

// Vectorscope maps every unmasked pixel's (Cb, Cr) linearly from
// [-0.5, 0.5]^2 into a resolution*resolution grid and accumulates density.
func Vectorscope(img *gradeimage.Image, mask gradeimage.Mask, resolution int, pool *workpool.Pool) *VectorscopeData {
	bands := 1
	if pool != nil {
		bands = pool.Workers()
	}
	partials := make([][]uint32, bands)
	for i := range partials {
		partials[i] = make([]uint32, resolution*resolution)
	}

	toCell := func(v float32) int {
		cell := int((v + 0.5) * float32(resolution))
		if cell < 0 {
			cell = 0
		}
		if cell >= resolution {
			cell = resolution - 1
		}
		return cell
	}

	accumulate := func(band, startRow, endRow int) {
		density := partials[band]
		for row := startRow; row < endRow; row++ {
			rowBase := row * img.Width
			for col := 0; col < img.Width; col++ {
				idx := rowBase + col
				if !mask.Includes(idx) {
					continue
				}
				off := idx * 4
				_, cb, cr := rgbToYCbCr709([3]float32{img.Pixels[off], img.Pixels[off+1], img.Pixels[off+2]})
				gx := toCell(cb)
				gy := toCell(cr)
				density[gy*resolution+gx]++
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

	out := &VectorscopeData{Resolution: resolution, Density: make([]uint32, resolution*resolution)}
	for _, p := range partials {
		for i, v := range p {
			out.Density[i] += v
		}
	}
	return out
}
