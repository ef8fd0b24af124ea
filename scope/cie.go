package scope

import (
	"github.com/crispen/gradingcore/gradeimage"
	"github.com/crispen/gradingcore/internal/workpool"
)

// CieData is a resolution*resolution density grid over CIE 1931 (x, y)
// chromaticity, restricted to the documented [0, 0.8]^2 display window.
type CieData struct {
	Resolution int
	Density    []uint32
}

// sRGB linear -> CIE XYZ, D65, matching colorspace.rec709ToXYZ exactly; kept
// local since scope reads the graded RGB directly without routing through
// the colorspace package's color-management ID machinery.
var cieSrgbToXYZ = [3][3]float32{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

func rgbToXYZ(rgb [3]float32) (x, y, z float32) {
	m := cieSrgbToXYZ
	x = m[0][0]*rgb[0] + m[0][1]*rgb[1] + m[0][2]*rgb[2]
	y = m[1][0]*rgb[0] + m[1][1]*rgb[1] + m[1][2]*rgb[2]
	z = m[2][0]*rgb[0] + m[2][1]*rgb[1] + m[2][2]*rgb[2]
	return
}

const cieDisplayMax = 0.8

// Cie computes chromaticity density over unmasked pixels, skipping any
// pixel whose X+Y+Z sum is too small to divide safely (near-black).
func Cie(img *gradeimage.Image, mask gradeimage.Mask, resolution int, pool *workpool.Pool) *CieData {
	bands := 1
	if pool != nil {
		bands = pool.Workers()
	}
	partials := make([][]uint32, bands)
	for i := range partials {
		partials[i] = make([]uint32, resolution*resolution)
	}

	toCell := func(v float32) int {
		cell := int((v / cieDisplayMax) * float32(resolution))
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
				X, Y, Z := rgbToXYZ([3]float32{img.Pixels[off], img.Pixels[off+1], img.Pixels[off+2]})
				sum := X + Y + Z
				if sum < 1e-4 {
					continue
				}
				x := X / sum
				y := Y / sum
				if x < 0 || x > cieDisplayMax || y < 0 || y > cieDisplayMax {
					continue
				}
				gx := toCell(x)
				gy := toCell(y)
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

	out := &CieData{Resolution: resolution, Density: make([]uint32, resolution*resolution)}
	for _, p := range partials {
		for i, v := range p {
			out.Density[i] += v
		}
	}
	return out
}
