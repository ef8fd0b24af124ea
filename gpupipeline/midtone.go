package gpupipeline

import (
	"math"
	"sync"

	"github.com/crispen/gradingcore/gradeimage"
	"github.com/crispen/gradingcore/internal/workpool"
)

// Fixed per the documented determinism contract: radius 8, sigma ~= 3.
const (
	midtoneRadius = 8
	midtoneSigma  = 3.0
)

const (
	luma709R = 0.2126
	luma709G = 0.7152
	luma709B = 0.0722
)

var (
	midtoneKernelOnce sync.Once
	midtoneKernelData []float32
)

// midtoneKernel returns the cached, normalized 1D Gaussian kernel used by
// both blur passes; the radius and sigma never change at runtime so one
// kernel serves every call.
func midtoneKernel() []float32 {
	midtoneKernelOnce.Do(func() {
		midtoneKernelData = gaussianKernel(midtoneSigma, midtoneRadius)
	})
	return midtoneKernelData
}

// gaussianKernel builds a normalized 1D Gaussian kernel of size
// 2*radius+1 for the given sigma.
func gaussianKernel(sigma float64, radius int) []float32 {
	size := radius*2 + 1
	kernel := make([]float32, size)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - radius)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	if sum > 0 {
		inv := float32(1.0 / sum)
		for i := range kernel {
			kernel[i] *= inv
		}
	}
	return kernel
}

func rec709Luma(r, g, b float32) float32 {
	return r*luma709R + g*luma709G + b*luma709B
}

// ApplyMidtoneDetail runs the optional spatial pass in place on img: a
// two-pass separable Gaussian blur of the luma channel, combined back as
// L' = L + strength*(L - L_blur), with RGB rescaled to preserve the
// L'/L ratio (the blurred copy never touches chroma directly). A no-op
// when strength is zero.
func ApplyMidtoneDetail(img *gradeimage.Image, strength float32, pool *workpool.Pool) {
	if strength == 0 || img == nil || img.Width == 0 || img.Height == 0 {
		return
	}
	w, h := img.Width, img.Height
	kernel := midtoneKernel()

	luma := make([]float32, w*h)
	for i := 0; i < w*h; i++ {
		off := i * 4
		luma[i] = rec709Luma(img.Pixels[off], img.Pixels[off+1], img.Pixels[off+2])
	}

	horiz := make([]float32, w*h)
	blurHorizontal(luma, horiz, w, h, kernel, pool)

	blurred := make([]float32, w*h)
	blurVertical(horiz, blurred, w, h, kernel, pool)

	for i := 0; i < w*h; i++ {
		l := luma[i]
		lBlur := blurred[i]
		lPrime := l + strength*(l-lBlur)
		ratio := float32(1)
		if l > 1e-6 {
			ratio = lPrime / l
		}
		off := i * 4
		img.Pixels[off] *= ratio
		img.Pixels[off+1] *= ratio
		img.Pixels[off+2] *= ratio
	}
}

func blurHorizontal(src, dst []float32, w, h int, kernel []float32, pool *workpool.Pool) {
	half := len(kernel) / 2
	rowFn := func(y int) {
		rowOff := y * w
		for x := 0; x < w; x++ {
			var sum float32
			for k := range kernel {
				sx := x + k - half
				if sx < 0 {
					sx = 0
				} else if sx >= w {
					sx = w - 1
				}
				sum += src[rowOff+sx] * kernel[k]
			}
			dst[rowOff+x] = sum
		}
	}
	if pool == nil {
		for y := 0; y < h; y++ {
			rowFn(y)
		}
		return
	}
	pool.RunRange(h, func(start, end int) {
		for y := start; y < end; y++ {
			rowFn(y)
		}
	})
}

func blurVertical(src, dst []float32, w, h int, kernel []float32, pool *workpool.Pool) {
	half := len(kernel) / 2
	colFn := func(y int) {
		for x := 0; x < w; x++ {
			var sum float32
			for k := range kernel {
				sy := y + k - half
				if sy < 0 {
					sy = 0
				} else if sy >= h {
					sy = h - 1
				}
				sum += src[sy*w+x] * kernel[k]
			}
			dst[y*w+x] = sum
		}
	}
	if pool == nil {
		for y := 0; y < h; y++ {
			colFn(y)
		}
		return
	}
	pool.RunRange(h, func(start, end int) {
		for y := start; y < end; y++ {
			colFn(y)
		}
	})
}
