// Package lut implements the 3D lookup table that the CPU reference path
// bakes from a grading transform and samples trilinearly, plus the .cube
// text file format used to exchange baked LUTs with external tools.
package lut

import (
	"fmt"

	"github.com/crispen/gradingcore/internal/workpool"
	"github.com/crispen/gradingcore/transform"
)

// Lut3D is a cube-shaped lookup table of size*size*size four-channel cells.
// Cell (i,j,k) is stored at index i + j*size + k*size*size, matching the
// .cube file's canonical x-fastest ordering.
type Lut3D struct {
	Size       int
	Data       [][4]float32
	DomainMin  [3]float32
	DomainMax  [3]float32
}

// New allocates an identity-sized Lut3D with the default [0,1]^3 domain.
// Cells are left zeroed; callers populate via Bake.
func New(size int) *Lut3D {
	return &Lut3D{
		Size:      size,
		Data:      make([][4]float32, size*size*size),
		DomainMin: [3]float32{0, 0, 0},
		DomainMax: [3]float32{1, 1, 1},
	}
}

func cellIndex(size, i, j, k int) int {
	return i + j*size + k*size*size
}

// Bake evaluates p's transform chain at every grid point of an n-cube and
// stores the result. Work is split by z-slice across the given pool so a
// 65^3 bake (274625 cells) isn't single-threaded.
func Bake(p *transform.Params, baked *transform.Baked, size int, pool *workpool.Pool) *Lut3D {
	l := New(size)
	denom := float32(size - 1)
	if denom == 0 {
		denom = 1
	}

	bakeSlice := func(k int) {
		z := float32(k) / denom
		for j := 0; j < size; j++ {
			y := float32(j) / denom
			for i := 0; i < size; i++ {
				x := float32(i) / denom
				out := transform.Evaluate([3]float32{x, y, z}, p, baked)
				l.Data[cellIndex(size, i, j, k)] = [4]float32{out[0], out[1], out[2], 1}
			}
		}
	}

	if pool == nil {
		for k := 0; k < size; k++ {
			bakeSlice(k)
		}
		return l
	}

	pool.RunRange(size, func(start, end int) {
		for k := start; k < end; k++ {
			bakeSlice(k)
		}
	})

	return l
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Apply samples l at rgb using trilinear interpolation over the 8
// surrounding grid cells. Inputs outside [DomainMin, DomainMax] are clamped,
// never extrapolated.
func (l *Lut3D) Apply(rgb [3]float32) [3]float32 {
	size := l.Size
	denom := float32(size - 1)
	if denom <= 0 {
		c := l.Data[0]
		return [3]float32{c[0], c[1], c[2]}
	}

	var gx, gy, gz float32
	for axis, v := range rgb {
		v = clamp(v, l.DomainMin[axis], l.DomainMax[axis])
		span := l.DomainMax[axis] - l.DomainMin[axis]
		if span == 0 {
			span = 1
		}
		norm := (v - l.DomainMin[axis]) / span
		g := clamp(norm, 0, 1) * denom
		switch axis {
		case 0:
			gx = g
		case 1:
			gy = g
		case 2:
			gz = g
		}
	}

	x0 := int(gx)
	y0 := int(gy)
	z0 := int(gz)
	x1 := min(x0+1, size-1)
	y1 := min(y0+1, size-1)
	z1 := min(z0+1, size-1)

	fx := gx - float32(x0)
	fy := gy - float32(y0)
	fz := gz - float32(z0)

	lerp := func(a, b [4]float32, t float32) [4]float32 {
		return [4]float32{
			a[0] + (b[0]-a[0])*t,
			a[1] + (b[1]-a[1])*t,
			a[2] + (b[2]-a[2])*t,
			a[3] + (b[3]-a[3])*t,
		}
	}

	c000 := l.Data[cellIndex(size, x0, y0, z0)]
	c100 := l.Data[cellIndex(size, x1, y0, z0)]
	c010 := l.Data[cellIndex(size, x0, y1, z0)]
	c110 := l.Data[cellIndex(size, x1, y1, z0)]
	c001 := l.Data[cellIndex(size, x0, y0, z1)]
	c101 := l.Data[cellIndex(size, x1, y0, z1)]
	c011 := l.Data[cellIndex(size, x0, y1, z1)]
	c111 := l.Data[cellIndex(size, x1, y1, z1)]

	c00 := lerp(c000, c100, fx)
	c10 := lerp(c010, c110, fx)
	c01 := lerp(c001, c101, fx)
	c11 := lerp(c011, c111, fx)

	c0 := lerp(c00, c10, fy)
	c1 := lerp(c01, c11, fy)

	c := lerp(c0, c1, fz)
	return [3]float32{c[0], c[1], c[2]}
}

// ApplyImage trilinearly samples l for every pixel of src (four-channel
// f32 RGBA, row-major) and returns the result in a newly allocated slice;
// src is not modified. Rows are split across pool when non-nil.
func ApplyImage(l *Lut3D, src []float32, width, height int, pool *workpool.Pool) []float32 {
	dst := make([]float32, len(src))

	applyRows := func(startRow, endRow int) {
		for row := startRow; row < endRow; row++ {
			base := row * width * 4
			for col := 0; col < width; col++ {
				off := base + col*4
				in := [3]float32{src[off], src[off+1], src[off+2]}
				out := l.Apply(in)
				dst[off] = out[0]
				dst[off+1] = out[1]
				dst[off+2] = out[2]
				dst[off+3] = src[off+3]
			}
		}
	}

	if pool == nil {
		applyRows(0, height)
		return dst
	}

	pool.RunRange(height, applyRows)
	return dst
}

// Validate returns an error if l's shape is inconsistent (size/data
// mismatch, or size not one of the two documented LUT resolutions).
func (l *Lut3D) Validate() error {
	if l.Size != 33 && l.Size != 65 {
		return fmt.Errorf("lut: unsupported size %d (want 33 or 65)", l.Size)
	}
	want := l.Size * l.Size * l.Size
	if len(l.Data) != want {
		return fmt.Errorf("lut: data length %d does not match size^3 = %d", len(l.Data), want)
	}
	return nil
}
