// Package gradeimage defines the image buffer the grading engine operates
// on: four-channel linear-light float32 RGBA, the shape every transform,
// LUT, and scope pass reads and writes.
package gradeimage

// Image is a width*height grid of four-channel linear RGBA pixels, stored
// row-major with four floats per pixel (R, G, B, A). SourceBitDepth is
// metadata only, carried through for UI display; it has no effect on any
// computation.
type Image struct {
	Width          int
	Height         int
	Pixels         []float32
	SourceBitDepth int
}

// New allocates a black, fully opaque image of the given dimensions.
func New(width, height int) *Image {
	pixels := make([]float32, width*height*4)
	for i := 3; i < len(pixels); i += 4 {
		pixels[i] = 1
	}
	return &Image{Width: width, Height: height, Pixels: pixels}
}

// At returns the RGB triplet at (x, y). Coordinates are not bounds-checked:
// it panics only when the computed offset falls outside Pixels, and an
// out-of-range x reads from a neighbouring row.
func (img *Image) At(x, y int) [3]float32 {
	off := (y*img.Width + x) * 4
	return [3]float32{img.Pixels[off], img.Pixels[off+1], img.Pixels[off+2]}
}

// Set writes the RGB triplet at (x, y), leaving alpha untouched.
func (img *Image) Set(x, y int, rgb [3]float32) {
	off := (y*img.Width + x) * 4
	img.Pixels[off] = rgb[0]
	img.Pixels[off+1] = rgb[1]
	img.Pixels[off+2] = rgb[2]
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image {
	out := &Image{
		Width:          img.Width,
		Height:         img.Height,
		SourceBitDepth: img.SourceBitDepth,
		Pixels:         make([]float32, len(img.Pixels)),
	}
	copy(out.Pixels, img.Pixels)
	return out
}

// Mask is an optional per-pixel 0/1 buffer the scope passes honor: a
// masked-out pixel (value 0) is skipped by every scope computation.
type Mask []uint32

// Includes reports whether pixel index i should be counted. A nil mask
// includes every pixel.
func (m Mask) Includes(i int) bool {
	if m == nil {
		return true
	}
	return m[i] != 0
}
