package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/crispen/gradingcore/lut"
	"github.com/crispen/gradingcore/transform"
)

const bakeCurveResolution = 64

func bakeLut(params *transform.Params, size int) (*lut.Lut3D, error) {
	baked := params.Bake(bakeCurveResolution)
	return lut.Bake(params, baked, size, nil), nil
}

func writeCube(path string, l *lut.Lut3D, title string) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("writeCube: %w", err)
	}
	return lut.WriteCube(path, l, title)
}

// writeSlicePreview renders the mid-depth (b-channel fixed at the
// center grid index) 2D slice of a baked LUT as a PNG, scaled up to
// previewSize on each edge so individual cells are visible.
func writeSlicePreview(l *lut.Lut3D, previewSize int, path string) error {
	slice := image.NewRGBA(image.Rect(0, 0, l.Size, l.Size))
	midK := l.Size / 2
	for j := 0; j < l.Size; j++ {
		for i := 0; i < l.Size; i++ {
			cell := l.Data[cellIndex(l.Size, i, j, midK)]
			slice.Set(i, l.Size-1-j, color.NRGBA{
				R: toSRGB8(cell[0]),
				G: toSRGB8(cell[1]),
				B: toSRGB8(cell[2]),
				A: 255,
			})
		}
	}

	scaled := image.NewRGBA(image.Rect(0, 0, previewSize, previewSize))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), slice, slice.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, scaled)
}

func cellIndex(size, i, j, k int) int {
	return i + j*size + k*size*size
}

func toSRGB8(v float32) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
