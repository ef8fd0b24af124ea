package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/crispen/gradingcore/colorspace"
	"github.com/crispen/gradingcore/lut"
)

func readCube(path string) (*lut.Lut3D, error) {
	l, err := lut.ReadCube(path)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("readCube: %w", err)
	}
	return l, nil
}

// readPNGLinear decodes a PNG and converts its sRGB-encoded channels to
// linear-light float32, matching the four-channel RGBA layout ApplyImage
// expects.
func readPNGLinear(path string) (pixels []float32, width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]float32, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (y*width + x) * 4
			pixels[off] = colorspace.ToLinear(colorspace.Srgb, float32(r)/65535)
			pixels[off+1] = colorspace.ToLinear(colorspace.Srgb, float32(g)/65535)
			pixels[off+2] = colorspace.ToLinear(colorspace.Srgb, float32(b)/65535)
			pixels[off+3] = float32(a) / 65535
		}
	}
	return pixels, width, height, nil
}

func applyLut(l *lut.Lut3D, src []float32, width, height int) []float32 {
	return lut.ApplyImage(l, src, width, height, nil)
}

// writePNGFromLinear converts linear-light four-channel float32 pixels back
// to sRGB-encoded 8-bit and writes a PNG.
func writePNGFromLinear(pixels []float32, width, height int, path string) error {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := (y*width + x) * 4
			out.Set(x, y, color.NRGBA{
				R: toSRGB8(colorspace.ToEncoded(colorspace.Srgb, pixels[off])),
				G: toSRGB8(colorspace.ToEncoded(colorspace.Srgb, pixels[off+1])),
				B: toSRGB8(colorspace.ToEncoded(colorspace.Srgb, pixels[off+2])),
				A: toSRGB8(pixels[off+3]),
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, out)
}
