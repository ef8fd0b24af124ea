package main

import (
	"path/filepath"
	"testing"

	"github.com/crispen/gradingcore/colorspace"
	"github.com/crispen/gradingcore/transform"
)

func TestBakeWriteReadCubeRoundTrip(t *testing.T) {
	params := transform.DefaultParams()
	params.Contrast = 1.2
	params.Saturation = 1.1

	l, err := bakeLut(params, 33)
	if err != nil {
		t.Fatalf("bakeLut: %v", err)
	}

	path := filepath.Join(t.TempDir(), "grade.cube")
	if err := writeCube(path, l, "roundtrip"); err != nil {
		t.Fatalf("writeCube: %v", err)
	}

	got, err := readCube(path)
	if err != nil {
		t.Fatalf("readCube: %v", err)
	}
	if got.Size != l.Size {
		t.Fatalf("Size = %d, want %d", got.Size, l.Size)
	}
	for i := range got.Data {
		for c := 0; c < 3; c++ {
			if diff := got.Data[i][c] - l.Data[i][c]; diff > 1e-5 || diff < -1e-5 {
				t.Fatalf("cell %d channel %d = %v, want %v", i, c, got.Data[i][c], l.Data[i][c])
			}
		}
	}
}

func TestWriteSlicePreviewProducesReadableFile(t *testing.T) {
	params := transform.DefaultParams()
	l, err := bakeLut(params, 5)
	if err != nil {
		t.Fatalf("bakeLut: %v", err)
	}

	path := filepath.Join(t.TempDir(), "preview.png")
	if err := writeSlicePreview(l, 32, path); err != nil {
		t.Fatalf("writeSlicePreview: %v", err)
	}
}

func TestApplyLutIdentityParamsIsNoOp(t *testing.T) {
	params := transform.DefaultParams()
	// Hold input, working, and output in the same linear space so the
	// identity grade round-trips numerically; the default color
	// management otherwise gamut-converts into ACEScg and gamma-encodes
	// the output, which is deliberately not a no-op.
	params.ColorManagement = transform.ColorManagement{
		InputSpace:   colorspace.LinearSrgb,
		WorkingSpace: colorspace.LinearSrgb,
		OutputSpace:  colorspace.LinearSrgb,
	}
	l, err := bakeLut(params, 17)
	if err != nil {
		t.Fatalf("bakeLut: %v", err)
	}

	src := []float32{0.2, 0.4, 0.6, 1, 0.9, 0.1, 0.5, 1}
	got := applyLut(l, src, 2, 1)

	for i := range src {
		if diff := got[i] - src[i]; diff > 1e-3 || diff < -1e-3 {
			t.Fatalf("index %d = %v, want ~%v (identity grade)", i, got[i], src[i])
		}
	}
}
