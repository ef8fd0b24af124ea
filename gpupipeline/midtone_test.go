package gpupipeline

import (
	"testing"

	"github.com/crispen/gradingcore/gradeimage"
	"github.com/crispen/gradingcore/internal/workpool"
)

func gradientImage(w, h int) *gradeimage.Image {
	img := gradeimage.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float32(x) / float32(w-1)
			img.Set(x, y, [3]float32{v, v, v})
		}
	}
	return img
}

func TestApplyMidtoneDetailZeroStrengthIsNoOp(t *testing.T) {
	img := gradientImage(16, 16)
	before := append([]float32{}, img.Pixels...)

	ApplyMidtoneDetail(img, 0, nil)

	for i := range before {
		if img.Pixels[i] != before[i] {
			t.Fatalf("pixel %d changed with zero strength: %v -> %v", i, before[i], img.Pixels[i])
		}
	}
}

func TestApplyMidtoneDetailPreservesFlatRegion(t *testing.T) {
	img := gradeimage.New(8, 8)
	for i := 0; i < len(img.Pixels); i += 4 {
		img.Pixels[i] = 0.5
		img.Pixels[i+1] = 0.5
		img.Pixels[i+2] = 0.5
	}

	ApplyMidtoneDetail(img, 1.0, nil)

	for i := 0; i < len(img.Pixels); i += 4 {
		if diff := img.Pixels[i] - 0.5; diff > 1e-5 || diff < -1e-5 {
			t.Fatalf("flat region pixel %d drifted to %v, want 0.5 (blur of a constant is the constant)", i, img.Pixels[i])
		}
	}
}

func TestApplyMidtoneDetailParallelMatchesSerial(t *testing.T) {
	serialImg := gradientImage(40, 40)
	parallelImg := gradientImage(40, 40)

	pool := workpool.New(4)
	defer pool.Close()

	ApplyMidtoneDetail(serialImg, 0.8, nil)
	ApplyMidtoneDetail(parallelImg, 0.8, pool)

	for i := range serialImg.Pixels {
		if serialImg.Pixels[i] != parallelImg.Pixels[i] {
			t.Fatalf("pixel %d differs: %v vs %v", i, serialImg.Pixels[i], parallelImg.Pixels[i])
		}
	}
}

func TestApplyMidtoneDetailSharpensEdge(t *testing.T) {
	img := gradeimage.New(32, 1)
	for x := 0; x < 32; x++ {
		if x < 16 {
			img.Set(x, 0, [3]float32{0.2, 0.2, 0.2})
		} else {
			img.Set(x, 0, [3]float32{0.8, 0.8, 0.8})
		}
	}

	ApplyMidtoneDetail(img, 1.0, nil)

	// Immediately left of the edge, sharpening should push the value
	// below the original dark level (overshoot characteristic of
	// unsharp masking).
	leftOfEdge := img.At(15, 0)
	if leftOfEdge[0] >= 0.2 {
		t.Errorf("expected overshoot below 0.2 just left of the edge, got %v", leftOfEdge[0])
	}
}

func TestGaussianKernelSumsToOne(t *testing.T) {
	k := gaussianKernel(3.0, 8)
	if len(k) != 17 {
		t.Fatalf("len(kernel) = %d, want 17", len(k))
	}
	var sum float32
	for _, v := range k {
		sum += v
	}
	if diff := sum - 1.0; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("kernel sums to %v, want ~1.0", sum)
	}
}
