package lut

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/crispen/gradingcore/colorspace"
	"github.com/crispen/gradingcore/internal/workpool"
	"github.com/crispen/gradingcore/transform"
)

func floatNear(a, b, epsilon float32) bool {
	return math.Abs(float64(a-b)) < float64(epsilon)
}

func linearParams() *transform.Params {
	p := transform.DefaultParams()
	p.ColorManagement = transform.ColorManagement{
		InputSpace:   colorspace.LinearSrgb,
		WorkingSpace: colorspace.LinearSrgb,
		OutputSpace:  colorspace.LinearSrgb,
	}
	return p
}

func TestBakeGridPointMatchesEvaluate(t *testing.T) {
	p := linearParams()
	p.Gain = [4]float32{2, 2, 2, 1}
	baked := p.Bake(256)

	l := Bake(p, baked, 9, nil)

	for k := 0; k < l.Size; k++ {
		for j := 0; j < l.Size; j++ {
			for i := 0; i < l.Size; i++ {
				denom := float32(l.Size - 1)
				rgb := [3]float32{float32(i) / denom, float32(j) / denom, float32(k) / denom}
				want := transform.Evaluate(rgb, p, baked)
				got := l.Data[cellIndex(l.Size, i, j, k)]
				for c := 0; c < 3; c++ {
					if !floatNear(got[c], want[c], 1e-4) {
						t.Fatalf("cell (%d,%d,%d) channel %d: got %v want %v", i, j, k, c, got[c], want[c])
					}
				}
			}
		}
	}
}

func TestBakeParallelMatchesSerial(t *testing.T) {
	p := linearParams()
	baked := p.Bake(256)

	pool := workpool.New(4)
	defer pool.Close()

	serial := Bake(p, baked, 17, nil)
	parallel := Bake(p, baked, 17, pool)

	for idx := range serial.Data {
		if serial.Data[idx] != parallel.Data[idx] {
			t.Fatalf("cell %d: serial %v != parallel %v", idx, serial.Data[idx], parallel.Data[idx])
		}
	}
}

func TestApplyAtGridPointsIsExact(t *testing.T) {
	p := linearParams()
	baked := p.Bake(256)
	l := Bake(p, baked, 17, nil)

	denom := float32(l.Size - 1)
	for i := 0; i < l.Size; i++ {
		v := float32(i) / denom
		rgb := [3]float32{v, v, v}
		want := transform.Evaluate(rgb, p, baked)
		got := l.Apply(rgb)
		for c := 0; c < 3; c++ {
			if !floatNear(got[c], want[c], 1e-4) {
				t.Errorf("grid point %v channel %d: got %v want %v", v, c, got[c], want[c])
			}
		}
	}
}

func TestApplySelfRoundTripWithinTolerance(t *testing.T) {
	p := linearParams()
	baked := p.Bake(256)
	l := Bake(p, baked, 65, nil)

	probe := Bake(p, baked, 33, nil)
	denom := float32(probe.Size - 1)

	var maxErr float32
	for k := 0; k < probe.Size; k++ {
		for j := 0; j < probe.Size; j++ {
			for i := 0; i < probe.Size; i++ {
				rgb := [3]float32{float32(i) / denom, float32(j) / denom, float32(k) / denom}
				want := l.Apply(rgb)
				got := probe.Data[cellIndex(probe.Size, i, j, k)]
				for c := 0; c < 3; c++ {
					d := want[c] - got[c]
					if d < 0 {
						d = -d
					}
					if d > maxErr {
						maxErr = d
					}
				}
			}
		}
	}

	if maxErr >= 2e-4 {
		t.Errorf("max trilinear probe error %v exceeds 2e-4", maxErr)
	}
}

func TestApplyClampsOutOfDomain(t *testing.T) {
	l := New(3)
	for i := range l.Data {
		l.Data[i] = [4]float32{0.5, 0.5, 0.5, 1}
	}
	l.Data[cellIndex(3, 2, 2, 2)] = [4]float32{1, 1, 1, 1}

	got := l.Apply([3]float32{5, 5, 5})
	want := l.Apply([3]float32{1, 1, 1})
	if got != want {
		t.Errorf("out-of-domain sample %v did not clamp to %v", got, want)
	}
}

func TestValidateRejectsWrongSize(t *testing.T) {
	l := New(33)
	if err := l.Validate(); err != nil {
		t.Errorf("valid 33^3 lut rejected: %v", err)
	}

	bad := &Lut3D{Size: 10, Data: make([][4]float32, 10*10*10)}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unsupported size 10")
	}
}

func TestCubeRoundTripIsByteIdentical(t *testing.T) {
	p := linearParams()
	p.Contrast = 1.2
	baked := p.Bake(256)
	original := Bake(p, baked, 17, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.cube")

	if err := WriteCube(path, original, "test lut"); err != nil {
		t.Fatalf("WriteCube: %v", err)
	}

	reloaded, err := ReadCube(path)
	if err != nil {
		t.Fatalf("ReadCube: %v", err)
	}

	if reloaded.Size != original.Size {
		t.Fatalf("size mismatch: got %d want %d", reloaded.Size, original.Size)
	}
	for i := range original.Data {
		for c := 0; c < 3; c++ {
			if !floatNear(reloaded.Data[i][c], original.Data[i][c], 1e-6) {
				t.Fatalf("cell %d channel %d: got %v want %v", i, c, reloaded.Data[i][c], original.Data[i][c])
			}
		}
	}
}

func TestReadCubeSkipsCommentsAndBlankLines(t *testing.T) {
	content := "# a comment\n\nDOMAIN_MIN 0 0 0\nDOMAIN_MAX 1 1 1\n# another\nLUT_3D_SIZE 2\n0 0 0\n1 0 0\n0 1 0\n1 1 0\n0 0 1\n1 0 1\n0 1 1\n1 1 1\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "commented.cube")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l, err := ReadCube(path)
	if err != nil {
		t.Fatalf("ReadCube: %v", err)
	}
	if l.Size != 2 {
		t.Fatalf("size = %d, want 2", l.Size)
	}
	if len(l.Data) != 8 {
		t.Fatalf("len(Data) = %d, want 8", len(l.Data))
	}
}

func TestReadCubeRejectsMissingSize(t *testing.T) {
	content := "DOMAIN_MIN 0 0 0\n0 0 0\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.cube")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := ReadCube(path); err == nil {
		t.Error("expected error for data before LUT_3D_SIZE")
	}
}
