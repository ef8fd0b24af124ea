package gpupipeline

import (
	"testing"
	"unsafe"

	"github.com/crispen/gradingcore/transform"
)

// Must match the field layout documented in Uniforms's doc comment and in
// bake_lut.wgsl.
func TestUniformsLayoutMatchesShaderContract(t *testing.T) {
	var u Uniforms

	if got, want := unsafe.Sizeof(u), uintptr(112); got != want {
		t.Fatalf("sizeof(Uniforms) = %d, want %d (four vec4 + three f32x4 groups)", got, want)
	}

	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"Lift", unsafe.Offsetof(u.Lift), 0},
		{"Gamma", unsafe.Offsetof(u.Gamma), 16},
		{"Gain", unsafe.Offsetof(u.Gain), 32},
		{"Offset", unsafe.Offsetof(u.Offset), 48},
		{"Temperature", unsafe.Offsetof(u.Temperature), 64},
		{"Tint", unsafe.Offsetof(u.Tint), 68},
		{"Contrast", unsafe.Offsetof(u.Contrast), 72},
		{"Pivot", unsafe.Offsetof(u.Pivot), 76},
		{"Shadows", unsafe.Offsetof(u.Shadows), 80},
		{"Highlights", unsafe.Offsetof(u.Highlights), 84},
		{"Saturation", unsafe.Offsetof(u.Saturation), 88},
		{"HueDeg", unsafe.Offsetof(u.HueDeg), 92},
		{"LumaMix", unsafe.Offsetof(u.LumaMix), 96},
		{"InputSpace", unsafe.Offsetof(u.InputSpace), 100},
		{"WorkingSpace", unsafe.Offsetof(u.WorkingSpace), 104},
		{"OutputSpace", unsafe.Offsetof(u.OutputSpace), 108},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offsetof(Uniforms.%s) = %d, want %d", o.name, o.got, o.want)
		}
	}
}

func TestUniformsFromParamsRoundTripsScalars(t *testing.T) {
	p := transform.DefaultParams()
	p.Contrast = 1.2
	p.Hue = 30

	u := UniformsFromParams(p)

	if u.Contrast != 1.2 {
		t.Errorf("Contrast = %v, want 1.2", u.Contrast)
	}
	if u.HueDeg != 30 {
		t.Errorf("HueDeg = %v, want 30", u.HueDeg)
	}
	if u.WorkingSpace != uint32(p.ColorManagement.WorkingSpace) {
		t.Errorf("WorkingSpace = %v, want %v", u.WorkingSpace, p.ColorManagement.WorkingSpace)
	}
}
