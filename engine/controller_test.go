package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/crispen/gradingcore/gradeimage"
)

func drainNotifications(c *Controller) []Notification {
	var out []Notification
	for {
		select {
		case n := <-c.Notifications():
			out = append(out, n)
		default:
			return out
		}
	}
}

func TestNewPublishesInitialize(t *testing.T) {
	c := New()
	notes := drainNotifications(c)

	if len(notes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notes))
	}
	if _, ok := notes[0].(Initialize); !ok {
		t.Errorf("expected Initialize, got %T", notes[0])
	}
}

func TestSetParamsMarksDirtyAndPublishesUpdate(t *testing.T) {
	c := New()
	drainNotifications(c)

	p := *c.params
	p.Contrast = 1.5
	c.Commands() <- SetParams{Params: p}
	c.Drain()

	if !c.paramsDirty.Load() {
		t.Error("expected paramsDirty to be set after SetParams")
	}

	notes := drainNotifications(c)
	found := false
	for _, n := range notes {
		if u, ok := n.(ParamsUpdated); ok && u.Params.Contrast == 1.5 {
			found = true
		}
	}
	if !found {
		t.Error("expected a ParamsUpdated notification with contrast 1.5")
	}
}

func TestResetGradePreservesColorManagement(t *testing.T) {
	c := New()
	drainNotifications(c)

	p := *c.params
	p.ColorManagement.WorkingSpace = p.ColorManagement.WorkingSpace + 1
	p.Contrast = 2.0
	c.Commands() <- SetParams{Params: p}
	c.Drain()
	wantSpace := c.params.ColorManagement.WorkingSpace

	c.Commands() <- ResetGrade{}
	c.Drain()

	if c.params.ColorManagement.WorkingSpace != wantSpace {
		t.Errorf("ColorManagement.WorkingSpace = %v, want %v (preserved across reset)", c.params.ColorManagement.WorkingSpace, wantSpace)
	}
	if c.params.Contrast != 1 {
		t.Errorf("Contrast = %v, want 1 (identity after reset)", c.params.Contrast)
	}
}

func TestLoadImageWithoutLoaderPublishesError(t *testing.T) {
	c := New()
	drainNotifications(c)

	c.Commands() <- LoadImage{Path: "nonexistent.png"}
	c.Drain()

	notes := drainNotifications(c)
	if len(notes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notes))
	}
	if _, ok := notes[0].(Error); !ok {
		t.Errorf("expected Error, got %T", notes[0])
	}
}

func TestLoadImageWithLoaderRaisesSourceDirty(t *testing.T) {
	loader := func(path string) (*gradeimage.Image, int, error) {
		return gradeimage.New(4, 4), 8, nil
	}
	c := New(WithImageLoader(loader))
	drainNotifications(c)

	c.Commands() <- LoadImage{Path: "fixture.png"}
	c.Drain()

	if !c.sourceDirty.Load() {
		t.Error("expected sourceDirty after successful LoadImage")
	}

	notes := drainNotifications(c)
	found := false
	for _, n := range notes {
		if il, ok := n.(ImageLoaded); ok && il.Width == 4 && il.Height == 4 {
			found = true
		}
	}
	if !found {
		t.Error("expected an ImageLoaded notification")
	}
}

func TestLoadImageErrorDoesNotMutateState(t *testing.T) {
	wantErr := errors.New("boom")
	loader := func(path string) (*gradeimage.Image, int, error) {
		return nil, 0, wantErr
	}
	c := New(WithImageLoader(loader))
	drainNotifications(c)
	c.sourceDirty.Store(false)

	c.Commands() <- LoadImage{Path: "bad.png"}
	c.Drain()

	if c.sourceDirty.Load() {
		t.Error("sourceDirty should not be set on load failure")
	}
	if c.source != nil {
		t.Error("source should remain nil on load failure")
	}
}

func TestTickBakesAppliesAndPublishesScopeData(t *testing.T) {
	loader := func(path string) (*gradeimage.Image, int, error) {
		img := gradeimage.New(4, 4)
		for i := 0; i < len(img.Pixels); i += 4 {
			img.Pixels[i] = 0.5
			img.Pixels[i+1] = 0.5
			img.Pixels[i+2] = 0.5
			img.Pixels[i+3] = 1
		}
		return img, 8, nil
	}
	c := New(WithImageLoader(loader), WithLutSize(9))
	drainNotifications(c)

	c.Commands() <- LoadImage{Path: "gray.png"}
	c.Tick(time.Now())

	if c.graded == nil {
		t.Fatal("expected graded image to be populated after Tick")
	}
	if c.graded.Width != 4 || c.graded.Height != 4 {
		t.Errorf("graded dims = %dx%d, want 4x4", c.graded.Width, c.graded.Height)
	}

	notes := drainNotifications(c)
	found := false
	for _, n := range notes {
		if sd, ok := n.(ScopeData); ok && sd.Results.Histogram != nil {
			found = true
		}
	}
	if !found {
		t.Error("expected a ScopeData notification with a histogram after Tick")
	}
}

func TestToggleScopeDoesNotDirtyParams(t *testing.T) {
	c := New()
	drainNotifications(c)
	c.paramsDirty.Store(false)

	c.Commands() <- ToggleScope{Kind: ScopeParade, Visible: true}
	c.Drain()

	if c.paramsDirty.Load() {
		t.Error("ToggleScope should not mark paramsDirty")
	}
	if !c.activeScopes[ScopeParade] {
		t.Error("expected ScopeParade to be enabled after ToggleScope")
	}
}

func TestTickAppliesMidtoneDetailWhenNonZero(t *testing.T) {
	newEdgeLoader := func() ImageLoader {
		return func(path string) (*gradeimage.Image, int, error) {
			img := gradeimage.New(6, 6)
			for x := 0; x < 6; x++ {
				for y := 0; y < 6; y++ {
					v := float32(0.2)
					if x >= 3 {
						v = 0.8
					}
					img.Set(x, y, [3]float32{v, v, v})
				}
			}
			return img, 8, nil
		}
	}

	baseline := New(WithImageLoader(newEdgeLoader()), WithLutSize(9))
	drainNotifications(baseline)
	baseline.Commands() <- LoadImage{Path: "edge.png"}
	baseline.Tick(time.Now())
	basePixel := baseline.graded.At(2, 0)

	sharpened := New(WithImageLoader(newEdgeLoader()), WithLutSize(9))
	drainNotifications(sharpened)
	p := *sharpened.params
	p.MidtoneDetail = 1.0
	sharpened.Commands() <- SetParams{Params: p}
	sharpened.Commands() <- LoadImage{Path: "edge.png"}
	sharpened.Tick(time.Now())
	sharpenedPixel := sharpened.graded.At(2, 0)

	if sharpenedPixel[0] >= basePixel[0] {
		t.Errorf("expected midtone-detail to dip the pixel left of the edge below the no-detail baseline: got %v, baseline %v", sharpenedPixel[0], basePixel[0])
	}
}

func TestCloseStopsTick(t *testing.T) {
	c := New()
	drainNotifications(c)
	c.Close()

	c.paramsDirty.Store(true)
	c.Tick(time.Now())

	if !c.paramsDirty.Load() {
		t.Error("Tick should be a no-op after Close")
	}
}
