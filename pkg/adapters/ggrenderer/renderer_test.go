package ggrenderer

import (
	"image"
	"testing"

	"github.com/user/patterncard/pkg/geometry"
	"github.com/user/patterncard/pkg/ports"
)

func TestRenderDimensions(t *testing.T) {
	r := New()

	img, err := r.Render([]int{1, 2, 3, 4}, geometry.Baseline(), 0, 128, ports.ThemeDark)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 128 || img.Bounds().Dy() != 128 {
		t.Errorf("expected 128x128 frame, got %v", img.Bounds())
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := New()
	data := []int{3, 1, 4, 1, 5, 9, 2, 6}

	a, err := r.Render(data, geometry.Baseline(), 12.5, 64, ports.ThemeDark)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := r.Render(data, geometry.Baseline(), 12.5, 64, ports.ThemeDark)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !samePixels(a, b) {
		t.Error("expected identical pixels for identical inputs")
	}
}

func TestRenderRotationChangesOutput(t *testing.T) {
	r := New()
	data := []int{3, 1, 4, 1, 5, 9, 2, 6}

	a, _ := r.Render(data, geometry.Baseline(), 0, 64, ports.ThemeDark)
	b, _ := r.Render(data, geometry.Baseline(), 45, 64, ports.ThemeDark)

	if samePixels(a, b) {
		t.Error("expected rotation to change the output")
	}
}

func TestRenderDataChangesOutput(t *testing.T) {
	r := New()

	a, _ := r.Render([]int{0, 0, 0, 0}, geometry.Baseline(), 0, 64, ports.ThemeDark)
	b, _ := r.Render([]int{9, 9, 9, 9}, geometry.Baseline(), 0, 64, ports.ThemeDark)

	if samePixels(a, b) {
		t.Error("expected sequence digits to change the output")
	}
}

func TestRenderThemes(t *testing.T) {
	r := New()
	cfg := geometry.Baseline()

	dark, _ := r.Render([]int{1}, cfg, 0, 32, ports.ThemeDark)
	light, _ := r.Render([]int{1}, cfg, 0, 32, ports.ThemeLight)

	// Corner pixel sits outside all geometry, so it is pure background.
	dr, dg, db, _ := dark.At(0, 0).RGBA()
	lr, lg, lb, _ := light.At(0, 0).RGBA()
	if dr+dg+db >= lr+lg+lb {
		t.Error("expected dark corner to be darker than light corner")
	}
}

func TestRenderAllVariants(t *testing.T) {
	r := New()
	data := []int{5, 5, 5, 5, 5, 5, 5, 5}

	for _, hull := range []geometry.HullType{geometry.HullCircle, geometry.HullPolygon, geometry.HullStar} {
		for _, lobe := range []geometry.LobeType{geometry.LobeSunflower, geometry.LobeDharma, geometry.LobeLotus} {
			for _, stroke := range []geometry.StrokeStyle{geometry.StrokeSolid, geometry.StrokeDashed, geometry.StrokeDotted} {
				cfg := geometry.Baseline()
				cfg.HullType = hull
				cfg.LobeType = lobe
				cfg.StrokeStyle = stroke
				cfg.MirrorPattern = true
				cfg.SpiralFactor = 0.2

				if _, err := r.Render(data, cfg, 10, 48, ports.ThemeDark); err != nil {
					t.Errorf("render failed for %s/%s/%s: %v", hull, lobe, stroke, err)
				}
			}
		}
	}
}

func TestRenderEmptySequence(t *testing.T) {
	r := New()
	if _, err := r.Render(nil, geometry.Baseline(), 0, 32, ports.ThemeDark); err != nil {
		t.Fatalf("expected empty sequence to render, got %v", err)
	}
}

func TestResize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	dst := Resize(src, 25, 25)
	if dst.Bounds().Dx() != 25 || dst.Bounds().Dy() != 25 {
		t.Errorf("expected 25x25, got %v", dst.Bounds())
	}
}

func samePixels(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb || aa != ba {
				return false
			}
		}
	}
	return true
}
