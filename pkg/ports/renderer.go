package ports

import (
	"image"

	"github.com/user/patterncard/pkg/geometry"
)

// Theme is the two-valued display theme applied to rendered frames.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme parses a theme hint, defaulting to dark.
func ParseTheme(s string) Theme {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// FrameRenderer rasterizes one card into a square frame.
//
// Render must be a pure function of its arguments: same inputs, same pixels,
// no hidden animation state. The video pipeline relies on this to request
// frames in any order and still get deterministic output. The pattern is
// centered and aspect-preserved within the sizePx square; the background is
// filled per theme. The primary layer spins at rotationDeg, the background
// layer at half that rate.
type FrameRenderer interface {
	Render(data []int, cfg geometry.Config, rotationDeg float64, sizePx int, theme Theme) (image.Image, error)
}
