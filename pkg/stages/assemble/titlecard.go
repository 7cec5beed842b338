package assemble

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/user/patterncard/pkg/ports"
)

// drawTitleCard renders an intro or outro frame directly, without going
// through the frame renderer. The built-in bitmap font is scaled up rather
// than loading a typeface from disk so the card renders identically on
// every machine.
func drawTitleCard(title string, rotation float64, sizePx int, theme ports.Theme) image.Image {
	dc := gg.NewContext(sizePx, sizePx)

	bg, fg := 0.08, 0.92
	if theme == ports.ThemeLight {
		bg, fg = 0.96, 0.12
	}
	dc.SetRGB(bg, bg, bg)
	dc.Clear()

	cx := float64(sizePx) / 2
	cy := float64(sizePx) / 2

	// Slowly turning ornament ring so boundary scenes visibly belong to the
	// same animation as the cards.
	dc.SetRGBA(fg, fg, fg, 0.35)
	dc.SetLineWidth(float64(sizePx) / 280)
	radius := float64(sizePx) * 0.3
	for i := 0; i < 12; i++ {
		a := gg.Radians(rotation + float64(i)*30)
		x := cx + radius*math.Cos(a)
		y := cy + radius*math.Sin(a)
		dc.DrawCircle(x, y, float64(sizePx)/60)
		dc.Stroke()
	}

	dc.SetRGB(fg, fg, fg)
	scale := float64(sizePx) / 160
	dc.Push()
	dc.Translate(cx, cy)
	dc.Scale(scale, scale)
	dc.DrawStringAnchored(title, 0, 0, 0.5, 0.5)
	dc.Pop()

	return dc.Image()
}
