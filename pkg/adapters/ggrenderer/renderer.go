// Package ggrenderer implements the frame renderer using the gg library.
package ggrenderer

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/user/patterncard/pkg/geometry"
	"github.com/user/patterncard/pkg/ports"
)

// Renderer implements ports.FrameRenderer. It holds no state: every frame is
// a pure function of the call arguments.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render rasterizes one card into a square frame. The hull layer turns at
// half the petal layer's rate, which gives the exported animation its
// counter-rotating depth.
func (r *Renderer) Render(data []int, cfg geometry.Config, rotationDeg float64, sizePx int, theme ports.Theme) (image.Image, error) {
	dc := gg.NewContext(sizePx, sizePx)

	bg := backgroundValue(theme)
	dc.SetRGB(bg, bg, bg)
	dc.Clear()

	unit := float64(sizePx) * cfg.CanvasScale
	cx := float64(sizePx) / 2
	cy := float64(sizePx) / 2

	if cfg.ShowFrame {
		drawFrame(dc, cfg, sizePx)
	}
	if cfg.ShowGuides {
		drawGuides(dc, cfg, cx, cy, unit, theme)
	}

	if cfg.ShowHull {
		dc.Push()
		dc.RotateAbout(gg.Radians(rotationDeg/2+cfg.HullRotation), cx, cy)
		drawHull(dc, cfg, cx, cy, unit)
		dc.Pop()
	}

	dc.Push()
	dc.RotateAbout(gg.Radians(rotationDeg), cx, cy)
	drawPattern(dc, data, cfg, cx, cy, unit)
	dc.Pop()

	return dc.Image(), nil
}

func backgroundValue(theme ports.Theme) float64 {
	if theme == ports.ThemeLight {
		return 0.97
	}
	return 0.07
}

// drawFrame draws the card border: a rounded rectangle inset from the
// canvas edge.
func drawFrame(dc *gg.Context, cfg geometry.Config, sizePx int) {
	s := float64(sizePx)
	margin := s * cfg.FrameMargin
	inset := s * cfg.FrameInset
	x := margin + inset
	w := s - 2*(margin+inset)
	radius := s * cfg.CardCorner

	t := cfg.FrameTone
	dc.SetRGBA(t, t, t, 0.9)
	dc.SetLineWidth(cfg.FrameWidth)
	dc.DrawRoundedRectangle(x, x, w, w, radius)
	dc.Stroke()
}

// drawGuides draws faint construction geometry for the editing view.
func drawGuides(dc *gg.Context, cfg geometry.Config, cx, cy, unit float64, theme ports.Theme) {
	v := 0.5
	if theme == ports.ThemeLight {
		v = 0.75
	}
	dc.SetRGBA(v, v, v, 0.25)
	dc.SetLineWidth(1)

	for ring := 1; ring <= cfg.RingCount; ring++ {
		dc.DrawCircle(cx, cy, ringRadius(cfg, ring)*unit)
		dc.Stroke()
	}
	for i := 0; i < cfg.LobeCount; i++ {
		a := 2 * math.Pi * float64(i) / float64(cfg.LobeCount)
		dc.DrawLine(cx, cy, cx+unit*0.5*math.Cos(a), cy+unit*0.5*math.Sin(a))
		dc.Stroke()
	}
}

// drawHull draws the outer hull shape.
func drawHull(dc *gg.Context, cfg geometry.Config, cx, cy, unit float64) {
	radius := cfg.HullRadius * unit

	switch cfg.HullType {
	case geometry.HullCircle:
		dc.DrawCircle(cx, cy, radius)
	case geometry.HullStar:
		hullStarPath(dc, cfg, cx, cy, radius)
	default:
		hullPolygonPath(dc, cfg, cx, cy, radius)
	}

	sr, sg, sb := hsl(cfg.HuePhase, cfg.Saturation*0.5, cfg.Lightness)
	dc.SetRGBA(sr, sg, sb, cfg.StrokeOpacity)
	applyStrokeStyle(dc, cfg)
	dc.SetLineWidth(cfg.StrokeWidth)
	dc.Stroke()
}

func hullPolygonPath(dc *gg.Context, cfg geometry.Config, cx, cy, radius float64) {
	n := cfg.HullSides
	if n < 3 {
		n = 3
	}
	skew := 1 - cfg.HullSkew*0.5
	twist := gg.Radians(cfg.HullTwist)

	// Smoothing interpolates each vertex toward its circumscribed circle
	// position, collapsing the polygon into a circle at 1.
	for i := 0; i <= n; i++ {
		a := 2*math.Pi*float64(i)/float64(n) + twist*float64(i)/float64(n)
		r := radius * (1 - cfg.HullSmoothing*0.3*math.Abs(math.Sin(a*float64(n)/2)))
		x := cx + r*skew*math.Cos(a)
		y := cy + r*math.Sin(a)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

func hullStarPath(dc *gg.Context, cfg geometry.Config, cx, cy, radius float64) {
	n := cfg.HullSides
	if n < 3 {
		n = 3
	}
	inner := radius * cfg.HullDepth * (1 - 0.4*cfg.HullPointiness)
	twist := gg.Radians(cfg.HullTwist)

	for i := 0; i < 2*n; i++ {
		a := math.Pi*float64(i)/float64(n) + twist
		r := radius
		if i%2 == 1 {
			r = inner
		}
		x := cx + r*math.Cos(a)
		y := cy + r*math.Sin(a)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

// drawPattern draws the inner petal layers. The digit sequence modulates
// petal size and hue, so two cards with the same config but different data
// render visibly differently.
func drawPattern(dc *gg.Context, data []int, cfg geometry.Config, cx, cy, unit float64) {
	applyStrokeStyle(dc, cfg)

	for ring := 1; ring <= cfg.RingCount; ring++ {
		rr := ringRadius(cfg, ring) * unit
		spiral := gg.Radians(cfg.SpiralFactor * 30 * float64(ring-1))

		for i := 0; i < cfg.LobeCount; i++ {
			digit := digitAt(data, (ring-1)*cfg.LobeCount+i)
			mod := 0.4 + 0.6*float64(digit)/9

			a := 2*math.Pi*float64(i)/float64(cfg.LobeCount) + spiral
			if cfg.MirrorPattern && i%2 == 1 {
				a = -a
			}

			length := cfg.PetalLength * unit * mod * cfg.SeedScale
			width := cfg.PetalWidth * unit * (1 + cfg.PetalOverlap) * mod

			dc.Push()
			dc.RotateAbout(a, cx, cy)
			petalPath(dc, cfg, cx+rr, cy, length, width)
			dc.Pop()

			hue := math.Mod(cfg.HuePhase+cfg.HueSpread*float64(digit)/9, 360)
			fillPetal(dc, cfg, hue)
		}
	}

	// Core disc anchors the composition.
	if cfg.CoreRadius > 0 {
		dc.DrawCircle(cx, cy, cfg.CoreRadius*unit)
		fillPetal(dc, cfg, cfg.HuePhase)
	}
}

// petalPath builds one petal path starting at (x, y) pointing outward along
// +X. The three lobe families differ in silhouette only.
func petalPath(dc *gg.Context, cfg geometry.Config, x, y, length, width float64) {
	curve := cfg.PetalCurve

	switch cfg.LobeType {
	case geometry.LobeDharma:
		// Spoke with a round tip.
		dc.MoveTo(x, y)
		dc.LineTo(x+length*0.8, y)
		dc.DrawCircle(x+length*0.8, y, width/2)
	case geometry.LobeLotus:
		// Pointed leaf via two mirrored quadratics.
		dc.MoveTo(x, y)
		dc.QuadraticTo(x+length*curve, y-width/2, x+length, y)
		dc.QuadraticTo(x+length*curve, y+width/2, x, y)
		dc.ClosePath()
	default:
		// Sunflower: rounded seed ellipse.
		dc.Push()
		dc.Translate(x+length/2, y)
		dc.Scale(length/2, width/2*(0.5+curve))
		dc.DrawCircle(0, 0, 1)
		dc.Pop()
	}
}

func fillPetal(dc *gg.Context, cfg geometry.Config, hue float64) {
	fr, fg_, fb := hsl(hue, cfg.Saturation, cfg.Lightness)
	if cfg.BlendInk {
		fr, fg_, fb = fr*0.3, fg_*0.3, fb*0.3
	}
	dc.SetRGBA(fr, fg_, fb, cfg.FillOpacity)
	dc.FillPreserve()

	sr, sg, sb := hsl(hue, cfg.Saturation, cfg.Lightness*0.7)
	dc.SetRGBA(sr, sg, sb, cfg.StrokeOpacity)
	dc.SetLineWidth(cfg.StrokeWidth)
	dc.Stroke()
}

func applyStrokeStyle(dc *gg.Context, cfg geometry.Config) {
	switch cfg.StrokeStyle {
	case geometry.StrokeDashed:
		dc.SetDash(cfg.StrokeWidth*4, cfg.StrokeWidth*3)
	case geometry.StrokeDotted:
		dc.SetDash(cfg.StrokeWidth, cfg.StrokeWidth*2)
	default:
		dc.SetDash()
	}
}

func ringRadius(cfg geometry.Config, ring int) float64 {
	return cfg.CoreRadius + cfg.RingSpacing*float64(ring)
}

func digitAt(data []int, i int) int {
	if len(data) == 0 {
		return 0
	}
	return data[i%len(data)]
}

// Ensure Renderer implements ports.FrameRenderer
var _ ports.FrameRenderer = (*Renderer)(nil)
