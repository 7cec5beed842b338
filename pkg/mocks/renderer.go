package mocks

import (
	"image"
	"sync"

	"github.com/user/patterncard/pkg/geometry"
	"github.com/user/patterncard/pkg/ports"
)

// FrameRenderer is a mock implementation of ports.FrameRenderer.
type FrameRenderer struct {
	RenderFunc func(data []int, cfg geometry.Config, rotationDeg float64, sizePx int, theme ports.Theme) (image.Image, error)

	mu          sync.Mutex
	RenderCalls []RenderCall
}

// RenderCall records a call to Render.
type RenderCall struct {
	Data        []int
	RotationDeg float64
	SizePx      int
	Theme       ports.Theme
}

func (m *FrameRenderer) Render(data []int, cfg geometry.Config, rotationDeg float64, sizePx int, theme ports.Theme) (image.Image, error) {
	m.mu.Lock()
	m.RenderCalls = append(m.RenderCalls, RenderCall{
		Data:        data,
		RotationDeg: rotationDeg,
		SizePx:      sizePx,
		Theme:       theme,
	})
	m.mu.Unlock()
	if m.RenderFunc != nil {
		return m.RenderFunc(data, cfg, rotationDeg, sizePx, theme)
	}
	return image.NewRGBA(image.Rect(0, 0, sizePx, sizePx)), nil
}

var _ ports.FrameRenderer = (*FrameRenderer)(nil)
