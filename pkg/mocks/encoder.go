package mocks

import (
	"image"

	"github.com/user/patterncard/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	BeginFunc       func(width, height int, fps float64, opts ports.EncoderOptions) error
	EncodeFrameFunc func(img image.Image, timestampMs int) error
	EndFunc         func() ([]byte, error)

	// Recorded calls for verification
	BeginCalled      bool
	BeginWidth       int
	BeginHeight      int
	EncodeFrameCalls []EncodeFrameCall
	EndCalled        bool
	AbortCalled      bool
}

// EncodeFrameCall records a call to EncodeFrame.
type EncodeFrameCall struct {
	TimestampMs int
}

func (m *VideoEncoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	m.BeginCalled = true
	m.BeginWidth = width
	m.BeginHeight = height
	if m.BeginFunc != nil {
		return m.BeginFunc(width, height, fps, opts)
	}
	return nil
}

func (m *VideoEncoder) EncodeFrame(img image.Image, timestampMs int) error {
	m.EncodeFrameCalls = append(m.EncodeFrameCalls, EncodeFrameCall{TimestampMs: timestampMs})
	if m.EncodeFrameFunc != nil {
		return m.EncodeFrameFunc(img, timestampMs)
	}
	return nil
}

func (m *VideoEncoder) End() ([]byte, error) {
	m.EndCalled = true
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	// Return minimal MP4 ftyp header
	return []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}, nil
}

func (m *VideoEncoder) Abort() {
	m.AbortCalled = true
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)
