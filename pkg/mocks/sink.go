package mocks

import (
	"image"
	"sync"

	"github.com/user/patterncard/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	ScenePlanJSON []byte
	Frames        map[int]image.Image
	Token         string
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Frames:  make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveScenePlanJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScenePlanJSON = data
	return nil
}

func (m *DebugSink) SaveFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[index] = img
	return nil
}

func (m *DebugSink) SaveToken(tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Token = tok
	return nil
}

// FrameCount returns the number of saved frames (for test verification).
func (m *DebugSink) FrameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Frames)
}

var _ ports.DebugSink = (*DebugSink)(nil)
