// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveScenePlanJSON does nothing.
func (s *Sink) SaveScenePlanJSON(data []byte) error {
	return nil
}

// SaveFrame does nothing.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	return nil
}

// SaveToken does nothing.
func (s *Sink) SaveToken(tok string) error {
	return nil
}
