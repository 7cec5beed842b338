package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results of an export.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveScenePlanJSON saves the expanded scene plan as JSON.
	SaveScenePlanJSON(data []byte) error

	// SaveFrame saves one rendered frame by global frame index.
	SaveFrame(index int, img image.Image) error

	// SaveToken saves the share token text for the exported collection.
	SaveToken(tok string) error
}
