package pipeline

import (
	"github.com/user/patterncard/pkg/pattern"
	"github.com/user/patterncard/pkg/ports"
)

// =============================================================================
// Timing constants
// =============================================================================

// FPS is the fixed output frame rate.
const FPS = 30

// RotationPerFrame is the per-frame rotation step in degrees: one full
// revolution every 24 seconds of output. The pipeline applies it with a
// negative sign; the renderer runs its background layer at half rate.
const RotationPerFrame = 360.0 / (24.0 * FPS)

// =============================================================================
// Scene Stage Types
// =============================================================================

// SceneKind discriminates real card scenes from the synthetic boundary
// scenes.
type SceneKind string

const (
	SceneIntro SceneKind = "intro"
	SceneItem  SceneKind = "item"
	SceneOutro SceneKind = "outro"
)

// Scene is one held rendering in the output video: a card shown for one
// playback interval, or a synthetic intro/outro title card.
type Scene struct {
	Kind  SceneKind
	Title string        // caption for intro/outro scenes
	Item  *pattern.Item // nil unless Kind == SceneItem
}

// ScenesInput contains parameters for scene plan expansion.
type ScenesInput struct {
	Collection *pattern.Collection
	LoopCount  int    // how many times the full item list repeats
	IntroTitle string // empty selects a default
	OutroTitle string
}

// ScenesResult is the ordered scene plan plus the per-scene hold duration.
type ScenesResult struct {
	Scenes          []Scene
	SceneDurationMs int
}

// =============================================================================
// Assemble Stage Types
// =============================================================================

// ProgressFunc receives a monotonically increasing completion percentage in
// [0, 100]. May be nil.
type ProgressFunc func(percent float64)

// AssembleInput contains parameters for video assembly.
type AssembleInput struct {
	Scenes          []Scene
	SceneDurationMs int
	PixelSize       int // square output edge in pixels
	Theme           ports.Theme
	Bitrate         int // kbps
	Quality         int // CRF 0-63
	Progress        ProgressFunc
}

// DefaultAssembleInput returns AssembleInput with default values.
func DefaultAssembleInput() AssembleInput {
	return AssembleInput{
		PixelSize: 1000,
		Theme:     ports.ThemeDark,
		Bitrate:   4000,
		Quality:   25,
	}
}

// AssembleResult contains the finalized video.
type AssembleResult struct {
	VideoData  []byte
	FrameCount int
	DurationMs int
	FileSize   int64
}
