// Package assemble implements the frame-by-frame video assembly stage.
package assemble

import (
	"context"
	"image"
	"math"

	"github.com/user/patterncard/pkg/pipeline"
	"github.com/user/patterncard/pkg/ports"
)

// Progress percentages reserved for work outside the frame loop.
const (
	setupPercent    = 10.0
	finalizePercent = 5.0
)

// Stage turns a scene plan into a finalized video buffer. Frames are
// rendered and submitted strictly in order because the container writer
// requires increasing timestamps; there is no concurrency here.
type Stage struct {
	renderer ports.FrameRenderer
	encoder  ports.VideoEncoder
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new assemble stage.
func NewStage(renderer ports.FrameRenderer, encoder ports.VideoEncoder, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		encoder:  encoder,
		sink:     sink,
		logger:   logger.WithComponent("assemble"),
	}
}

// Execute renders every sub-frame of every scene and feeds them to the
// encoder. Cancellation is polled before each scene: a cancelled context
// aborts the container write and surfaces no partial file.
func (s *Stage) Execute(ctx context.Context, input pipeline.AssembleInput) (pipeline.AssembleResult, error) {
	result := pipeline.AssembleResult{}

	if len(input.Scenes) == 0 {
		return result, pipeline.ErrNoContent
	}

	framesPerScene := FramesPerScene(input.SceneDurationMs)
	totalFrames := framesPerScene * len(input.Scenes)
	progress := newProgressTracker(input.Progress)

	progress.report(0)
	if err := s.encoder.Begin(input.PixelSize, input.PixelSize, pipeline.FPS, ports.EncoderOptions{
		Bitrate: input.Bitrate,
		Quality: input.Quality,
	}); err != nil {
		return result, &pipeline.EncodingError{Err: err}
	}
	progress.report(setupPercent)

	s.logger.Debug("Assembling %d scenes, %d frames per scene, %d total", len(input.Scenes), framesPerScene, totalFrames)

	// Global frame counter across the whole output. It never resets per
	// scene so the rotation animation is continuous from intro to outro.
	globalFrame := 0

	for _, scene := range input.Scenes {
		if ctx.Err() != nil {
			s.encoder.Abort()
			return result, pipeline.ErrCancelled
		}

		for sub := 0; sub < framesPerScene; sub++ {
			rotation := -pipeline.RotationPerFrame * float64(globalFrame)

			frame, err := s.renderFrame(scene, rotation, input.PixelSize, input.Theme)
			if err != nil {
				s.encoder.Abort()
				return result, &pipeline.EncodingError{Err: err}
			}

			timestampMs := int(math.Round(float64(globalFrame) * 1000.0 / pipeline.FPS))
			if err := s.encoder.EncodeFrame(frame, timestampMs); err != nil {
				s.encoder.Abort()
				return result, &pipeline.EncodingError{Err: err}
			}

			if s.sink.Enabled() && sub == 0 {
				s.sink.SaveFrame(globalFrame, frame)
			}

			globalFrame++
			progress.report(setupPercent + (100-setupPercent-finalizePercent)*float64(globalFrame)/float64(totalFrames))
		}
	}

	data, err := s.encoder.End()
	if err != nil {
		return result, &pipeline.EncodingError{Err: err}
	}
	progress.report(100)

	result.VideoData = data
	result.FrameCount = totalFrames
	result.DurationMs = int(math.Round(float64(totalFrames) * 1000.0 / pipeline.FPS))
	result.FileSize = int64(len(data))

	s.logger.Debug("Assembled %d frames, %d bytes", totalFrames, len(data))

	return result, nil
}

// renderFrame routes item scenes through the frame renderer and boundary
// scenes through the direct title-card path. The direct path guarantees the
// first and last frames of the file are never blank regardless of encoder
// start-up or flush behavior.
func (s *Stage) renderFrame(scene pipeline.Scene, rotation float64, sizePx int, theme ports.Theme) (image.Image, error) {
	if scene.Kind == pipeline.SceneItem {
		return s.renderer.Render(scene.Item.Data, scene.Item.Config, rotation, sizePx, theme)
	}
	return drawTitleCard(scene.Title, rotation, sizePx, theme), nil
}

// FramesPerScene returns the number of output frames one scene occupies at
// the fixed frame rate.
func FramesPerScene(sceneDurationMs int) int {
	n := int(math.Round(float64(sceneDurationMs) / 1000.0 * pipeline.FPS))
	if n < 1 {
		n = 1
	}
	return n
}

// progressTracker keeps reported progress monotonic.
type progressTracker struct {
	fn   pipeline.ProgressFunc
	last float64
}

func newProgressTracker(fn pipeline.ProgressFunc) *progressTracker {
	return &progressTracker{fn: fn, last: -1}
}

func (p *progressTracker) report(percent float64) {
	if p.fn == nil || percent <= p.last {
		return
	}
	p.last = percent
	p.fn(percent)
}
