// Package orchestrator coordinates the export pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/user/patterncard/pkg/pattern"
	"github.com/user/patterncard/pkg/pipeline"
	"github.com/user/patterncard/pkg/ports"
	"github.com/user/patterncard/pkg/token"
)

// Config contains all configuration for a video export.
type Config struct {
	// Output
	OutputPath string

	// Scenes
	LoopCount  int
	IntroTitle string
	OutroTitle string

	// Rendering
	PixelSize int
	Theme     ports.Theme

	// Encoding
	Bitrate int // kbps
	Quality int // CRF 0-63

	// Progress receives completion percentages. May be nil.
	Progress pipeline.ProgressFunc
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LoopCount: 1,
		PixelSize: 1000,
		Theme:     ports.ThemeDark,
		Bitrate:   4000,
		Quality:   25,
	}
}

// Orchestrator coordinates the execution of the export pipeline.
type Orchestrator struct {
	scenesStage   pipeline.Stage[pipeline.ScenesInput, pipeline.ScenesResult]
	assembleStage pipeline.Stage[pipeline.AssembleInput, pipeline.AssembleResult]
	fs            ports.FileSystem
	sink          ports.DebugSink
	logger        ports.Logger
}

// New creates a new Orchestrator.
func New(
	scenesStage pipeline.Stage[pipeline.ScenesInput, pipeline.ScenesResult],
	assembleStage pipeline.Stage[pipeline.AssembleInput, pipeline.AssembleResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		scenesStage:   scenesStage,
		assembleStage: assembleStage,
		fs:            fs,
		sink:          sink,
		logger:        logger,
	}
}

// Run exports the collection as a video file. Only expected failures come
// back typed (pipeline.ErrNoContent, pipeline.ErrUnsupportedPlatform,
// pipeline.ErrCancelled, *pipeline.EncodingError); the output file is
// written only after successful finalization.
func (o *Orchestrator) Run(ctx context.Context, collection *pattern.Collection, config Config) (RunResult, error) {
	o.logger.Info(l10n.T("Starting export"))

	// 1. Scene plan
	scenesInput := pipeline.ScenesInput{
		Collection: collection,
		LoopCount:  config.LoopCount,
		IntroTitle: config.IntroTitle,
		OutroTitle: config.OutroTitle,
	}
	plan, err := o.scenesStage.Execute(ctx, scenesInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to build scene plan: %s", err))
		return RunResult{}, fmt.Errorf("scenes stage: %w", err)
	}
	o.logger.Info(l10n.F("Scene plan ready: %d scenes at %d ms each", len(plan.Scenes), plan.SceneDurationMs))

	// Save debug output: scene plan plus the share token of the exported
	// state, so a debug directory is enough to reproduce the video.
	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(plan, "", "  "); err == nil {
			o.sink.SaveScenePlanJSON(data)
		}
		if active := collection.Active(); active != nil {
			if tok, err := token.Encode(active.Config, collection.Items, collection.TimingMs); err == nil {
				o.sink.SaveToken(tok)
			}
		}
	}

	// 2. Assemble video
	assembleInput := pipeline.AssembleInput{
		Scenes:          plan.Scenes,
		SceneDurationMs: plan.SceneDurationMs,
		PixelSize:       config.PixelSize,
		Theme:           config.Theme,
		Bitrate:         config.Bitrate,
		Quality:         config.Quality,
		Progress:        config.Progress,
	}
	assembled, err := o.assembleStage.Execute(ctx, assembleInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to assemble video: %s", err))
		return RunResult{}, fmt.Errorf("assemble stage: %w", err)
	}
	o.logger.Info(l10n.F("Video assembled: %d frames, %d bytes", assembled.FrameCount, len(assembled.VideoData)))

	// 3. Write output file
	if err := o.fs.WriteFile(config.OutputPath, assembled.VideoData); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return RunResult{}, fmt.Errorf("write output: %w", err)
	}

	o.logger.Info(l10n.T("Export completed successfully"))

	return RunResult{
		SceneCount:    len(plan.Scenes),
		FrameCount:    assembled.FrameCount,
		DurationMs:    assembled.DurationMs,
		VideoFileSize: assembled.FileSize,
		PixelSize:     config.PixelSize,
		OutputPath:    config.OutputPath,
	}, nil
}

// RunResult contains the results of an export for summary output.
type RunResult struct {
	SceneCount    int
	FrameCount    int
	DurationMs    int
	VideoFileSize int64
	PixelSize     int
	OutputPath    string
}
