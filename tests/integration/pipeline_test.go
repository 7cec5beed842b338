// Package integration contains integration tests for the patterncard pipeline.
package integration

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/patterncard/pkg/adapters/ggrenderer"
	"github.com/user/patterncard/pkg/adapters/logger"
	"github.com/user/patterncard/pkg/mocks"
	"github.com/user/patterncard/pkg/orchestrator"
	"github.com/user/patterncard/pkg/pattern"
	"github.com/user/patterncard/pkg/pipeline"
	"github.com/user/patterncard/pkg/ports"
	"github.com/user/patterncard/pkg/stages/assemble"
	"github.com/user/patterncard/pkg/stages/scenes"
	"github.com/user/patterncard/pkg/token"
)

func testCollection() *pattern.Collection {
	c := &pattern.Collection{TimingMs: 1500}
	first := c.Add("Alpha")
	first.Data = []int{3, 1, 4, 1, 5, 9, 2, 6}
	second := c.Add("Beta")
	second.Data = []int{2, 7, 1, 8, 2, 8, 1, 8}
	return c
}

// TestScenesToAssemble runs the scene planner into the assembler with the
// real renderer and a mock encoder.
func TestScenesToAssemble(t *testing.T) {
	log := logger.NewNoop()
	ctx := context.Background()

	plan, err := scenes.NewStage(log).Execute(ctx, pipeline.ScenesInput{
		Collection: testCollection(),
		LoopCount:  3,
	})
	require.NoError(t, err)

	// intro + 2 cards x 3 loops + outro
	require.Len(t, plan.Scenes, 8)
	assert.Equal(t, 1500, plan.SceneDurationMs)

	encoder := &mocks.VideoEncoder{}
	result, err := assemble.NewStage(ggrenderer.New(), encoder, mocks.NewDebugSink(false), log).
		Execute(ctx, pipeline.AssembleInput{
			Scenes:          plan.Scenes,
			SceneDurationMs: plan.SceneDurationMs,
			PixelSize:       64,
			Theme:           ports.ThemeDark,
			Bitrate:         1000,
			Quality:         35,
		})
	require.NoError(t, err)

	// 1500 ms at 30 fps is 45 frames per scene
	assert.Equal(t, 8*45, result.FrameCount)
	assert.True(t, encoder.BeginCalled)
	assert.True(t, encoder.EndCalled)
	assert.Equal(t, 64, encoder.BeginWidth)
	require.Len(t, encoder.EncodeFrameCalls, 8*45)

	// Timestamps must be strictly increasing across scene boundaries
	prev := -1
	for _, call := range encoder.EncodeFrameCalls {
		require.Greater(t, call.TimestampMs, prev)
		prev = call.TimestampMs
	}
}

// TestOrchestratorEndToEnd runs the full export through the orchestrator
// with in-memory adapters.
func TestOrchestratorEndToEnd(t *testing.T) {
	log := logger.NewNoop()
	fs := mocks.NewFileSystem()
	sink := mocks.NewDebugSink(true)
	encoder := &mocks.VideoEncoder{}

	orch := orchestrator.New(
		scenes.NewStage(log),
		assemble.NewStage(ggrenderer.New(), encoder, sink, log),
		fs,
		sink,
		log,
	)

	var percents []float64
	cfg := orchestrator.DefaultConfig()
	cfg.OutputPath = "/out/cards.mp4"
	cfg.PixelSize = 64
	cfg.Progress = func(p float64) {
		percents = append(percents, p)
	}

	collection := testCollection()
	result, err := orch.Run(context.Background(), collection, cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, result.SceneCount)
	assert.Equal(t, "/out/cards.mp4", result.OutputPath)

	data, ok := fs.GetFile("/out/cards.mp4")
	require.True(t, ok, "output file should be written")
	assert.NotEmpty(t, data)

	// Debug sink received the scene plan and a decodable token
	require.NotEmpty(t, sink.ScenePlanJSON)
	var plan pipeline.ScenesResult
	require.NoError(t, json.Unmarshal(sink.ScenePlanJSON, &plan))
	assert.Len(t, plan.Scenes, 4)

	require.NotEmpty(t, sink.Token)
	dec, err := token.Decode(strings.TrimSpace(sink.Token))
	require.NoError(t, err)
	assert.Len(t, dec.Items, 2)
	assert.Equal(t, 1500, dec.TimingMs)

	// Progress is monotonic and completes
	require.NotEmpty(t, percents)
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}
	assert.InDelta(t, 100, percents[len(percents)-1], 0.001)
}

// TestOrchestratorCancellation aborts the encoder when the context ends.
func TestOrchestratorCancellation(t *testing.T) {
	log := logger.NewNoop()
	fs := mocks.NewFileSystem()
	sink := mocks.NewDebugSink(false)
	encoder := &mocks.VideoEncoder{}

	orch := orchestrator.New(
		scenes.NewStage(log),
		assemble.NewStage(ggrenderer.New(), encoder, sink, log),
		fs,
		sink,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := orchestrator.DefaultConfig()
	cfg.OutputPath = "/out/cards.mp4"
	cfg.PixelSize = 64

	_, err := orch.Run(ctx, testCollection(), cfg)
	require.ErrorIs(t, err, pipeline.ErrCancelled)
	assert.True(t, encoder.AbortCalled)

	_, ok := fs.GetFile("/out/cards.mp4")
	assert.False(t, ok, "no output file after cancellation")
}
