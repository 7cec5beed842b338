package assemble

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/user/patterncard/pkg/adapters/logger"
	"github.com/user/patterncard/pkg/geometry"
	"github.com/user/patterncard/pkg/mocks"
	"github.com/user/patterncard/pkg/pattern"
	"github.com/user/patterncard/pkg/pipeline"
	"github.com/user/patterncard/pkg/ports"
)

func testScenes(cards int) []pipeline.Scene {
	scenes := []pipeline.Scene{{Kind: pipeline.SceneIntro, Title: "intro"}}
	for i := 0; i < cards; i++ {
		scenes = append(scenes, pipeline.Scene{
			Kind: pipeline.SceneItem,
			Item: &pattern.Item{
				ID:     i + 1,
				Name:   fmt.Sprintf("Card %d", i+1),
				Data:   []int{1, 2, 3, 4},
				Config: geometry.Baseline(),
			},
		})
	}
	return append(scenes, pipeline.Scene{Kind: pipeline.SceneOutro, Title: "outro"})
}

func newTestStage(encoder *mocks.VideoEncoder, sink ports.DebugSink) (*Stage, *mocks.FrameRenderer) {
	renderer := &mocks.FrameRenderer{}
	if sink == nil {
		sink = mocks.NewDebugSink(false)
	}
	return NewStage(renderer, encoder, sink, logger.NewNoop()), renderer
}

func TestStage_Execute(t *testing.T) {
	encoder := &mocks.VideoEncoder{}
	stage, renderer := newTestStage(encoder, nil)

	// 6 card scenes in 3 loops plus intro and outro, 1500 ms each
	scenes := testScenes(6)
	result, err := stage.Execute(context.Background(), pipeline.AssembleInput{
		Scenes:          scenes,
		SceneDurationMs: 1500,
		PixelSize:       100,
		Theme:           ports.ThemeDark,
		Bitrate:         1000,
		Quality:         30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1500 ms at 30 fps is 45 frames per scene, 8 scenes total
	if result.FrameCount != 360 {
		t.Errorf("expected 360 frames, got %d", result.FrameCount)
	}
	if result.DurationMs != 12000 {
		t.Errorf("expected duration 12000 ms, got %d", result.DurationMs)
	}
	if len(result.VideoData) == 0 {
		t.Error("expected video data")
	}

	if !encoder.BeginCalled || !encoder.EndCalled {
		t.Error("expected Begin and End to be called")
	}
	if encoder.BeginWidth != 100 || encoder.BeginHeight != 100 {
		t.Errorf("expected 100x100 frames, got %dx%d", encoder.BeginWidth, encoder.BeginHeight)
	}
	if len(encoder.EncodeFrameCalls) != 360 {
		t.Fatalf("expected 360 EncodeFrame calls, got %d", len(encoder.EncodeFrameCalls))
	}

	// Only item scenes go through the renderer; intro and outro use the
	// title-card path.
	if len(renderer.RenderCalls) != 6*45 {
		t.Errorf("expected 270 renderer calls, got %d", len(renderer.RenderCalls))
	}
}

func TestStage_Execute_TimestampsStrictlyIncrease(t *testing.T) {
	encoder := &mocks.VideoEncoder{}
	stage, _ := newTestStage(encoder, nil)

	_, err := stage.Execute(context.Background(), pipeline.AssembleInput{
		Scenes:          testScenes(2),
		SceneDurationMs: 100, // 3 frames per scene
		PixelSize:       32,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := -1
	for i, call := range encoder.EncodeFrameCalls {
		if call.TimestampMs <= prev {
			t.Fatalf("frame %d: timestamp %d not greater than %d", i, call.TimestampMs, prev)
		}
		prev = call.TimestampMs
	}

	// First frame at 0, second at 33 (1000/30 rounded)
	if encoder.EncodeFrameCalls[0].TimestampMs != 0 {
		t.Errorf("expected first timestamp 0, got %d", encoder.EncodeFrameCalls[0].TimestampMs)
	}
	if encoder.EncodeFrameCalls[1].TimestampMs != 33 {
		t.Errorf("expected second timestamp 33, got %d", encoder.EncodeFrameCalls[1].TimestampMs)
	}
}

func TestStage_Execute_RotationIsContinuous(t *testing.T) {
	encoder := &mocks.VideoEncoder{}
	stage, renderer := newTestStage(encoder, nil)

	// Two item scenes, no intro/outro, 2 frames per scene
	scenes := []pipeline.Scene{
		{Kind: pipeline.SceneItem, Item: &pattern.Item{Name: "A", Config: geometry.Baseline()}},
		{Kind: pipeline.SceneItem, Item: &pattern.Item{Name: "B", Config: geometry.Baseline()}},
	}
	_, err := stage.Execute(context.Background(), pipeline.AssembleInput{
		Scenes:          scenes,
		SceneDurationMs: 66,
		PixelSize:       32,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The frame counter never resets between scenes: rotation advances half
	// a degree per frame across the scene boundary.
	want := []float64{0, -0.5, -1.0, -1.5}
	if len(renderer.RenderCalls) != len(want) {
		t.Fatalf("expected %d render calls, got %d", len(want), len(renderer.RenderCalls))
	}
	for i, call := range renderer.RenderCalls {
		if call.RotationDeg != want[i] {
			t.Errorf("frame %d: expected rotation %v, got %v", i, want[i], call.RotationDeg)
		}
	}
}

func TestStage_Execute_Progress(t *testing.T) {
	encoder := &mocks.VideoEncoder{}
	stage, _ := newTestStage(encoder, nil)

	var percents []float64
	_, err := stage.Execute(context.Background(), pipeline.AssembleInput{
		Scenes:          testScenes(1),
		SceneDurationMs: 200,
		PixelSize:       32,
		Progress: func(p float64) {
			percents = append(percents, p)
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(percents) == 0 {
		t.Fatal("expected progress reports")
	}
	if percents[0] != 0 {
		t.Errorf("expected first report 0, got %v", percents[0])
	}
	if percents[len(percents)-1] != 100 {
		t.Errorf("expected final report 100, got %v", percents[len(percents)-1])
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] <= percents[i-1] {
			t.Fatalf("progress not strictly increasing at %d: %v", i, percents)
		}
	}
}

func TestStage_Execute_SavesFirstFramePerScene(t *testing.T) {
	encoder := &mocks.VideoEncoder{}
	sink := mocks.NewDebugSink(true)
	stage, _ := newTestStage(encoder, sink)

	_, err := stage.Execute(context.Background(), pipeline.AssembleInput{
		Scenes:          testScenes(2), // 4 scenes
		SceneDurationMs: 100,           // 3 frames per scene
		PixelSize:       32,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sink.FrameCount() != 4 {
		t.Errorf("expected 4 saved frames, got %d", sink.FrameCount())
	}
	for _, index := range []int{0, 3, 6, 9} {
		if _, ok := sink.Frames[index]; !ok {
			t.Errorf("expected frame %d to be saved", index)
		}
	}
}

func TestStage_Execute_Cancellation(t *testing.T) {
	encoder := &mocks.VideoEncoder{}
	stage, _ := newTestStage(encoder, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stage.Execute(ctx, pipeline.AssembleInput{
		Scenes:          testScenes(2),
		SceneDurationMs: 1000,
		PixelSize:       32,
	})
	if !errors.Is(err, pipeline.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if !encoder.AbortCalled {
		t.Error("expected Abort to be called")
	}
	if encoder.EndCalled {
		t.Error("expected End not to be called after cancellation")
	}
}

func TestStage_Execute_EncoderFailure(t *testing.T) {
	boom := errors.New("boom")

	t.Run("begin fails", func(t *testing.T) {
		encoder := &mocks.VideoEncoder{
			BeginFunc: func(int, int, float64, ports.EncoderOptions) error { return boom },
		}
		stage, _ := newTestStage(encoder, nil)

		_, err := stage.Execute(context.Background(), pipeline.AssembleInput{
			Scenes:          testScenes(1),
			SceneDurationMs: 100,
			PixelSize:       32,
		})
		var encErr *pipeline.EncodingError
		if !errors.As(err, &encErr) {
			t.Fatalf("expected EncodingError, got %v", err)
		}
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped cause, got %v", err)
		}
	})

	t.Run("frame fails", func(t *testing.T) {
		encoder := &mocks.VideoEncoder{
			EncodeFrameFunc: func(image.Image, int) error { return boom },
		}
		stage, _ := newTestStage(encoder, nil)

		_, err := stage.Execute(context.Background(), pipeline.AssembleInput{
			Scenes:          testScenes(1),
			SceneDurationMs: 100,
			PixelSize:       32,
		})
		var encErr *pipeline.EncodingError
		if !errors.As(err, &encErr) {
			t.Fatalf("expected EncodingError, got %v", err)
		}
		if !encoder.AbortCalled {
			t.Error("expected Abort after frame failure")
		}
	})

	t.Run("end fails", func(t *testing.T) {
		encoder := &mocks.VideoEncoder{
			EndFunc: func() ([]byte, error) { return nil, boom },
		}
		stage, _ := newTestStage(encoder, nil)

		_, err := stage.Execute(context.Background(), pipeline.AssembleInput{
			Scenes:          testScenes(1),
			SceneDurationMs: 100,
			PixelSize:       32,
		})
		var encErr *pipeline.EncodingError
		if !errors.As(err, &encErr) {
			t.Fatalf("expected EncodingError, got %v", err)
		}
	})
}

func TestStage_Execute_NoScenes(t *testing.T) {
	encoder := &mocks.VideoEncoder{}
	stage, _ := newTestStage(encoder, nil)

	_, err := stage.Execute(context.Background(), pipeline.AssembleInput{})
	if !errors.Is(err, pipeline.ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
	if encoder.BeginCalled {
		t.Error("expected encoder untouched for empty input")
	}
}

func TestFramesPerScene(t *testing.T) {
	cases := []struct {
		ms   int
		want int
	}{
		{1000, 30},
		{1500, 45},
		{100, 3},
		{33, 1},
		{1, 1},
		{0, 1},
	}
	for _, c := range cases {
		if got := FramesPerScene(c.ms); got != c.want {
			t.Errorf("FramesPerScene(%d) = %d, want %d", c.ms, got, c.want)
		}
	}
}

func TestDrawTitleCard(t *testing.T) {
	for _, theme := range []ports.Theme{ports.ThemeDark, ports.ThemeLight} {
		img := drawTitleCard("patterncard", 45, 64, theme)
		if img == nil {
			t.Fatalf("expected an image for theme %s", theme)
		}
		b := img.Bounds()
		if b.Dx() != 64 || b.Dy() != 64 {
			t.Errorf("expected 64x64 title card, got %v", b)
		}

		// The ornament ring and title must actually be drawn: the card
		// needs real contrast, not just the background fill.
		minLum, maxLum := uint32(0xFFFF), uint32(0)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				lum := (r + g + bl) / 3
				if lum < minLum {
					minLum = lum
				}
				if lum > maxLum {
					maxLum = lum
				}
			}
		}
		if maxLum-minLum < 0x3000 {
			t.Errorf("title card for theme %s is blank", theme)
		}
	}
}
