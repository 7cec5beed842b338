package scenes

import (
	"context"
	"errors"
	"testing"

	"github.com/user/patterncard/pkg/adapters/logger"
	"github.com/user/patterncard/pkg/pattern"
	"github.com/user/patterncard/pkg/pipeline"
)

func twoCards() *pattern.Collection {
	c := &pattern.Collection{TimingMs: 1500}
	c.Add("Alpha")
	c.Add("Beta")
	return c
}

func TestStage_Execute(t *testing.T) {
	stage := NewStage(logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ScenesInput{
		Collection: twoCards(),
		LoopCount:  3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// intro + 2 cards x 3 loops + outro
	if len(result.Scenes) != 8 {
		t.Fatalf("expected 8 scenes, got %d", len(result.Scenes))
	}
	if result.SceneDurationMs != 1500 {
		t.Errorf("expected scene duration 1500, got %d", result.SceneDurationMs)
	}

	if result.Scenes[0].Kind != pipeline.SceneIntro {
		t.Errorf("expected first scene to be intro, got %v", result.Scenes[0].Kind)
	}
	if result.Scenes[0].Title != DefaultIntroTitle {
		t.Errorf("expected default intro title, got %q", result.Scenes[0].Title)
	}
	last := result.Scenes[len(result.Scenes)-1]
	if last.Kind != pipeline.SceneOutro || last.Title != DefaultOutroTitle {
		t.Errorf("expected default outro scene, got %+v", last)
	}

	// Cards appear in collection order, repeated per loop
	wantNames := []string{"Alpha", "Beta", "Alpha", "Beta", "Alpha", "Beta"}
	for i, want := range wantNames {
		scene := result.Scenes[i+1]
		if scene.Kind != pipeline.SceneItem {
			t.Fatalf("scene %d: expected item scene, got %v", i+1, scene.Kind)
		}
		if scene.Item.Name != want {
			t.Errorf("scene %d: expected %q, got %q", i+1, want, scene.Item.Name)
		}
	}
}

func TestStage_Execute_CustomTitles(t *testing.T) {
	stage := NewStage(logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ScenesInput{
		Collection: twoCards(),
		LoopCount:  1,
		IntroTitle: "My Cards",
		OutroTitle: "The End",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Scenes[0].Title != "My Cards" {
		t.Errorf("expected custom intro title, got %q", result.Scenes[0].Title)
	}
	if result.Scenes[len(result.Scenes)-1].Title != "The End" {
		t.Errorf("expected custom outro title, got %q", result.Scenes[len(result.Scenes)-1].Title)
	}
}

func TestStage_Execute_LoopCountFloor(t *testing.T) {
	stage := NewStage(logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ScenesInput{
		Collection: twoCards(),
		LoopCount:  0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Loop count below 1 behaves as 1: intro + 2 cards + outro
	if len(result.Scenes) != 4 {
		t.Errorf("expected 4 scenes, got %d", len(result.Scenes))
	}
}

func TestStage_Execute_NoContent(t *testing.T) {
	stage := NewStage(logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ScenesInput{Collection: &pattern.Collection{}})
	if !errors.Is(err, pipeline.ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}

	_, err = stage.Execute(context.Background(), pipeline.ScenesInput{})
	if !errors.Is(err, pipeline.ErrNoContent) {
		t.Errorf("expected ErrNoContent for nil collection, got %v", err)
	}
}
