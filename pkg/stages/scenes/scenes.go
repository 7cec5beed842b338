// Package scenes implements the scene plan expansion stage.
package scenes

import (
	"context"

	"github.com/user/patterncard/pkg/pipeline"
	"github.com/user/patterncard/pkg/ports"
)

// DefaultIntroTitle and DefaultOutroTitle caption the synthetic boundary
// scenes when the caller does not provide text.
const (
	DefaultIntroTitle = "patterncard"
	DefaultOutroTitle = "fin"
)

// Stage expands a collection into the ordered scene list driving assembly:
// one intro scene, the item list repeated LoopCount times, one outro scene.
// Every scene is held for the collection's playback interval.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new scenes stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{logger: logger.WithComponent("scenes")}
}

// Execute builds the scene plan.
func (s *Stage) Execute(ctx context.Context, input pipeline.ScenesInput) (pipeline.ScenesResult, error) {
	result := pipeline.ScenesResult{}

	if input.Collection == nil || input.Collection.Len() == 0 {
		return result, pipeline.ErrNoContent
	}

	loops := input.LoopCount
	if loops < 1 {
		loops = 1
	}
	intro := input.IntroTitle
	if intro == "" {
		intro = DefaultIntroTitle
	}
	outro := input.OutroTitle
	if outro == "" {
		outro = DefaultOutroTitle
	}

	result.SceneDurationMs = input.Collection.TimingMs

	result.Scenes = append(result.Scenes, pipeline.Scene{Kind: pipeline.SceneIntro, Title: intro})
	for loop := 0; loop < loops; loop++ {
		for i := range input.Collection.Items {
			result.Scenes = append(result.Scenes, pipeline.Scene{
				Kind: pipeline.SceneItem,
				Item: &input.Collection.Items[i],
			})
		}
	}
	result.Scenes = append(result.Scenes, pipeline.Scene{Kind: pipeline.SceneOutro, Title: outro})

	s.logger.Debug("Scene plan: %d scenes at %d ms each", len(result.Scenes), result.SceneDurationMs)

	return result, nil
}
