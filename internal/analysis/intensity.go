package analysis

import (
	"context"

	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/sentiment"
)

// IntensityAnalyzer keeps the raw compound score in [-1, 1]; missing rows
// score 0.
type IntensityAnalyzer struct {
	fixedParams
}

func NewIntensityAnalyzer() *IntensityAnalyzer { return &IntensityAnalyzer{} }

func (a *IntensityAnalyzer) Technique() models.Technique { return models.TechniqueIntensity }

func (a *IntensityAnalyzer) Analyze(ctx context.Context, ds *dataset.Dataset, column string, _ models.Params) (models.AnalysisResult, error) {
	texts, ok, err := columnText(ds, column)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ok[i] {
			scores[i] = sentiment.Score(text)
		}
	}
	return &models.IntensityResult{Scores: scores}, nil
}
