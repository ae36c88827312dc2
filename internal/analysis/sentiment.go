package analysis

import (
	"context"

	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/sentiment"
)

// SentimentAnalyzer labels each row Positive, Negative or Neutral from its
// VADER compound score.
type SentimentAnalyzer struct {
	fixedParams
	threshold float64
}

func NewSentimentAnalyzer(threshold float64) *SentimentAnalyzer {
	return &SentimentAnalyzer{threshold: threshold}
}

func (a *SentimentAnalyzer) Technique() models.Technique { return models.TechniqueSentiment }

func (a *SentimentAnalyzer) Analyze(ctx context.Context, ds *dataset.Dataset, column string, _ models.Params) (models.AnalysisResult, error) {
	texts, ok, err := columnText(ds, column)
	if err != nil {
		return nil, err
	}

	res := &models.SentimentResult{
		Labels: make([]string, len(texts)),
		Scores: make([]float64, len(texts)),
	}
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !ok[i] {
			res.Labels[i] = models.LabelNeutral
			continue
		}
		res.Scores[i], res.Labels[i] = sentiment.AnalyzeWithVADER(text, a.threshold)
	}
	return res, nil
}
