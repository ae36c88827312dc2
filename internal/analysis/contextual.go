package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/utils"
)

// ContextualScorer is a remote sentiment model.
type ContextualScorer interface {
	AnalyzeBatch(ctx context.Context, batch models.ContextualBatchRequest) (models.ContextualBatchResponse, error)
}

// ContextualAnalyzer sends rows in batches to a remote model. Rows the model
// does not answer for stay Neutral with zero confidence.
type ContextualAnalyzer struct {
	fixedParams
	scorer    ContextualScorer
	healthy   *atomic.Bool
	batchSize int
}

// NewContextualAnalyzer wires scorer in. healthy may be nil; when set and
// false, Analyze fails fast with ErrModelUnavailable.
func NewContextualAnalyzer(scorer ContextualScorer, healthy *atomic.Bool, batchSize int) *ContextualAnalyzer {
	return &ContextualAnalyzer{scorer: scorer, healthy: healthy, batchSize: batchSize}
}

func (a *ContextualAnalyzer) Technique() models.Technique { return models.TechniqueContextual }

func (a *ContextualAnalyzer) Analyze(ctx context.Context, ds *dataset.Dataset, column string, _ models.Params) (models.AnalysisResult, error) {
	if a.healthy != nil && !a.healthy.Load() {
		return nil, ErrModelUnavailable
	}

	texts, ok, err := columnText(ds, column)
	if err != nil {
		return nil, err
	}

	res := &models.ContextualResult{
		Labels:     make([]string, len(texts)),
		Confidence: make([]float64, len(texts)),
	}
	var requests models.ContextualBatchRequest
	for i, text := range texts {
		res.Labels[i] = models.LabelNeutral
		if ok[i] {
			requests = append(requests, models.ContextualRequest{RowID: i, Text: text})
		}
	}

	err = utils.Drain(requests, a.batchSize, func(batch []models.ContextualRequest) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		responses, err := a.scorer.AnalyzeBatch(ctx, batch)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrModelUnavailable, err)
		}
		for _, r := range responses {
			if r.RowID < 0 || r.RowID >= len(texts) || !ok[r.RowID] {
				continue
			}
			res.Labels[r.RowID] = normalizeLabel(r.SentimentLabel)
			res.Confidence[r.RowID] = r.Confidence
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func normalizeLabel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive", "pos", "label_2":
		return models.LabelPositive
	case "negative", "neg", "label_0":
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}
