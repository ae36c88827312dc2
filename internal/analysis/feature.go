package analysis

import (
	"context"
	"strings"

	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"github.com/spacesedan/sentiscope/internal/textclean"
	"gonum.org/v1/gonum/stat"
)

// FeatureAnalyzer scores the product features each row mentions. A row's
// feature sentiment is its compound score when it mentions any feature and 0
// otherwise; the summary averages scores over the rows mentioning a feature.
type FeatureAnalyzer struct {
	fixedParams
	features []string
}

func NewFeatureAnalyzer(features []string) *FeatureAnalyzer {
	normalized := make([]string, 0, len(features))
	for _, f := range features {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			normalized = append(normalized, f)
		}
	}
	return &FeatureAnalyzer{features: normalized}
}

func (a *FeatureAnalyzer) Technique() models.Technique { return models.TechniqueFeatureSentiment }

func (a *FeatureAnalyzer) Analyze(ctx context.Context, ds *dataset.Dataset, column string, _ models.Params) (models.AnalysisResult, error) {
	texts, ok, err := columnText(ds, column)
	if err != nil {
		return nil, err
	}

	res := &models.FeatureSentimentResult{
		Mentions: make([][]string, len(texts)),
		Scores:   make([]float64, len(texts)),
	}
	perFeature := make([][]float64, len(a.features))

	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Mentions[i] = []string{}
		if !ok[i] {
			continue
		}

		words := wordSet(textclean.Words(textclean.Plain(text)))
		var hit []int
		for f, feature := range a.features {
			if mentions(words, feature) {
				res.Mentions[i] = append(res.Mentions[i], feature)
				hit = append(hit, f)
			}
		}
		if len(hit) == 0 {
			continue
		}

		res.Scores[i] = sentiment.Score(text)
		for _, f := range hit {
			perFeature[f] = append(perFeature[f], res.Scores[i])
		}
	}

	res.Summary = make([]models.FeatureSummary, len(a.features))
	for f, feature := range a.features {
		s := models.FeatureSummary{Feature: feature, Mentions: len(perFeature[f])}
		if s.Mentions > 0 {
			s.Sentiment = stat.Mean(perFeature[f], nil)
		}
		res.Summary[f] = s
	}
	return res, nil
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// mentions matches term or its plural as a whole word. Multi word terms fall
// back to every part being present.
func mentions(words map[string]struct{}, term string) bool {
	for _, part := range strings.Fields(term) {
		_, exact := words[part]
		_, plural := words[part+"s"]
		_, pluralEs := words[part+"es"]
		if !exact && !plural && !pluralEs {
			return false
		}
	}
	return true
}
