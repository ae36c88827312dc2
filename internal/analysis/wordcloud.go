package analysis

import (
	"context"
	"sort"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/textclean"
)

// WordCloudAnalyzer ranks cleaned words by frequency over the whole column and
// tags each row with its highest ranked words.
type WordCloudAnalyzer struct {
	fixedParams
	profile config.WordCloudProfile
}

func NewWordCloudAnalyzer(p config.WordCloudProfile) *WordCloudAnalyzer {
	return &WordCloudAnalyzer{profile: p}
}

func (a *WordCloudAnalyzer) Technique() models.Technique { return models.TechniqueWordCloud }

func (a *WordCloudAnalyzer) Analyze(ctx context.Context, ds *dataset.Dataset, column string, _ models.Params) (models.AnalysisResult, error) {
	texts, ok, err := columnText(ds, column)
	if err != nil {
		return nil, err
	}

	docs := make([][]string, len(texts))
	counts := make(map[string]int)
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !ok[i] {
			continue
		}
		docs[i] = textclean.Tokens(textclean.Plain(text))
		for _, w := range docs[i] {
			counts[w]++
		}
	}

	rank := func(words []string) {
		sort.Slice(words, func(i, j int) bool {
			if counts[words[i]] != counts[words[j]] {
				return counts[words[i]] > counts[words[j]]
			}
			return words[i] < words[j]
		})
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	rank(words)

	frequencies := make([]models.WordFrequency, len(words))
	for i, w := range words {
		frequencies[i] = models.WordFrequency{
			Word:   w,
			Count:  counts[w],
			Weight: float64(counts[w]) / float64(counts[words[0]]),
		}
	}

	keywords := make([][]string, len(texts))
	for i, doc := range docs {
		unique := uniqueWords(doc)
		rank(unique)
		if len(unique) > a.profile.RowKeywords {
			unique = unique[:a.profile.RowKeywords]
		}
		keywords[i] = unique
	}

	return &models.WordCloudResult{
		Keywords:    keywords,
		Frequencies: frequencies,
		TopWords:    a.profile.TopWords,
	}, nil
}

func uniqueWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := []string{}
	for _, w := range words {
		if _, dup := seen[w]; !dup {
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
