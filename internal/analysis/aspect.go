package analysis

import (
	"context"
	"sort"
	"strings"

	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"github.com/spacesedan/sentiscope/internal/textclean"
)

// AspectAnalyzer splits rows into sentences, labels each sentence and credits
// the label to every aspect whose keyword the sentence contains. A row's label
// for an aspect is the most frequent one, the earliest seen winning ties.
type AspectAnalyzer struct {
	fixedParams
	keywords  []string
	aspects   map[string]string
	threshold float64
}

func NewAspectAnalyzer(aspects map[string]string, threshold float64) *AspectAnalyzer {
	a := &AspectAnalyzer{aspects: make(map[string]string, len(aspects)), threshold: threshold}
	for keyword, aspect := range aspects {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" || aspect == "" {
			continue
		}
		a.aspects[keyword] = aspect
		a.keywords = append(a.keywords, keyword)
	}
	sort.Strings(a.keywords)
	return a
}

func (a *AspectAnalyzer) Technique() models.Technique { return models.TechniqueAspectSentiment }

type aspectVotes struct {
	order  []string
	counts map[string]int
}

func (v *aspectVotes) add(label string) {
	if _, seen := v.counts[label]; !seen {
		v.order = append(v.order, label)
	}
	v.counts[label]++
}

func (v *aspectVotes) majority() string {
	best := v.order[0]
	for _, label := range v.order[1:] {
		if v.counts[label] > v.counts[best] {
			best = label
		}
	}
	return best
}

func (a *AspectAnalyzer) Analyze(ctx context.Context, ds *dataset.Dataset, column string, _ models.Params) (models.AnalysisResult, error) {
	texts, ok, err := columnText(ds, column)
	if err != nil {
		return nil, err
	}

	res := &models.AspectSentimentResult{Rows: make([][]models.AspectSentiment, len(texts))}
	totals := make(map[string]*models.AspectCount)

	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Rows[i] = []models.AspectSentiment{}
		if !ok[i] {
			continue
		}

		for _, as := range a.analyzeRow(text) {
			res.Rows[i] = append(res.Rows[i], as)

			total, exists := totals[as.Aspect]
			if !exists {
				total = &models.AspectCount{Aspect: as.Aspect}
				totals[as.Aspect] = total
			}
			switch as.Label {
			case models.LabelPositive:
				total.Positive++
			case models.LabelNegative:
				total.Negative++
			default:
				total.Neutral++
			}
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	res.Summary = make([]models.AspectCount, len(names))
	for i, name := range names {
		res.Summary[i] = *totals[name]
	}
	return res, nil
}

// analyzeRow returns one entry per aspect mentioned in text, ordered by the
// sentence that first mentions it.
func (a *AspectAnalyzer) analyzeRow(text string) []models.AspectSentiment {
	var order []string
	votes := make(map[string]*aspectVotes)

	for _, sentence := range textclean.Sentences(textclean.Plain(text)) {
		words := wordSet(textclean.Words(sentence))
		label := sentiment.Label(sentiment.Score(sentence), a.threshold)

		credited := make(map[string]bool)
		for _, keyword := range a.keywords {
			aspect := a.aspects[keyword]
			if credited[aspect] || !mentions(words, keyword) {
				continue
			}
			credited[aspect] = true

			v, exists := votes[aspect]
			if !exists {
				v = &aspectVotes{counts: make(map[string]int)}
				votes[aspect] = v
				order = append(order, aspect)
			}
			v.add(label)
		}
	}

	out := make([]models.AspectSentiment, 0, len(order))
	for _, aspect := range order {
		out = append(out, models.AspectSentiment{Aspect: aspect, Label: votes[aspect].majority()})
	}
	return out
}
