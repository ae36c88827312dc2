package analysis

import (
	"bufio"
	"context"
	_ "embed"
	"strings"

	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/textclean"
)

//go:embed data/emotion_lexicon.tsv
var emotionLexiconTSV string

// Emotions in tie-breaking order.
var Emotions = []string{"Joy", "Trust", "Anticipation", "Surprise", "Fear", "Sadness", "Anger", "Disgust"}

var emotionSuffixes = []string{"s", "es", "ed", "d", "ing", "ly"}

// EmotionAnalyzer assigns each row the emotion with the most lexicon hits.
// Rows without a single emotional word are Neutral.
type EmotionAnalyzer struct {
	fixedParams
	lexicon map[string][]int
}

func NewEmotionAnalyzer() *EmotionAnalyzer {
	return &EmotionAnalyzer{lexicon: parseLexicon(emotionLexiconTSV)}
}

func (a *EmotionAnalyzer) Technique() models.Technique { return models.TechniqueEmotion }

func (a *EmotionAnalyzer) Analyze(ctx context.Context, ds *dataset.Dataset, column string, _ models.Params) (models.AnalysisResult, error) {
	texts, ok, err := columnText(ds, column)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		labels[i] = models.LabelNeutral
		if ok[i] {
			labels[i] = a.dominant(text)
		}
	}
	return &models.EmotionResult{Labels: labels}, nil
}

func (a *EmotionAnalyzer) dominant(text string) string {
	counts := make([]int, len(Emotions))
	for _, w := range textclean.Words(textclean.Plain(text)) {
		for _, e := range a.lookup(w) {
			counts[e]++
		}
	}

	best := -1
	for e, n := range counts {
		if n > 0 && (best < 0 || n > counts[best]) {
			best = e
		}
	}
	if best < 0 {
		return models.LabelNeutral
	}
	return Emotions[best]
}

func (a *EmotionAnalyzer) lookup(word string) []int {
	if e, ok := a.lexicon[word]; ok {
		return e
	}
	for _, suffix := range emotionSuffixes {
		if stem := strings.TrimSuffix(word, suffix); stem != word && len(stem) > 2 {
			if e, ok := a.lexicon[stem]; ok {
				return e
			}
		}
	}
	return nil
}

func parseLexicon(raw string) map[string][]int {
	index := make(map[string]int, len(Emotions))
	for i, e := range Emotions {
		index[strings.ToLower(e)] = i
	}

	lexicon := make(map[string][]int)
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, emotions, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		for _, e := range strings.Split(emotions, ",") {
			if idx, ok := index[strings.TrimSpace(e)]; ok {
				lexicon[word] = append(lexicon[word], idx)
			}
		}
	}
	return lexicon
}
