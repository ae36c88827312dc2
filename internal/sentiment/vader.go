package sentiment

import (
	"github.com/jonreiter/govader"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/textclean"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// Score returns the VADER compound score of text after markdown and links
// are stripped. Blank text scores 0.
func Score(text string) float64 {
	plainText := textclean.Plain(text)
	if plainText == "" {
		return 0
	}
	return analyzer.PolarityScores(plainText).Compound
}

// Label buckets a compound score: above +threshold is positive, below
// -threshold is negative, everything else neutral.
func Label(score, threshold float64) string {
	switch {
	case score > threshold:
		return models.LabelPositive
	case score < -threshold:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

func AnalyzeWithVADER(text string, threshold float64) (float64, string) {
	score := Score(text)
	return score, Label(score, threshold)
}
