package models

import (
	"fmt"
	"strconv"
)

type Technique string

const (
	TechniqueSentiment        Technique = "sentiment"
	TechniqueEmotion          Technique = "emotion"
	TechniqueTopic            Technique = "topic"
	TechniqueWordCloud        Technique = "wordcloud"
	TechniqueSegmentation     Technique = "segmentation"
	TechniqueFeatureSentiment Technique = "feature_sentiment"
	TechniqueAspectSentiment  Technique = "aspect_sentiment"
	TechniqueIntensity        Technique = "intensity"
	TechniqueContextual       Technique = "contextual_sentiment"
)

const (
	LabelPositive = "Positive"
	LabelNegative = "Negative"
	LabelNeutral  = "Neutral"
)

// Params are the user-facing knobs of an analysis page. Only Topics exists
// today; zero means "not set".
type Params struct {
	Topics int `json:"topics,omitempty"`
}

// Canonical is the stable encoding of p used when fingerprinting.
func (p Params) Canonical() string {
	return fmt.Sprintf("topics=%d", p.Topics)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
