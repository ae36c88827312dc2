package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/spacesedan/sentiscope/internal/models"
)

const MIME_TYPE = "text/csv"

var (
	ErrLengthMismatch = errors.New("source rows do not match result rows")
	ErrNoSummary      = errors.New("result has no summary table")
)

var filenames = map[models.Technique]string{
	models.TechniqueSentiment:        "sentiment_analysis.csv",
	models.TechniqueEmotion:          "emotion_analysis.csv",
	models.TechniqueTopic:            "topics.csv",
	models.TechniqueWordCloud:        "word_frequency.csv",
	models.TechniqueSegmentation:     "customer_segments.csv",
	models.TechniqueFeatureSentiment: "feature_sentiment.csv",
	models.TechniqueAspectSentiment:  "aspect_sentiment_analysis.csv",
	models.TechniqueIntensity:        "sentiment_intensity_analysis.csv",
	models.TechniqueContextual:       "contextual_sentiment_analysis.csv",
}

// Filename is the download name of a technique's export.
func Filename(t models.Technique) string {
	if name, ok := filenames[t]; ok {
		return name
	}
	return string(t) + ".csv"
}

// SummaryFilename is the download name of a technique's group level table.
func SummaryFilename(t models.Technique) string {
	return string(t) + "_summary.csv"
}

// Encode writes a header of column followed by the result's output columns
// and then one record per source row.
func Encode(column string, texts []string, res models.AnalysisResult) ([]byte, error) {
	if len(texts) != res.Len() {
		return nil, fmt.Errorf("%w: %d source rows, %d results", ErrLengthMismatch, len(texts), res.Len())
	}

	records := make([][]string, 0, res.Len()+1)
	records = append(records, append([]string{column}, res.OutputColumns()...))
	for i, text := range texts {
		records = append(records, append([]string{text}, res.Row(i)...))
	}
	return write(records)
}

// EncodeSummary writes the group level table of res.
func EncodeSummary(res models.AnalysisResult) ([]byte, error) {
	s, ok := res.(models.Summarizer)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSummary, res.Technique())
	}

	records := append([][]string{s.SummaryColumns()}, s.SummaryRows()...)
	return write(records)
}

func write(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}
	return buf.Bytes(), nil
}
