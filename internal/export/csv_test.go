package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spacesedan/sentiscope/internal/models"
)

func readAll(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return records
}

func TestEncode(t *testing.T) {
	texts := []string{"Great, really great", "said \"meh\"", ""}
	res := &models.SentimentResult{
		Labels: []string{"Positive", "Neutral", "Neutral"},
		Scores: []float64{0.8, 0, 0},
	}

	data, err := Encode("review", texts, res)
	if err != nil {
		t.Fatal(err)
	}

	want := [][]string{
		{"review", "Sentiment"},
		{"Great, really great", "Positive"},
		{"said \"meh\"", "Neutral"},
		{"", "Neutral"},
	}
	if diff := cmp.Diff(want, readAll(t, data)); diff != "" {
		t.Errorf("records (-want +got):\n%s", diff)
	}
}

func TestEncodeMultiColumn(t *testing.T) {
	res := &models.ContextualResult{
		Labels:     []string{"Positive", "Negative"},
		Confidence: []float64{0.9, 0.75},
	}

	data, err := Encode("text", []string{"a", "b"}, res)
	if err != nil {
		t.Fatal(err)
	}

	records := readAll(t, data)
	if diff := cmp.Diff([]string{"text", "Contextual Sentiment", "Confidence"}, records[0]); diff != "" {
		t.Errorf("header (-want +got):\n%s", diff)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
}

func TestEncodeLengthMismatch(t *testing.T) {
	res := &models.SentimentResult{Labels: []string{"Positive"}, Scores: []float64{1}}

	if _, err := Encode("review", []string{"a", "b"}, res); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want ErrLengthMismatch", err)
	}
}

func TestEncodeSummary(t *testing.T) {
	res := &models.FeatureSentimentResult{
		Mentions: [][]string{{"price"}},
		Scores:   []float64{0.5},
		Summary:  []models.FeatureSummary{{Feature: "price", Sentiment: 0.5, Mentions: 1}},
	}

	data, err := EncodeSummary(res)
	if err != nil {
		t.Fatal(err)
	}
	records := readAll(t, data)
	if len(records) != 2 || records[1][0] != "price" {
		t.Errorf("unexpected summary %v", records)
	}

	if _, err := EncodeSummary(&models.SentimentResult{}); !errors.Is(err, ErrNoSummary) {
		t.Errorf("got %v, want ErrNoSummary", err)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		technique models.Technique
		want      string
	}{
		{models.TechniqueSentiment, "sentiment_analysis.csv"},
		{models.TechniqueAspectSentiment, "aspect_sentiment_analysis.csv"},
		{models.TechniqueContextual, "contextual_sentiment_analysis.csv"},
		{models.Technique("custom"), "custom.csv"},
	}
	for _, tt := range tests {
		if got := Filename(tt.technique); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.technique, got, tt.want)
		}
	}
	if got := SummaryFilename(models.TechniqueTopic); got != "topic_summary.csv" {
		t.Errorf("SummaryFilename = %q", got)
	}
}
