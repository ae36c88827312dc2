package analysis

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spacesedan/sentiscope/internal/models"
)

func TestSentimentAnalyzer(t *testing.T) {
	ds := reviews(t, text("I love this!"), text("Terrible service."), text(""), nil)

	res, err := NewSentimentAnalyzer(0.05).Analyze(context.Background(), ds, column, models.Params{})
	if err != nil {
		t.Fatal(err)
	}

	got := res.(*models.SentimentResult)
	want := []string{models.LabelPositive, models.LabelNegative, models.LabelNeutral, models.LabelNeutral}
	if diff := cmp.Diff(want, got.Labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	if got.Scores[0] <= 0 || got.Scores[1] >= 0 || got.Scores[2] != 0 || got.Scores[3] != 0 {
		t.Errorf("unexpected scores %v", got.Scores)
	}
}

func TestIntensityAnalyzer(t *testing.T) {
	ds := reviews(t, text("I love this!"), nil, text("Terrible service."))

	res, err := NewIntensityAnalyzer().Analyze(context.Background(), ds, column, models.Params{})
	if err != nil {
		t.Fatal(err)
	}

	scores := res.(*models.IntensityResult).Scores
	if scores[0] <= 0 || scores[0] > 1 {
		t.Errorf("positive score out of range: %v", scores[0])
	}
	if scores[1] != 0 {
		t.Errorf("missing row scored %v, want 0", scores[1])
	}
	if scores[2] >= 0 || scores[2] < -1 {
		t.Errorf("negative score out of range: %v", scores[2])
	}
}
