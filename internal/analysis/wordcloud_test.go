package analysis

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/models"
)

func TestWordCloudAnalyzer(t *testing.T) {
	ds := reviews(t,
		text("Battery, battery and great!"),
		text("battery camera"),
		nil,
	)

	profile := config.WordCloudProfile{TopWords: 2, RowKeywords: 2}
	res, err := NewWordCloudAnalyzer(profile).Analyze(context.Background(), ds, column, models.Params{})
	if err != nil {
		t.Fatal(err)
	}
	got := res.(*models.WordCloudResult)

	wantFreq := []models.WordFrequency{
		{Word: "battery", Count: 3, Weight: 1},
		{Word: "camera", Count: 1, Weight: 1.0 / 3},
		{Word: "great", Count: 1, Weight: 1.0 / 3},
	}
	if diff := cmp.Diff(wantFreq, got.Frequencies, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("frequencies (-want +got):\n%s", diff)
	}

	wantKeywords := [][]string{{"battery", "great"}, {"battery", "camera"}, {}}
	if diff := cmp.Diff(wantKeywords, got.Keywords, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("keywords (-want +got):\n%s", diff)
	}

	wantSummary := [][]string{{"battery", "3"}, {"camera", "1"}}
	if diff := cmp.Diff(wantSummary, got.SummaryRows()); diff != "" {
		t.Errorf("summary (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"battery great", "battery camera", ""}, []string{got.Row(0)[0], got.Row(1)[0], got.Row(2)[0]}); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}
