package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
)

const column = "review"

// reviews builds a one column dataset; nil entries become missing cells.
func reviews(t *testing.T, texts ...*string) *dataset.Dataset {
	t.Helper()
	rows := make([][]dataset.Cell, len(texts))
	for i, text := range texts {
		if text == nil {
			rows[i] = []dataset.Cell{dataset.MissingCell()}
			continue
		}
		rows[i] = []dataset.Cell{dataset.TextCell(*text)}
	}
	ds, err := dataset.New([]string{column}, rows)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func text(s string) *string { return &s }

func TestEveryAnalyzerKeepsRowAlignment(t *testing.T) {
	ds, err := dataset.New([]string{column}, [][]dataset.Cell{
		{dataset.TextCell("The battery is great and the price is fair.")},
		{dataset.MissingCell()},
		{dataset.NumberCell(42)},
		{dataset.TextCell("Terrible service, the delivery was late.")},
		{dataset.TextCell("   ")},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, a := range DefaultAnalyzers(config.DefaultProfile()) {
		t.Run(string(a.Technique()), func(t *testing.T) {
			p, err := a.Params(models.Params{})
			if err != nil {
				t.Fatal(err)
			}
			res, err := a.Analyze(context.Background(), ds, column, p)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if res.Len() != ds.Len() {
				t.Fatalf("Len = %d, want %d", res.Len(), ds.Len())
			}
			if res.Technique() != a.Technique() {
				t.Errorf("result technique %q, want %q", res.Technique(), a.Technique())
			}
			for i := 0; i < res.Len(); i++ {
				if got := len(res.Row(i)); got != len(res.OutputColumns()) {
					t.Errorf("row %d has %d values, want %d", i, got, len(res.OutputColumns()))
				}
			}
		})
	}
}

func TestUnknownColumn(t *testing.T) {
	ds := reviews(t, text("fine"))
	_, err := NewSentimentAnalyzer(0.05).Analyze(context.Background(), ds, "nope", models.Params{})
	if !errors.Is(err, dataset.ErrUnknownColumn) {
		t.Errorf("got %v, want ErrUnknownColumn", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewIntensityAnalyzer().Analyze(ctx, reviews(t, text("fine")), column, models.Params{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestParamsNormalization(t *testing.T) {
	profile := config.DefaultProfile()
	topic := NewTopicAnalyzer(profile.Topics)

	tests := []struct {
		name    string
		a       Analyzer
		in      models.Params
		want    models.Params
		wantErr error
	}{
		{"unparametrized drops topics", NewSentimentAnalyzer(0.05), models.Params{Topics: 7}, models.Params{}, nil},
		{"topic default", topic, models.Params{}, models.Params{Topics: 3}, nil},
		{"topic lower bound", topic, models.Params{Topics: 2}, models.Params{Topics: 2}, nil},
		{"topic upper bound", topic, models.Params{Topics: 10}, models.Params{Topics: 10}, nil},
		{"topic too small", topic, models.Params{Topics: 1}, models.Params{}, ErrInvalidParams},
		{"topic too large", topic, models.Params{Topics: 11}, models.Params{}, ErrInvalidParams},
		{"topic negative", topic, models.Params{Topics: -3}, models.Params{}, ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Params(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("params (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(DefaultAnalyzers(config.DefaultProfile())...)

	want := []models.Technique{
		models.TechniqueSentiment,
		models.TechniqueEmotion,
		models.TechniqueTopic,
		models.TechniqueWordCloud,
		models.TechniqueSegmentation,
		models.TechniqueFeatureSentiment,
		models.TechniqueAspectSentiment,
		models.TechniqueIntensity,
	}
	if diff := cmp.Diff(want, r.Techniques()); diff != "" {
		t.Errorf("techniques (-want +got):\n%s", diff)
	}

	if _, err := r.Get(models.TechniqueContextual); !errors.Is(err, ErrUnknownTechnique) {
		t.Errorf("got %v, want ErrUnknownTechnique", err)
	}

	r.Register(NewSentimentAnalyzer(0.5))
	if len(r.Techniques()) != len(want) {
		t.Error("re-registering a technique should replace it, not append")
	}
}
