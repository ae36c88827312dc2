package dashboard

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/analysis"
	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/presentation"
	"github.com/spacesedan/sentiscope/internal/session"
)

type countingAnalyzer struct {
	analysis.Analyzer
	calls atomic.Int32
}

func (c *countingAnalyzer) Analyze(ctx context.Context, ds *dataset.Dataset, column string, p models.Params) (models.AnalysisResult, error) {
	c.calls.Add(1)
	return c.Analyzer.Analyze(ctx, ds, column, p)
}

var reviews = []string{
	"I love this phone, the camera is amazing",
	"Terrible battery, it died after an hour",
	"The box arrived on Tuesday.",
	"Great price and friendly service",
	"delivery was late and the courier lost the package",
	"battery charging is slow, battery gets hot",
}

func setup(t *testing.T) (*Dashboard, *session.Session, map[models.Technique]*countingAnalyzer) {
	t.Helper()

	profile := config.DefaultProfile()
	registry := analysis.NewRegistry()
	counters := make(map[models.Technique]*countingAnalyzer)
	for _, a := range analysis.DefaultAnalyzers(profile) {
		c := &countingAnalyzer{Analyzer: a}
		counters[a.Technique()] = c
		registry.Register(c)
	}

	ds, err := dataset.FromTexts("review", reviews)
	if err != nil {
		t.Fatal(err)
	}
	sess := session.New("test")
	sess.Load(ds)
	if err := sess.SelectColumn("review"); err != nil {
		t.Fatal(err)
	}
	return New(registry, profile), sess, counters
}

func TestViewNotReady(t *testing.T) {
	d, _, _ := setup(t)
	sess := session.New("empty")

	_, err := d.View(context.Background(), sess, models.TechniqueSentiment, models.Params{})
	var nr *session.NotReadyError
	if !errors.As(err, &nr) {
		t.Fatalf("got %v, want NotReadyError", err)
	}
	if !errors.Is(err, session.ErrNoDataset) {
		t.Errorf("got %v, want ErrNoDataset", err)
	}
}

func TestViewCachesResult(t *testing.T) {
	d, sess, counters := setup(t)
	ctx := context.Background()

	first, err := d.View(ctx, sess, models.TechniqueSentiment, models.Params{})
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Error("first view should compute")
	}
	if first.Rows != len(reviews) {
		t.Errorf("rows = %d, want %d", first.Rows, len(reviews))
	}
	if first.Chart.Type != presentation.ChartPie {
		t.Errorf("chart = %q, want pie", first.Chart.Type)
	}
	if n := len(first.Sample.Rows); n != config.DefaultProfile().SampleRows {
		t.Errorf("sample has %d rows", n)
	}
	if first.Summary != nil {
		t.Error("sentiment has no summary")
	}

	second, err := d.View(ctx, sess, models.TechniqueSentiment, models.Params{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Error("second view should be served from cache")
	}
	if second.Fingerprint != first.Fingerprint {
		t.Errorf("fingerprint changed: %s -> %s", first.Fingerprint, second.Fingerprint)
	}
	if diff := cmp.Diff(first.Sample, second.Sample); diff != "" {
		t.Errorf("sample changed (-first +second):\n%s", diff)
	}
	if n := counters[models.TechniqueSentiment].calls.Load(); n != 1 {
		t.Errorf("sentiment computed %d times, want 1", n)
	}
}

func TestViewTopicParams(t *testing.T) {
	d, sess, counters := setup(t)
	ctx := context.Background()

	three, err := d.View(ctx, sess, models.TechniqueTopic, models.Params{})
	if err != nil {
		t.Fatal(err)
	}
	if three.Params.Topics != 3 {
		t.Errorf("default topics = %d, want 3", three.Params.Topics)
	}
	if three.Summary == nil {
		t.Error("topic page should carry a summary")
	}

	two, err := d.View(ctx, sess, models.TechniqueTopic, models.Params{Topics: 2})
	if err != nil {
		t.Fatal(err)
	}
	if two.Cached || two.Fingerprint == three.Fingerprint {
		t.Error("changing the topic count should recompute")
	}
	if got := two.Result.(*models.TopicResult).Topics; got != 2 {
		t.Errorf("topics = %d, want 2", got)
	}
	if n := counters[models.TechniqueTopic].calls.Load(); n != 2 {
		t.Errorf("topic computed %d times, want 2", n)
	}

	if _, err := d.View(ctx, sess, models.TechniqueTopic, models.Params{Topics: 11}); !errors.Is(err, analysis.ErrInvalidParams) {
		t.Errorf("got %v, want ErrInvalidParams", err)
	}
}

func TestViewUnknownTechnique(t *testing.T) {
	d, sess, _ := setup(t)

	_, err := d.View(context.Background(), sess, models.Technique("sarcasm"), models.Params{})
	if !errors.Is(err, analysis.ErrUnknownTechnique) {
		t.Errorf("got %v, want ErrUnknownTechnique", err)
	}
}

func TestExportReusesCachedResult(t *testing.T) {
	d, sess, counters := setup(t)
	ctx := context.Background()

	if _, err := d.View(ctx, sess, models.TechniqueEmotion, models.Params{}); err != nil {
		t.Fatal(err)
	}

	name, data, err := d.Export(ctx, sess, models.TechniqueEmotion, models.Params{})
	if err != nil {
		t.Fatal(err)
	}
	if name != export.Filename(models.TechniqueEmotion) {
		t.Errorf("filename = %q", name)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"review", "Emotion"}, records[0]); diff != "" {
		t.Errorf("header (-want +got):\n%s", diff)
	}
	if len(records) != len(reviews)+1 {
		t.Errorf("got %d records, want %d", len(records), len(reviews)+1)
	}
	for i, r := range records[1:] {
		if r[0] != reviews[i] {
			t.Errorf("row %d source = %q, want %q", i, r[0], reviews[i])
		}
	}

	if n := counters[models.TechniqueEmotion].calls.Load(); n != 1 {
		t.Errorf("emotion computed %d times, want 1", n)
	}
}

func TestExportSummary(t *testing.T) {
	d, sess, _ := setup(t)
	ctx := context.Background()

	name, data, err := d.ExportSummary(ctx, sess, models.TechniqueAspectSentiment, models.Params{})
	if err != nil {
		t.Fatal(err)
	}
	if name != "aspect_sentiment_summary.csv" {
		t.Errorf("filename = %q", name)
	}
	if !strings.HasPrefix(string(data), "Aspect,") {
		t.Errorf("unexpected summary header in %q", data)
	}

	if _, _, err := d.ExportSummary(ctx, sess, models.TechniqueSentiment, models.Params{}); !errors.Is(err, export.ErrNoSummary) {
		t.Errorf("got %v, want ErrNoSummary", err)
	}
}

func TestRenderChart(t *testing.T) {
	d, sess, _ := setup(t)

	var buf bytes.Buffer
	if err := d.RenderChart(context.Background(), sess, models.TechniqueIntensity, models.Params{}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("chart is not svg")
	}
}
