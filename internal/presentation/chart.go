package presentation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/spacesedan/sentiscope/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrUnsupportedResult = errors.New("no chart for result")

type ChartType string

const (
	ChartBar        ChartType = "bar"
	ChartPie        ChartType = "pie"
	ChartStackedBar ChartType = "stacked_bar"
	ChartHistogram  ChartType = "histogram"
)

const DEFAULT_HISTOGRAM_BINS = 30

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Chart is a renderer independent description of a page's plot.
type Chart struct {
	Type   ChartType `json:"type"`
	Title  string    `json:"title"`
	XAxis  string    `json:"x_axis"`
	YAxis  string    `json:"y_axis"`
	Series []Series  `json:"series"`
}

type Options struct {
	HistogramBins int
}

// ChartFor derives the chart of a result. It is cheap and never cached.
func ChartFor(res models.AnalysisResult, opts Options) (Chart, error) {
	switch r := res.(type) {
	case *models.SentimentResult:
		return Chart{
			Type:   ChartPie,
			Title:  "Sentiment Distribution",
			XAxis:  "Sentiment",
			YAxis:  "Count",
			Series: []Series{{Name: "Sentiment", Points: valueCounts(r.Labels)}},
		}, nil

	case *models.EmotionResult:
		return Chart{
			Type:   ChartBar,
			Title:  "Emotion Distribution",
			XAxis:  "Emotion",
			YAxis:  "Count",
			Series: []Series{{Name: "Emotion", Points: valueCounts(r.Labels)}},
		}, nil

	case *models.TopicResult:
		counts := make([]float64, r.Topics)
		unassigned := 0.0
		for _, a := range r.Assignments {
			if a >= 0 && a < r.Topics {
				counts[a]++
			} else {
				unassigned++
			}
		}
		points := make([]Point, 0, r.Topics+1)
		for t, n := range counts {
			points = append(points, Point{Label: "Topic " + strconv.Itoa(t), Value: n})
		}
		if unassigned > 0 {
			points = append(points, Point{Label: "Unassigned", Value: unassigned})
		}
		return Chart{
			Type:   ChartBar,
			Title:  "Documents per Topic",
			XAxis:  "Topic",
			YAxis:  "Documents",
			Series: []Series{{Name: "Topic", Points: points}},
		}, nil

	case *models.WordCloudResult:
		top := r.Top()
		points := make([]Point, len(top))
		for i, f := range top {
			points[i] = Point{Label: f.Word, Value: float64(f.Count)}
		}
		return Chart{
			Type:   ChartBar,
			Title:  "Top Words",
			XAxis:  "Word",
			YAxis:  "Frequency",
			Series: []Series{{Name: "Frequency", Points: points}},
		}, nil

	case *models.SegmentationResult:
		sizes := r.Sizes()
		points := make([]Point, len(sizes))
		for c, n := range sizes {
			points[c] = Point{Label: r.Segments[c], Value: float64(n)}
		}
		return Chart{
			Type:   ChartBar,
			Title:  "Customer Segments",
			XAxis:  "Segment",
			YAxis:  "Customers",
			Series: []Series{{Name: "Cluster", Points: points}},
		}, nil

	case *models.FeatureSentimentResult:
		points := make([]Point, len(r.Summary))
		for i, s := range r.Summary {
			points[i] = Point{Label: s.Feature, Value: s.Sentiment}
		}
		return Chart{
			Type:   ChartBar,
			Title:  "Feature Sentiment",
			XAxis:  "Feature",
			YAxis:  "Average Sentiment",
			Series: []Series{{Name: "Sentiment", Points: points}},
		}, nil

	case *models.AspectSentimentResult:
		series := []Series{{Name: models.LabelPositive}, {Name: models.LabelNeutral}, {Name: models.LabelNegative}}
		for _, s := range r.Summary {
			series[0].Points = append(series[0].Points, Point{Label: s.Aspect, Value: float64(s.Positive)})
			series[1].Points = append(series[1].Points, Point{Label: s.Aspect, Value: float64(s.Neutral)})
			series[2].Points = append(series[2].Points, Point{Label: s.Aspect, Value: float64(s.Negative)})
		}
		return Chart{
			Type:   ChartStackedBar,
			Title:  "Aspect Sentiment",
			XAxis:  "Aspect",
			YAxis:  "Mentions",
			Series: series,
		}, nil

	case *models.IntensityResult:
		return Chart{
			Type:   ChartHistogram,
			Title:  "Sentiment Intensity Distribution",
			XAxis:  "Sentiment Intensity",
			YAxis:  "Count",
			Series: []Series{{Name: "Intensity", Points: histogram(r.Scores, opts.HistogramBins)}},
		}, nil

	case *models.ContextualResult:
		return Chart{
			Type:   ChartPie,
			Title:  "Contextual Sentiment Distribution",
			XAxis:  "Sentiment",
			YAxis:  "Count",
			Series: []Series{{Name: "Sentiment", Points: valueCounts(r.Labels)}},
		}, nil
	}

	return Chart{}, fmt.Errorf("%w: %T", ErrUnsupportedResult, res)
}

// valueCounts counts labels, most frequent first and alphabetical on ties.
func valueCounts(labels []string) []Point {
	counts := make(map[string]float64)
	for _, l := range labels {
		counts[l]++
	}

	points := make([]Point, 0, len(counts))
	for l, n := range counts {
		points = append(points, Point{Label: l, Value: n})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return points
}

// histogram buckets scores into bins equal width bins over [-1, 1].
func histogram(scores []float64, bins int) []Point {
	if bins <= 0 {
		bins = DEFAULT_HISTOGRAM_BINS
	}

	dividers := floats.Span(make([]float64, bins+1), -1, 1)
	edges := append([]float64(nil), dividers...)
	// the last divider must lie strictly above the largest value
	dividers[bins] = math.Nextafter(1, 2)

	x := make([]float64, len(scores))
	for i, s := range scores {
		x[i] = math.Max(-1, math.Min(1, s))
	}
	sort.Float64s(x)

	counts := stat.Histogram(nil, dividers, x, nil)

	points := make([]Point, bins)
	for i, n := range counts {
		points[i] = Point{
			Label: fmt.Sprintf("%.2f", (edges[i]+edges[i+1])/2),
			Value: n,
		}
	}
	return points
}
