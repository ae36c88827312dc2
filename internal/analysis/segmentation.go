package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SegmentationAnalyzer clusters rows on their compound score with a
// deterministic one dimensional k-means.
type SegmentationAnalyzer struct {
	fixedParams
	profile config.SegmentationProfile
}

func NewSegmentationAnalyzer(p config.SegmentationProfile) *SegmentationAnalyzer {
	return &SegmentationAnalyzer{profile: p}
}

func (a *SegmentationAnalyzer) Technique() models.Technique { return models.TechniqueSegmentation }

func (a *SegmentationAnalyzer) Analyze(ctx context.Context, ds *dataset.Dataset, column string, _ models.Params) (models.AnalysisResult, error) {
	texts, ok, err := columnText(ds, column)
	if err != nil {
		return nil, err
	}
	if !hasAny(ok) {
		return nil, ErrNoAnalyzableRows
	}

	scores := make([]float64, len(texts))
	var fit []float64
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ok[i] {
			scores[i] = sentiment.Score(text)
			fit = append(fit, scores[i])
		}
	}

	centroids := kmeans1D(fit, a.profile.Clusters, a.profile.Iterations)

	clusters := make([]int, len(scores))
	for i, s := range scores {
		clusters[i] = nearest(centroids, s)
	}

	return &models.SegmentationResult{
		Scores:    scores,
		Clusters:  clusters,
		Centroids: centroids,
		Segments:  segmentNames(centroids),
	}, nil
}

// kmeans1D returns ascending centroids. Seeds are spread over the quantiles
// of the distinct values, so the outcome depends only on xs. k is lowered to
// the number of distinct values when there are fewer.
func kmeans1D(xs []float64, k, iterations int) []float64 {
	distinct := append([]float64(nil), xs...)
	sort.Float64s(distinct)
	distinct = dedupSorted(distinct)
	if k > len(distinct) {
		k = len(distinct)
	}

	centroids := make([]float64, k)
	for j := range centroids {
		centroids[j] = distinct[(2*j+1)*len(distinct)/(2*k)]
	}

	assign := make([]int, len(xs))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < iterations; iter++ {
		changed := false
		for i, x := range xs {
			if c := nearest(centroids, x); c != assign[i] {
				assign[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		members := make([][]float64, k)
		for i, x := range xs {
			members[assign[i]] = append(members[assign[i]], x)
		}
		for j, m := range members {
			if len(m) > 0 {
				centroids[j] = stat.Mean(m, nil)
			}
		}
	}

	sort.Float64s(centroids)
	return centroids
}

// nearest returns the index of the centroid closest to x, lowest index on
// ties.
func nearest(centroids []float64, x float64) int {
	dist := make([]float64, len(centroids))
	for j, c := range centroids {
		dist[j] = math.Abs(x - c)
	}
	return floats.MinIdx(dist)
}

func dedupSorted(xs []float64) []float64 {
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}
	return out
}

func segmentNames(centroids []float64) []string {
	if len(centroids) == 3 {
		return []string{models.LabelNegative, models.LabelNeutral, models.LabelPositive}
	}
	names := make([]string, len(centroids))
	for i := range centroids {
		names[i] = fmt.Sprintf("Segment %d", i)
	}
	return names
}
