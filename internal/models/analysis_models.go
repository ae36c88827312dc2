package models

import (
	"strconv"
	"strings"
)

// AnalysisResult is the per-row output of one technique over one column.
// Len always equals the number of rows in the analyzed dataset and Row(i)
// returns one value per OutputColumns entry.
type AnalysisResult interface {
	Technique() Technique
	Len() int
	OutputColumns() []string
	Row(i int) []string
}

// Summarizer is implemented by results that carry group level metadata
// (keywords per topic, word frequencies, cluster centroids...).
type Summarizer interface {
	SummaryColumns() []string
	SummaryRows() [][]string
}

type SentimentResult struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

func (r *SentimentResult) Technique() Technique    { return TechniqueSentiment }
func (r *SentimentResult) Len() int                { return len(r.Labels) }
func (r *SentimentResult) OutputColumns() []string { return []string{"Sentiment"} }
func (r *SentimentResult) Row(i int) []string      { return []string{r.Labels[i]} }

type EmotionResult struct {
	Labels []string `json:"labels"`
}

func (r *EmotionResult) Technique() Technique    { return TechniqueEmotion }
func (r *EmotionResult) Len() int                { return len(r.Labels) }
func (r *EmotionResult) OutputColumns() []string { return []string{"Emotion"} }
func (r *EmotionResult) Row(i int) []string      { return []string{r.Labels[i]} }

// TopicResult assigns every row its dominant topic. Rows without a single
// in-vocabulary term are left at -1.
type TopicResult struct {
	Topics      int        `json:"topics"`
	Assignments []int      `json:"assignments"`
	Keywords    [][]string `json:"keywords"`
}

func (r *TopicResult) Technique() Technique    { return TechniqueTopic }
func (r *TopicResult) Len() int                { return len(r.Assignments) }
func (r *TopicResult) OutputColumns() []string { return []string{"Topic"} }
func (r *TopicResult) Row(i int) []string {
	return []string{strconv.Itoa(r.Assignments[i])}
}

func (r *TopicResult) SummaryColumns() []string {
	return []string{"Topic", "Keywords", "Documents"}
}

func (r *TopicResult) SummaryRows() [][]string {
	counts := make([]int, r.Topics)
	for _, a := range r.Assignments {
		if a >= 0 && a < r.Topics {
			counts[a]++
		}
	}

	rows := make([][]string, 0, r.Topics)
	for t := 0; t < r.Topics; t++ {
		var words []string
		if t < len(r.Keywords) {
			words = r.Keywords[t]
		}
		rows = append(rows, []string{
			strconv.Itoa(t),
			strings.Join(words, ", "),
			strconv.Itoa(counts[t]),
		})
	}
	return rows
}

type WordFrequency struct {
	Word   string  `json:"word"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

type WordCloudResult struct {
	Keywords    [][]string      `json:"keywords"`
	Frequencies []WordFrequency `json:"frequencies"`
	// TopWords bounds the summary table; Frequencies holds the full ranking.
	TopWords int `json:"top_words"`
}

func (r *WordCloudResult) Technique() Technique    { return TechniqueWordCloud }
func (r *WordCloudResult) Len() int                { return len(r.Keywords) }
func (r *WordCloudResult) OutputColumns() []string { return []string{"Keywords"} }
func (r *WordCloudResult) Row(i int) []string {
	return []string{strings.Join(r.Keywords[i], " ")}
}

// Top returns at most TopWords entries of the ranking.
func (r *WordCloudResult) Top() []WordFrequency {
	if r.TopWords > 0 && len(r.Frequencies) > r.TopWords {
		return r.Frequencies[:r.TopWords]
	}
	return r.Frequencies
}

func (r *WordCloudResult) SummaryColumns() []string { return []string{"Word", "Frequency"} }

func (r *WordCloudResult) SummaryRows() [][]string {
	top := r.Top()
	rows := make([][]string, 0, len(top))
	for _, f := range top {
		rows = append(rows, []string{f.Word, strconv.Itoa(f.Count)})
	}
	return rows
}

// SegmentationResult clusters rows by sentiment score. Cluster ids are
// ordered by ascending centroid, so cluster 0 is always the most negative.
type SegmentationResult struct {
	Scores    []float64 `json:"scores"`
	Clusters  []int     `json:"clusters"`
	Centroids []float64 `json:"centroids"`
	Segments  []string  `json:"segments"`
}

func (r *SegmentationResult) Technique() Technique { return TechniqueSegmentation }
func (r *SegmentationResult) Len() int             { return len(r.Clusters) }
func (r *SegmentationResult) OutputColumns() []string {
	return []string{"Sentiment Score", "Cluster"}
}
func (r *SegmentationResult) Row(i int) []string {
	return []string{formatFloat(r.Scores[i]), strconv.Itoa(r.Clusters[i])}
}

// Sizes counts rows per cluster.
func (r *SegmentationResult) Sizes() []int {
	sizes := make([]int, len(r.Centroids))
	for _, c := range r.Clusters {
		if c >= 0 && c < len(sizes) {
			sizes[c]++
		}
	}
	return sizes
}

func (r *SegmentationResult) SummaryColumns() []string {
	return []string{"Cluster", "Segment", "Centroid", "Size"}
}

func (r *SegmentationResult) SummaryRows() [][]string {
	sizes := r.Sizes()
	rows := make([][]string, 0, len(r.Centroids))
	for c, centroid := range r.Centroids {
		rows = append(rows, []string{
			strconv.Itoa(c),
			r.Segments[c],
			formatFloat(centroid),
			strconv.Itoa(sizes[c]),
		})
	}
	return rows
}

type FeatureSummary struct {
	Feature   string  `json:"feature"`
	Sentiment float64 `json:"sentiment"`
	Mentions  int     `json:"mentions"`
}

type FeatureSentimentResult struct {
	Mentions [][]string       `json:"mentions"`
	Scores   []float64        `json:"scores"`
	Summary  []FeatureSummary `json:"summary"`
}

func (r *FeatureSentimentResult) Technique() Technique { return TechniqueFeatureSentiment }
func (r *FeatureSentimentResult) Len() int             { return len(r.Mentions) }
func (r *FeatureSentimentResult) OutputColumns() []string {
	return []string{"Features", "Feature Sentiment"}
}
func (r *FeatureSentimentResult) Row(i int) []string {
	return []string{strings.Join(r.Mentions[i], ", "), formatFloat(r.Scores[i])}
}

func (r *FeatureSentimentResult) SummaryColumns() []string {
	return []string{"Feature", "Sentiment", "Mentions"}
}

func (r *FeatureSentimentResult) SummaryRows() [][]string {
	rows := make([][]string, 0, len(r.Summary))
	for _, s := range r.Summary {
		rows = append(rows, []string{s.Feature, formatFloat(s.Sentiment), strconv.Itoa(s.Mentions)})
	}
	return rows
}

type AspectSentiment struct {
	Aspect string `json:"aspect"`
	Label  string `json:"label"`
}

type AspectCount struct {
	Aspect   string `json:"aspect"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
}

type AspectSentimentResult struct {
	Rows    [][]AspectSentiment `json:"rows"`
	Summary []AspectCount       `json:"summary"`
}

func (r *AspectSentimentResult) Technique() Technique    { return TechniqueAspectSentiment }
func (r *AspectSentimentResult) Len() int                { return len(r.Rows) }
func (r *AspectSentimentResult) OutputColumns() []string { return []string{"Aspect Sentiment"} }

// Row renders the aspects of row i as "Aspect: Label" pairs joined by "; ".
func (r *AspectSentimentResult) Row(i int) []string {
	parts := make([]string, 0, len(r.Rows[i]))
	for _, a := range r.Rows[i] {
		parts = append(parts, a.Aspect+": "+a.Label)
	}
	return []string{strings.Join(parts, "; ")}
}

func (r *AspectSentimentResult) SummaryColumns() []string {
	return []string{"Aspect", LabelPositive, LabelNeutral, LabelNegative}
}

func (r *AspectSentimentResult) SummaryRows() [][]string {
	rows := make([][]string, 0, len(r.Summary))
	for _, s := range r.Summary {
		rows = append(rows, []string{
			s.Aspect,
			strconv.Itoa(s.Positive),
			strconv.Itoa(s.Neutral),
			strconv.Itoa(s.Negative),
		})
	}
	return rows
}

type IntensityResult struct {
	Scores []float64 `json:"scores"`
}

func (r *IntensityResult) Technique() Technique    { return TechniqueIntensity }
func (r *IntensityResult) Len() int                { return len(r.Scores) }
func (r *IntensityResult) OutputColumns() []string { return []string{"Sentiment Intensity"} }
func (r *IntensityResult) Row(i int) []string      { return []string{formatFloat(r.Scores[i])} }

type ContextualResult struct {
	Labels     []string  `json:"labels"`
	Confidence []float64 `json:"confidence"`
}

func (r *ContextualResult) Technique() Technique { return TechniqueContextual }
func (r *ContextualResult) Len() int             { return len(r.Labels) }
func (r *ContextualResult) OutputColumns() []string {
	return []string{"Contextual Sentiment", "Confidence"}
}
func (r *ContextualResult) Row(i int) []string {
	return []string{r.Labels[i], formatFloat(r.Confidence[i])}
}
