package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidProfile = errors.New("invalid analysis profile")

// Profile holds the tunables shared by every analyzer. It is fixed for the
// lifetime of the process.
type Profile struct {
	PolarityThreshold float64             `yaml:"polarity_threshold"`
	SampleRows        int                 `yaml:"sample_rows"`
	Topics            TopicProfile        `yaml:"topics"`
	WordCloud         WordCloudProfile    `yaml:"wordcloud"`
	Segmentation      SegmentationProfile `yaml:"segmentation"`
	Features          []string            `yaml:"features"`
	Aspects           map[string]string   `yaml:"aspects"`
	Intensity         IntensityProfile    `yaml:"intensity"`
}

type TopicProfile struct {
	Min         int `yaml:"min"`
	Max         int `yaml:"max"`
	Default     int `yaml:"default"`
	TopWords    int `yaml:"top_words"`
	MaxFeatures int `yaml:"max_features"`
	Iterations  int `yaml:"iterations"`
}

type WordCloudProfile struct {
	TopWords    int `yaml:"top_words"`
	RowKeywords int `yaml:"row_keywords"`
}

type SegmentationProfile struct {
	Clusters   int `yaml:"clusters"`
	Iterations int `yaml:"iterations"`
}

type IntensityProfile struct {
	Bins int `yaml:"bins"`
}

func DefaultProfile() Profile {
	return Profile{
		PolarityThreshold: 0.05,
		SampleRows:        5,
		Topics: TopicProfile{
			Min:         2,
			Max:         10,
			Default:     3,
			TopWords:    10,
			MaxFeatures: 1000,
			Iterations:  300,
		},
		WordCloud: WordCloudProfile{
			TopWords:    15,
			RowKeywords: 3,
		},
		Segmentation: SegmentationProfile{
			Clusters:   3,
			Iterations: 100,
		},
		Features: []string{"price", "quality", "service", "delivery", "experience"},
		Aspects: map[string]string{
			"battery":  "Battery Life",
			"camera":   "Camera",
			"service":  "Customer Service",
			"price":    "Pricing",
			"delivery": "Delivery Experience",
			"design":   "Design & Build",
		},
		Intensity: IntensityProfile{Bins: 30},
	}
}

// LoadProfile reads a YAML profile from path. Fields left out of the file keep
// their defaults. An empty path returns DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	return ParseProfile(raw)
}

func ParseProfile(raw []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	p = p.withDefaults()
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) withDefaults() Profile {
	d := DefaultProfile()

	if p.PolarityThreshold == 0 {
		p.PolarityThreshold = d.PolarityThreshold
	}
	if p.SampleRows == 0 {
		p.SampleRows = d.SampleRows
	}
	if p.Topics.Min == 0 {
		p.Topics.Min = d.Topics.Min
	}
	if p.Topics.Max == 0 {
		p.Topics.Max = d.Topics.Max
	}
	if p.Topics.Default == 0 {
		p.Topics.Default = d.Topics.Default
	}
	if p.Topics.TopWords == 0 {
		p.Topics.TopWords = d.Topics.TopWords
	}
	if p.Topics.MaxFeatures == 0 {
		p.Topics.MaxFeatures = d.Topics.MaxFeatures
	}
	if p.Topics.Iterations == 0 {
		p.Topics.Iterations = d.Topics.Iterations
	}
	if p.WordCloud.TopWords == 0 {
		p.WordCloud.TopWords = d.WordCloud.TopWords
	}
	if p.WordCloud.RowKeywords == 0 {
		p.WordCloud.RowKeywords = d.WordCloud.RowKeywords
	}
	if p.Segmentation.Clusters == 0 {
		p.Segmentation.Clusters = d.Segmentation.Clusters
	}
	if p.Segmentation.Iterations == 0 {
		p.Segmentation.Iterations = d.Segmentation.Iterations
	}
	if len(p.Features) == 0 {
		p.Features = d.Features
	}
	if len(p.Aspects) == 0 {
		p.Aspects = d.Aspects
	}
	if p.Intensity.Bins == 0 {
		p.Intensity.Bins = d.Intensity.Bins
	}
	return p
}

func (p Profile) Validate() error {
	switch {
	case p.PolarityThreshold < 0 || p.PolarityThreshold >= 1:
		return fmt.Errorf("%w: polarity_threshold must be in [0,1)", ErrInvalidProfile)
	case p.Topics.Min < 1 || p.Topics.Min > p.Topics.Max:
		return fmt.Errorf("%w: topics.min must be between 1 and topics.max", ErrInvalidProfile)
	case p.Topics.Default < p.Topics.Min || p.Topics.Default > p.Topics.Max:
		return fmt.Errorf("%w: topics.default must be within [min,max]", ErrInvalidProfile)
	case p.Segmentation.Clusters < 1:
		return fmt.Errorf("%w: segmentation.clusters must be positive", ErrInvalidProfile)
	case p.Intensity.Bins < 1:
		return fmt.Errorf("%w: intensity.bins must be positive", ErrInvalidProfile)
	case p.SampleRows < 0 || p.WordCloud.TopWords < 0 || p.WordCloud.RowKeywords < 0:
		return fmt.Errorf("%w: sizes must not be negative", ErrInvalidProfile)
	}
	return nil
}
