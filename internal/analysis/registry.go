package analysis

import (
	"fmt"
	"sync"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/models"
)

type Registry struct {
	mu        sync.RWMutex
	analyzers map[models.Technique]Analyzer
	order     []models.Technique
}

func NewRegistry(analyzers ...Analyzer) *Registry {
	r := &Registry{analyzers: make(map[models.Technique]Analyzer)}
	for _, a := range analyzers {
		r.Register(a)
	}
	return r
}

// DefaultAnalyzers returns every analyzer that runs in process.
func DefaultAnalyzers(p config.Profile) []Analyzer {
	return []Analyzer{
		NewSentimentAnalyzer(p.PolarityThreshold),
		NewEmotionAnalyzer(),
		NewTopicAnalyzer(p.Topics),
		NewWordCloudAnalyzer(p.WordCloud),
		NewSegmentationAnalyzer(p.Segmentation),
		NewFeatureAnalyzer(p.Features),
		NewAspectAnalyzer(p.Aspects, p.PolarityThreshold),
		NewIntensityAnalyzer(),
	}
}

// Register adds a, replacing any analyzer of the same technique.
func (r *Registry) Register(a Analyzer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := a.Technique()
	if _, exists := r.analyzers[t]; !exists {
		r.order = append(r.order, t)
	}
	r.analyzers[t] = a
}

func (r *Registry) Get(t models.Technique) (Analyzer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.analyzers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTechnique, t)
	}
	return a, nil
}

// Techniques lists registered techniques in registration order.
func (r *Registry) Techniques() []models.Technique {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Technique(nil), r.order...)
}
