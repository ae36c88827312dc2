package analysis

import (
	"context"
	"errors"
	"strings"

	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
)

var (
	ErrInvalidParams    = errors.New("invalid parameters")
	ErrUnknownTechnique = errors.New("unknown technique")
	ErrEmptyVocabulary  = errors.New("no terms left after cleaning")
	ErrNoAnalyzableRows = errors.New("column has no analyzable text")
	ErrModelUnavailable = errors.New("sentiment model is unavailable")
)

// Analyzer computes one technique over one column. Analyze must return a
// result with exactly one output per dataset row; rows that cannot be analyzed
// get the technique's neutral default instead of failing the whole run.
type Analyzer interface {
	Technique() models.Technique
	// Params normalizes p for this technique: defaults are filled in,
	// bounds are checked and irrelevant knobs are cleared so they never
	// take part in the fingerprint.
	Params(p models.Params) (models.Params, error)
	Analyze(ctx context.Context, ds *dataset.Dataset, column string, p models.Params) (models.AnalysisResult, error)
}

// fixedParams is embedded by analyzers that take no parameters.
type fixedParams struct{}

func (fixedParams) Params(models.Params) (models.Params, error) {
	return models.Params{}, nil
}

// columnText returns the text of every row of column. ok[i] is false for
// missing, numeric and blank cells.
func columnText(ds *dataset.Dataset, column string) (texts []string, ok []bool, err error) {
	cells, err := ds.Column(column)
	if err != nil {
		return nil, nil, err
	}

	texts = make([]string, len(cells))
	ok = make([]bool, len(cells))
	for i, c := range cells {
		if c.IsText() && strings.TrimSpace(c.Text) != "" {
			texts[i] = c.Text
			ok[i] = true
		}
	}
	return texts, ok, nil
}

func hasAny(ok []bool) bool {
	for _, v := range ok {
		if v {
			return true
		}
	}
	return false
}
