package dashboard

import (
	"context"
	"io"
	"time"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/analysis"
	"github.com/spacesedan/sentiscope/internal/cache"
	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/presentation"
	"github.com/spacesedan/sentiscope/internal/session"
)

// Page is everything an analysis page shows.
type Page struct {
	Technique   models.Technique      `json:"technique"`
	Column      string                `json:"column"`
	Params      models.Params         `json:"params"`
	Fingerprint string                `json:"fingerprint"`
	Cached      bool                  `json:"cached"`
	ComputedAt  time.Time             `json:"computed_at"`
	Rows        int                   `json:"rows"`
	Chart       presentation.Chart    `json:"chart"`
	Sample      presentation.Table    `json:"sample"`
	Summary     *presentation.Table   `json:"summary,omitempty"`
	Result      models.AnalysisResult `json:"result"`
}

// Dashboard runs the page flow: admit the session input, get or compute the
// cached result and derive the views from it.
type Dashboard struct {
	registry *analysis.Registry
	profile  config.Profile
}

func New(registry *analysis.Registry, profile config.Profile) *Dashboard {
	return &Dashboard{registry: registry, profile: profile}
}

func (d *Dashboard) Techniques() []models.Technique {
	return d.registry.Techniques()
}

type resolved struct {
	ready  session.Ready
	params models.Params
	entry  cache.Entry
	cached bool
}

func (d *Dashboard) resolve(ctx context.Context, sess *session.Session, t models.Technique, p models.Params) (resolved, error) {
	ready, err := sess.Admit()
	if err != nil {
		return resolved{}, err
	}

	a, err := d.registry.Get(t)
	if err != nil {
		return resolved{}, err
	}

	p, err = a.Params(p)
	if err != nil {
		return resolved{}, err
	}

	entry, cached, err := sess.Cache().GetOrCompute(ctx, t, ready.Dataset, ready.Column, p, a.Analyze)
	if err != nil {
		return resolved{}, err
	}

	return resolved{ready: ready, params: p, entry: entry, cached: cached}, nil
}

// View renders the page of technique t.
func (d *Dashboard) View(ctx context.Context, sess *session.Session, t models.Technique, p models.Params) (Page, error) {
	r, err := d.resolve(ctx, sess, t, p)
	if err != nil {
		return Page{}, err
	}

	chart, err := presentation.ChartFor(r.entry.Result, presentation.Options{HistogramBins: d.profile.Intensity.Bins})
	if err != nil {
		return Page{}, err
	}

	texts, err := r.ready.Dataset.Strings(r.ready.Column)
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Technique:   t,
		Column:      r.ready.Column,
		Params:      r.params,
		Fingerprint: r.entry.Fingerprint.String(),
		Cached:      r.cached,
		ComputedAt:  r.entry.ComputedAt,
		Rows:        r.entry.Result.Len(),
		Chart:       chart,
		Sample:      presentation.Sample(r.ready.Column, texts, r.entry.Result, d.profile.SampleRows),
		Result:      r.entry.Result,
	}
	if summary, ok := presentation.Summary(r.entry.Result); ok {
		page.Summary = &summary
	}
	return page, nil
}

// RenderChart writes the page chart of t as SVG.
func (d *Dashboard) RenderChart(ctx context.Context, sess *session.Session, t models.Technique, p models.Params, w io.Writer) error {
	r, err := d.resolve(ctx, sess, t, p)
	if err != nil {
		return err
	}

	chart, err := presentation.ChartFor(r.entry.Result, presentation.Options{HistogramBins: d.profile.Intensity.Bins})
	if err != nil {
		return err
	}
	return presentation.RenderSVG(w, chart)
}

// Export encodes the per-row result of t as CSV and returns it with its
// download filename.
func (d *Dashboard) Export(ctx context.Context, sess *session.Session, t models.Technique, p models.Params) (string, []byte, error) {
	r, err := d.resolve(ctx, sess, t, p)
	if err != nil {
		return "", nil, err
	}

	texts, err := r.ready.Dataset.Strings(r.ready.Column)
	if err != nil {
		return "", nil, err
	}

	data, err := export.Encode(r.ready.Column, texts, r.entry.Result)
	if err != nil {
		return "", nil, err
	}
	return export.Filename(t), data, nil
}

// ExportSummary encodes the group level table of t.
func (d *Dashboard) ExportSummary(ctx context.Context, sess *session.Session, t models.Technique, p models.Params) (string, []byte, error) {
	r, err := d.resolve(ctx, sess, t, p)
	if err != nil {
		return "", nil, err
	}

	data, err := export.EncodeSummary(r.entry.Result)
	if err != nil {
		return "", nil, err
	}
	return export.SummaryFilename(t), data, nil
}
