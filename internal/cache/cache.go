package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/models"
	"golang.org/x/sync/singleflight"
)

var (
	ErrComputePanic = errors.New("analysis panicked")
	ErrNilResult    = errors.New("analysis returned no result")
	ErrRowMismatch  = errors.New("result rows do not match dataset rows")
)

// ComputeFunc produces a fresh result for one technique.
type ComputeFunc func(ctx context.Context, ds *dataset.Dataset, column string, p models.Params) (models.AnalysisResult, error)

// Entry is a stored result and the fingerprint of the inputs behind it.
type Entry struct {
	Result      models.AnalysisResult
	Fingerprint Fingerprint
	ComputedAt  time.Time

	gen uint64
}

// Cache holds at most one entry per technique. Entries are replaced whole;
// a failed computation never touches the stored entry.
type Cache struct {
	mu      sync.RWMutex
	entries map[models.Technique]Entry
	flights singleflight.Group
	started uint64
	now     func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[models.Technique]Entry),
		now:     time.Now,
	}
}

// GetOrCompute returns the entry for t when its fingerprint matches
// (ds, column, p), otherwise runs fn and stores the result. The bool reports
// whether the stored entry was reused. Concurrent callers asking for the same
// technique and fingerprint share a single run of fn; a caller whose ctx ends
// stops waiting while the run carries on for the rest.
func (c *Cache) GetOrCompute(ctx context.Context, t models.Technique, ds *dataset.Dataset, column string, p models.Params, fn ComputeFunc) (Entry, bool, error) {
	fp := NewFingerprint(ds.Identity(), column, p)

	if e, ok := c.lookup(t, fp); ok {
		slog.Debug("[Cache] Hit",
			slog.String("technique", string(t)),
			slog.String("fingerprint", fp.String()[:12]))
		return e, true, nil
	}

	// the flight outlives its callers so one that gives up does not fail
	// the others waiting on it
	flightCtx := context.WithoutCancel(ctx)
	ch := c.flights.DoChan(string(t)+"/"+fp.String(), func() (interface{}, error) {
		if e, ok := c.lookup(t, fp); ok {
			return e, nil
		}

		c.mu.Lock()
		c.started++
		gen := c.started
		c.mu.Unlock()

		start := c.now()
		res, err := safeCompute(flightCtx, fn, ds, column, p)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, ErrNilResult
		}
		if res.Len() != ds.Len() {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrRowMismatch, res.Len(), ds.Len())
		}

		e := Entry{Result: res, Fingerprint: fp, ComputedAt: c.now(), gen: gen}
		if !c.store(t, e) {
			slog.Debug("[Cache] Newer entry already stored, not replacing",
				slog.String("technique", string(t)),
				slog.String("fingerprint", fp.String()[:12]))
			return e, nil
		}

		slog.Info("[Cache] Stored result",
			slog.String("technique", string(t)),
			slog.String("fingerprint", fp.String()[:12]),
			slog.Int("rows", res.Len()),
			slog.Duration("elapsed", e.ComputedAt.Sub(start)))
		return e, nil
	})

	var r singleflight.Result
	select {
	case <-ctx.Done():
		return Entry{}, false, fmt.Errorf("compute %s: %w", t, ctx.Err())
	case r = <-ch:
	}
	if r.Err != nil {
		slog.Warn("[Cache] Computation failed, keeping previous entry",
			slog.String("technique", string(t)),
			slog.String("error", r.Err.Error()))
		return Entry{}, false, fmt.Errorf("compute %s: %w", t, r.Err)
	}

	return r.Val.(Entry), false, nil
}

// store keeps e unless the entry for t comes from a computation that started
// later than e's.
func (c *Cache) store(t models.Technique, e Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.entries[t]; ok && cur.gen > e.gen {
		return false
	}
	c.entries[t] = e
	return true
}

// Entry returns the stored entry for t regardless of staleness.
func (c *Cache) Entry(t models.Technique) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[t]
	return e, ok
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[models.Technique]Entry)
}

func (c *Cache) lookup(t models.Technique, fp Fingerprint) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[t]
	if !ok || e.Fingerprint != fp {
		return Entry{}, false
	}
	return e, true
}

func safeCompute(ctx context.Context, fn ComputeFunc, ds *dataset.Dataset, column string, p models.Params) (res models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %v", ErrComputePanic, r)
		}
	}()
	return fn(ctx, ds, column, p)
}
