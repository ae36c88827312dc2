package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spacesedan/sentiscope/internal/cache"
	"github.com/spacesedan/sentiscope/internal/dataset"
)

var (
	ErrNoDataset = errors.New("no dataset")
	ErrNoColumn  = errors.New("no column selected")
)

// NotReadyError is returned by Admit when a page has nothing to analyze yet.
type NotReadyError struct {
	Reason string
	err    error
}

func (e *NotReadyError) Error() string { return e.Reason }
func (e *NotReadyError) Unwrap() error { return e.err }

func notReady(err error) *NotReadyError {
	return &NotReadyError{Reason: err.Error(), err: err}
}

// Ready is the admitted input of an analysis page.
type Ready struct {
	Dataset *dataset.Dataset
	Column  string
}

// Session is the state shared by every page of one user: the uploaded
// dataset, the selected column and the result cache.
type Session struct {
	ID string

	mu       sync.RWMutex
	dataset  *dataset.Dataset
	column   string
	cache    *cache.Cache
	lastSeen time.Time
}

func New(id string) *Session {
	return &Session{
		ID:       id,
		cache:    cache.New(),
		lastSeen: time.Now(),
	}
}

// Load replaces the dataset. The column selection survives only when the new
// dataset has a column of the same name; the return value reports that.
func (s *Session) Load(ds *dataset.Dataset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = ds
	if s.column != "" && (ds == nil || !ds.Has(s.column)) {
		s.column = ""
	}
	return s.column != ""
}

func (s *Session) SelectColumn(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dataset == nil {
		return ErrNoDataset
	}
	if !s.dataset.Has(name) {
		return fmt.Errorf("%w: %q", dataset.ErrUnknownColumn, name)
	}
	s.column = name
	return nil
}

// Admit reports whether both a dataset and a column are present. It has no
// side effects.
func (s *Session) Admit() (Ready, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dataset == nil {
		return Ready{}, notReady(ErrNoDataset)
	}
	if s.column == "" {
		return Ready{}, notReady(ErrNoColumn)
	}
	return Ready{Dataset: s.dataset, Column: s.column}, nil
}

func (s *Session) Dataset() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

func (s *Session) Column() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.column
}

func (s *Session) Cache() *cache.Cache { return s.cache }

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastSeen)
}
