// Package memory provides in-memory implementations of the storage
// ports, used in tests and when no data directory is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.ImportSession
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.ImportSession),
	}
}

// Save stores a finished session report.
func (s *RunStore) Save(_ context.Context, session domain.ImportSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[session.ID] = session
	return nil
}

// Get retrieves one report by session ID.
func (s *RunStore) Get(_ context.Context, id string) (*domain.ImportSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// List returns reports newest first.
func (s *RunStore) List(_ context.Context, limit int) ([]domain.ImportSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]domain.ImportSession, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close releases resources. No-op for the in-memory store.
func (s *RunStore) Close() error {
	return nil
}
