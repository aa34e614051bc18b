package services

import (
	"context"
	"fmt"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
)

// Ensure RunService implements the interface.
var _ driving.RunService = (*RunService)(nil)

// RunService exposes the history of finished import sessions.
type RunService struct {
	store driven.RunStore
}

// NewRunService creates a run service over the given store.
func NewRunService(store driven.RunStore) *RunService {
	return &RunService{store: store}
}

// List returns recent session reports, newest first.
func (s *RunService) List(ctx context.Context, limit int) ([]domain.ImportSession, error) {
	runs, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Get returns one session report by ID.
func (s *RunService) Get(ctx context.Context, id string) (*domain.ImportSession, error) {
	run, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting run %s: %w", id, err)
	}
	return run, nil
}
