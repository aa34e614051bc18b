package driving

import (
	"context"

	"github.com/overtone-labs/stagehand/internal/core/domain"
)

// RunService exposes the history of finished import sessions.
type RunService interface {
	// List returns recent session reports, newest first.
	List(ctx context.Context, limit int) ([]domain.ImportSession, error)

	// Get returns one session report by ID.
	Get(ctx context.Context, id string) (*domain.ImportSession, error)
}
