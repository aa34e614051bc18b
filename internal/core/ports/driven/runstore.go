package driven

import (
	"context"

	"github.com/overtone-labs/stagehand/internal/core/domain"
)

// RunStore persists reports of finished import sessions. The working
// session itself is discarded after completion; what is stored is an
// audit record (terminal phase, failure kind, fallback log) used to
// diagnose host-version drift.
type RunStore interface {
	// Save stores a finished session report.
	Save(ctx context.Context, session domain.ImportSession) error

	// Get retrieves one report by session ID.
	// Returns domain.ErrNotFound if no such session exists.
	Get(ctx context.Context, id string) (*domain.ImportSession, error)

	// List returns the most recent reports, newest first.
	// A limit <= 0 returns all reports.
	List(ctx context.Context, limit int) ([]domain.ImportSession, error)

	// Close releases resources.
	Close() error
}
