package driving

import (
	"context"

	"github.com/overtone-labs/stagehand/internal/core/domain"
)

// ImportRequest describes one import run.
type ImportRequest struct {
	// ProjectPath is the host project the import targets.
	ProjectPath string

	// SourcePath is the exchange (MIDI) file to import. It is resolved
	// to an absolute path and checked for existence; its internal
	// structure is never validated.
	SourcePath string
}

// ImportOrchestrator drives the host through the import flow.
type ImportOrchestrator interface {
	// Import runs one import session to a terminal phase. The returned
	// session reports the phase reached and, on failure, the failure
	// kind; the error is non-nil whenever the session failed.
	// At most one session runs at a time; a concurrent call returns
	// domain.ErrImportInProgress.
	Import(ctx context.Context, req ImportRequest) (*domain.ImportSession, error)

	// Status returns a snapshot of the running session, or nil when no
	// session is active. Used by progress displays, which poll rather
	// than subscribe.
	Status(ctx context.Context) (*ImportStatus, error)
}

// ImportStatus is a point-in-time snapshot of a running session.
type ImportStatus struct {
	// SessionID identifies the session.
	SessionID string

	// Phase is the phase the session had reached at snapshot time.
	Phase domain.Phase

	// SourcePath is the file being imported.
	SourcePath string

	// Fallbacks taken so far.
	Fallbacks []domain.FallbackChoice
}
