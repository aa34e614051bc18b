// Package tui provides the interactive import progress view for stagehand.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Importer drives and reports on the import session.
	Importer driving.ImportOrchestrator
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Importer == nil {
		return ErrMissingImporter
	}
	return nil
}
