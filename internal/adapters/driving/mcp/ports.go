package mcp

import (
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Project provisions and opens projects.
	Project driving.ProjectService

	// Importer drives the MIDI-import flow.
	Importer driving.ImportOrchestrator

	// Runs exposes the history of finished import sessions.
	Runs driving.RunService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Project == nil {
		return ErrMissingProjectService
	}
	if p.Importer == nil {
		return ErrMissingImporter
	}
	// Runs is optional; the runs resource degrades to an empty list
	return nil
}
