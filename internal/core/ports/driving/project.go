package driving

import (
	"context"

	"github.com/overtone-labs/stagehand/internal/core/domain"
)

// ProvisionRequest describes a project to create from the template.
type ProvisionRequest struct {
	// Name is the project name; the bundle extension is appended.
	Name string

	// TempoBPM is the intended tempo, recorded on the project.
	TempoBPM int

	// Key is the intended musical key, free text.
	Key string

	// TemplatePath overrides the configured template when non-empty.
	TemplatePath string

	// OutputDir overrides the configured output directory when non-empty.
	OutputDir string
}

// ProjectService provisions projects and hands them to the host.
type ProjectService interface {
	// Provision creates a new project from the template. A pre-existing
	// project of the same name is replaced. Partial progress is never
	// rolled back by later failures: a provisioned project is a useful
	// artifact even if a subsequent import does not complete.
	Provision(ctx context.Context, req ProvisionRequest) (*domain.Project, error)

	// Open asks the host to open the project. Fire-and-forget; no
	// confirmation that the host finished loading is polled.
	Open(ctx context.Context, path string) error
}
