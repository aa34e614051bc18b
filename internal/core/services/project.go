package services

import (
	"context"
	"fmt"
	"time"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
	"github.com/overtone-labs/stagehand/internal/logger"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// ProjectService provisions projects from the template and asks the
// host to open them.
type ProjectService struct {
	provisioner driven.TemplateProvisioner
	ax          driven.Accessibility
	settings    domain.ProjectSettings
}

// NewProjectService creates a project service.
func NewProjectService(
	provisioner driven.TemplateProvisioner,
	ax driven.Accessibility,
	settings domain.ProjectSettings,
) *ProjectService {
	return &ProjectService{
		provisioner: provisioner,
		ax:          ax,
		settings:    settings,
	}
}

// Provision creates a new project from the template.
func (s *ProjectService) Provision(ctx context.Context, req driving.ProvisionRequest) (*domain.Project, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: project name required", domain.ErrInvalidInput)
	}

	template := req.TemplatePath
	if template == "" {
		template = s.settings.TemplatePath
	}
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = s.settings.OutputDir
	}

	logger.Info("Provisioning %q from template %s", req.Name, template)
	path, err := s.provisioner.Provision(ctx, template, domain.BundleName(req.Name), outputDir)
	if err != nil {
		return nil, fmt.Errorf("provisioning %q: %w", req.Name, err)
	}
	logger.Info("Project created: %s", path)

	return &domain.Project{
		Name:         req.Name,
		Path:         path,
		TemplatePath: template,
		TempoBPM:     req.TempoBPM,
		Key:          req.Key,
		CreatedAt:    time.Now(),
	}, nil
}

// Open asks the host to open the project. Fire-and-forget.
func (s *ProjectService) Open(ctx context.Context, path string) error {
	logger.Info("Opening project: %s", path)
	if err := s.ax.OpenProject(ctx, path); err != nil {
		return fmt.Errorf("opening project: %w", err)
	}
	return nil
}
