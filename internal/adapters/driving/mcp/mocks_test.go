package mcp

import (
	"context"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
)

// mockProjectService records provisioning and open calls.
type mockProjectService struct {
	project *domain.Project
	err     error
	lastReq driving.ProvisionRequest
	opened  []string
	openErr error
}

var _ driving.ProjectService = (*mockProjectService)(nil)

func (m *mockProjectService) Provision(_ context.Context, req driving.ProvisionRequest) (*domain.Project, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.project, nil
}

func (m *mockProjectService) Open(_ context.Context, path string) error {
	if m.openErr != nil {
		return m.openErr
	}
	m.opened = append(m.opened, path)
	return nil
}

// mockImporter returns a scripted session.
type mockImporter struct {
	session *domain.ImportSession
	err     error
	lastReq driving.ImportRequest
}

var _ driving.ImportOrchestrator = (*mockImporter)(nil)

func (m *mockImporter) Import(_ context.Context, req driving.ImportRequest) (*domain.ImportSession, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func (m *mockImporter) Status(context.Context) (*driving.ImportStatus, error) {
	return nil, nil
}

// mockRunService serves scripted run reports.
type mockRunService struct {
	runs []domain.ImportSession
	err  error
}

var _ driving.RunService = (*mockRunService)(nil)

func (m *mockRunService) List(_ context.Context, limit int) ([]domain.ImportSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && len(m.runs) > limit {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockRunService) Get(_ context.Context, id string) (*domain.ImportSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
