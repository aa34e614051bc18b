package cli

import (
	"context"
	"time"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
)

// fakeImporter records import requests and returns a scripted session.
type fakeImporter struct {
	session  *domain.ImportSession
	err      error
	requests []driving.ImportRequest
}

var _ driving.ImportOrchestrator = (*fakeImporter)(nil)

func (f *fakeImporter) Import(_ context.Context, req driving.ImportRequest) (*domain.ImportSession, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeImporter) Status(context.Context) (*driving.ImportStatus, error) {
	return nil, nil
}

// fakeProjectService records provisioning and open calls.
type fakeProjectService struct {
	project *domain.Project
	err     error
	lastReq driving.ProvisionRequest
	opened  []string
	openErr error
}

var _ driving.ProjectService = (*fakeProjectService)(nil)

func (f *fakeProjectService) Provision(_ context.Context, req driving.ProvisionRequest) (*domain.Project, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	if f.project != nil {
		return f.project, nil
	}
	return &domain.Project{
		Name:     req.Name,
		Path:     "/projects/" + domain.BundleName(req.Name),
		TempoBPM: req.TempoBPM,
		Key:      req.Key,
	}, nil
}

func (f *fakeProjectService) Open(_ context.Context, path string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = append(f.opened, path)
	return nil
}

// fakeRunService serves scripted run reports.
type fakeRunService struct {
	runs []domain.ImportSession
	err  error
}

var _ driving.RunService = (*fakeRunService)(nil)

func (f *fakeRunService) List(_ context.Context, limit int) ([]domain.ImportSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.runs) > limit {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

func (f *fakeRunService) Get(_ context.Context, id string) (*domain.ImportSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.runs {
		if f.runs[i].ID == id {
			return &f.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeSettingsService serves in-memory settings.
type fakeSettingsService struct {
	settings domain.AppSettings
	saved    *domain.AppSettings
	err      error
}

var _ driving.SettingsService = (*fakeSettingsService)(nil)

func (f *fakeSettingsService) Get() (*domain.AppSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	settings := f.settings
	return &settings, nil
}

func (f *fakeSettingsService) Save(settings *domain.AppSettings) error {
	if f.err != nil {
		return f.err
	}
	f.saved = settings
	return nil
}

func (f *fakeSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// doneSession builds a successful session report for output tests.
func doneSession(id, source string) *domain.ImportSession {
	session := domain.NewImportSession(id, "/projects/demo.logicx", source)
	session.Advance(domain.PhaseDone)
	session.FinishedAt = session.StartedAt.Add(2 * time.Second)
	return session
}

// setupTestServices wires fake services into the command vars and
// returns the fakes plus a cleanup restoring the previous wiring.
func setupTestServices() (*fakeImporter, *fakeProjectService, *fakeRunService, *fakeSettingsService, func()) {
	prevImporter := importOrchestrator
	prevProject := projectService
	prevRuns := runService
	prevSettings := settingsService

	importer := &fakeImporter{}
	project := &fakeProjectService{}
	runs := &fakeRunService{}
	settings := &fakeSettingsService{settings: domain.DefaultAppSettings()}

	SetServices(Services{
		Importer: importer,
		Project:  project,
		Runs:     runs,
		Settings: settings,
	})

	cleanup := func() {
		importOrchestrator = prevImporter
		projectService = prevProject
		runService = prevRuns
		settingsService = prevSettings
	}
	return importer, project, runs, settings, cleanup
}
