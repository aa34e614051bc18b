package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overtone-labs/stagehand/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleCreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions project", func(t *testing.T) {
		project := &mockProjectService{
			project: &domain.Project{Name: "house vibes", Path: "/projects/house vibes.logicx"},
		}
		server := newTestServer(t, &Ports{Project: project, Importer: &mockImporter{}})

		input := CreateProjectInput{Name: "house vibes", TempoBPM: 124, Key: "A minor"}
		_, output, err := server.handleCreateProject(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "house vibes", output.Name)
		assert.Equal(t, "/projects/house vibes.logicx", output.Path)
		assert.Equal(t, 124, project.lastReq.TempoBPM)
		assert.Empty(t, project.opened, "no open without the open flag")
	})

	t.Run("opens project when requested", func(t *testing.T) {
		project := &mockProjectService{
			project: &domain.Project{Name: "demo", Path: "/projects/demo.logicx"},
		}
		server := newTestServer(t, &Ports{Project: project, Importer: &mockImporter{}})

		input := CreateProjectInput{Name: "demo", Open: true}
		_, _, err := server.handleCreateProject(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, []string{"/projects/demo.logicx"}, project.opened)
	})

	t.Run("returns error on provisioning failure", func(t *testing.T) {
		project := &mockProjectService{err: domain.ErrTemplateNotFound}
		server := newTestServer(t, &Ports{Project: project, Importer: &mockImporter{}})

		_, _, err := server.handleCreateProject(ctx, nil, CreateProjectInput{Name: "demo"})

		assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	})
}

func TestServer_handleImportMidi(t *testing.T) {
	ctx := context.Background()

	t.Run("returns session report", func(t *testing.T) {
		session := domain.NewImportSession("s1", "/projects/demo.logicx", "/tmp/chords.mid")
		session.RecordFallback("confirm", "Import")
		session.Advance(domain.PhaseDone)
		importer := &mockImporter{session: session}
		server := newTestServer(t, &Ports{Project: &mockProjectService{}, Importer: importer})

		input := ImportMidiInput{SourcePath: "/tmp/chords.mid"}
		_, output, err := server.handleImportMidi(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "s1", output.SessionID)
		assert.Equal(t, "done", output.Phase)
		require.Len(t, output.Fallbacks, 1)
		assert.Equal(t, "Import", output.Fallbacks[0].Chosen)
		assert.Equal(t, "/tmp/chords.mid", importer.lastReq.SourcePath)
	})

	t.Run("returns error on import failure", func(t *testing.T) {
		importer := &mockImporter{err: errors.New("no window titled \"Import\"")}
		server := newTestServer(t, &Ports{Project: &mockProjectService{}, Importer: importer})

		_, _, err := server.handleImportMidi(ctx, nil, ImportMidiInput{SourcePath: "/tmp/x.mid"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no window")
	})
}
