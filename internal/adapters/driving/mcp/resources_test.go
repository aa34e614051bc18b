package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overtone-labs/stagehand/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	req := &mcp.ReadResourceRequest{}
	req.Params = &mcp.ReadResourceParams{URI: uri}
	return req
}

func TestServer_handleRunsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns runs as json", func(t *testing.T) {
		started := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
		runs := &mockRunService{runs: []domain.ImportSession{{
			ID:          "run-1",
			ProjectPath: "/projects/demo.logicx",
			SourcePath:  "/tmp/chords.mid",
			Phase:       domain.PhaseDone,
			StartedAt:   started,
			FinishedAt:  started.Add(2 * time.Second),
		}}}
		server := newTestServer(t, &Ports{
			Project:  &mockProjectService{},
			Importer: &mockImporter{},
			Runs:     runs,
		})

		result, err := server.handleRunsResource(ctx, readRequest("stagehand://runs"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "run-1")
		assert.Contains(t, result.Contents[0].Text, "\"phase\": \"done\"")
	})

	t.Run("empty list without run service", func(t *testing.T) {
		server := newTestServer(t, &Ports{Project: &mockProjectService{}, Importer: &mockImporter{}})

		result, err := server.handleRunsResource(ctx, readRequest("stagehand://runs"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleRunResource(t *testing.T) {
	ctx := context.Background()
	runs := &mockRunService{runs: []domain.ImportSession{{
		ID:    "run-1",
		Phase: domain.PhaseFailed,
		Failure: &domain.Failure{
			Kind:    domain.FailureDialogNotFound,
			Message: "timed out",
		},
		StartedAt: time.Now(),
	}}}
	server := newTestServer(t, &Ports{
		Project:  &mockProjectService{},
		Importer: &mockImporter{},
		Runs:     runs,
	})

	t.Run("returns one report", func(t *testing.T) {
		result, err := server.handleRunResource(ctx, readRequest("stagehand://runs/run-1"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "dialog_not_found")
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := server.handleRunResource(ctx, readRequest("stagehand://runs/ghost"))

		assert.Error(t, err)
	})
}

func TestExtractRunID(t *testing.T) {
	assert.Equal(t, "run-1", extractRunID("stagehand://runs/run-1"))
	assert.Equal(t, "", extractRunID("stagehand://other/run-1"))
}
