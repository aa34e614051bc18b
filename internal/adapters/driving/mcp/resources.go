package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/overtone-labs/stagehand/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for stagehand resources.
	uriScheme = "stagehand://"

	// runsListLimit bounds the runs resource listing.
	runsListLimit = 50
)

// runInfo is the wire shape of a run report.
type runInfo struct {
	ID          string           `json:"id"`
	ProjectPath string           `json:"project_path"`
	SourcePath  string           `json:"source_path"`
	Phase       string           `json:"phase"`
	Failure     string           `json:"failure,omitempty"`
	Fallbacks   []FallbackOutput `json:"fallbacks,omitempty"`
	StartedAt   time.Time        `json:"started_at"`
	DurationMS  int64            `json:"duration_ms,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing recent import runs.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recent import session reports, newest first",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	// Template for one run report.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{runId}",
		Name:        "run-report",
		Description: "Full report of one import session",
		MIMEType:    "application/json",
	}, s.handleRunResource)
}

// handleRunsResource returns recent import session reports.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Runs == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	runs, err := s.ports.Runs.List(ctx, runsListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		infos[i] = runToInfo(&runs[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling runs: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleRunResource returns one run report by ID.
func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Runs == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	run, err := s.ports.Runs.Get(ctx, runID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info := runToInfo(run)
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling run: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// runToInfo converts a session report to its wire shape.
func runToInfo(run *domain.ImportSession) runInfo {
	info := runInfo{
		ID:          run.ID,
		ProjectPath: run.ProjectPath,
		SourcePath:  run.SourcePath,
		Phase:       string(run.Phase),
		StartedAt:   run.StartedAt,
		DurationMS:  run.Duration().Milliseconds(),
	}
	if run.Failure != nil {
		info.Failure = string(run.Failure.Kind)
	}
	if len(run.Fallbacks) > 0 {
		info.Fallbacks = make([]FallbackOutput, len(run.Fallbacks))
		for i, choice := range run.Fallbacks {
			info.Fallbacks[i] = FallbackOutput{Step: choice.Step, Chosen: choice.Chosen}
		}
	}
	return info
}

// extractRunID extracts the run ID from a URI like stagehand://runs/{runId}.
func extractRunID(uri string) string {
	const prefix = uriScheme + "runs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
