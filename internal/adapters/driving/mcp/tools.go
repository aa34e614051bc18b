package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
)

// CreateProjectInput is the input schema for the create_project tool.
type CreateProjectInput struct {
	Name     string `json:"name" jsonschema:"name of the project to create"`
	TempoBPM int    `json:"tempo_bpm,omitempty" jsonschema:"intended tempo in BPM, recorded for guidance"`
	Key      string `json:"key,omitempty" jsonschema:"intended key signature, recorded for guidance"`
	Template string `json:"template,omitempty" jsonschema:"template bundle path, defaults to configuration"`
	Open     bool   `json:"open,omitempty" jsonschema:"open the project in the host after creating it"`
}

// CreateProjectOutput is the output schema for the create_project tool.
type CreateProjectOutput struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ImportMidiInput is the input schema for the import_midi tool.
type ImportMidiInput struct {
	ProjectPath string `json:"project_path,omitempty" jsonschema:"project the import targets, informational"`
	SourcePath  string `json:"source_path" jsonschema:"path to the MIDI file to import"`
}

// ImportMidiOutput is the output schema for the import_midi tool.
type ImportMidiOutput struct {
	SessionID string           `json:"session_id"`
	Phase     string           `json:"phase"`
	Fallbacks []FallbackOutput `json:"fallbacks,omitempty"`
}

// FallbackOutput is one fallback choice in the session log.
type FallbackOutput struct {
	Step   string `json:"step"`
	Chosen string `json:"chosen"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_project",
		Description: "Create a new project from the configured template",
	}, s.handleCreateProject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_midi",
		Description: "Import a MIDI file into the open project via the host's accessibility tree",
	}, s.handleImportMidi)
}

// handleCreateProject handles the create_project tool invocation.
func (s *Server) handleCreateProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateProjectInput,
) (*mcp.CallToolResult, CreateProjectOutput, error) {
	project, err := s.ports.Project.Provision(ctx, driving.ProvisionRequest{
		Name:         input.Name,
		TempoBPM:     input.TempoBPM,
		Key:          input.Key,
		TemplatePath: input.Template,
	})
	if err != nil {
		return nil, CreateProjectOutput{}, err
	}

	if input.Open {
		if err := s.ports.Project.Open(ctx, project.Path); err != nil {
			return nil, CreateProjectOutput{}, err
		}
	}

	return nil, CreateProjectOutput{
		Name: project.Name,
		Path: project.Path,
	}, nil
}

// handleImportMidi handles the import_midi tool invocation.
// The call blocks until the session reaches a terminal phase; the host
// flow cannot be aborted mid-flight.
func (s *Server) handleImportMidi(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportMidiInput,
) (*mcp.CallToolResult, ImportMidiOutput, error) {
	session, err := s.ports.Importer.Import(ctx, driving.ImportRequest{
		ProjectPath: input.ProjectPath,
		SourcePath:  input.SourcePath,
	})
	if err != nil {
		return nil, ImportMidiOutput{}, err
	}

	output := ImportMidiOutput{
		SessionID: session.ID,
		Phase:     string(session.Phase),
		Fallbacks: make([]FallbackOutput, len(session.Fallbacks)),
	}
	for i, choice := range session.Fallbacks {
		output.Fallbacks[i] = FallbackOutput{Step: choice.Step, Chosen: choice.Chosen}
	}

	return nil, output, nil
}
