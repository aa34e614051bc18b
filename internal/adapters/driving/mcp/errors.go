// Package mcp provides an MCP (Model Context Protocol) server adapter for
// stagehand. It enables AI assistants like Claude to provision projects and
// drive MIDI imports on the local host application.
package mcp

import "errors"

// ErrMissingProjectService is returned when the project service is not provided.
var ErrMissingProjectService = errors.New("mcp: project service is required")

// ErrMissingImporter is returned when the import orchestrator is not provided.
var ErrMissingImporter = errors.New("mcp: import orchestrator is required")
