package tui

import "errors"

// ErrMissingImporter indicates the import orchestrator port was not provided.
var ErrMissingImporter = errors.New("import orchestrator is required")
