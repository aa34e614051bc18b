//go:build !darwin || !cgo

package ax

import (
	"context"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
)

// Ensure the backend satisfies the driven port.
var _ driven.Accessibility = (*Backend)(nil)

// Backend drives a host application through the macOS accessibility API.
// This is a stub for builds without macOS or without CGO.
type Backend struct {
	host domain.HostSettings
}

// New creates a backend for the given host.
// This is a stub for builds without macOS or without CGO.
func New(host domain.HostSettings) *Backend {
	return &Backend{host: host}
}

// Activate brings the host application to the foreground.
func (b *Backend) Activate(context.Context) error {
	return domain.ErrBackendUnavailable
}

// OpenProject asks the host to open the given project path.
func (b *Backend) OpenProject(context.Context, string) error {
	return domain.ErrBackendUnavailable
}

// InvokeMenu presses the menu item at the given path.
func (b *Backend) InvokeMenu(context.Context, ...string) error {
	return domain.ErrBackendUnavailable
}

// Windows snapshots the host's current top-level windows.
func (b *Backend) Windows(context.Context) ([]driven.Element, error) {
	return nil, domain.ErrBackendUnavailable
}

// Buttons snapshots the buttons in the subtree of scope.
func (b *Backend) Buttons(context.Context, driven.Element) ([]driven.Element, error) {
	return nil, domain.ErrBackendUnavailable
}

// TextFields snapshots the text fields in the subtree of scope.
func (b *Backend) TextFields(context.Context, driven.Element) ([]driven.Element, error) {
	return nil, domain.ErrBackendUnavailable
}

// SendKey sends a single key event to the host.
func (b *Backend) SendKey(context.Context, string) error {
	return domain.ErrBackendUnavailable
}

// SendKeyChord sends a key with the given modifiers held.
func (b *Backend) SendKeyChord(context.Context, string, []domain.Modifier) error {
	return domain.ErrBackendUnavailable
}

// Click clicks at a screen coordinate.
func (b *Backend) Click(context.Context, domain.Point) error {
	return domain.ErrBackendUnavailable
}
