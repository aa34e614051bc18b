package driven

import (
	"context"

	"github.com/overtone-labs/stagehand/internal/core/domain"
)

// Element is an opaque handle to one live UI element in the host's
// accessibility tree. A handle is valid only as long as the underlying
// element exists; callers must never retain one across a polling cycle,
// because the host may replace a dialog with a new element of different
// identity even when it is semantically "the same" window.
type Element interface {
	// Attr reads one attribute, lazily, from the live element.
	// Absent attributes report ok=false; absence is never an error.
	Attr(name domain.AttrName) (domain.AttrValue, bool)

	// Press performs the element's press action (buttons, menu items).
	// Fire-and-forget: success means the request was dispatched, not
	// that the host's UI changed as intended.
	Press(ctx context.Context) error
}

// Accessibility inspects and drives the host application through the
// operating system's accessibility tree. It is the single writer of the
// host's UI state; running two sessions against one host concurrently
// is unsupported.
//
// All action methods are fire-and-forget dispatch requests. Callers
// verify intended effects independently, typically via a bounded poll.
type Accessibility interface {
	// Activate brings the host application to the foreground.
	Activate(ctx context.Context) error

	// OpenProject asks the host to open the given project path.
	// No confirmation is polled; the request is fire-and-forget.
	OpenProject(ctx context.Context, path string) error

	// InvokeMenu presses the menu item at the given path
	// (e.g. "File", "Import", "MIDI File…").
	InvokeMenu(ctx context.Context, path ...string) error

	// Windows snapshots the host's current top-level windows in the
	// host's native enumeration order. Never blocks, never retries.
	Windows(ctx context.Context) ([]Element, error)

	// Buttons snapshots the buttons in the subtree of scope.
	Buttons(ctx context.Context, scope Element) ([]Element, error)

	// TextFields snapshots the text fields in the subtree of scope.
	TextFields(ctx context.Context, scope Element) ([]Element, error)

	// SendKey sends a single key event to the host.
	SendKey(ctx context.Context, key string) error

	// SendKeyChord sends a key with the given modifiers held.
	SendKeyChord(ctx context.Context, key string, mods []domain.Modifier) error

	// Click clicks at a screen coordinate.
	Click(ctx context.Context, p domain.Point) error
}
