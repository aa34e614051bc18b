package domain

import "errors"

// Domain errors represent automation and provisioning failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrImportInProgress indicates an import session is already running.
	// Two sessions against one host interleave keystrokes unpredictably.
	ErrImportInProgress = errors.New("import in progress")

	// ErrBackendUnavailable indicates no accessibility backend is present.
	// The real backend requires macOS with CGO enabled.
	ErrBackendUnavailable = errors.New("accessibility backend unavailable")

	// Provisioning errors.

	// ErrTemplateNotFound indicates the template project does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrOutputNotWritable indicates the output directory cannot be written.
	ErrOutputNotWritable = errors.New("output directory not writable")

	// ErrProvisioningFailed indicates the template copy failed partway.
	ErrProvisioningFailed = errors.New("provisioning failed")

	// Automation errors. Each maps to a terminal session failure;
	// none is retried beyond the bounded poll that detected it.

	// ErrMenuActionUnavailable indicates the host rejected the menu invocation.
	ErrMenuActionUnavailable = errors.New("menu action unavailable")

	// ErrDialogNotFound indicates the import dialog never appeared
	// within the configured poll bound.
	ErrDialogNotFound = errors.New("import dialog not found")

	// ErrConfirmButtonNotFound indicates no confirm button matched
	// inside the import dialog.
	ErrConfirmButtonNotFound = errors.New("confirm button not found")

	// ErrPromptUnresolved indicates the tempo prompt appeared but no
	// known button resolves it.
	ErrPromptUnresolved = errors.New("tempo prompt unresolved")

	// ErrCandidatesExhausted indicates every fallback candidate was absent.
	ErrCandidatesExhausted = errors.New("fallback candidates exhausted")
)

// FailureKind classifies a terminal session failure for reporting.
type FailureKind string

// Failure kinds persisted on run reports.
const (
	FailureTemplateNotFound      FailureKind = "template_not_found"
	FailureOutputNotWritable     FailureKind = "output_not_writable"
	FailureProvisioningFailed    FailureKind = "provisioning_failed"
	FailureMenuActionUnavailable FailureKind = "menu_action_unavailable"
	FailureDialogNotFound        FailureKind = "dialog_not_found"
	FailureConfirmButtonNotFound FailureKind = "confirm_button_not_found"
	FailurePromptUnresolved      FailureKind = "prompt_unresolved"
	FailureUnknown               FailureKind = "unknown"
)

// FailureKindForError maps a domain error to its reporting kind.
// Unrecognised errors classify as FailureUnknown.
func FailureKindForError(err error) FailureKind {
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		return FailureTemplateNotFound
	case errors.Is(err, ErrOutputNotWritable):
		return FailureOutputNotWritable
	case errors.Is(err, ErrProvisioningFailed):
		return FailureProvisioningFailed
	case errors.Is(err, ErrMenuActionUnavailable):
		return FailureMenuActionUnavailable
	case errors.Is(err, ErrDialogNotFound):
		return FailureDialogNotFound
	case errors.Is(err, ErrConfirmButtonNotFound):
		return FailureConfirmButtonNotFound
	case errors.Is(err, ErrPromptUnresolved), errors.Is(err, ErrCandidatesExhausted):
		return FailurePromptUnresolved
	default:
		return FailureUnknown
	}
}
