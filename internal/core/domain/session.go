package domain

import "time"

// Phase is a lifecycle state of an import session.
type Phase string

// Import session phases, in order of progression. PhaseFailed is an
// absorbing state reachable from every non-terminal phase.
const (
	PhaseIdle               Phase = "idle"
	PhaseActivated          Phase = "activated"
	PhaseDialogOpen         Phase = "dialog_open"
	PhasePathInjected       Phase = "path_injected"
	PhaseImportConfirmed    Phase = "import_confirmed"
	PhaseTempoPromptChecked Phase = "tempo_prompt_checked"
	PhaseDone               Phase = "done"
	PhaseFailed             Phase = "failed"
)

// Terminal reports whether no further transitions can occur.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// Failure records why a session reached PhaseFailed.
type Failure struct {
	// Kind classifies the failure for reporting and filtering.
	Kind FailureKind

	// Message carries the underlying error text.
	Message string
}

// FallbackChoice records which fallback candidate succeeded at one
// ambiguous step. The ordered log is the main diagnostic for
// host-version drift: a step that starts resolving via its second
// candidate signals the host relabelled a button.
type FallbackChoice struct {
	// Step names the orchestration step (e.g. "confirm", "tempo_prompt").
	Step string

	// Chosen is the label of the candidate that matched.
	Chosen string
}

// ImportSession is the working state of one import run. It is created
// per invocation and discarded after completion; the run store persists
// only the finished report, never resurrectable state.
type ImportSession struct {
	// ID uniquely identifies the session.
	ID string

	// ProjectPath is the host project being imported into.
	ProjectPath string

	// SourcePath is the absolute path of the exchange (MIDI) file.
	SourcePath string

	// Phase is the current lifecycle phase.
	Phase Phase

	// Failure is set when Phase is PhaseFailed.
	Failure *Failure

	// Fallbacks is the ordered log of fallback candidates that matched.
	Fallbacks []FallbackChoice

	// StartedAt is when the session began.
	StartedAt time.Time

	// FinishedAt is when the session reached a terminal phase.
	FinishedAt time.Time
}

// NewImportSession creates a session in PhaseIdle.
// The caller supplies the ID; domain stays free of ID generation.
func NewImportSession(id, projectPath, sourcePath string) *ImportSession {
	return &ImportSession{
		ID:          id,
		ProjectPath: projectPath,
		SourcePath:  sourcePath,
		Phase:       PhaseIdle,
		StartedAt:   time.Now(),
	}
}

// Advance moves the session to the given phase.
// Terminal phases also stamp FinishedAt.
func (s *ImportSession) Advance(p Phase) {
	s.Phase = p
	if p.Terminal() {
		s.FinishedAt = time.Now()
	}
}

// Fail moves the session to PhaseFailed with the given classification.
func (s *ImportSession) Fail(kind FailureKind, message string) {
	s.Failure = &Failure{Kind: kind, Message: message}
	s.Advance(PhaseFailed)
}

// RecordFallback appends a fallback choice to the session log.
func (s *ImportSession) RecordFallback(step, chosen string) {
	s.Fallbacks = append(s.Fallbacks, FallbackChoice{Step: step, Chosen: chosen})
}

// Succeeded reports whether the session reached PhaseDone.
func (s *ImportSession) Succeeded() bool {
	return s.Phase == PhaseDone
}

// Duration is the elapsed time between start and finish.
// Zero until the session reaches a terminal phase.
func (s *ImportSession) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
