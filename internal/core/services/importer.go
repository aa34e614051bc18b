package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
	"github.com/overtone-labs/stagehand/internal/logger"
)

// Ensure ImportOrchestrator implements the interface.
var _ driving.ImportOrchestrator = (*ImportOrchestrator)(nil)

// verifyAttempts bounds the optional path-field verification poll.
const verifyAttempts = 10

// ImportOrchestrator drives the host through the MIDI-import flow:
// invoke the import menu action, poll for the dialog, inject the file
// path character by character, confirm, then check for and resolve the
// conditional tempo prompt. All interaction is strictly sequential with
// at most one outstanding action; the bounded poller is the only retry
// mechanism, and it retries idempotent queries only.
type ImportOrchestrator struct {
	ax       driven.Accessibility
	finder   *Finder
	runStore driven.RunStore // optional; nil disables run reports
	settings domain.AutomationSettings

	// Status tracking
	mu      sync.RWMutex
	running bool
	session *domain.ImportSession
}

// NewImportOrchestrator creates an import orchestrator.
// runStore may be nil; session reports are then not persisted.
func NewImportOrchestrator(
	ax driven.Accessibility,
	runStore driven.RunStore,
	settings domain.AutomationSettings,
) *ImportOrchestrator {
	return &ImportOrchestrator{
		ax:       ax,
		finder:   NewFinder(ax),
		runStore: runStore,
		settings: settings,
	}
}

// Import runs one session to a terminal phase.
func (o *ImportOrchestrator) Import(ctx context.Context, req driving.ImportRequest) (*domain.ImportSession, error) {
	// 1. Single-flight guard: two sessions against one host would
	// interleave keystrokes unpredictably.
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, domain.ErrImportInProgress
	}
	o.running = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.running = false
		o.session = nil
		o.mu.Unlock()
	}()

	// 2. Resolve and check the exchange file. Its internal structure is
	// never validated, only existence and absolute-path resolvability.
	abs, err := filepath.Abs(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %q: %w", domain.ErrInvalidInput, req.SourcePath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: exchange file %q: %w", domain.ErrInvalidInput, abs, err)
	}

	session := domain.NewImportSession(uuid.NewString(), req.ProjectPath, abs)
	o.mu.Lock()
	o.session = session
	o.mu.Unlock()

	logger.Section("Import")
	logger.Info("Starting import session %s: %s", session.ID, abs)

	runErr := o.run(ctx, session, abs)
	o.mu.Lock()
	phaseReached := session.Phase
	if runErr != nil {
		session.Fail(domain.FailureKindForError(runErr), runErr.Error())
	} else {
		session.Advance(domain.PhaseDone)
	}
	o.mu.Unlock()
	if runErr != nil {
		logger.Error("Import failed in phase %s: %v", phaseReached, runErr)
	} else {
		logger.Info("Import complete in %s", session.Duration())
	}

	o.saveReport(ctx, session)
	return session, runErr
}

// Status returns a snapshot of the running session, or nil when idle.
func (o *ImportOrchestrator) Status(_ context.Context) (*driving.ImportStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.session == nil {
		return nil, nil
	}
	status := &driving.ImportStatus{
		SessionID:  o.session.ID,
		Phase:      o.session.Phase,
		SourcePath: o.session.SourcePath,
		Fallbacks:  append([]domain.FallbackChoice(nil), o.session.Fallbacks...),
	}
	return status, nil
}

// run executes the state machine. Each transition failure is terminal
// for the session; blind re-running of a mutating transition is never
// correct, because the host is either in the expected state or it is not.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (o *ImportOrchestrator) run(ctx context.Context, session *domain.ImportSession, absPath string) error {
	timing := o.settings.Timing
	labels := o.settings.Labels

	// 1. Idle -> Activated: bring the host forward, park the selection
	// on the last track so imported regions land below the arrangement,
	// then invoke the import menu action. Track selection is advisory;
	// the import proceeds either way.
	if err := o.ax.Activate(ctx); err != nil {
		return fmt.Errorf("%w: activating host: %w", domain.ErrMenuActionUnavailable, err)
	}
	if len(labels.SelectTrackMenu) > 0 {
		if err := o.ax.InvokeMenu(ctx, labels.SelectTrackMenu...); err != nil {
			logger.Warn("Selecting last track: %v", err)
		}
	}
	if err := o.ax.InvokeMenu(ctx, labels.ImportMenu...); err != nil {
		return fmt.Errorf("%w: menu %v: %w", domain.ErrMenuActionUnavailable, labels.ImportMenu, err)
	}
	o.advance(session, domain.PhaseActivated)

	// 2. Activated -> DialogOpen: the import dialog is expected to
	// always appear, so poll exhaustion signals a problem (host not
	// responding, wrong menu path).
	dialogQuery := func(ctx context.Context) []driven.Element {
		return o.finder.Windows(ctx, domain.TitleIs(labels.DialogTitle))
	}
	if !Poll(ctx, dialogQuery, timing.PollInterval, timing.DialogPollAttempts).Matched() {
		return fmt.Errorf("%w: no window titled %q after %d attempts",
			domain.ErrDialogNotFound, labels.DialogTitle, timing.DialogPollAttempts)
	}
	o.advance(session, domain.PhaseDialogOpen)

	// 3. DialogOpen -> PathInjected: reveal the go-to-folder sheet,
	// clear the pre-filled path, type the absolute path one character
	// at a time, then submit. Best-effort: unless VerifyPathField is
	// set, nothing confirms the text landed before submitting.
	typer := NewTyper(o.ax, timing.KeyDelay)
	if err := o.ax.Activate(ctx); err != nil {
		return fmt.Errorf("%w: re-activating host: %w", domain.ErrMenuActionUnavailable, err)
	}
	if err := o.ax.SendKeyChord(ctx, labels.PathRevealKey, labels.PathRevealModifiers); err != nil {
		return fmt.Errorf("revealing path sheet: %w", err)
	}
	if err := sleepCtx(ctx, timing.RevealSettle); err != nil {
		return fmt.Errorf("settling after reveal: %w", err)
	}
	if err := typer.Clear(ctx); err != nil {
		return fmt.Errorf("clearing path field: %w", err)
	}
	if err := typer.Type(ctx, absPath); err != nil {
		return fmt.Errorf("typing path: %w", err)
	}
	if o.settings.VerifyPathField {
		o.verifyPathField(ctx, typer, absPath)
	}
	if err := sleepCtx(ctx, timing.TypeSettle); err != nil {
		return fmt.Errorf("settling after typing: %w", err)
	}
	if err := typer.Submit(ctx); err != nil {
		return fmt.Errorf("submitting path: %w", err)
	}
	if err := sleepCtx(ctx, timing.SubmitSettle); err != nil {
		return fmt.Errorf("settling after submit: %w", err)
	}
	o.advance(session, domain.PhasePathInjected)

	// 4. PathInjected -> ImportConfirmed: press the dialog's confirm
	// button. Labels vary by host version, so this resolves through the
	// fallback chain; the dialog is re-queried per candidate rather
	// than holding a handle from step 2.
	chosen, err := ResolveFirst(ctx, o.buttonCandidates(
		labels.ConfirmButtons,
		domain.TitleIs(labels.DialogTitle),
	))
	if err != nil {
		return fmt.Errorf("%w: tried %v: %w", domain.ErrConfirmButtonNotFound, labels.ConfirmButtons, err)
	}
	o.recordFallback(session, "confirm", chosen)
	o.advance(session, domain.PhaseImportConfirmed)

	// 5. ImportConfirmed -> TempoPromptChecked: the tempo prompt only
	// appears when the file's embedded tempo conflicts with the
	// project's, so poll exhaustion here is a normal, successful
	// outcome. The prompt has no title; it is matched on description.
	promptQuery := func(ctx context.Context) []driven.Element {
		return o.finder.Windows(ctx, domain.DescriptionIs(labels.AlertDescription))
	}
	outcome := Poll(ctx, promptQuery, timing.PollInterval, timing.PromptPollAttempts)
	o.advance(session, domain.PhaseTempoPromptChecked)
	if !outcome.Matched() {
		logger.Info("No tempo prompt appeared; no tempo conflict")
		return nil
	}

	// 6. TempoPromptChecked -> Done: an alert is present, so at least
	// one resolution candidate must succeed.
	chosen, err = ResolveFirst(ctx, o.buttonCandidates(
		labels.TempoPromptButtons,
		domain.DescriptionIs(labels.AlertDescription),
	))
	if err != nil {
		return fmt.Errorf("%w: tried %v: %w", domain.ErrPromptUnresolved, labels.TempoPromptButtons, err)
	}
	o.recordFallback(session, "tempo_prompt", chosen)
	return nil
}

// buttonCandidates builds fallback candidates that re-locate the window
// matching windowPred and then a button with the candidate's label
// inside it. Locating is fresh per attempt; no handle survives a cycle.
func (o *ImportOrchestrator) buttonCandidates(buttonLabels []string, windowPred domain.Predicate) []Candidate {
	candidates := make([]Candidate, 0, len(buttonLabels))
	for _, label := range buttonLabels {
		label := label
		candidates = append(candidates, Candidate{
			Name: label,
			Locate: func(ctx context.Context) []driven.Element {
				wins := o.finder.Windows(ctx, windowPred)
				if len(wins) == 0 {
					return nil
				}
				return o.finder.Buttons(ctx, wins[0], domain.TitleIs(label))
			},
		})
	}
	return candidates
}

// verifyPathField polls the sheet's text field for the injected path
// and retypes once on mismatch. Best-effort hardening of the known
// submit-without-verification gap; failures only warn.
func (o *ImportOrchestrator) verifyPathField(ctx context.Context, typer *Typer, want string) {
	timing := o.settings.Timing
	fieldQuery := func(ctx context.Context) []driven.Element {
		wins := o.finder.Windows(ctx, domain.TitleIs(o.settings.Labels.DialogTitle))
		if len(wins) == 0 {
			return nil
		}
		return o.finder.TextFields(ctx, wins[0], domain.ValueIs(want))
	}
	if Poll(ctx, fieldQuery, timing.PollInterval, verifyAttempts).Matched() {
		return
	}
	logger.Warn("Path field did not verify; clearing and retyping once")
	if err := typer.Clear(ctx); err != nil {
		logger.Warn("Clear before retype failed: %v", err)
		return
	}
	if err := typer.Type(ctx, want); err != nil {
		logger.Warn("Retype failed: %v", err)
		return
	}
	if !Poll(ctx, fieldQuery, timing.PollInterval, verifyAttempts).Matched() {
		logger.Warn("Path field still unverified after retype; submitting anyway")
	}
}

func (o *ImportOrchestrator) advance(session *domain.ImportSession, phase domain.Phase) {
	o.mu.Lock()
	session.Advance(phase)
	o.mu.Unlock()
	logger.Info("Phase: %s", phase)
}

func (o *ImportOrchestrator) recordFallback(session *domain.ImportSession, step, chosen string) {
	o.mu.Lock()
	session.RecordFallback(step, chosen)
	o.mu.Unlock()
	logger.Info("Resolved %s via %q", step, chosen)
}

// saveReport persists the finished session when a run store is wired.
// Report failures never mask the session outcome.
func (o *ImportOrchestrator) saveReport(ctx context.Context, session *domain.ImportSession) {
	if o.runStore == nil {
		return
	}
	if err := o.runStore.Save(ctx, *session); err != nil {
		logger.Warn("Saving run report %s: %v", session.ID, err)
	}
}
