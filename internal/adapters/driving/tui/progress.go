package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
)

// statusPollInterval is how often the view refreshes session status.
const statusPollInterval = 100 * time.Millisecond

// Result carries the finished import session back to the view.
type Result struct {
	Session *domain.ImportSession
	Err     error
}

// step is one line of the phase checklist.
type step struct {
	phase domain.Phase
	label string
}

// steps lists the orchestration phases in progression order.
var steps = []step{
	{domain.PhaseActivated, "Activate host and invoke import menu"},
	{domain.PhaseDialogOpen, "Wait for import dialog"},
	{domain.PhasePathInjected, "Inject file path"},
	{domain.PhaseImportConfirmed, "Confirm import"},
	{domain.PhaseTempoPromptChecked, "Resolve tempo prompt"},
}

// phaseRank orders phases so a step renders as done once the session
// has progressed past it.
var phaseRank = map[domain.Phase]int{
	domain.PhaseIdle:               0,
	domain.PhaseActivated:          1,
	domain.PhaseDialogOpen:         2,
	domain.PhasePathInjected:       3,
	domain.PhaseImportConfirmed:    4,
	domain.PhaseTempoPromptChecked: 5,
	domain.PhaseDone:               6,
	domain.PhaseFailed:             6,
}

type (
	// tickMsg triggers a status refresh.
	tickMsg time.Time

	// resultMsg delivers the finished session.
	resultMsg Result
)

// Model is the bubbletea model for the import progress view.
type Model struct {
	importer driving.ImportOrchestrator
	results  <-chan Result
	styles   *Styles
	spinner  spinner.Model

	source string
	phase  domain.Phase
	status *driving.ImportStatus
	result *Result
}

// NewModel creates a progress view over a running import. The caller
// starts the import in a goroutine and sends its outcome on results.
func NewModel(ports *Ports, source string, results <-chan Result) (*Model, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	styles := NewStyles(DefaultTheme())
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Title

	return &Model{
		importer: ports.Importer,
		results:  results,
		styles:   styles,
		spinner:  sp,
		source:   source,
		phase:    domain.PhaseIdle,
	}, nil
}

// Session returns the finished session, nil while running.
func (m *Model) Session() *domain.ImportSession {
	if m.result == nil {
		return nil
	}
	return m.result.Session
}

// Err returns the import error, nil while running or on success.
func (m *Model) Err() error {
	if m.result == nil {
		return nil
	}
	return m.result.Err
}

// Init starts the spinner, the status poll, and the result wait.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tick(), m.waitForResult())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The session cannot be aborted mid-flight; quitting the view
		// leaves the import running to its terminal phase.
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		if status, err := m.importer.Status(context.Background()); err == nil && status != nil {
			m.status = status
			m.phase = status.Phase
		}
		if m.result != nil {
			return m, nil
		}
		return m, m.tick()

	case resultMsg:
		result := Result(msg)
		m.result = &result
		if result.Session != nil {
			m.phase = result.Session.Phase
		}
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the phase checklist.
func (m *Model) View() string {
	out := m.styles.Title.Render("Importing "+m.source) + "\n\n"

	rank := phaseRank[m.phase]
	for _, s := range steps {
		stepRank := phaseRank[s.phase]
		switch {
		case rank >= stepRank:
			out += m.styles.Done.Render("  ✓ "+s.label) + "\n"
		case rank == stepRank-1 && m.result == nil:
			out += "  " + m.spinner.View() + s.label + "\n"
		default:
			out += m.styles.Muted.Render("  · "+s.label) + "\n"
		}
	}

	out += m.fallbackLines()

	if m.result != nil {
		out += "\n" + m.resultLine() + "\n"
	} else {
		out += "\n" + m.styles.Muted.Render("q to leave the view; the import keeps running") + "\n"
	}
	return out
}

// fallbackLines renders the fallback-choice log, the signal an operator
// watches for host relabelling drift.
func (m *Model) fallbackLines() string {
	var choices []domain.FallbackChoice
	if m.result != nil && m.result.Session != nil {
		choices = m.result.Session.Fallbacks
	} else if m.status != nil {
		choices = m.status.Fallbacks
	}
	if len(choices) == 0 {
		return ""
	}

	out := "\n"
	for _, c := range choices {
		out += m.styles.Warning.Render("  "+c.Step+" resolved via \""+c.Chosen+"\"") + "\n"
	}
	return out
}

func (m *Model) resultLine() string {
	if m.result.Err != nil {
		line := "Import failed: " + m.result.Err.Error()
		return m.styles.Error.Render(line)
	}
	session := m.result.Session
	if session != nil {
		return m.styles.Done.Render("Import complete in " + session.Duration().Round(time.Millisecond).String())
	}
	return m.styles.Done.Render("Import complete")
}

// tick schedules the next status refresh.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(statusPollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForResult blocks on the result channel.
func (m *Model) waitForResult() tea.Cmd {
	return func() tea.Msg {
		return resultMsg(<-m.results)
	}
}
