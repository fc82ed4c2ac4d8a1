// Package tui renders reconciliation progress as a Bubbletea program: a
// declaration list with per-status glyphs, an overall progress bar and a
// closing summary with validation results.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/internal/tui/components"
)

// DeclStartMsg indicates a declaration has started reconciling.
type DeclStartMsg struct {
	ID   string
	Time time.Time
}

// DeclCompleteMsg reports a declaration's recorded outcome.
type DeclCompleteMsg struct {
	Entry model.ReportEntry
}

// ValidationMsg carries the outcome of a post-run check.
type ValidationMsg struct {
	Passed  bool
	Message string
}

// RunDoneMsg reports the aggregate status once the run ends.
type RunDoneMsg struct {
	Status model.RunStatus
}

type tickMsg struct{}

// Model contains the Bubbletea state for a reconciliation run.
type Model struct {
	name           string
	entries        map[string]model.ReportEntry
	order          []string
	validations    []components.ValidationStatus
	runStatus      model.RunStatus
	total          int
	completed      int
	finished       bool
	cancelled      bool
	nonInteractive bool
}

// NewModel constructs a TUI model seeded with the declarations to reconcile,
// in run order.
func NewModel(name string, ids []string, nonInteractive bool) Model {
	m := Model{
		name:           name,
		entries:        make(map[string]model.ReportEntry),
		order:          make([]string, 0, len(ids)),
		validations:    make([]components.ValidationStatus, 0),
		nonInteractive: nonInteractive,
	}

	for _, id := range ids {
		m.ensureDecl(id)
	}

	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// TotalDeclarations returns the number of declarations tracked by the model.
func (m Model) TotalDeclarations() int {
	return m.total
}

// CompletedDeclarations returns the number with terminal outcomes.
func (m Model) CompletedDeclarations() int {
	return m.completed
}

// IsFinished reports whether the run has completed.
func (m Model) IsFinished() bool {
	return m.finished
}

func (m *Model) ensureDecl(id string) {
	if id == "" {
		return
	}
	if _, exists := m.entries[id]; !exists {
		m.entries[id] = model.ReportEntry{ID: id, Outcome: model.ApplyOutcome{ID: id, Status: model.StatusPending}}
		m.order = append(m.order, id)
		m.total++
	}
}

func (m *Model) markFinishedIfComplete() {
	if m.total > 0 && m.completed >= m.total {
		m.finished = true
	}
}
