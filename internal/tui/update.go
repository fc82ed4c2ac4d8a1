package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/internal/tui/components"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil
	case DeclStartMsg:
		m.ensureDecl(msg.ID)
		entry := m.entries[msg.ID]
		entry.Outcome.Status = model.StatusRunning
		m.entries[msg.ID] = entry
		return m, nil
	case DeclCompleteMsg:
		id := msg.Entry.ID
		if id == "" {
			return m, nil
		}
		m.ensureDecl(id)
		existing := m.entries[id]
		previouslyCompleted := existing.Outcome.Status.Terminal()
		m.entries[id] = msg.Entry
		if !previouslyCompleted && msg.Entry.Outcome.Status.Terminal() {
			m.completed++
			m.markFinishedIfComplete()
		}
		return m, nil
	case ValidationMsg:
		m.validations = append(m.validations, components.ValidationStatus{Passed: msg.Passed, Message: msg.Message})
		return m, nil
	case RunDoneMsg:
		m.runStatus = msg.Status
		m.finished = true
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.finished = true
			return m, nil
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
