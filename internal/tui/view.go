package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	title := titleStyle.Render(fmt.Sprintf("rigup • %s", m.title()))
	sections = append(sections, title)

	progress := components.NewProgress(m.total).View(m.completed)
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	listComp := components.NewDeclList(m.order, m.entries)
	entries := listComp.Entries()
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Declarations"))
		sections = append(sections, renderDeclEntries(entries))
	}

	summary := components.NewSummary(components.SummaryData{
		Total:       m.total,
		Completed:   m.completed,
		Finished:    m.finished,
		Cancelled:   m.cancelled,
		RunStatus:   m.runStatus,
		Counts:      m.statusCounts(),
		FailedIDs:   m.failedIDs(),
		Validations: m.validations,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderDeclEntries(entries []components.DeclEntry) string {
	var lines []string
	for _, entry := range entries {
		outcome := entry.Outcome
		icon := StatusIcon(outcome.Status)
		line := fmt.Sprintf(" %s %s", icon, entry.ID)
		if strings.TrimSpace(outcome.Message) != "" {
			line = fmt.Sprintf("%s — %s", line, outcome.Message)
		}
		if outcome.Duration > 0 {
			line = fmt.Sprintf("%s (%s)", line, outcome.Duration.Truncate(10*time.Millisecond))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) title() string {
	if strings.TrimSpace(m.name) != "" {
		return m.name
	}
	return "Reconciliation"
}

func (m Model) statusCounts() map[model.Status]int {
	counts := make(map[model.Status]int, len(m.order))
	for _, id := range m.order {
		status := m.entries[id].Outcome.Status
		if status.Terminal() {
			counts[status]++
		}
	}
	return counts
}

func (m Model) failedIDs() []string {
	var ids []string
	for _, id := range m.order {
		if m.entries[id].Outcome.Status == model.StatusFailed {
			ids = append(ids, id)
		}
	}
	return ids
}

// StatusIcon returns the glyph representing a declaration status.
func StatusIcon(status model.Status) string {
	switch status {
	case model.StatusAlreadySatisfied:
		return satisfiedStyle.Render("✓")
	case model.StatusApplied:
		return appliedStyle.Render("✚")
	case model.StatusRunning:
		return runningStyle.Render("⏳")
	case model.StatusFailed:
		return failureStyle.Render("✗")
	case model.StatusSkipped:
		return skippedStyle.Render("⊘")
	case model.StatusWouldApply:
		return pendingStyle.Render("↻")
	default:
		return pendingStyle.Render("…")
	}
}
