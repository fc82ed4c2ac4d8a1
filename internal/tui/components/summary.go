package components

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/rigup/internal/model"
)

// ValidationStatus represents a post-run check outcome for summary rendering.
type ValidationStatus struct {
	Passed  bool
	Message string
}

// SummaryData aggregates counts for rendering summaries.
type SummaryData struct {
	Total       int
	Completed   int
	Finished    bool
	Cancelled   bool
	RunStatus   model.RunStatus
	Counts      map[model.Status]int
	FailedIDs   []string
	Validations []ValidationStatus
}

// Summary renders a textual run summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Declarations: %d/%d completed", s.data.Completed, s.data.Total))
	}

	if breakdown := s.breakdown(); breakdown != "" {
		lines = append(lines, breakdown)
	}

	if s.data.Cancelled {
		lines = append(lines, "Run cancelled")
	} else if s.data.Finished && s.data.RunStatus != "" {
		switch s.data.RunStatus {
		case model.RunSuccess:
			lines = append(lines, "Run finished successfully")
		case model.RunPartialSuccess:
			lines = append(lines, fmt.Sprintf("Run finished with failures: %s", strings.Join(s.data.FailedIDs, ", ")))
		case model.RunAborted:
			lines = append(lines, "Run aborted: a critical declaration failed")
		}
	}

	if len(s.data.Validations) > 0 {
		lines = append(lines, "Validations:")
		for _, v := range s.data.Validations {
			status := "✗"
			if v.Passed {
				status = "✓"
			}
			lines = append(lines, fmt.Sprintf("  %s %s", status, v.Message))
		}
	}

	return strings.Join(lines, "\n")
}

func (s Summary) breakdown() string {
	var parts []string
	for _, status := range []model.Status{
		model.StatusAlreadySatisfied,
		model.StatusApplied,
		model.StatusWouldApply,
		model.StatusSkipped,
		model.StatusFailed,
	} {
		if n := s.data.Counts[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, status))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ")
}
