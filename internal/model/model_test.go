package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusAlreadySatisfied.Terminal())
	assert.True(t, StatusApplied.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusSkipped.Terminal())
	assert.True(t, StatusWouldApply.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusRunning.Terminal())
}

func TestRunReportPreservesOrder(t *testing.T) {
	t.Parallel()

	report := NewRunReport("test")
	for _, id := range []string{"homebrew", "htop", "redis"} {
		report.Add(ReportEntry{ID: id, Outcome: ApplyOutcome{ID: id, Status: StatusApplied}})
	}

	require.Len(t, report.Entries, 3)
	assert.Equal(t, "homebrew", report.Entries[0].ID)
	assert.Equal(t, "htop", report.Entries[1].ID)
	assert.Equal(t, "redis", report.Entries[2].ID)
}

func TestRunReportValueOf(t *testing.T) {
	t.Parallel()

	report := NewRunReport("test")
	report.Add(ReportEntry{ID: "git-email", Outcome: ApplyOutcome{
		ID:     "git-email",
		Status: StatusApplied,
		Value:  "dev@example.com",
	}})
	report.Add(ReportEntry{ID: "htop", Outcome: ApplyOutcome{ID: "htop", Status: StatusAlreadySatisfied}})

	value, ok := report.ValueOf("git-email")
	require.True(t, ok)
	assert.Equal(t, "dev@example.com", value)

	_, ok = report.ValueOf("htop")
	assert.False(t, ok, "entries without a recorded value should not resolve")

	_, ok = report.ValueOf("missing")
	assert.False(t, ok)
}

func TestRunReportCountsAndFailedIDs(t *testing.T) {
	t.Parallel()

	report := NewRunReport("test")
	report.Add(ReportEntry{ID: "a", Outcome: ApplyOutcome{ID: "a", Status: StatusAlreadySatisfied}})
	report.Add(ReportEntry{ID: "b", Outcome: ApplyOutcome{ID: "b", Status: StatusFailed, Err: errors.New("boom")}})
	report.Add(ReportEntry{ID: "c", Outcome: ApplyOutcome{ID: "c", Status: StatusApplied}})
	report.Add(ReportEntry{ID: "d", Outcome: ApplyOutcome{ID: "d", Status: StatusFailed}})

	counts := report.Counts()
	assert.Equal(t, 1, counts[StatusAlreadySatisfied])
	assert.Equal(t, 1, counts[StatusApplied])
	assert.Equal(t, 2, counts[StatusFailed])

	assert.Equal(t, []string{"b", "d"}, report.FailedIDs())
}

func TestRunReportStatus(t *testing.T) {
	t.Parallel()

	t.Run("success when everything converged", func(t *testing.T) {
		t.Parallel()

		report := NewRunReport("test")
		report.Add(ReportEntry{ID: "a", Outcome: ApplyOutcome{ID: "a", Status: StatusApplied}})
		report.Add(ReportEntry{ID: "b", Outcome: ApplyOutcome{ID: "b", Status: StatusAlreadySatisfied}})
		assert.Equal(t, RunSuccess, report.Status())
	})

	t.Run("partial success when an optional declaration was skipped", func(t *testing.T) {
		t.Parallel()

		report := NewRunReport("test")
		report.Add(ReportEntry{ID: "a", Outcome: ApplyOutcome{ID: "a", Status: StatusApplied}})
		report.Add(ReportEntry{ID: "b", Outcome: ApplyOutcome{ID: "b", Status: StatusSkipped}})
		assert.Equal(t, RunPartialSuccess, report.Status())
	})

	t.Run("partial success on non-critical failure", func(t *testing.T) {
		t.Parallel()

		report := NewRunReport("test")
		report.Add(ReportEntry{ID: "a", Outcome: ApplyOutcome{ID: "a", Status: StatusFailed}})
		assert.Equal(t, RunPartialSuccess, report.Status())
	})

	t.Run("aborted wins over failures", func(t *testing.T) {
		t.Parallel()

		report := NewRunReport("test")
		report.Add(ReportEntry{ID: "a", Critical: true, Outcome: ApplyOutcome{ID: "a", Status: StatusFailed}})
		report.MarkAborted()
		assert.Equal(t, RunAborted, report.Status())
		assert.True(t, report.Aborted())
	})
}
