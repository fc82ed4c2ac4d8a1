package model

import "time"

// ReportEntry pairs a declaration with its reconciliation outcome.
type ReportEntry struct {
	ID       string
	Kind     string
	Critical bool
	Outcome  ApplyOutcome
}

// RunReport accumulates outcomes for one reconciliation run, in declaration
// order. It is owned by the reconciler for the duration of the run and is the
// only state shared between declarations: later declarations read earlier
// results through ValueOf, never through ambient lookup.
type RunReport struct {
	Name      string
	StartedAt time.Time
	Entries   []ReportEntry

	aborted bool
	index   map[string]int
}

// NewRunReport creates an empty report for the named run.
func NewRunReport(name string) *RunReport {
	return &RunReport{
		Name:      name,
		StartedAt: time.Now(),
		index:     make(map[string]int),
	}
}

// Add appends an entry. Entries must be added in declaration order.
func (r *RunReport) Add(entry ReportEntry) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.index[entry.ID] = len(r.Entries)
	r.Entries = append(r.Entries, entry)
}

// MarkAborted records that a critical failure stopped the run early.
func (r *RunReport) MarkAborted() {
	r.aborted = true
}

// Aborted reports whether the run was halted by a critical failure.
func (r *RunReport) Aborted() bool {
	return r.aborted
}

// OutcomeOf returns the recorded outcome for a declaration id.
func (r *RunReport) OutcomeOf(id string) (ApplyOutcome, bool) {
	i, ok := r.index[id]
	if !ok {
		return ApplyOutcome{}, false
	}
	return r.Entries[i].Outcome, true
}

// ValueOf returns the observable value a prior declaration recorded. This is
// the accessor dependent declarations use for derived desired values.
func (r *RunReport) ValueOf(id string) (string, bool) {
	outcome, ok := r.OutcomeOf(id)
	if !ok || outcome.Value == "" {
		return "", false
	}
	return outcome.Value, true
}

// Counts returns the number of entries per status.
func (r *RunReport) Counts() map[Status]int {
	counts := make(map[Status]int, len(r.Entries))
	for _, e := range r.Entries {
		counts[e.Outcome.Status]++
	}
	return counts
}

// FailedIDs lists declarations that ended in failure, in report order.
func (r *RunReport) FailedIDs() []string {
	var ids []string
	for _, e := range r.Entries {
		if e.Outcome.Status == StatusFailed {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Status classifies the whole run: Aborted when a critical failure halted it,
// PartialSuccess when non-critical declarations failed or were skipped,
// Success when everything converged.
func (r *RunReport) Status() RunStatus {
	if r.aborted {
		return RunAborted
	}
	for _, e := range r.Entries {
		if e.Outcome.Status == StatusFailed || e.Outcome.Status == StatusSkipped {
			return RunPartialSuccess
		}
	}
	return RunSuccess
}
