package model

// Status describes the outcome of reconciling a single declaration.
type Status string

const (
	// StatusPending indicates a declaration has not been processed yet.
	StatusPending Status = "pending"
	// StatusRunning indicates a declaration is being reconciled.
	StatusRunning Status = "running"
	// StatusAlreadySatisfied indicates the probe found the desired state in place.
	StatusAlreadySatisfied Status = "already-satisfied"
	// StatusApplied indicates the apply action ran and verification confirmed it.
	StatusApplied Status = "applied"
	// StatusFailed indicates the apply action errored or verification still
	// reports the desired state absent.
	StatusFailed Status = "failed"
	// StatusSkipped indicates the declaration was left unconfigured on purpose,
	// e.g. an optional value the user declined to supply.
	StatusSkipped Status = "skipped"
	// StatusWouldApply is reported in plan mode for declarations that would
	// mutate the system.
	StatusWouldApply Status = "would-apply"
)

// Terminal reports whether the status represents a finished declaration.
func (s Status) Terminal() bool {
	switch s {
	case StatusAlreadySatisfied, StatusApplied, StatusFailed, StatusSkipped, StatusWouldApply:
		return true
	}
	return false
}

// RunStatus is the aggregate result of a full reconciliation run.
type RunStatus string

const (
	// RunSuccess means every declaration ended already-satisfied or applied.
	RunSuccess RunStatus = "success"
	// RunPartialSuccess means non-critical declarations failed or were skipped.
	RunPartialSuccess RunStatus = "partial-success"
	// RunAborted means a critical declaration failed and stopped the run early.
	RunAborted RunStatus = "aborted"
)
