package model

import "time"

// ApplyResult is returned by Handler.Apply() and describes the mutation the
// handler performed. Verification and final status classification happen in
// the reconciler, not in handlers.
type ApplyResult struct {
	Message string
	// Value is the observable value the apply produced, recorded in the run
	// report so later declarations can reference it.
	Value string
}

// ApplyOutcome captures the final result of reconciling one declaration.
type ApplyOutcome struct {
	ID        string
	Status    Status
	Message   string
	Value     string
	Err       error
	Duration  time.Duration
	Timestamp time.Time
}
