package engine

import "fmt"

// CriticalResourceFailure halts a run: a declaration marked critical could
// not be brought to its desired state, so everything after it is pointless
// or dangerous to attempt.
type CriticalResourceFailure struct {
	ID  string
	Err error
}

func (e *CriticalResourceFailure) Error() string {
	return fmt.Sprintf("critical declaration %q failed: %v", e.ID, e.Err)
}

// Unwrap returns the underlying failure.
func (e *CriticalResourceFailure) Unwrap() error { return e.Err }
