package model

import "time"

// ProbeResult is the outcome of a strictly read-only state check for one
// declaration. It is produced by Handler.Probe() and handed back to
// Handler.Apply() when action is required.
type ProbeResult struct {
	// ID is the declaration the probe was run for.
	ID string

	// Present reports whether the desired state already holds.
	Present bool

	// CurrentValue is the observed value, when the kind has one (a config
	// key's current setting, the resolved path of a binary, ...).
	CurrentValue string

	// ProposedValue is the desired value the probe resolved for this run.
	// Kinds with interactive or derived inputs fill this in so the caller
	// can thread it into dependent declarations.
	ProposedValue string

	// NoDesiredValue marks a probe that could not resolve any desired value
	// (for example the user declined to supply one). The reconciler records
	// the declaration as skipped instead of applying.
	NoDesiredValue bool

	// Message is a human-readable description of what the probe found.
	Message string

	// CheckedAt records when the probe ran.
	CheckedAt time.Time

	// InternalData carries opaque probe output into Apply() so handlers do
	// not recompute expensive state.
	InternalData any
}
