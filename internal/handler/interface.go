package handler

import (
	"context"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/model"
)

// RunView is the read-only window a handler gets into the in-progress run.
// Declarations whose desired value derives from an earlier declaration read
// it here, through an explicit accessor, never from ambient process state.
type RunView interface {
	// ValueOf returns the observable value an earlier declaration recorded.
	ValueOf(id string) (string, bool)
}

// Metadata describes a handler's identity.
type Metadata struct {
	// Kind is the declaration kind this handler reconciles.
	Kind string
	// Description is a short human-readable summary.
	Description string
}

// Handler is the contract every declaration kind implements.
//
// Probe performs a STRICTLY READ-ONLY assessment of whether the desired
// state already holds. It must be pure: two successive probes with no apply
// in between return the same result. Probes for kinds with interactive or
// derived inputs also resolve the proposed desired value; when none can be
// resolved they set NoDesiredValue and the reconciler records Skipped.
//
// Apply mutates the system toward the desired state. It is only called when
// Probe reported the state absent, must tolerate partial state left by an
// interrupted earlier run, and is followed by a verifying re-probe in the
// reconciler; handlers do not verify themselves.
type Handler interface {
	Metadata() Metadata
	Schema() any
	Probe(ctx context.Context, decl *config.Declaration, view RunView) (*model.ProbeResult, error)
	Apply(ctx context.Context, probe *model.ProbeResult, decl *config.Declaration, view RunView) (*model.ApplyResult, error)
}
