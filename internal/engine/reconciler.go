// Package engine drives reconciliation: for each registered declaration, in
// order, probe the current state, decide whether action is needed, apply the
// mutation, then verify with a second probe. Probes never mutate; Apply is
// only called when the probe reports the desired state absent.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/handler"
	"github.com/alexisbeaulieu97/rigup/internal/logger"
	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/internal/registry"
)

const defaultTimeout = 300 * time.Second

// Options configure a reconciliation run.
type Options struct {
	// DryRun reports what would change without mutating anything.
	DryRun bool
	// Timeout bounds each declaration's probe/apply/verify cycle. Zero means
	// the default.
	Timeout time.Duration
}

// ProgressFunc receives each entry as it is recorded, in declaration order.
type ProgressFunc func(entry model.ReportEntry)

// Reconciler converges a machine toward a declared configuration.
type Reconciler struct {
	handlers *handler.Registry
	logger   *logger.Logger
	opts     Options
}

// NewReconciler creates a reconciler over the given handler registry.
func NewReconciler(handlers *handler.Registry, log *logger.Logger, opts Options) *Reconciler {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Reconciler{handlers: handlers, logger: log, opts: opts}
}

// FromSettings derives run options from a document's settings block.
func FromSettings(settings config.Settings, dryRun bool) Options {
	opts := Options{DryRun: dryRun || settings.DryRun}
	if settings.Timeout > 0 {
		opts.Timeout = time.Duration(settings.Timeout) * time.Second
	}
	return opts
}

// Run reconciles every registered declaration in order and returns the
// report. A critical failure halts the run: the report covers everything
// processed so far, is marked aborted, and the returned error is a
// CriticalResourceFailure. Non-critical failures are recorded and the run
// continues; they surface through the report's status, not the error.
func (r *Reconciler) Run(ctx context.Context, name string, reg *registry.Registry, progress ProgressFunc) (*model.RunReport, error) {
	report := model.NewRunReport(name)

	for _, decl := range reg.Declarations() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome := r.reconcileOne(ctx, &decl, report)

		entry := model.ReportEntry{
			ID:       decl.ID,
			Kind:     decl.Kind,
			Critical: decl.Critical,
			Outcome:  outcome,
		}
		report.Add(entry)
		if progress != nil {
			progress(entry)
		}

		log := r.logger.With("id", decl.ID).With("kind", decl.Kind).With("status", string(outcome.Status))
		if outcome.Status == model.StatusFailed {
			log.Error(outcome.Err, outcome.Message)
			if decl.Critical {
				report.MarkAborted()
				return report, &CriticalResourceFailure{ID: decl.ID, Err: outcome.Err}
			}
			continue
		}
		log.Debug(outcome.Message)
	}

	return report, nil
}

// reconcileOne runs the probe/decide/apply/verify cycle for one declaration.
func (r *Reconciler) reconcileOne(ctx context.Context, decl *config.Declaration, view handler.RunView) model.ApplyOutcome {
	start := time.Now()

	declCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	h, err := r.handlers.Get(decl.Kind)
	if err != nil {
		return failure(decl.ID, start, err)
	}

	probe, err := h.Probe(declCtx, decl, view)
	if err != nil {
		return failure(decl.ID, start, err)
	}

	if probe.Present {
		return finished(decl.ID, start, model.StatusAlreadySatisfied, probe.Message, probe.CurrentValue)
	}
	if probe.NoDesiredValue {
		return finished(decl.ID, start, model.StatusSkipped, probe.Message, "")
	}
	if r.opts.DryRun {
		return finished(decl.ID, start, model.StatusWouldApply, probe.Message, probe.ProposedValue)
	}

	applied, err := h.Apply(declCtx, probe, decl, view)
	if err != nil {
		return failure(decl.ID, start, err)
	}

	// Verify with a second probe. Apply succeeding is not enough: the state
	// the next run would observe is what counts.
	verify, err := h.Probe(declCtx, decl, view)
	if err != nil {
		return failure(decl.ID, start, fmt.Errorf("verification probe failed: %w", err))
	}
	if !verify.Present {
		return failure(decl.ID, start, fmt.Errorf("verification failed: desired state still absent after apply"))
	}

	value := probe.ProposedValue
	if value == "" {
		value = verify.CurrentValue
	}
	message := verify.Message
	if applied != nil && applied.Message != "" {
		message = applied.Message
	}
	return finished(decl.ID, start, model.StatusApplied, message, value)
}

func finished(id string, start time.Time, status model.Status, message, value string) model.ApplyOutcome {
	return model.ApplyOutcome{
		ID:        id,
		Status:    status,
		Message:   message,
		Value:     value,
		Duration:  time.Since(start),
		Timestamp: time.Now(),
	}
}

func failure(id string, start time.Time, err error) model.ApplyOutcome {
	return model.ApplyOutcome{
		ID:        id,
		Status:    model.StatusFailed,
		Message:   err.Error(),
		Err:       err,
		Duration:  time.Since(start),
		Timestamp: time.Now(),
	}
}
