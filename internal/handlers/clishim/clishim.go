// Package clishim reconciles command-line shims that graphical applications
// install on first launch. Probing checks PATH; applying launches the
// application and polls until the shim appears or attempts run out.
package clishim

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/execx"
	"github.com/alexisbeaulieu97/rigup/internal/handler"
	"github.com/alexisbeaulieu97/rigup/internal/model"
)

const (
	defaultAttempts = 10
	defaultDelay    = time.Second
)

type shimHandler struct {
	runner execx.Runner
	// lookPath and sleep are swappable for tests.
	lookPath func(string) (string, error)
	sleep    func(time.Duration)
}

// New creates the CLI shim handler.
func New(runner execx.Runner) handler.Handler {
	return &shimHandler{
		runner:   runner,
		lookPath: exec.LookPath,
		sleep:    time.Sleep,
	}
}

var _ handler.Handler = (*shimHandler)(nil)

func (h *shimHandler) Metadata() handler.Metadata {
	return handler.Metadata{
		Kind:        config.KindCLIShim,
		Description: "Ensures an application's command-line shim is on PATH.",
	}
}

func (h *shimHandler) Schema() any {
	return config.CLIShimDecl{}
}

func (h *shimHandler) Probe(ctx context.Context, decl *config.Declaration, _ handler.RunView) (*model.ProbeResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, handler.NewStateError(decl.ID, err)
	}

	path, lookErr := h.lookPath(cfg.Command)
	present := lookErr == nil
	message := fmt.Sprintf("%s not found on PATH", cfg.Command)
	if present {
		message = fmt.Sprintf("%s at %s", cfg.Command, path)
	}

	return &model.ProbeResult{
		ID:           decl.ID,
		Present:      present,
		CurrentValue: path,
		Message:      message,
		CheckedAt:    time.Now(),
	}, nil
}

func (h *shimHandler) Apply(ctx context.Context, _ *model.ProbeResult, decl *config.Declaration, _ handler.RunView) (*model.ApplyResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	delay := defaultDelay
	if cfg.DelayMS > 0 {
		delay = time.Duration(cfg.DelayMS) * time.Millisecond
	}

	if res, err := h.runner.Stream(ctx, "open", "-a", cfg.App); err != nil {
		return nil, handler.NewExecutionError(decl.ID,
			fmt.Errorf("failed to launch %s: %w: %s", cfg.App, err, execx.PrimaryOutput(res)))
	}

	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, handler.NewExecutionError(decl.ID, err)
		}
		if path, lookErr := h.lookPath(cfg.Command); lookErr == nil {
			return &model.ApplyResult{
				Message: fmt.Sprintf("%s appeared at %s", cfg.Command, path),
				Value:   path,
			}, nil
		}
		h.sleep(delay)
	}

	return nil, handler.NewExecutionError(decl.ID,
		fmt.Errorf("%s did not appear on PATH after launching %s (%d attempts)", cfg.Command, cfg.App, attempts))
}

func payload(decl *config.Declaration) (*config.CLIShimDecl, error) {
	if decl == nil || decl.CLIShim == nil {
		return nil, fmt.Errorf("cli_shim configuration missing")
	}
	return decl.CLIShim, nil
}
