// Package shelldefault reconciles the user's login shell.
package shelldefault

import (
	"context"
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/handler"
	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/internal/system"
)

type shellHandler struct {
	shell system.ShellStore
}

// New creates the shell default handler.
func New(shell system.ShellStore) handler.Handler {
	return &shellHandler{shell: shell}
}

var _ handler.Handler = (*shellHandler)(nil)

func (h *shellHandler) Metadata() handler.Metadata {
	return handler.Metadata{
		Kind:        config.KindShellDefault,
		Description: "Ensures the user's login shell.",
	}
}

func (h *shellHandler) Schema() any {
	return config.ShellDefaultDecl{}
}

func (h *shellHandler) Probe(ctx context.Context, decl *config.Declaration, _ handler.RunView) (*model.ProbeResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, handler.NewStateError(decl.ID, err)
	}

	current := h.shell.CurrentShell()
	present := current == cfg.Shell
	message := fmt.Sprintf("login shell is %q, want %q", current, cfg.Shell)
	if present {
		message = fmt.Sprintf("login shell already %q", cfg.Shell)
	}

	return &model.ProbeResult{
		ID:           decl.ID,
		Present:      present,
		CurrentValue: current,
		Message:      message,
		CheckedAt:    time.Now(),
	}, nil
}

func (h *shellHandler) Apply(ctx context.Context, _ *model.ProbeResult, decl *config.Declaration, _ handler.RunView) (*model.ApplyResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	if err := h.shell.SetShell(ctx, cfg.Shell); err != nil {
		return nil, handler.NewExecutionError(decl.ID, err)
	}

	return &model.ApplyResult{Message: fmt.Sprintf("changed login shell to %s", cfg.Shell), Value: cfg.Shell}, nil
}

func payload(decl *config.Declaration) (*config.ShellDefaultDecl, error) {
	if decl == nil || decl.ShellDefault == nil {
		return nil, fmt.Errorf("shell_default configuration missing")
	}
	return decl.ShellDefault, nil
}
