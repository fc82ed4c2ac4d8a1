// Package manager reconciles the package manager itself: probe for the
// binary on PATH, bootstrap it with the declared install command otherwise.
package manager

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/handler"
	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/internal/system"
)

type managerHandler struct {
	pm system.PackageManager
	// goos is swappable for tests.
	goos string
}

// New creates the manager handler.
func New(pm system.PackageManager) handler.Handler {
	return &managerHandler{pm: pm, goos: runtime.GOOS}
}

var _ handler.Handler = (*managerHandler)(nil)

func (h *managerHandler) Metadata() handler.Metadata {
	return handler.Metadata{
		Kind:        config.KindManager,
		Description: "Ensures the package manager binary is installed.",
	}
}

func (h *managerHandler) Schema() any {
	return config.ManagerDecl{}
}

func (h *managerHandler) Probe(ctx context.Context, decl *config.Declaration, _ handler.RunView) (*model.ProbeResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, handler.NewStateError(decl.ID, err)
	}

	// The one hard platform gate: a manager declared for other operating
	// systems cannot be probed here at all. Declared critical in real
	// documents, this is what aborts a run on an unsupported machine.
	if len(cfg.SupportedOS) > 0 && !slices.Contains(cfg.SupportedOS, h.goos) {
		return nil, handler.NewStateError(decl.ID, fmt.Errorf("unsupported operating system %q", h.goos))
	}

	present := h.pm.IsManagerPresent(cfg.Binary)
	message := fmt.Sprintf("%s not found on PATH", cfg.Binary)
	if present {
		message = fmt.Sprintf("%s available on PATH", cfg.Binary)
	}

	return &model.ProbeResult{
		ID:        decl.ID,
		Present:   present,
		Message:   message,
		CheckedAt: time.Now(),
	}, nil
}

func (h *managerHandler) Apply(ctx context.Context, _ *model.ProbeResult, decl *config.Declaration, _ handler.RunView) (*model.ApplyResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	if err := h.pm.InstallManager(ctx, cfg.InstallCommand); err != nil {
		return nil, handler.NewExecutionError(decl.ID, err)
	}

	return &model.ApplyResult{Message: fmt.Sprintf("installed %s", cfg.Binary)}, nil
}

func payload(decl *config.Declaration) (*config.ManagerDecl, error) {
	if decl == nil || decl.Manager == nil {
		return nil, fmt.Errorf("manager configuration missing")
	}
	return decl.Manager, nil
}
