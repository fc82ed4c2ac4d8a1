// Package brewpkg reconciles formula and cask declarations against the
// package manager catalogue.
package brewpkg

import (
	"context"
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/handler"
	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/internal/system"
)

type pkgHandler struct {
	pm   system.PackageManager
	kind string
	pk   system.PackageKind
}

// NewFormula creates the handler for command-line packages.
func NewFormula(pm system.PackageManager) handler.Handler {
	return &pkgHandler{pm: pm, kind: config.KindFormula, pk: system.KindFormula}
}

// NewCask creates the handler for graphical application packages.
func NewCask(pm system.PackageManager) handler.Handler {
	return &pkgHandler{pm: pm, kind: config.KindCask, pk: system.KindCask}
}

var _ handler.Handler = (*pkgHandler)(nil)

func (h *pkgHandler) Metadata() handler.Metadata {
	return handler.Metadata{
		Kind:        h.kind,
		Description: fmt.Sprintf("Ensures a %s is installed.", h.kind),
	}
}

func (h *pkgHandler) Schema() any {
	if h.kind == config.KindCask {
		return config.CaskDecl{}
	}
	return config.FormulaDecl{}
}

func (h *pkgHandler) packageName(decl *config.Declaration) (string, error) {
	switch h.kind {
	case config.KindCask:
		if decl.Cask == nil {
			return "", fmt.Errorf("cask configuration missing")
		}
		return decl.Cask.Package, nil
	default:
		if decl.Formula == nil {
			return "", fmt.Errorf("formula configuration missing")
		}
		return decl.Formula.Package, nil
	}
}

func (h *pkgHandler) Probe(ctx context.Context, decl *config.Declaration, _ handler.RunView) (*model.ProbeResult, error) {
	name, err := h.packageName(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	installed, err := h.pm.IsInstalled(ctx, name, h.pk)
	if err != nil {
		return nil, handler.NewStateError(decl.ID, fmt.Errorf("failed to query %s: %w", name, err))
	}

	message := fmt.Sprintf("%s %s not installed", h.kind, name)
	if installed {
		message = fmt.Sprintf("%s %s installed", h.kind, name)
	}

	return &model.ProbeResult{
		ID:        decl.ID,
		Present:   installed,
		Message:   message,
		CheckedAt: time.Now(),
	}, nil
}

func (h *pkgHandler) Apply(ctx context.Context, _ *model.ProbeResult, decl *config.Declaration, _ handler.RunView) (*model.ApplyResult, error) {
	name, err := h.packageName(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	if err := h.pm.Install(ctx, name, h.pk); err != nil {
		return nil, handler.NewExecutionError(decl.ID, err)
	}

	return &model.ApplyResult{Message: fmt.Sprintf("installed %s %s", h.kind, name)}, nil
}
