// Package service reconciles background service declarations: probe for a
// live process, start the service through the supervisor otherwise.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/handler"
	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/internal/system"
)

type serviceHandler struct {
	sm system.ServiceManager
}

// New creates the service handler.
func New(sm system.ServiceManager) handler.Handler {
	return &serviceHandler{sm: sm}
}

var _ handler.Handler = (*serviceHandler)(nil)

func (h *serviceHandler) Metadata() handler.Metadata {
	return handler.Metadata{
		Kind:        config.KindService,
		Description: "Ensures a background service is running.",
	}
}

func (h *serviceHandler) Schema() any {
	return config.ServiceDecl{}
}

func (h *serviceHandler) Probe(ctx context.Context, decl *config.Declaration, _ handler.RunView) (*model.ProbeResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	process := cfg.Process
	if process == "" {
		process = cfg.Service
	}

	running, err := h.sm.IsRunning(ctx, process)
	if err != nil {
		return nil, handler.NewStateError(decl.ID, fmt.Errorf("failed to check %s: %w", process, err))
	}

	message := fmt.Sprintf("service %s not running", cfg.Service)
	if running {
		message = fmt.Sprintf("service %s running", cfg.Service)
	}

	return &model.ProbeResult{
		ID:        decl.ID,
		Present:   running,
		Message:   message,
		CheckedAt: time.Now(),
	}, nil
}

func (h *serviceHandler) Apply(ctx context.Context, _ *model.ProbeResult, decl *config.Declaration, _ handler.RunView) (*model.ApplyResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	if err := h.sm.Start(ctx, cfg.Service); err != nil {
		return nil, handler.NewExecutionError(decl.ID, err)
	}

	return &model.ApplyResult{Message: fmt.Sprintf("started service %s", cfg.Service)}, nil
}

func payload(decl *config.Declaration) (*config.ServiceDecl, error) {
	if decl == nil || decl.Service == nil {
		return nil, fmt.Errorf("service configuration missing")
	}
	return decl.Service, nil
}
