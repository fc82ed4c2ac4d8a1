// Package configkey reconciles key/value settings in a backing store: the
// macOS preference store or the global git configuration. Desired values can
// be literal, derived from an earlier declaration's recorded outcome, or
// resolved interactively.
package configkey

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/handler"
	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/internal/system"
)

type configKeyHandler struct {
	prefs    system.PrefStore
	git      system.GitConfig
	prompter system.Prompter

	// answers memoizes prompt results per declaration so the verifying
	// re-probe sees the same resolved value instead of asking again.
	mu      sync.Mutex
	answers map[string]string
}

// New creates the config key handler.
func New(prefs system.PrefStore, git system.GitConfig, prompter system.Prompter) handler.Handler {
	return &configKeyHandler{
		prefs:    prefs,
		git:      git,
		prompter: prompter,
		answers:  make(map[string]string),
	}
}

var _ handler.Handler = (*configKeyHandler)(nil)

func (h *configKeyHandler) Metadata() handler.Metadata {
	return handler.Metadata{
		Kind:        config.KindConfigKey,
		Description: "Ensures a key/value setting in a preference or VCS config store.",
	}
}

func (h *configKeyHandler) Schema() any {
	return config.ConfigKeyDecl{}
}

func (h *configKeyHandler) readCurrent(ctx context.Context, cfg *config.ConfigKeyDecl) (string, bool, error) {
	if cfg.Store == "git" {
		return h.git.GetGlobal(cfg.Key)
	}
	return h.prefs.Read(ctx, cfg.Domain, cfg.Key)
}

func (h *configKeyHandler) writeDesired(ctx context.Context, cfg *config.ConfigKeyDecl, value string) error {
	if cfg.Store == "git" {
		return h.git.SetGlobal(cfg.Key, value)
	}
	return h.prefs.Write(ctx, cfg.Domain, cfg.Key, value)
}

// resolveDesired determines the value this run should converge on: literal
// first, then a prior declaration's outcome, then an interactive answer
// defaulting to whatever is already set.
func (h *configKeyHandler) resolveDesired(decl *config.Declaration, cfg *config.ConfigKeyDecl, current string, view handler.RunView) (string, error) {
	desired := cfg.Value

	if desired == "" && cfg.ValueFrom != "" {
		if view == nil {
			return "", fmt.Errorf("value_from %q requires a run in progress", cfg.ValueFrom)
		}
		if derived, ok := view.ValueOf(cfg.ValueFrom); ok {
			desired = derived
		}
	}

	if !cfg.Prompt {
		return desired, nil
	}

	h.mu.Lock()
	cached, seen := h.answers[decl.ID]
	h.mu.Unlock()
	if seen {
		return cached, nil
	}

	fallback := desired
	if fallback == "" {
		fallback = current
	}
	text := cfg.PromptText
	if text == "" {
		text = fmt.Sprintf("Value for %s", cfg.Key)
	}

	answer, err := h.prompter.Ask(text, fallback)
	if err != nil {
		return "", err
	}

	h.mu.Lock()
	h.answers[decl.ID] = answer
	h.mu.Unlock()
	return answer, nil
}

func (h *configKeyHandler) Probe(ctx context.Context, decl *config.Declaration, view handler.RunView) (*model.ProbeResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	current, exists, err := h.readCurrent(ctx, cfg)
	if err != nil {
		return nil, handler.NewStateError(decl.ID, fmt.Errorf("failed to read %s: %w", cfg.Key, err))
	}

	desired, err := h.resolveDesired(decl, cfg, current, view)
	if err != nil {
		return nil, handler.NewStateError(decl.ID, err)
	}

	if desired == "" {
		// No literal, no derived value, and the user declined to supply
		// one: the resource is skipped, not failed.
		return &model.ProbeResult{
			ID:             decl.ID,
			Present:        false,
			CurrentValue:   current,
			NoDesiredValue: true,
			Message:        fmt.Sprintf("no value available for %s", cfg.Key),
			CheckedAt:      time.Now(),
		}, nil
	}

	present := exists && current == desired
	message := fmt.Sprintf("%s is %q, want %q", cfg.Key, current, desired)
	if present {
		message = fmt.Sprintf("%s already %q", cfg.Key, desired)
	} else if !exists {
		message = fmt.Sprintf("%s unset, want %q", cfg.Key, desired)
	}

	return &model.ProbeResult{
		ID:            decl.ID,
		Present:       present,
		CurrentValue:  current,
		ProposedValue: desired,
		Message:       message,
		CheckedAt:     time.Now(),
	}, nil
}

func (h *configKeyHandler) Apply(ctx context.Context, probe *model.ProbeResult, decl *config.Declaration, view handler.RunView) (*model.ApplyResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	desired := ""
	if probe != nil {
		desired = probe.ProposedValue
	}
	if desired == "" {
		fresh, probeErr := h.Probe(ctx, decl, view)
		if probeErr != nil {
			return nil, probeErr
		}
		desired = fresh.ProposedValue
	}
	if desired == "" {
		return nil, handler.NewExecutionError(decl.ID, fmt.Errorf("no desired value resolved for %s", cfg.Key))
	}

	if err := h.writeDesired(ctx, cfg, desired); err != nil {
		return nil, handler.NewExecutionError(decl.ID, fmt.Errorf("failed to write %s: %w", cfg.Key, err))
	}

	return &model.ApplyResult{
		Message: fmt.Sprintf("set %s to %q", cfg.Key, desired),
		Value:   desired,
	}, nil
}

func payload(decl *config.Declaration) (*config.ConfigKeyDecl, error) {
	if decl == nil || decl.ConfigKey == nil {
		return nil, fmt.Errorf("config_key configuration missing")
	}
	return decl.ConfigKey, nil
}
