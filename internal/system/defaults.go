package system

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/alexisbeaulieu97/rigup/internal/execx"
)

// DefaultsStore implements PrefStore on top of the macOS `defaults` CLI.
type DefaultsStore struct {
	runner execx.Runner
}

// NewDefaultsStore builds the defaults-backed preference store.
func NewDefaultsStore(runner execx.Runner) *DefaultsStore {
	return &DefaultsStore{runner: runner}
}

var _ PrefStore = (*DefaultsStore)(nil)

// Read returns the current value for domain/key, with ok=false when the key
// does not exist. A missing key is not an error; it is simply absent state.
func (s *DefaultsStore) Read(ctx context.Context, domain, key string) (string, bool, error) {
	res, err := s.runner.Capture(ctx, "defaults", "read", domain, key)
	if err == nil {
		return strings.TrimSpace(res.Stdout), true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && strings.Contains(res.Stderr, "does not exist") {
		return "", false, nil
	}
	return "", false, err
}

// Write sets domain/key to value.
func (s *DefaultsStore) Write(ctx context.Context, domain, key, value string) error {
	_, err := s.runner.Capture(ctx, "defaults", "write", domain, key, value)
	return err
}
