package system

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/alexisbeaulieu97/rigup/internal/execx"
)

// Homebrew implements PackageManager and ServiceManager on top of the brew
// CLI. Probing methods use captured runs so they stay silent; mutating
// methods stream installer output through to the user.
type Homebrew struct {
	runner execx.Runner
	// lookPath is swappable for tests.
	lookPath func(string) (string, error)
}

// NewHomebrew builds the brew-backed facade.
func NewHomebrew(runner execx.Runner) *Homebrew {
	return &Homebrew{runner: runner, lookPath: exec.LookPath}
}

var _ PackageManager = (*Homebrew)(nil)
var _ ServiceManager = (*Homebrew)(nil)

// IsManagerPresent reports whether the manager binary resolves on PATH.
func (h *Homebrew) IsManagerPresent(binary string) bool {
	_, err := h.lookPath(binary)
	return err == nil
}

// InstallManager runs the bootstrap installer command.
func (h *Homebrew) InstallManager(ctx context.Context, installCommand string) error {
	res, err := h.runner.Stream(ctx, "/bin/bash", "-c", installCommand)
	if err != nil {
		return &InstallError{Name: "homebrew", Err: wrapOutput(err, res)}
	}
	return nil
}

// IsInstalled reports whether the named formula or cask is installed.
func (h *Homebrew) IsInstalled(ctx context.Context, name string, kind PackageKind) (bool, error) {
	args := []string{"list", "--formula", "--versions", name}
	if kind == KindCask {
		args = []string{"list", "--cask", "--versions", name}
	}

	_, err := h.runner.Capture(ctx, "brew", args...)
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// brew list exits non-zero for packages that are not installed.
		return false, nil
	}
	return false, err
}

// Install installs the named formula or cask.
func (h *Homebrew) Install(ctx context.Context, name string, kind PackageKind) error {
	args := []string{"install", name}
	if kind == KindCask {
		args = []string{"install", "--cask", name}
	}

	res, err := h.runner.Stream(ctx, "brew", args...)
	if err != nil {
		return &InstallError{Name: name, Err: wrapOutput(err, res)}
	}
	return nil
}

// IsRunning reports whether a process with the given name is alive.
func (h *Homebrew) IsRunning(ctx context.Context, process string) (bool, error) {
	_, err := h.runner.Capture(ctx, "pgrep", "-x", process)
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// pgrep exits 1 when no process matched.
		return false, nil
	}
	return false, err
}

// Start launches a service under brew's service supervisor.
func (h *Homebrew) Start(ctx context.Context, service string) error {
	res, err := h.runner.Stream(ctx, "brew", "services", "start", service)
	if err != nil {
		return &ServiceError{Service: service, Err: wrapOutput(err, res)}
	}
	return nil
}

func wrapOutput(err error, res execx.Result) error {
	if out := execx.PrimaryOutput(res); out != "" {
		return fmt.Errorf("%w: %s", err, out)
	}
	return err
}
