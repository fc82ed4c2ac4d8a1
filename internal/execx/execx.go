// Package execx wraps subprocess execution for probes and applies. Probes
// use Capture so read-only checks stay silent; applies use Stream so
// installer output reaches the user while still being collected for error
// reporting.
package execx

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result holds the output collected from a command run.
type Result struct {
	Stdout string
	Stderr string
}

// Runner executes external commands. The exec-backed implementation is the
// only one used at runtime; tests substitute fakes at the facade level.
type Runner interface {
	// Capture runs the command collecting output without echoing it.
	Capture(ctx context.Context, name string, args ...string) (Result, error)
	// Stream runs the command echoing output to the parent process while
	// collecting it.
	Stream(ctx context.Context, name string, args ...string) (Result, error)
}

type execRunner struct{}

// NewRunner returns the exec-backed Runner.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Capture(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}, err
}

func (execRunner) Stream(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = io.MultiWriter(os.Stdout, &stdout)
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)

	err := cmd.Run()
	return Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}, err
}

// PrimaryOutput returns stderr when present, otherwise stdout. Error paths
// prefer stderr because package managers put diagnostics there.
func PrimaryOutput(res Result) string {
	if res.Stderr != "" {
		return res.Stderr
	}
	return res.Stdout
}
