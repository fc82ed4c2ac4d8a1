package system

import (
	"context"
	"os"

	"github.com/alexisbeaulieu97/rigup/internal/execx"
)

// LoginShell implements ShellStore via the SHELL environment variable and
// the chsh utility.
type LoginShell struct {
	runner execx.Runner
}

// NewLoginShell builds the chsh-backed shell store.
func NewLoginShell(runner execx.Runner) *LoginShell {
	return &LoginShell{runner: runner}
}

var _ ShellStore = (*LoginShell)(nil)

// CurrentShell returns the user's login shell path, empty when unknown.
func (s *LoginShell) CurrentShell() string {
	return os.Getenv("SHELL")
}

// SetShell changes the login shell. chsh prompts for a password on some
// systems; output is streamed so the prompt is visible.
func (s *LoginShell) SetShell(ctx context.Context, shell string) error {
	_, err := s.runner.Stream(ctx, "chsh", "-s", shell)
	return err
}
