// Package system holds the narrow facades the reconciler's handlers use to
// touch the machine: package manager, services, preference store, git
// config, login shell and interactive prompting. Handlers depend on the
// interfaces; tests substitute fakes.
package system

import (
	"context"
	"fmt"
)

// PackageKind distinguishes command-line formulas from graphical casks.
type PackageKind string

const (
	// KindFormula is a command-line package.
	KindFormula PackageKind = "formula"
	// KindCask is a graphical application package.
	KindCask PackageKind = "cask"
)

// PackageManager abstracts the package manager binary and its catalogue.
type PackageManager interface {
	IsManagerPresent(binary string) bool
	InstallManager(ctx context.Context, installCommand string) error
	IsInstalled(ctx context.Context, name string, kind PackageKind) (bool, error)
	Install(ctx context.Context, name string, kind PackageKind) error
}

// ServiceManager abstracts background service control.
type ServiceManager interface {
	IsRunning(ctx context.Context, process string) (bool, error)
	Start(ctx context.Context, service string) error
}

// PrefStore abstracts the key-value OS preference store.
type PrefStore interface {
	Read(ctx context.Context, domain, key string) (string, bool, error)
	Write(ctx context.Context, domain, key, value string) error
}

// GitConfig abstracts the global version-control configuration.
type GitConfig interface {
	GetGlobal(key string) (string, bool, error)
	SetGlobal(key, value string) error
}

// ShellStore abstracts the user's login shell.
type ShellStore interface {
	CurrentShell() string
	SetShell(ctx context.Context, shell string) error
}

// Prompter abstracts interactive input. Ask returns the default when the
// user submits an empty line; an empty default plus an empty answer yields
// an empty string, which callers treat as "skip this resource".
type Prompter interface {
	Ask(prompt, defaultValue string) (string, error)
}

// InstallError reports a failed package or manager installation.
type InstallError struct {
	Name string
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install %s: %v", e.Name, e.Err)
}

// Unwrap exposes the underlying error.
func (e *InstallError) Unwrap() error { return e.Err }

// ServiceError reports a failed service operation.
type ServiceError struct {
	Service string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s: %v", e.Service, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ServiceError) Unwrap() error { return e.Err }
