package config

import (
	"gopkg.in/yaml.v3"
)

// Declaration kinds. Each maps to a handler with its own probe and apply
// strategy.
const (
	KindManager      = "manager"
	KindFormula      = "formula"
	KindCask         = "cask"
	KindService      = "service"
	KindFileBlock    = "file_block"
	KindConfigKey    = "config_key"
	KindShellDefault = "shell_default"
	KindCLIShim      = "cli_shim"
)

// Config is the full rigup declaration document.
type Config struct {
	Version      string        `yaml:"version" validate:"required,semver"`
	Name         string        `yaml:"name" validate:"required,min=1,max=100"`
	Description  string        `yaml:"description,omitempty"`
	Settings     Settings      `yaml:"settings,omitempty"`
	Declarations []Declaration `yaml:"declarations" validate:"required,min=1,dive"`
	Validations  []Validation  `yaml:"validations,omitempty" validate:"omitempty,dive"`
}

// Settings holds global run parameters.
type Settings struct {
	// Timeout bounds each declaration's reconcile cycle, in seconds.
	Timeout int  `yaml:"timeout,omitempty" validate:"omitempty,min=1,max=3600"`
	DryRun  bool `yaml:"dry_run,omitempty"`
	Verbose bool `yaml:"verbose,omitempty"`
}

// Declaration names one unit of desired state. Declarations are reconciled
// in document order; the order encodes dependency order and is never
// recomputed.
type Declaration struct {
	ID       string `yaml:"id" validate:"required,decl_id"`
	Name     string `yaml:"name,omitempty"`
	Kind     string `yaml:"kind" validate:"required,oneof=manager formula cask service file_block config_key shell_default cli_shim"`
	Critical bool   `yaml:"critical,omitempty"`
	Enabled  bool   `yaml:"enabled,omitempty"`

	Manager      *ManagerDecl      `yaml:",inline,omitempty"`
	Formula      *FormulaDecl      `yaml:",inline,omitempty"`
	Cask         *CaskDecl         `yaml:",inline,omitempty"`
	Service      *ServiceDecl      `yaml:",inline,omitempty"`
	FileBlock    *FileBlockDecl    `yaml:",inline,omitempty"`
	ConfigKey    *ConfigKeyDecl    `yaml:",inline,omitempty"`
	ShellDefault *ShellDefaultDecl `yaml:",inline,omitempty"`
	CLIShim      *CLIShimDecl      `yaml:",inline,omitempty"`
}

// UnmarshalYAML decodes the shared fields and then the kind-specific payload
// without key conflicts.
func (d *Declaration) UnmarshalYAML(value *yaml.Node) error {
	type baseDecl struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		Kind     string `yaml:"kind"`
		Critical bool   `yaml:"critical"`
		Enabled  *bool  `yaml:"enabled"`
	}

	var base baseDecl
	if err := value.Decode(&base); err != nil {
		return err
	}

	d.ID = base.ID
	d.Name = base.Name
	d.Kind = base.Kind
	d.Critical = base.Critical
	if base.Enabled != nil {
		d.Enabled = *base.Enabled
	} else {
		d.Enabled = true
	}

	d.Manager = nil
	d.Formula = nil
	d.Cask = nil
	d.Service = nil
	d.FileBlock = nil
	d.ConfigKey = nil
	d.ShellDefault = nil
	d.CLIShim = nil

	switch base.Kind {
	case KindManager:
		var decl ManagerDecl
		if err := value.Decode(&decl); err != nil {
			return err
		}
		d.Manager = &decl
	case KindFormula:
		var decl FormulaDecl
		if err := value.Decode(&decl); err != nil {
			return err
		}
		d.Formula = &decl
	case KindCask:
		var decl CaskDecl
		if err := value.Decode(&decl); err != nil {
			return err
		}
		d.Cask = &decl
	case KindService:
		var decl ServiceDecl
		if err := value.Decode(&decl); err != nil {
			return err
		}
		d.Service = &decl
	case KindFileBlock:
		var decl FileBlockDecl
		if err := value.Decode(&decl); err != nil {
			return err
		}
		d.FileBlock = &decl
	case KindConfigKey:
		var decl ConfigKeyDecl
		if err := value.Decode(&decl); err != nil {
			return err
		}
		d.ConfigKey = &decl
	case KindShellDefault:
		var decl ShellDefaultDecl
		if err := value.Decode(&decl); err != nil {
			return err
		}
		d.ShellDefault = &decl
	case KindCLIShim:
		var decl CLIShimDecl
		if err := value.Decode(&decl); err != nil {
			return err
		}
		d.CLIShim = &decl
	}

	return nil
}

// ManagerDecl ensures the package manager itself is installed.
type ManagerDecl struct {
	// Binary is the manager executable expected on PATH.
	Binary string `yaml:"binary" validate:"required,min=1"`
	// InstallCommand bootstraps the manager when the binary is absent.
	InstallCommand string `yaml:"install_command" validate:"required,min=1"`
	// SupportedOS restricts the declaration to the listed GOOS values.
	// Probing on any other OS is a state error.
	SupportedOS []string `yaml:"supported_os,omitempty" validate:"omitempty,dive,min=1"`
}

// FormulaDecl ensures a package manager formula is installed.
type FormulaDecl struct {
	Package string `yaml:"package" validate:"required,min=1,max=100"`
}

// CaskDecl ensures a graphical application cask is installed.
type CaskDecl struct {
	Package string `yaml:"package" validate:"required,min=1,max=100"`
}

// ServiceDecl ensures a background service is running.
type ServiceDecl struct {
	Service string `yaml:"service" validate:"required,min=1"`
	// Process overrides the process name checked by the liveness probe when
	// it differs from the service name.
	Process string `yaml:"process,omitempty"`
}

// FileBlockDecl ensures a marker-delimited block exists in a text file.
type FileBlockDecl struct {
	Path    string `yaml:"path" validate:"required"`
	Marker  string `yaml:"marker" validate:"required,min=1"`
	Content string `yaml:"content" validate:"required,min=1"`
}

// ConfigKeyDecl ensures a key/value setting in a backing store.
type ConfigKeyDecl struct {
	// Store selects the backing facade: macOS defaults or global git config.
	Store string `yaml:"store" validate:"required,oneof=defaults git"`
	// Domain is the preference domain; unused by the git store.
	Domain string `yaml:"domain,omitempty"`
	Key    string `yaml:"key" validate:"required,min=1"`
	Value  string `yaml:"value,omitempty"`
	// ValueFrom derives the desired value from a prior declaration's
	// recorded outcome instead of a literal.
	ValueFrom string `yaml:"value_from,omitempty"`
	// Prompt asks the user for the value, defaulting to the current or
	// derived value. An empty answer skips the declaration.
	Prompt     bool   `yaml:"prompt,omitempty"`
	PromptText string `yaml:"prompt_text,omitempty"`
}

// ShellDefaultDecl ensures the user's login shell.
type ShellDefaultDecl struct {
	Shell string `yaml:"shell" validate:"required,min=1"`
}

// CLIShimDecl ensures a GUI application's command-line shim is on PATH,
// launching the application and polling for the shim to appear.
type CLIShimDecl struct {
	Command string `yaml:"command" validate:"required,min=1"`
	App     string `yaml:"app" validate:"required,min=1"`
	// Attempts caps the post-launch polls; DelayMS is the wait between them.
	Attempts int `yaml:"attempts,omitempty" validate:"omitempty,min=1,max=120"`
	DelayMS  int `yaml:"delay_ms,omitempty" validate:"omitempty,min=10,max=60000"`
}

// Validation represents a post-run check.
type Validation struct {
	Type string `yaml:"type" validate:"required,oneof=command_exists file_exists path_contains"`

	Command string `yaml:"command,omitempty"`
	Path    string `yaml:"path,omitempty"`
	File    string `yaml:"file,omitempty"`
	Text    string `yaml:"text,omitempty"`
}

// DeclarationMap builds a lookup table of declarations by ID.
func DeclarationMap(decls []Declaration) map[string]Declaration {
	out := make(map[string]Declaration, len(decls))
	for _, decl := range decls {
		out[decl.ID] = decl
	}
	return out
}
