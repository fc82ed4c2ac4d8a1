package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	riguperrors "github.com/alexisbeaulieu97/rigup/pkg/errors"
)

const sampleDocument = `
version: "1.0"
name: workstation
settings:
  timeout: 300
declarations:
  - id: homebrew
    kind: manager
    critical: true
    binary: brew
    install_command: "/bin/bash -c install.sh"
    supported_os: [darwin]
  - id: "formula:htop"
    kind: formula
    package: htop
  - id: "cask:rectangle"
    kind: cask
    package: rectangle
  - id: "service:redis"
    kind: service
    service: redis
  - id: zshrc-aliases
    kind: file_block
    path: ~/.zshrc
    marker: "rigup:aliases"
    content: "alias ll='ls -la'"
  - id: git-email
    kind: config_key
    store: git
    key: user.email
    prompt: true
  - id: dock-autohide
    kind: config_key
    store: defaults
    domain: com.apple.dock
    key: autohide
    value: "1"
  - id: login-shell
    kind: shell_default
    shell: /bin/zsh
  - id: code-shim
    kind: cli_shim
    command: code
    app: "Visual Studio Code"
    attempts: 10
    delay_ms: 500
validations:
  - type: command_exists
    command: brew
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rigup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfigDecodesAllKinds(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig(writeConfig(t, sampleDocument))
	require.NoError(t, err)

	require.Len(t, cfg.Declarations, 9)
	assert.Equal(t, "workstation", cfg.Name)
	assert.Equal(t, 300, cfg.Settings.Timeout)

	manager := cfg.Declarations[0]
	assert.Equal(t, KindManager, manager.Kind)
	assert.True(t, manager.Critical)
	require.NotNil(t, manager.Manager)
	assert.Equal(t, "brew", manager.Manager.Binary)
	assert.Equal(t, []string{"darwin"}, manager.Manager.SupportedOS)
	assert.Nil(t, manager.Formula)

	formula := cfg.Declarations[1]
	require.NotNil(t, formula.Formula)
	assert.Equal(t, "htop", formula.Formula.Package)
	assert.True(t, formula.Enabled, "enabled defaults to true")
	assert.False(t, formula.Critical)

	prompted := cfg.Declarations[5]
	require.NotNil(t, prompted.ConfigKey)
	assert.Equal(t, "git", prompted.ConfigKey.Store)
	assert.True(t, prompted.ConfigKey.Prompt)

	shim := cfg.Declarations[8]
	require.NotNil(t, shim.CLIShim)
	assert.Equal(t, 10, shim.CLIShim.Attempts)
	assert.Equal(t, 500, shim.CLIShim.DelayMS)
}

func TestParseConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	var parseErr *riguperrors.ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestValidateConfigRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	doc := `
version: "1.0"
name: dupes
declarations:
  - id: htop
    kind: formula
    package: htop
  - id: htop
    kind: formula
    package: htop
`
	_, err := ParseConfig(writeConfig(t, doc))
	var valErr *riguperrors.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, err.Error(), "duplicate declaration id")
}

func TestValidateConfigRejectsForwardValueFrom(t *testing.T) {
	t.Parallel()

	doc := `
version: "1.0"
name: forward
declarations:
  - id: ssh-identity
    kind: config_key
    store: git
    key: user.signingkey
    value_from: git-email
  - id: git-email
    kind: config_key
    store: git
    key: user.email
    value: dev@example.com
`
	_, err := ParseConfig(writeConfig(t, doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must reference a declaration before")
}

func TestValidateConfigRejectsUnknownValueFrom(t *testing.T) {
	t.Parallel()

	doc := `
version: "1.0"
name: unknown-ref
declarations:
  - id: ssh-identity
    kind: config_key
    store: git
    key: user.signingkey
    value_from: nope
`
	_, err := ParseConfig(writeConfig(t, doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown declaration")
}

func TestValidateDeclarationRequiresPayload(t *testing.T) {
	t.Parallel()

	err := ValidateDeclaration(Declaration{ID: "htop", Kind: KindFormula, Enabled: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formula configuration is required")
}

func TestValidateDeclarationConfigKeyRules(t *testing.T) {
	t.Parallel()

	t.Run("defaults store requires domain", func(t *testing.T) {
		t.Parallel()
		err := ValidateDeclaration(Declaration{
			ID:        "dock",
			Kind:      KindConfigKey,
			Enabled:   true,
			ConfigKey: &ConfigKeyDecl{Store: "defaults", Key: "autohide", Value: "1"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a domain")
	})

	t.Run("requires a value source", func(t *testing.T) {
		t.Parallel()
		err := ValidateDeclaration(Declaration{
			ID:        "email",
			Kind:      KindConfigKey,
			Enabled:   true,
			ConfigKey: &ConfigKeyDecl{Store: "git", Key: "user.email"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "one of value, value_from or prompt")
	})
}

func TestDeclarationMap(t *testing.T) {
	t.Parallel()

	decls := []Declaration{
		{ID: "a", Kind: KindFormula},
		{ID: "b", Kind: KindCask},
	}
	m := DeclarationMap(decls)
	require.Len(t, m, 2)
	assert.Equal(t, KindCask, m["b"].Kind)
}
