package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/handler"
	"github.com/alexisbeaulieu97/rigup/internal/system"
)

type fakePM struct {
	present    bool
	installed  []string
	installErr error
}

func (f *fakePM) IsManagerPresent(string) bool { return f.present }

func (f *fakePM) InstallManager(_ context.Context, installCommand string) error {
	if f.installErr != nil {
		return f.installErr
	}
	f.installed = append(f.installed, installCommand)
	f.present = true
	return nil
}

func (f *fakePM) IsInstalled(context.Context, string, system.PackageKind) (bool, error) {
	return false, nil
}

func (f *fakePM) Install(context.Context, string, system.PackageKind) error { return nil }

func managerDecl(supportedOS ...string) *config.Declaration {
	return &config.Declaration{
		ID:       "homebrew",
		Kind:     config.KindManager,
		Critical: true,
		Enabled:  true,
		Manager: &config.ManagerDecl{
			Binary:         "brew",
			InstallCommand: "/bin/bash -c \"$(curl -fsSL https://example.com/install.sh)\"",
			SupportedOS:    supportedOS,
		},
	}
}

func TestProbeDetectsInstalledManager(t *testing.T) {
	t.Parallel()

	h := New(&fakePM{present: true})
	probe, err := h.Probe(context.Background(), managerDecl(), nil)
	require.NoError(t, err)
	assert.True(t, probe.Present)
}

func TestProbeFailsOnUnsupportedOS(t *testing.T) {
	t.Parallel()

	h := New(&fakePM{present: true}).(*managerHandler)
	h.goos = "linux"

	_, err := h.Probe(context.Background(), managerDecl("darwin"), nil)
	require.Error(t, err)

	var stateErr *handler.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Contains(t, err.Error(), "unsupported operating system")
}

func TestApplyRunsInstallCommand(t *testing.T) {
	t.Parallel()

	pm := &fakePM{}
	h := New(pm)
	decl := managerDecl()

	_, err := h.Apply(context.Background(), nil, decl, nil)
	require.NoError(t, err)
	require.Len(t, pm.installed, 1)
	assert.Equal(t, decl.Manager.InstallCommand, pm.installed[0])

	verify, err := h.Probe(context.Background(), decl, nil)
	require.NoError(t, err)
	assert.True(t, verify.Present)
}

func TestApplyWrapsInstallFailure(t *testing.T) {
	t.Parallel()

	h := New(&fakePM{installErr: errors.New("curl exited 22")})
	_, err := h.Apply(context.Background(), nil, managerDecl(), nil)
	require.Error(t, err)

	var execErr *handler.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "homebrew", execErr.DeclarationID())
}

func TestProbeRejectsMissingPayload(t *testing.T) {
	t.Parallel()

	h := New(&fakePM{})
	_, err := h.Probe(context.Background(), &config.Declaration{ID: "x", Kind: config.KindManager}, nil)
	require.Error(t, err)
}
