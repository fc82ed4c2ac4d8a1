package brewpkg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/system"
)

type fakePM struct {
	installed map[string]system.PackageKind
	queryErr  error
	instErr   error
	installs  []string
}

func (f *fakePM) IsManagerPresent(string) bool                 { return true }
func (f *fakePM) InstallManager(context.Context, string) error { return nil }

func (f *fakePM) IsInstalled(_ context.Context, name string, kind system.PackageKind) (bool, error) {
	if f.queryErr != nil {
		return false, f.queryErr
	}
	k, ok := f.installed[name]
	return ok && k == kind, nil
}

func (f *fakePM) Install(_ context.Context, name string, kind system.PackageKind) error {
	if f.instErr != nil {
		return f.instErr
	}
	if f.installed == nil {
		f.installed = make(map[string]system.PackageKind)
	}
	f.installed[name] = kind
	f.installs = append(f.installs, name)
	return nil
}

func formulaDecl(name string) *config.Declaration {
	return &config.Declaration{
		ID:      "formula-" + name,
		Kind:    config.KindFormula,
		Enabled: true,
		Formula: &config.FormulaDecl{Package: name},
	}
}

func caskDecl(name string) *config.Declaration {
	return &config.Declaration{
		ID:      "cask-" + name,
		Kind:    config.KindCask,
		Enabled: true,
		Cask:    &config.CaskDecl{Package: name},
	}
}

func TestProbeDetectsInstalledFormula(t *testing.T) {
	t.Parallel()

	pm := &fakePM{installed: map[string]system.PackageKind{"ripgrep": system.KindFormula}}
	h := NewFormula(pm)

	probe, err := h.Probe(context.Background(), formulaDecl("ripgrep"), nil)
	require.NoError(t, err)
	assert.True(t, probe.Present)
}

func TestFormulaAndCaskCataloguesAreDistinct(t *testing.T) {
	t.Parallel()

	pm := &fakePM{installed: map[string]system.PackageKind{"docker": system.KindFormula}}

	probe, err := NewCask(pm).Probe(context.Background(), caskDecl("docker"), nil)
	require.NoError(t, err)
	assert.False(t, probe.Present, "a formula does not satisfy a cask of the same name")
}

func TestApplyInstallsMissingCask(t *testing.T) {
	t.Parallel()

	pm := &fakePM{}
	h := NewCask(pm)
	decl := caskDecl("visual-studio-code")

	probe, err := h.Probe(context.Background(), decl, nil)
	require.NoError(t, err)
	require.False(t, probe.Present)

	_, err = h.Apply(context.Background(), probe, decl, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"visual-studio-code"}, pm.installs)

	verify, err := h.Probe(context.Background(), decl, nil)
	require.NoError(t, err)
	assert.True(t, verify.Present)
}

func TestProbeWrapsQueryFailure(t *testing.T) {
	t.Parallel()

	h := NewFormula(&fakePM{queryErr: errors.New("brew crashed")})
	_, err := h.Probe(context.Background(), formulaDecl("ripgrep"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brew crashed")
}

func TestApplyWrapsInstallFailure(t *testing.T) {
	t.Parallel()

	h := NewFormula(&fakePM{instErr: errors.New("checksum mismatch")})
	_, err := h.Apply(context.Background(), nil, formulaDecl("ripgrep"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestProbeRejectsMissingPayload(t *testing.T) {
	t.Parallel()

	h := NewFormula(&fakePM{})
	_, err := h.Probe(context.Background(), &config.Declaration{ID: "x", Kind: config.KindFormula}, nil)
	require.Error(t, err)
}
