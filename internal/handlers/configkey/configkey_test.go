package configkey

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rigup/internal/config"
)

type fakePrefs struct {
	values map[string]string
	writes int
}

func (f *fakePrefs) key(domain, key string) string { return domain + "/" + key }

func (f *fakePrefs) Read(_ context.Context, domain, key string) (string, bool, error) {
	v, ok := f.values[f.key(domain, key)]
	return v, ok, nil
}

func (f *fakePrefs) Write(_ context.Context, domain, key, value string) error {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[f.key(domain, key)] = value
	f.writes++
	return nil
}

type fakeGit struct {
	values map[string]string
}

func (f *fakeGit) GetGlobal(key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeGit) SetGlobal(key, value string) error {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[key] = value
	return nil
}

type fakePrompter struct {
	answer string
	asked  int
}

func (f *fakePrompter) Ask(_, defaultValue string) (string, error) {
	f.asked++
	if f.answer == "" {
		return defaultValue, nil
	}
	return f.answer, nil
}

type fakeView map[string]string

func (f fakeView) ValueOf(id string) (string, bool) {
	v, ok := f[id]
	return v, ok
}

func defaultsDecl(value string) *config.Declaration {
	return &config.Declaration{
		ID:      "dock-autohide",
		Kind:    config.KindConfigKey,
		Enabled: true,
		ConfigKey: &config.ConfigKeyDecl{
			Store:  "defaults",
			Domain: "com.apple.dock",
			Key:    "autohide",
			Value:  value,
		},
	}
}

func TestProbeSatisfiedWhenValueMatches(t *testing.T) {
	t.Parallel()

	prefs := &fakePrefs{values: map[string]string{"com.apple.dock/autohide": "1"}}
	h := New(prefs, &fakeGit{}, &fakePrompter{})

	probe, err := h.Probe(context.Background(), defaultsDecl("1"), nil)
	require.NoError(t, err)
	assert.True(t, probe.Present)
	assert.Equal(t, "1", probe.CurrentValue)
}

func TestApplyWritesDesiredValue(t *testing.T) {
	t.Parallel()

	prefs := &fakePrefs{}
	h := New(prefs, &fakeGit{}, &fakePrompter{})
	decl := defaultsDecl("1")

	probe, err := h.Probe(context.Background(), decl, nil)
	require.NoError(t, err)
	require.False(t, probe.Present)

	result, err := h.Apply(context.Background(), probe, decl, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", result.Value)
	assert.Equal(t, "1", prefs.values["com.apple.dock/autohide"])

	verify, err := h.Probe(context.Background(), decl, nil)
	require.NoError(t, err)
	assert.True(t, verify.Present)
}

func TestProbeResolvesValueFromPriorOutcome(t *testing.T) {
	t.Parallel()

	git := &fakeGit{}
	h := New(&fakePrefs{}, git, &fakePrompter{})
	decl := &config.Declaration{
		ID:      "ssh-identity",
		Kind:    config.KindConfigKey,
		Enabled: true,
		ConfigKey: &config.ConfigKeyDecl{
			Store:     "git",
			Key:       "user.signingkey",
			ValueFrom: "git-email",
		},
	}
	view := fakeView{"git-email": "dev@example.com"}

	probe, err := h.Probe(context.Background(), decl, view)
	require.NoError(t, err)
	require.False(t, probe.Present)
	assert.Equal(t, "dev@example.com", probe.ProposedValue)

	_, err = h.Apply(context.Background(), probe, decl, view)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", git.values["user.signingkey"])
}

func TestProbeSkipsWhenNoValueAvailable(t *testing.T) {
	t.Parallel()

	h := New(&fakePrefs{}, &fakeGit{}, &fakePrompter{})
	decl := &config.Declaration{
		ID:      "git-email",
		Kind:    config.KindConfigKey,
		Enabled: true,
		ConfigKey: &config.ConfigKeyDecl{
			Store:  "git",
			Key:    "user.email",
			Prompt: true,
		},
	}

	probe, err := h.Probe(context.Background(), decl, fakeView{})
	require.NoError(t, err)
	assert.False(t, probe.Present)
	assert.True(t, probe.NoDesiredValue)
}

func TestPromptedValueIsMemoizedAcrossProbes(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{answer: "dev@example.com"}
	git := &fakeGit{}
	h := New(&fakePrefs{}, git, prompter)
	decl := &config.Declaration{
		ID:      "git-email",
		Kind:    config.KindConfigKey,
		Enabled: true,
		ConfigKey: &config.ConfigKeyDecl{
			Store:      "git",
			Key:        "user.email",
			Prompt:     true,
			PromptText: "Git email",
		},
	}

	probe, err := h.Probe(context.Background(), decl, fakeView{})
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", probe.ProposedValue)

	_, err = h.Apply(context.Background(), probe, decl, fakeView{})
	require.NoError(t, err)

	verify, err := h.Probe(context.Background(), decl, fakeView{})
	require.NoError(t, err)
	assert.True(t, verify.Present)
	assert.Equal(t, 1, prompter.asked, "verifying re-probe must not prompt again")
}

func TestPromptDefaultsToCurrentValue(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{}
	git := &fakeGit{values: map[string]string{"user.email": "dev@example.com"}}
	h := New(&fakePrefs{}, git, prompter)
	decl := &config.Declaration{
		ID:      "git-email",
		Kind:    config.KindConfigKey,
		Enabled: true,
		ConfigKey: &config.ConfigKeyDecl{
			Store:  "git",
			Key:    "user.email",
			Prompt: true,
		},
	}

	probe, err := h.Probe(context.Background(), decl, fakeView{})
	require.NoError(t, err)
	assert.True(t, probe.Present, "accepting the detected default leaves state satisfied")
	assert.Equal(t, "dev@example.com", probe.ProposedValue)
}
