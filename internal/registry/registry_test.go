package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rigup/internal/config"
)

func TestRegisterPreservesOrder(t *testing.T) {
	t.Parallel()

	r := New()
	ids := []string{"homebrew", "formula:htop", "service:redis"}
	for _, id := range ids {
		require.NoError(t, r.Register(config.Declaration{ID: id, Kind: config.KindFormula}))
	}

	decls := r.Declarations()
	require.Len(t, decls, 3)
	for i, id := range ids {
		assert.Equal(t, id, decls[i].ID)
	}
	assert.Equal(t, 3, r.Len())
}

func TestRegisterRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.Register(config.Declaration{ID: "htop"}))

	err := r.Register(config.Declaration{ID: "htop"})
	var dup *DuplicateIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "htop", dup.ID)
}

func TestRegisterRequiresID(t *testing.T) {
	t.Parallel()

	r := New()
	require.Error(t, r.Register(config.Declaration{}))
}

func TestDeclarationsReturnsCopy(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.Register(config.Declaration{ID: "a"}))

	decls := r.Declarations()
	decls[0].ID = "mutated"

	assert.Equal(t, "a", r.Declarations()[0].ID)
}

func TestFromConfigSkipsDisabled(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Declarations: []config.Declaration{
			{ID: "a", Enabled: true},
			{ID: "b", Enabled: false},
			{ID: "c", Enabled: true},
		},
	}

	r, err := FromConfig(cfg)
	require.NoError(t, err)

	decls := r.Declarations()
	require.Len(t, decls, 2)
	assert.Equal(t, "a", decls[0].ID)
	assert.Equal(t, "c", decls[1].ID)
}
