package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	r.Register(Entry{Name: "dnapars", Description: "parsimony forest"})

	e, ok := r.Lookup("dnapars")
	require.True(t, ok)
	assert.Equal(t, "parsimony forest", e.Description)

	_, ok = r.Lookup("unknown")
	assert.False(t, ok)
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	r := New()
	r.Register(Entry{Name: "dnapars"})
	assert.Panics(t, func() { r.Register(Entry{Name: "dnapars"}) })
}

func TestRegisterPanicsOnEmptyName(t *testing.T) {
	assert.Panics(t, func() { New().Register(Entry{}) })
}

func TestValidate(t *testing.T) {
	r := New()
	r.Register(Entry{Name: "dnapars"})
	r.Register(Entry{Name: "gctree"})

	assert.NoError(t, r.Validate(context.Background(), []string{"dnapars", "gctree"}))
	assert.NoError(t, r.Validate(context.Background(), nil))

	err := r.Validate(context.Background(), []string{"dnapars", "raxml"})
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown tool family "raxml"`)
}
