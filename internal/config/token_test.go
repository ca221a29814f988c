package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLifecycle(t *testing.T) {
	isolate(t)

	ti, err := ResolveToken(API{})
	require.NoError(t, err)
	assert.Nil(t, ti)

	require.NoError(t, SetToken("Bearer abc123"))
	ti, err = ResolveToken(API{})
	require.NoError(t, err)
	require.NotNil(t, ti)
	assert.Equal(t, "abc123", ti.Token)
	assert.Equal(t, "file", ti.Source)

	require.NoError(t, DeleteToken())
	require.NoError(t, DeleteToken())
	ti, err = ResolveToken(API{})
	require.NoError(t, err)
	assert.Nil(t, ti)
}

func TestResolveTokenPrecedence(t *testing.T) {
	isolate(t)
	require.NoError(t, SetToken("from-file"))

	ti, err := ResolveToken(API{Token: "from-config"})
	require.NoError(t, err)
	assert.Equal(t, "config", ti.Source)
	assert.Equal(t, "from-config", ti.Token)

	t.Setenv("BIKERENTAL_API_TOKEN", "bearer from-env")
	ti, err = ResolveToken(API{Token: "from-config"})
	require.NoError(t, err)
	assert.Equal(t, "env", ti.Source)
	assert.Equal(t, "from-env", ti.Token)
}

func TestSetTokenEmpty(t *testing.T) {
	isolate(t)
	assert.Error(t, SetToken("   "))
	assert.Error(t, SetToken("Bearer "))
}
