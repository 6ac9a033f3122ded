// ABOUTME: Tests for the charm storage backend
// ABOUTME: Runs against the local badger driver so no server is needed

package charm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/propkit/storage"
)

func TestClientGetMissing(t *testing.T) {
	c := NewTestClient(t)

	_, err := c.Get("summary")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClientRoundTrip(t *testing.T) {
	c := NewTestClient(t)

	require.NoError(t, c.Set("risks", `[{"id":"r1","factor":"지연","impact":2,"likelihood":3}]`))
	got, err := c.Get("risks")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"r1","factor":"지연","impact":2,"likelihood":3}]`, got)

	require.NoError(t, c.Set("effects", `[]`))
	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"effects", "risks"}, keys)

	require.NoError(t, c.Remove("risks"))
	_, err = c.Get("risks")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClientSyncIsNoopWhenLocal(t *testing.T) {
	c := NewTestClient(t)

	assert.True(t, c.IsLocal())
	assert.NoError(t, c.Sync())
	assert.False(t, c.IsConnected())
	assert.False(t, c.Config().AutoSync)
}

func TestClientReset(t *testing.T) {
	c := NewTestClient(t)

	require.NoError(t, c.Set("tree-data", `[]`))
	require.NoError(t, c.Reset())

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestConfigDefaults(t *testing.T) {
	cfg := (&Config{AutoSync: false}).withDefaults()
	assert.Equal(t, DefaultCharmHost, cfg.Host)
	assert.NotZero(t, cfg.StaleThreshold)
	assert.False(t, cfg.AutoSync)

	assert.Equal(t, DefaultConfig(), (*Config)(nil).withDefaults())
}
