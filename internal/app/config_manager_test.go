package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warestock/internal/warehouse"
)

func TestConfigManager(t *testing.T) {
	store := warehouse.NewMemoryStore()
	mgr := NewConfigManager(store)

	assert.Equal(t, "", mgr.GetString("backup", "missing"))

	require.NoError(t, mgr.Set("backup", "keep", "30"))
	assert.Equal(t, "30", mgr.GetString("backup", "keep"))
	assert.Equal(t, 30, mgr.GetInt("backup", "keep"))
	assert.EqualValues(t, 30, mgr.GetInt64("backup", "keep"))

	require.NoError(t, mgr.Set("backup", "auto_enable", "true"))
	assert.True(t, mgr.GetBool("backup", "auto_enable"))

	// Read-through cache survives an out-of-band store write; Set updates it.
	require.NoError(t, store.Settings().Set(context.Background(), "backup", "keep", "7"))
	assert.Equal(t, "30", mgr.GetString("backup", "keep"))
	require.NoError(t, mgr.Set("backup", "keep", "7"))
	assert.Equal(t, "7", mgr.GetString("backup", "keep"))
}
