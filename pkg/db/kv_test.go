package db

import (
	"context"
	"testing"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	_ "github.com/NaufalHusnianto/Agnivolt/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKVStore(t *testing.T) *KVStore {
	common.SetTestLoggerNop()

	instance, err := Open(UseNamedMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)
	return instance.KVStore()
}

func TestKVStore_GetMissing(t *testing.T) {
	store := newTestKVStore(t)

	value, found, err := store.Get(context.Background(), "devices")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestKVStore_SetOverwrites(t *testing.T) {
	store := newTestKVStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "devices", `[{"id":"1"}]`))
	require.NoError(t, store.Set(ctx, "devices", `[]`))

	value, found, err := store.Get(ctx, "devices")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, value)
}

func TestKVStore_CancelledContext(t *testing.T) {
	store := newTestKVStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, store.Set(ctx, "devices", `[]`))
}
