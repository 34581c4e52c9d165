package remote

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	common.SetTestLoggerNop()

	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStore(client)
}

func TestRedisStore_GetLeafAndSubtree(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Set(ctx, DailyPath("t1", "2024-01-01"), map[string]any{"count": 2, "total_voltage": 440}))
	require.NoError(t, store.Set(ctx, DailyPath("t1", "2024-01-02"), map[string]any{"count": 0}))

	snap, err := store.Get(ctx, DailyPath("t1", "2024-01-01"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":2,"total_voltage":440}`, string(snap.Value))

	snap, err = store.Get(ctx, DailyDataPath("t1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"2024-01-01":{"count":2,"total_voltage":440},"2024-01-02":{"count":0}}`, string(snap.Value))

	snap, err = store.Get(ctx, TurbinePath("t1"))
	require.NoError(t, err)
	assert.True(t, snap.Exists())

	snap, err = store.Get(ctx, TurbinePath("t10"))
	require.NoError(t, err)
	assert.False(t, snap.Exists(), "a shared id prefix is not a child")
}

func TestRedisStore_GetCorruptValue(t *testing.T) {
	mr, store := setupTestRedis(t)
	require.NoError(t, mr.Set(DailyPath("t1", "2024-01-01"), "{not json"))

	_, err := store.Get(context.Background(), TurbinePath("t1"))
	assert.Error(t, err)
}

func TestRedisStore_GetUnavailable(t *testing.T) {
	mr, store := setupTestRedis(t)
	mr.Close()

	_, err := store.Get(context.Background(), TurbinePath("t1"))
	assert.Error(t, err)
}

func TestRedisStore_Subscribe(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()
	path := DailyPath("t1", "2024-01-01")

	var mu sync.Mutex
	var got []Snapshot
	unsubscribe, err := store.Subscribe(ctx, path, func(s Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, s)
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, store.Set(ctx, path, map[string]any{"rpm": 1500}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	unsubscribe()
	unsubscribe()

	require.NoError(t, store.Set(ctx, path, map[string]any{"rpm": 1600}))
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 2)
	assert.False(t, got[0].Exists())
	assert.JSONEq(t, `{"rpm":1500}`, string(got[1].Value))
}

func TestRedisStore_SubscribeToAncestor(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	changes := make(chan Snapshot, 4)
	unsubscribe, err := store.Subscribe(ctx, DailyDataPath("t1"), func(s Snapshot) { changes <- s })
	require.NoError(t, err)
	defer unsubscribe()

	<-changes // initial
	require.NoError(t, store.Set(ctx, DailyPath("t1", "2024-01-01"), map[string]any{"count": 1}))

	select {
	case s := <-changes:
		assert.JSONEq(t, `{"2024-01-01":{"count":1}}`, string(s.Value))
	case <-time.After(time.Second):
		t.Fatal("expected a change notification on the ancestor path")
	}
}
