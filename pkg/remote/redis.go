package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/NaufalHusnianto/Agnivolt/pkg/metrics"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore keeps every leaf record as a JSON string under its path. Reading
// an interior path assembles the subtree from the keys below it. Writers
// publish the changed path on the channel of the path and of every ancestor.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		logger: common.GetLoggerWith(
			common.LoggerNameRemoteStore,
			zap.String(common.LoggerFieldBackend, BackendRedis),
		),
	}
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Get(ctx context.Context, path string) (Snapshot, error) {
	snap, err := r.get(ctx, path)
	metrics.ObserveRemote(BackendRedis, "get", err)
	return snap, err
}

func (r *RedisStore) get(ctx context.Context, path string) (Snapshot, error) {
	key := JoinPath(path)

	val, err := r.client.Get(ctx, key).Result()
	if err == nil {
		return Snapshot{Path: path, Value: json.RawMessage(val)}, nil
	}
	if !errors.Is(err, redis.Nil) {
		return Snapshot{Path: path}, fmt.Errorf("redis get %s: %w", key, err)
	}

	keys, err := r.childKeys(ctx, key)
	if err != nil {
		return Snapshot{Path: path}, err
	}
	if len(keys) == 0 {
		return Snapshot{Path: path}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return Snapshot{Path: path}, fmt.Errorf("redis mget under %s: %w", key, err)
	}

	root := map[string]any{}
	for i, k := range keys {
		s, ok := values[i].(string)
		if !ok {
			// deleted between SCAN and MGET
			continue
		}
		var leaf any
		if err := json.Unmarshal([]byte(s), &leaf); err != nil {
			return Snapshot{Path: path}, fmt.Errorf("redis value %s: %w", k, err)
		}
		setAt(root, SplitPath(strings.TrimPrefix(k, key+"/")), leaf)
	}

	raw, err := json.Marshal(root)
	if err != nil {
		return Snapshot{Path: path}, err
	}
	return Snapshot{Path: path, Value: raw}, nil
}

func (r *RedisStore) childKeys(ctx context.Context, key string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, escapeGlob(key)+"/*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan under %s: %w", key, err)
	}
	return keys, nil
}

// Set stores value as the JSON leaf at path and publishes the change.
func (r *RedisStore) Set(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	key := JoinPath(path)
	if err := r.client.Set(ctx, key, raw, 0).Err(); err != nil {
		metrics.ObserveRemote(BackendRedis, "set", err)
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	for _, channel := range ancestors(key) {
		if err := r.client.Publish(ctx, channel, key).Err(); err != nil {
			metrics.ObserveRemote(BackendRedis, "set", err)
			return fmt.Errorf("redis publish %s: %w", channel, err)
		}
	}

	metrics.ObserveRemote(BackendRedis, "set", nil)
	return nil
}

// Subscribe delivers the current value once the channel subscription is
// confirmed, then a fresh read after every published change.
func (r *RedisStore) Subscribe(ctx context.Context, path string, cb Callback) (Unsubscribe, error) {
	subCtx, cancel := context.WithCancel(ctx)

	pubsub := r.client.Subscribe(subCtx, JoinPath(path))
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		metrics.ObserveRemote(BackendRedis, "subscribe", err)
		return nil, fmt.Errorf("redis subscribe %s: %w", path, err)
	}
	metrics.ObserveRemote(BackendRedis, "subscribe", nil)

	ch := pubsub.Channel()

	go func() {
		if snap, err := r.Get(subCtx, path); err == nil && subCtx.Err() == nil {
			cb(snap)
		}

		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				snap, err := r.Get(subCtx, path)
				if subCtx.Err() != nil {
					return
				}
				if err != nil {
					r.logger.Warn("Read after change failed", zap.String("path", path), zap.Error(err))
					continue
				}
				cb(snap)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			_ = pubsub.Close()
		})
	}, nil
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
