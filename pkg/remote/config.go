package remote

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
)

type Config struct {
	Type          string
	FirebaseURL   string
	FirebaseAuth  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PollInterval  time.Duration
}

// ConfigFromEnv reads the REMOTE_* keys. REMOTE_TYPE defaults to memory.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Type:          strings.ToLower(strings.TrimSpace(os.Getenv(common.EnvKeyRemoteType))),
		FirebaseURL:   strings.TrimSpace(os.Getenv(common.EnvKeyRemoteFirebaseURL)),
		FirebaseAuth:  os.Getenv(common.EnvKeyRemoteFirebaseAuth),
		RedisAddr:     strings.TrimSpace(os.Getenv(common.EnvKeyRemoteRedisAddr)),
		RedisPassword: os.Getenv(common.EnvKeyRemoteRedisPassword),
		PollInterval:  DefaultPollInterval,
	}
	if cfg.Type == "" {
		cfg.Type = BackendMemory
	}

	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyRemoteRedisDB)); raw != "" {
		redisDB, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", common.EnvKeyRemoteRedisDB, raw, err)
		}
		cfg.RedisDB = redisDB
	}

	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyRemotePollInterval)); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil || interval <= 0 {
			return Config{}, fmt.Errorf("invalid %s %q", common.EnvKeyRemotePollInterval, raw)
		}
		cfg.PollInterval = interval
	}

	return cfg, nil
}

// New builds the configured backend. The Redis backend is pinged so a bad
// address fails at startup rather than on the first request.
func New(ctx context.Context, cfg Config) (IStore, error) {
	switch cfg.Type {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFirebase:
		if cfg.FirebaseURL == "" {
			return nil, fmt.Errorf("%s is required for the firebase backend", common.EnvKeyRemoteFirebaseURL)
		}
		return NewFirebaseStore(cfg.FirebaseURL, cfg.FirebaseAuth, cfg.PollInterval), nil
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("%s is required for the redis backend", common.EnvKeyRemoteRedisAddr)
		}
		store := NewRedisStore(NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown %s: %q", common.EnvKeyRemoteType, cfg.Type)
	}
}
