// Package remote reads the collector's real-time tree. Paths are
// "/"-separated, e.g. TurbineData/<id>/daily_data/<date>.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	BackendMemory   = "memory"
	BackendFirebase = "firebase"
	BackendRedis    = "redis"

	turbineRoot  = "TurbineData"
	dailyDataKey = "daily_data"
)

// Snapshot is the value found at Path when it was read. A nil or JSON null
// value means nothing exists there.
type Snapshot struct {
	Path  string
	Value json.RawMessage
}

func (s Snapshot) Exists() bool {
	trimmed := bytes.TrimSpace(s.Value)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func (s Snapshot) Decode(v any) error {
	if !s.Exists() {
		return fmt.Errorf("no value at %s", s.Path)
	}
	return json.Unmarshal(s.Value, v)
}

type Callback func(Snapshot)

// Unsubscribe stops a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

//go:generate mockgen -destination=mocks/mock_remote.go -package=mocks . IStore
type IStore interface {
	Get(ctx context.Context, path string) (Snapshot, error)
	Subscribe(ctx context.Context, path string, cb Callback) (Unsubscribe, error)
}

func TurbinePath(deviceID string) string {
	return JoinPath(turbineRoot, deviceID)
}

func DailyDataPath(deviceID string) string {
	return JoinPath(turbineRoot, deviceID, dailyDataKey)
}

func DailyPath(deviceID string, date string) string {
	return JoinPath(turbineRoot, deviceID, dailyDataKey, date)
}

func JoinPath(segments ...string) string {
	return strings.Join(SplitPath(strings.Join(segments, "/")), "/")
}

// SplitPath drops empty segments so "a//b/" and "a/b" address the same node.
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
