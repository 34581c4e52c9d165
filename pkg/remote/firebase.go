package remote

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/NaufalHusnianto/Agnivolt/pkg/common"
	"github.com/NaufalHusnianto/Agnivolt/pkg/metrics"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const DefaultPollInterval = 5 * time.Second

// FirebaseStore reads a Firebase Realtime Database through its REST API.
// Subscriptions poll the path and fire when the returned value changes.
type FirebaseStore struct {
	httpClient   *resty.Client
	auth         string
	pollInterval time.Duration
	logger       *zap.Logger
}

func NewFirebaseStore(baseURL, auth string, pollInterval time.Duration) *FirebaseStore {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Accept", "application/json")

	return &FirebaseStore{
		httpClient:   client,
		auth:         auth,
		pollInterval: pollInterval,
		logger: common.GetLoggerWith(
			common.LoggerNameRemoteStore,
			zap.String(common.LoggerFieldBackend, BackendFirebase),
		),
	}
}

func (f *FirebaseStore) Get(ctx context.Context, path string) (Snapshot, error) {
	snap, err := f.get(ctx, path)
	metrics.ObserveRemote(BackendFirebase, "get", err)
	return snap, err
}

// restPath maps a tree path to its REST resource, escaping each segment so
// ids cannot add query parameters or fragments to the request.
func restPath(path string) string {
	segments := SplitPath(path)
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/" + strings.Join(segments, "/") + ".json"
}

func (f *FirebaseStore) get(ctx context.Context, path string) (Snapshot, error) {
	req := f.httpClient.R().SetContext(ctx)
	if f.auth != "" {
		req.SetQueryParam("auth", f.auth)
	}

	resp, err := req.Get(restPath(path))
	if err != nil {
		return Snapshot{Path: path}, fmt.Errorf("firebase get %s: %w", path, err)
	}
	if resp.IsError() {
		return Snapshot{Path: path}, fmt.Errorf("firebase get %s: status %d", path, resp.StatusCode())
	}

	return Snapshot{Path: path, Value: bytes.Clone(resp.Body())}, nil
}

func (f *FirebaseStore) Subscribe(ctx context.Context, path string, cb Callback) (Unsubscribe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	go f.poll(subCtx, path, cb)

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func (f *FirebaseStore) poll(ctx context.Context, path string, cb Callback) {
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	var last []byte
	first := true

	for {
		snap, err := f.Get(ctx, path)
		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			f.logger.Warn("Poll failed", zap.String("path", path), zap.Error(err))
		case first || !bytes.Equal(last, snap.Value):
			first = false
			last = snap.Value
			cb(snap)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
