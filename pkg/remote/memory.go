package remote

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/NaufalHusnianto/Agnivolt/pkg/metrics"
)

// MemoryStore is an in-process tree with synchronous change notification.
type MemoryStore struct {
	mu     sync.RWMutex
	root   map[string]any
	subs   map[uint64]memorySub
	nextID uint64
}

type memorySub struct {
	path string
	cb   Callback
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		root: map[string]any{},
		subs: map[uint64]memorySub{},
	}
}

func (m *MemoryStore) Get(ctx context.Context, path string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		metrics.ObserveRemote(BackendMemory, "get", err)
		return Snapshot{Path: path}, err
	}

	m.mu.RLock()
	snap, err := m.snapshot(path)
	m.mu.RUnlock()

	metrics.ObserveRemote(BackendMemory, "get", err)
	return snap, err
}

// snapshot must be called with mu held.
func (m *MemoryStore) snapshot(path string) (Snapshot, error) {
	node, ok := getAt(m.root, SplitPath(path))
	if !ok {
		return Snapshot{Path: path}, nil
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return Snapshot{Path: path}, err
	}
	return Snapshot{Path: path, Value: raw}, nil
}

// Set replaces the node at path with value; a nil value deletes it.
// Subscribers on the path, its ancestors and its descendants are notified.
func (m *MemoryStore) Set(ctx context.Context, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := normalize(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	setAt(m.root, SplitPath(path), normalized)
	affected := m.affected(JoinPath(path))
	m.mu.Unlock()

	for _, sub := range affected {
		snap, _ := m.Get(context.Background(), sub.path)
		sub.cb(snap)
	}
	return nil
}

// affected must be called with mu held.
func (m *MemoryStore) affected(changed string) []memorySub {
	var hit []memorySub
	for _, sub := range m.subs {
		if related(sub.path, changed) {
			hit = append(hit, sub)
		}
	}
	return hit
}

func related(subPath, changed string) bool {
	if subPath == changed || subPath == "" || changed == "" {
		return true
	}
	return strings.HasPrefix(changed, subPath+"/") || strings.HasPrefix(subPath, changed+"/")
}

// Subscribe delivers the current value immediately, then after every change.
// The subscription also ends when ctx is done.
func (m *MemoryStore) Subscribe(ctx context.Context, path string, cb Callback) (Unsubscribe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = memorySub{path: JoinPath(path), cb: cb}
	m.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
	stop := context.AfterFunc(ctx, unsubscribe)

	snap, err := m.Get(ctx, path)
	if err == nil {
		cb(snap)
	}

	return func() {
		stop()
		unsubscribe()
	}, nil
}

// normalize turns value into plain JSON data so the tree never aliases
// caller-owned structs or maps.
func normalize(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	var raw []byte
	switch v := value.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		var err error
		if raw, err = json.Marshal(v); err != nil {
			return nil, err
		}
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
