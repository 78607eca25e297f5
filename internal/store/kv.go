// internal/store/kv.go
//
// Key-value storage abstraction behind the persistence layer.
// The daily-sweep idempotency and multi-instance interaction are all
// expressed over this small interface, so they are testable without a real
// backend.
//
// Implementations:
//   - Memory (this file): map-backed, concurrency-safe via RWMutex. State is
//     lost when the process restarts.
//   - SQLiteKV (sqlite.go): durable, one row per key.
//   - Namespaced: prefix wrapper giving each server identity its own slice
//     of the underlying store.

package store

import "sync"

// KV is a flat string-keyed store. Get reports presence explicitly so an
// empty value and a missing key are distinguishable.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// memory is an in-memory map-based KV implementation.
type memory struct {
	mu   sync.RWMutex
	vals map[string]string
}

// NewMemoryKV constructs an in-memory KV.
func NewMemoryKV() KV {
	return &memory{vals: make(map[string]string)}
}

func (m *memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	return v, ok, nil
}

func (m *memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = value
	return nil
}

func (m *memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vals, key)
	return nil
}

// namespaced prefixes every key, partitioning one backend between callers.
type namespaced struct {
	kv     KV
	prefix string
}

// Namespaced returns a view of kv where every key is prefixed with
// prefix + "|".
func Namespaced(kv KV, prefix string) KV {
	return &namespaced{kv: kv, prefix: prefix + "|"}
}

func (n *namespaced) Get(key string) (string, bool, error) { return n.kv.Get(n.prefix + key) }
func (n *namespaced) Set(key, value string) error          { return n.kv.Set(n.prefix+key, value) }
func (n *namespaced) Delete(key string) error              { return n.kv.Delete(n.prefix + key) }
