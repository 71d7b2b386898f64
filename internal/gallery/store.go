package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"lamina/internal/logging"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "savedLamina"

// ErrStorageDecode means the stored value is not a valid collection. Load
// logs it and falls back to an empty collection.
var ErrStorageDecode = errors.New("stored gallery could not be decoded")

// Backend is a durable string key/value store.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
}

// Store reads and writes the whole collection under one key.
// It assumes a single writer; the last Save wins.
type Store struct {
	backend Backend
	key     string
}

// New creates a Store over backend. An empty key means DefaultKey.
func New(backend Backend, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{backend: backend, key: key}
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Load returns the stored collection. A missing value, a read failure and a
// decode failure all yield an empty collection; failures are only logged.
func (s *Store) Load(ctx context.Context) Collection {
	raw, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to read %s: %v", s.key, err)
		return Collection{}
	}
	if !ok {
		logging.StoreDebug("No stored gallery under %s", s.key)
		return Collection{}
	}

	coll, err := decode(raw)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("%v", err)
		return Collection{}
	}
	logging.StoreDebug("Loaded %d saved images", len(coll))
	return coll
}

func decode(raw string) (Collection, error) {
	var coll Collection
	if err := json.Unmarshal([]byte(raw), &coll); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageDecode, err)
	}

	// Records of an unknown type cannot be partitioned; drop them.
	valid := make(Collection, 0, len(coll))
	for _, img := range coll {
		if !img.Type.Valid() {
			logging.Get(logging.CategoryStore).Warn("Skipping %s: unknown type %q", img.ID, img.Type)
			continue
		}
		valid = append(valid, img)
	}
	return valid, nil
}

// Save replaces the stored collection with coll.
func (s *Store) Save(ctx context.Context, coll Collection) error {
	if coll == nil {
		coll = Collection{}
	}
	data, err := json.Marshal(coll)
	if err != nil {
		return fmt.Errorf("failed to encode gallery: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to write gallery: %w", err)
	}
	logging.Store("Saved gallery with %d images", len(coll))
	return nil
}

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

// Get implements Backend.
func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Put implements Backend.
func (m *MemoryBackend) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
