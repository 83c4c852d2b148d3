package kvstore

import (
	"sync"

	"github.com/runoshun/timeflow/internal/domain"
)

// Memory implements domain.KVStore in process memory.
// Set errors can be injected per key to exercise storage failure paths.
type Memory struct {
	data    map[string][]byte
	failSet map[string]error
	failGet map[string]error
	mu      sync.Mutex
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		data:    make(map[string][]byte),
		failSet: make(map[string]error),
		failGet: make(map[string]error),
	}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failGet[key]; err != nil {
		return nil, false, &domain.StorageError{Op: "read", Key: key, Err: err}
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failSet[key]; err != nil {
		return &domain.StorageError{Op: "write", Key: key, Err: err}
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// FailSet makes subsequent writes to key fail with err. A nil err clears it.
func (m *Memory) FailSet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSet[key] = err
}

// FailGet makes subsequent reads of key fail with err. A nil err clears it.
func (m *Memory) FailGet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failGet[key] = err
}

// Ensure Memory implements KVStore.
var _ domain.KVStore = (*Memory)(nil)
