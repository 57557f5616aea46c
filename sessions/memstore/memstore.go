package memstore

import (
	"sync"

	"github.com/jrsteele09/graphene-portal/internal/errors"
	"github.com/jrsteele09/graphene-portal/sessions"
)

var _ sessions.Storage = (*MemStore)(nil)

// MemStore keeps slots in memory. Records survive a Store being rebuilt
// but not a process restart.
type MemStore struct {
	lock  sync.RWMutex
	slots map[string][]byte
}

func New() *MemStore {
	return &MemStore{
		slots: make(map[string][]byte),
	}
}

func (m *MemStore) Get(key string) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	v, ok := m.slots[key]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemStore) Set(key string, value []byte) error {
	if key == "" {
		return errors.ErrInvalid
	}
	m.lock.Lock()
	defer m.lock.Unlock()

	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemStore) Remove(key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	delete(m.slots, key)
	return nil
}

// Len is the number of occupied slots.
func (m *MemStore) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.slots)
}
