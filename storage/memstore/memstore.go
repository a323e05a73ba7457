package memstore

import (
	"context"
	"sync"

	"github.com/amodkhurasiya/tribal-crafts-server/storage"
)

var _ storage.Repo = (*MemStore)(nil)

// MemStore keeps device storage in process memory. Used in tests and when no
// redis address is configured.
type MemStore struct {
	devices map[string]map[string]string
	lock    sync.RWMutex
}

func New() *MemStore {
	return &MemStore{devices: make(map[string]map[string]string)}
}

func (m *MemStore) Get(_ context.Context, deviceID, key string) (string, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	values, ok := m.devices[deviceID]
	if !ok {
		return "", false, nil
	}
	value, ok := values[key]
	return value, ok, nil
}

func (m *MemStore) Set(_ context.Context, deviceID, key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	values, ok := m.devices[deviceID]
	if !ok {
		values = make(map[string]string)
		m.devices[deviceID] = values
	}
	values[key] = value
	return nil
}

func (m *MemStore) Delete(_ context.Context, deviceID, key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if values, ok := m.devices[deviceID]; ok {
		delete(values, key)
	}
	return nil
}
