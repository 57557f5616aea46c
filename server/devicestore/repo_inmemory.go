package devicestore

import (
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/graphene-portal/sessions"
)

var _ Repo = (*InMemoryDeviceRepo)(nil)

type deviceEntry struct {
	store    *sessions.Store
	lastSeen time.Time
}

// InMemoryDeviceRepo keeps the stores of signed-in devices in memory,
// building them on first use. Signed-out devices are rebuilt from storage on
// every Get, so unknown or made-up device ids cost nothing once the request
// ends. Dropping an entry loses nothing: the next Get restores it.
type InMemoryDeviceRepo struct {
	mu      sync.Mutex
	devices map[string]*deviceEntry
	factory StoreFactory
	nowTime func() time.Time
}

// NewInMemoryDeviceRepo creates a new in-memory device repository
func NewInMemoryDeviceRepo(factory StoreFactory) *InMemoryDeviceRepo {
	return &InMemoryDeviceRepo{
		devices: make(map[string]*deviceEntry),
		factory: factory,
		nowTime: time.Now,
	}
}

// Get returns the device's store, creating and restoring it if needed.
func (r *InMemoryDeviceRepo) Get(deviceID string) (*sessions.Store, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("deviceID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.devices[deviceID]; ok {
		entry.lastSeen = r.nowTime()
		return entry.store, nil
	}

	store, err := r.factory(deviceID)
	if err != nil {
		return nil, fmt.Errorf("[InMemoryDeviceRepo.Get] %w", err)
	}
	if store.IsAuthenticated() {
		r.devices[deviceID] = &deviceEntry{store: store, lastSeen: r.nowTime()}
	}
	return store, nil
}

// Delete forgets a device's in-memory store
func (r *InMemoryDeviceRepo) Delete(deviceID string) error {
	if deviceID == "" {
		return fmt.Errorf("deviceID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.devices, deviceID)
	return nil
}

// DeleteIdle forgets every device not seen since before, returning how many
// were dropped.
func (r *InMemoryDeviceRepo) DeleteIdle(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, entry := range r.devices {
		if entry.lastSeen.Before(before) {
			delete(r.devices, id)
			dropped++
		}
	}
	return dropped
}

func (r *InMemoryDeviceRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.devices)
}
