package devicestore

import (
	"time"

	"github.com/jrsteele09/graphene-portal/sessions"
)

// Repo hands out the session store of each device. A device is one browser,
// identified by an opaque cookie. Delete is called on logout so a signed-out
// device holds no memory.
type Repo interface {
	Get(deviceID string) (*sessions.Store, error)
	Delete(deviceID string) error
	DeleteIdle(before time.Time) int
	Len() int
}

// StoreFactory builds and restores the store for a device that has not been
// seen since the process started.
type StoreFactory func(deviceID string) (*sessions.Store, error)
