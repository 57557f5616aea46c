package fakeuserrepo

import (
	"sort"
	"sync"

	"github.com/jrsteele09/graphene-portal/internal/errors"
	"github.com/jrsteele09/graphene-portal/users"
)

var _ users.Directory = (*FakeUserRepo)(nil)

// DemoSecret unlocks every demo account.
const DemoSecret = "@Password123"

// DemoEntries are the demo accounts offered on the login page until a real
// identity service replaces this directory.
func DemoEntries() []users.Entry {
	return []users.Entry{
		{
			Identity: users.Identity{ID: "u_pat_001", Email: "patient@demo.com", Name: "Demo Patient", Role: users.RolePatient},
			Secret:   DemoSecret,
		},
		{
			Identity: users.Identity{ID: "u_cli_001", Email: "clinician@demo.com", Name: "Demo Clinician", Role: users.RoleClinician},
			Secret:   DemoSecret,
		},
		{
			Identity: users.Identity{ID: "u_adm_001", Email: "admin@demo.com", Name: "Demo Admin", Role: users.RoleAdmin},
			Secret:   DemoSecret,
		},
	}
}

// FakeUserRepo is a read-only, in-memory directory.
type FakeUserRepo struct {
	entries map[string]users.Entry // normalised email to entry
	lock    sync.RWMutex
}

// NewFakeUserRepo builds a directory from entries, defaulting to the demo
// accounts. Entries with an invalid identity are skipped.
func NewFakeUserRepo(entries ...users.Entry) *FakeUserRepo {
	if len(entries) == 0 {
		entries = DemoEntries()
	}
	ur := &FakeUserRepo{
		entries: make(map[string]users.Entry, len(entries)),
	}
	for _, e := range entries {
		if e.Identity.Validate() != nil {
			continue
		}
		ur.entries[users.NormaliseEmail(e.Identity.Email)] = e
	}
	return ur
}

func (ur *FakeUserRepo) GetByEmail(email string) (*users.Entry, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	e, ok := ur.entries[users.NormaliseEmail(email)]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &e, nil
}

func (ur *FakeUserRepo) List() []users.Identity {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	list := make([]users.Identity, 0, len(ur.entries))
	for _, e := range ur.entries {
		list = append(list, e.Identity)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}
