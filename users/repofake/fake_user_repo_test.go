package fakeuserrepo_test

import (
	"testing"

	"github.com/jrsteele09/graphene-portal/internal/errors"
	"github.com/jrsteele09/graphene-portal/users"
	fakeuserrepo "github.com/jrsteele09/graphene-portal/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestFakeUserRepo_GetByEmail(t *testing.T) {
	ur := fakeuserrepo.NewFakeUserRepo()

	e, err := ur.GetByEmail("ADMIN@Demo.com")
	require.NoError(t, err)
	require.Equal(t, "u_adm_001", e.Identity.ID)
	require.Equal(t, users.RoleAdmin, e.Identity.Role)

	_, err = ur.GetByEmail("nobody@demo.com")
	require.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestFakeUserRepo_List(t *testing.T) {
	ur := fakeuserrepo.NewFakeUserRepo()

	list := ur.List()
	require.Len(t, list, 3)
	require.Equal(t, "u_adm_001", list[0].ID)
}

func TestFakeUserRepo_SkipsInvalidEntries(t *testing.T) {
	ur := fakeuserrepo.NewFakeUserRepo(
		users.Entry{Identity: users.Identity{ID: "x", Email: "x@y.z", Role: "root"}},
		users.Entry{Identity: users.Identity{ID: "p", Email: "p@y.z", Role: users.RolePatient}},
	)
	require.Len(t, ur.List(), 1)
}
