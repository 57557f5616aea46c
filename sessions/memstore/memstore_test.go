package memstore_test

import (
	"testing"

	"github.com/jrsteele09/graphene-portal/internal/errors"
	"github.com/jrsteele09/graphene-portal/sessions"
	"github.com/jrsteele09/graphene-portal/sessions/memstore"
	"github.com/stretchr/testify/require"
)

func TestMemStore(t *testing.T) {
	m := memstore.New()

	_, err := m.Get("missing")
	require.ErrorIs(t, err, errors.ErrNotFound)
	require.ErrorIs(t, m.Set("", []byte("x")), errors.ErrInvalid)

	value := []byte("record")
	require.NoError(t, m.Set("slot", value))
	value[0] = 'X'

	got, err := m.Get("slot")
	require.NoError(t, err)
	require.Equal(t, "record", string(got))

	require.NoError(t, m.Remove("slot"))
	require.NoError(t, m.Remove("slot"))
	require.Equal(t, 0, m.Len())
}

func TestMemStore_PrefixedSlotsAreIndependent(t *testing.T) {
	m := memstore.New()
	a := sessions.Prefixed(m, "device-a")
	b := sessions.Prefixed(m, "device-b")

	require.NoError(t, a.Set(sessions.RecordKey, []byte("a")))
	_, err := b.Get(sessions.RecordKey)
	require.ErrorIs(t, err, errors.ErrNotFound)

	require.NoError(t, b.Set(sessions.RecordKey, []byte("b")))
	require.Equal(t, 2, m.Len())

	require.NoError(t, a.Remove(sessions.RecordKey))
	got, err := b.Get(sessions.RecordKey)
	require.NoError(t, err)
	require.Equal(t, "b", string(got))
}
