package sessions_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/graphene-portal/internal/errors"
	"github.com/jrsteele09/graphene-portal/sessions"
	"github.com/jrsteele09/graphene-portal/sessions/memstore"
	"github.com/stretchr/testify/require"
)

func TestContext_Provider(t *testing.T) {
	store := newStore(t, memstore.New())
	ctx := sessions.WithStore(context.Background(), store)

	got, ok := sessions.FromContext(ctx)
	require.True(t, ok)
	require.Same(t, store, got)
	require.Same(t, store, sessions.MustFromContext(ctx))
}

func TestContext_NoProviderIsFatal(t *testing.T) {
	_, ok := sessions.FromContext(context.Background())
	require.False(t, ok)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, isErr := r.(error)
		require.True(t, isErr)
		require.True(t, errors.Is(err, errors.ErrNoProvider))
	}()
	sessions.MustFromContext(context.Background())
}

func TestContext_NilStoreIsNoProvider(t *testing.T) {
	ctx := sessions.WithStore(context.Background(), nil)
	_, ok := sessions.FromContext(ctx)
	require.False(t, ok)
}
