package sessions

import (
	"context"
	"fmt"

	"github.com/jrsteele09/graphene-portal/internal/errors"
)

type contextKey struct{}

// WithStore provides the store to everything downstream of ctx.
func WithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext returns the store provided to ctx, if any.
func FromContext(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(contextKey{}).(*Store)
	return store, ok && store != nil
}

// MustFromContext returns the provided store and panics when there is none.
// Reaching for the session outside a provider is a programming error.
func MustFromContext(ctx context.Context) *Store {
	store, ok := FromContext(ctx)
	if !ok {
		panic(fmt.Errorf("[sessions MustFromContext] %w", errors.ErrNoProvider))
	}
	return store
}
