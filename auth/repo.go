package auth

import (
	"context"

	"github.com/jrsteele09/graphene-portal/users"
)

// Authenticator verifies credentials and mints a session. The directory
// backed implementation stands in for a remote identity service; either can
// sit behind this interface.
type Authenticator interface {
	Authenticate(ctx context.Context, credentials Credentials) (*Session, error)
}

// TokenCreator mints the access token stored in a session
type TokenCreator interface {
	CreateAccessToken(identity users.Identity) (string, error)
}
