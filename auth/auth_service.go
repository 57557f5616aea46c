package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/graphene-portal/users"
)

const defaultLoginDelay = 350 * time.Millisecond

var _ Authenticator = (*AuthenticationService)(nil)

// AuthenticationService checks credentials against a fixed directory of
// identities.
type AuthenticationService struct {
	users        users.Directory
	tokenCreator TokenCreator
	delay        time.Duration
	sleep        func(ctx context.Context, d time.Duration) error
}

// AuthenticationServiceOption defines a function type to modify the AuthenticationService instance.
type AuthenticationServiceOption func(*AuthenticationService)

// WithDelay sets the simulated round trip of every login attempt. A
// non-positive value keeps the default.
func WithDelay(d time.Duration) AuthenticationServiceOption {
	return func(as *AuthenticationService) {
		if d > 0 {
			as.delay = d
		}
	}
}

// WithSleep replaces the wait function (primarily for testing)
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) AuthenticationServiceOption {
	return func(as *AuthenticationService) {
		as.sleep = sleep
	}
}

// NewAuthenticationService initializes a new AuthenticationService with required dependencies.
func NewAuthenticationService(
	directory users.Directory,
	tokenCreator TokenCreator,
	options ...AuthenticationServiceOption,
) (*AuthenticationService, error) {
	if directory == nil {
		return nil, errors.New("[NewAuthenticationService] users directory is required")
	}
	if tokenCreator == nil {
		return nil, errors.New("[NewAuthenticationService] tokenCreator is required")
	}

	as := &AuthenticationService{
		users:        directory,
		tokenCreator: tokenCreator,
		delay:        defaultLoginDelay,
		sleep:        sleepContext,
	}

	for _, opt := range options {
		opt(as)
	}

	return as, nil
}

// Authenticate finds the identity whose email matches, ignoring case, and
// whose secret matches exactly. Every failure is reported as
// InvalidCredentialsErr so callers cannot tell which field was wrong.
func (as *AuthenticationService) Authenticate(ctx context.Context, credentials Credentials) (*Session, error) {
	identity, matched := as.match(credentials)

	if err := as.sleep(ctx, as.delay); err != nil {
		return nil, fmt.Errorf("[AuthenticationService.Authenticate] %w", err)
	}

	if !matched {
		return nil, InvalidCredentialsErr
	}

	token, err := as.tokenCreator.CreateAccessToken(identity)
	if err != nil {
		return nil, fmt.Errorf("[AuthenticationService.Authenticate] tokenCreator.CreateAccessToken: %w", err)
	}

	return &Session{
		User:  identity,
		Token: token,
	}, nil
}

func (as *AuthenticationService) match(credentials Credentials) (users.Identity, bool) {
	if credentials.Empty() {
		return users.Identity{}, false
	}

	entry, err := as.users.GetByEmail(credentials.Email)
	if err != nil {
		return users.Identity{}, false
	}

	if subtle.ConstantTimeCompare([]byte(credentials.Secret), []byte(entry.Secret)) != 1 {
		return users.Identity{}, false
	}
	return entry.Identity, true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
