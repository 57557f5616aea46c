package sessions

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/graphene-portal/auth"
	"github.com/jrsteele09/graphene-portal/internal/errors"
	"github.com/jrsteele09/graphene-portal/token/jwt"
	"github.com/rs/zerolog/log"
)

// Store owns the current session of one device. Every change is written
// through to storage before the call returns.
type Store struct {
	lock          sync.RWMutex
	storage       Storage
	authenticator auth.Authenticator
	session       *auth.Session
	verifier      TokenVerifier
}

// TokenVerifier checks the signature and claims of a persisted token.
type TokenVerifier interface {
	Introspect(rawToken string) (*jwt.TokenIntrospection, error)
}

type StoreOption func(*Store)

// WithTokenVerifier makes Restore discard records whose token was not
// issued for the recorded identity.
func WithTokenVerifier(verifier TokenVerifier) StoreOption {
	return func(s *Store) {
		s.verifier = verifier
	}
}

// NewStore creates a store with no session. Call Restore to load any
// persisted record.
func NewStore(storage Storage, authenticator auth.Authenticator, opts ...StoreOption) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("[sessions NewStore] storage is required")
	}
	if authenticator == nil {
		return nil, fmt.Errorf("[sessions NewStore] authenticator is required")
	}
	s := &Store{
		storage:       storage,
		authenticator: authenticator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Restore loads the persisted session. Missing or malformed records leave the
// store signed out; a malformed record is also removed. It never fails.
func (s *Store) Restore() *auth.Session {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.session = nil

	raw, err := s.storage.Get(RecordKey)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			log.Warn().Err(err).Msg("Session restore: storage read failed, starting signed out")
		}
		return nil
	}

	session, err := Decode(raw)
	if err == nil {
		err = s.verify(session)
	}
	if err != nil {
		log.Debug().Err(err).Msg("Session restore: discarding persisted record")
		if err := s.storage.Remove(RecordKey); err != nil {
			log.Warn().Err(err).Msg("Session restore: failed to remove malformed record")
		}
		return nil
	}

	s.session = session
	return session.Clone()
}

// Login authenticates the credentials and, on success, replaces the current
// session with the new one. On failure the current session is untouched.
func (s *Store) Login(ctx context.Context, credentials auth.Credentials) (*auth.Session, error) {
	session, err := s.authenticator.Authenticate(ctx, credentials)
	if err != nil {
		return nil, err
	}

	raw, err := Encode(session)
	if err != nil {
		return nil, errors.Wrapf(err, "[Store.Login]")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.storage.Set(RecordKey, raw); err != nil {
		return nil, errors.Wrapf(err, "[Store.Login] storage.Set")
	}
	s.session = session

	return session.Clone(), nil
}

// Logout clears the session and its persisted record. Logging out with no
// session is a no-op.
func (s *Store) Logout() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.session = nil
	if err := s.storage.Remove(RecordKey); err != nil {
		return errors.Wrapf(err, "[Store.Logout] storage.Remove")
	}
	return nil
}

// Session returns a copy of the current session, or nil when signed out.
func (s *Store) Session() *auth.Session {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.session.Clone()
}

func (s *Store) IsAuthenticated() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.session != nil
}

func (s *Store) verify(session *auth.Session) error {
	if s.verifier == nil {
		return nil
	}
	info, err := s.verifier.Introspect(session.Token)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrMalformedRecord, err)
	}
	if !info.Active || info.Sub != session.User.ID || info.Role != string(session.User.Role) {
		return fmt.Errorf("%w: token was not issued for %s", errors.ErrMalformedRecord, session.User.ID)
	}
	return nil
}
