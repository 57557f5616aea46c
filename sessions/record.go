package sessions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jrsteele09/graphene-portal/auth"
	"github.com/jrsteele09/graphene-portal/internal/errors"
	"github.com/jrsteele09/graphene-portal/users"
)

// RecordKey is the single storage slot holding a device's session.
const RecordKey = "gtlb.session.v1"

// record mirrors the persisted JSON shape
// {"user":{"id","email","name","role"},"token"}.
type record struct {
	User  *recordUser `json:"user"`
	Token string      `json:"token"`
}

type recordUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Encode serialises a session into its persisted form.
func Encode(session *auth.Session) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("[sessions Encode] %w: nil session", errors.ErrMalformedRecord)
	}
	return json.Marshal(record{
		User: &recordUser{
			ID:    session.User.ID,
			Email: session.User.Email,
			Name:  session.User.Name,
			Role:  string(session.User.Role),
		},
		Token: session.Token,
	})
}

// Decode parses a persisted record. Any record without a known role and a
// token is rejected with ErrMalformedRecord.
func Decode(raw []byte) (*auth.Session, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("[sessions Decode] %w: empty record", errors.ErrMalformedRecord)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("[sessions Decode] %w: %v", errors.ErrMalformedRecord, err)
	}

	if rec.User == nil || rec.User.Role == "" {
		return nil, fmt.Errorf("[sessions Decode] %w: missing user role", errors.ErrMalformedRecord)
	}
	role, ok := users.ParseRole(rec.User.Role)
	if !ok {
		return nil, fmt.Errorf("[sessions Decode] %w: unknown role %q", errors.ErrMalformedRecord, rec.User.Role)
	}
	if rec.Token == "" {
		return nil, fmt.Errorf("[sessions Decode] %w: missing token", errors.ErrMalformedRecord)
	}

	return &auth.Session{
		User: users.Identity{
			ID:    rec.User.ID,
			Email: rec.User.Email,
			Name:  rec.User.Name,
			Role:  role,
		},
		Token: rec.Token,
	}, nil
}
