package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/graphene-portal/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const issuer = "graphene-trace-portal"

// Claims carried by a portal access token
type Claims struct {
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  users.Role `json:"role"`
	jwtlib.RegisteredClaims
}

// Creator mints access tokens for signed-in identities
type Creator struct {
	secret []byte
}

// NewCreator creates a new JWT creator signing with an HMAC secret
func NewCreator(secret []byte) (*Creator, error) {
	if len(secret) == 0 {
		return nil, errors.New("[jwt NewCreator] signing secret is required")
	}
	return &Creator{
		secret: secret,
	}, nil
}

// CreateAccessToken creates a token for the identity. The jti is unique for
// every call, so no two logins ever share a token.
func (c *Creator) CreateAccessToken(identity users.Identity) (string, error) {
	claims := Claims{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:   issuer,
			Subject:  identity.ID,
			IssuedAt: jwtlib.NewNumericDate(NowTimeFunc()),
			ID:       uuid.New().String(),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}
