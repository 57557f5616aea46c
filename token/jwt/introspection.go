package jwt

import (
	"fmt"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenIntrospection describes an access token. When Active is false the
// other fields are not populated.
type TokenIntrospection struct {
	Active bool   `json:"active"`
	Sub    string `json:"sub,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Jti    string `json:"jti,omitempty"`
	Iat    int64  `json:"iat,omitempty"`
}

// Introspect validates the token signature and extracts its claims
func (c *Creator) Introspect(rawToken string) (*TokenIntrospection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return &TokenIntrospection{Active: false}, nil
	}

	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(rawToken, claims, func(t *jwtlib.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
	)
	if err != nil || !token.Valid {
		return &TokenIntrospection{Active: false}, fmt.Errorf("[jwt Introspect] invalid token: %w", err)
	}

	introspection := &TokenIntrospection{
		Active: true,
		Sub:    claims.Subject,
		Email:  claims.Email,
		Role:   string(claims.Role),
		Jti:    claims.ID,
	}
	if claims.IssuedAt != nil {
		introspection.Iat = claims.IssuedAt.Unix()
	}
	return introspection, nil
}
