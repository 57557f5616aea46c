package auth

import (
	"fmt"

	"github.com/rs/zerolog"
)

const redacted = "[REDACTED]"

// Credentials are the transient inputs of a login attempt. They are never
// persisted and the secret never reaches a log line.
type Credentials struct {
	Email  string `json:"email"`
	Secret string `json:"password"`
}

var _ zerolog.LogObjectMarshaler = Credentials{}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Email: %s, Secret: %s}", c.Email, redacted)
}

func (c Credentials) GoString() string {
	return c.String()
}

// MarshalZerologObject lets credentials be attached to log events without
// leaking the secret.
func (c Credentials) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", c.Email).Str("secret", redacted)
}

// Empty reports whether either field is blank.
func (c Credentials) Empty() bool {
	return c.Email == "" || c.Secret == ""
}
