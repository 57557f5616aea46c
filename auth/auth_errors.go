package auth

import "github.com/jrsteele09/graphene-portal/internal/errors"

// InvalidCredentialsErr is the only failure a caller ever sees from
// Authenticate: unknown email, wrong secret and empty fields all map to it.
var InvalidCredentialsErr = errors.ErrInvalidCredentials
