package auth

import "github.com/jrsteele09/graphene-portal/users"

// Session records who is signed in. It always carries exactly one identity
// and a token that is never reused by another session.
type Session struct {
	User  users.Identity `json:"user"`
	Token string         `json:"token"`
}

// Role is a convenience accessor for the session identity's role.
func (s *Session) Role() users.Role {
	if s == nil {
		return ""
	}
	return s.User.Role
}

// Clone returns a copy that callers may hold without sharing state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
