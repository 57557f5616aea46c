package router

import (
	"slices"

	"github.com/jrsteele09/graphene-portal/auth"
	"github.com/jrsteele09/graphene-portal/users"
)

// Request is one navigation: who is asking and for what.
type Request struct {
	Session *auth.Session
	Path    string
}

// Guard inspects a navigation. Returning true stops the chain with the
// returned decision; returning false lets the next guard run.
type Guard func(Request) (Decision, bool)

func authenticated(s *auth.Session) bool {
	return s != nil && s.Role().Valid()
}

// RequireAuth sends visitors without a valid session to the login view,
// remembering where they were going.
func RequireAuth() Guard {
	return func(r Request) (Decision, bool) {
		if r.Session == nil {
			return redirect(PathLogin, ReasonUnauthenticated, r.Path), true
		}
		if !r.Session.Role().Valid() {
			return redirect(PathLogin, ReasonInvalidRole, r.Path), true
		}
		return Decision{}, false
	}
}

// RequireRole bounces a signed-in visitor whose role is not allowed to their
// own role home. It never sends them to the login view.
func RequireRole(allow ...users.Role) Guard {
	return func(r Request) (Decision, bool) {
		if !authenticated(r.Session) {
			return redirect(PathLogin, ReasonInvalidRole, r.Path), true
		}
		if !slices.Contains(allow, r.Session.Role()) {
			return redirect(HomePath(r.Session.Role()), ReasonWrongRole, r.Path), true
		}
		return Decision{}, false
	}
}

// RedirectAuthenticated keeps signed-in visitors away from the login view.
func RedirectAuthenticated() Guard {
	return func(r Request) (Decision, bool) {
		if authenticated(r.Session) {
			return redirect(HomePath(r.Session.Role()), ReasonAuthenticated, ""), true
		}
		return Decision{}, false
	}
}

// IndexRedirect sends the default path to the visitor's role home.
func IndexRedirect() Guard {
	return func(r Request) (Decision, bool) {
		if !authenticated(r.Session) {
			return redirect(PathLogin, ReasonUnauthenticated, ""), true
		}
		return redirect(HomePath(r.Session.Role()), ReasonIndex, ""), true
	}
}

// RedirectTo always redirects to path.
func RedirectTo(path string) Guard {
	return func(r Request) (Decision, bool) {
		return redirect(path, ReasonPortalIndex, ""), true
	}
}
