// Package router decides, for every navigation, whether a view renders or
// where the visitor is sent instead. Decisions are a pure function of the
// current session and the requested path; nothing here holds state.
package router

import (
	"path"
	"strings"

	"github.com/jrsteele09/graphene-portal/auth"
	"github.com/jrsteele09/graphene-portal/users"
)

// maxHops bounds how many redirects Resolve follows.
const maxHops = 4

type Outcome int

const (
	Render Outcome = iota
	Redirect
)

func (o Outcome) String() string {
	if o == Redirect {
		return "redirect"
	}
	return "render"
}

// Reason explains a decision. It is recorded in metrics and logs.
type Reason string

const (
	ReasonAllowed         Reason = "allowed"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonInvalidRole     Reason = "invalid_role"
	ReasonWrongRole       Reason = "wrong_role"
	ReasonAuthenticated   Reason = "authenticated"
	ReasonIndex           Reason = "index"
	ReasonPortalIndex     Reason = "portal_index"
	ReasonUnknownPath     Reason = "unknown_path"
)

// Decision is the outcome of authorizing one navigation. For redirects,
// Target is where to go and From is the path the visitor asked for when it
// is worth remembering.
type Decision struct {
	Outcome Outcome
	Target  string
	From    string
	Reason  Reason
}

func redirect(target string, reason Reason, from string) Decision {
	return Decision{Outcome: Redirect, Target: target, From: from, Reason: reason}
}

func render(p string) Decision {
	return Decision{Outcome: Render, Target: p, Reason: ReasonAllowed}
}

// Authorizer holds the route table.
type Authorizer struct {
	routes map[string]Route
	order  []string
}

// New returns an authorizer over the portal's views.
func New() *Authorizer {
	return NewWithRoutes(defaultRoutes())
}

func NewWithRoutes(routes []Route) *Authorizer {
	a := &Authorizer{routes: make(map[string]Route, len(routes))}
	for _, r := range routes {
		if _, exists := a.routes[r.Path]; !exists {
			a.order = append(a.order, r.Path)
		}
		a.routes[r.Path] = r
	}
	return a
}

// Routes returns the route table in registration order.
func (a *Authorizer) Routes() []Route {
	routes := make([]Route, 0, len(a.order))
	for _, p := range a.order {
		routes = append(routes, a.routes[p])
	}
	return routes
}

// Clean normalises a request path so "/admin/" and "/admin" are one view.
func Clean(p string) string {
	if p == "" {
		return PathIndex
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Authorize evaluates a single navigation step. Unknown paths redirect to the
// index view.
func (a *Authorizer) Authorize(session *auth.Session, requested string) Decision {
	p := Clean(requested)
	route, ok := a.routes[p]
	if !ok {
		return redirect(PathIndex, ReasonUnknownPath, "")
	}

	req := Request{Session: session, Path: p}
	for _, guard := range route.Guards {
		if decision, done := guard(req); done {
			return decision
		}
	}
	return render(p)
}

// Resolve follows redirects until a view renders, returning the final
// decision. The first path worth remembering is kept in From.
func (a *Authorizer) Resolve(session *auth.Session, requested string) Decision {
	decision := a.Authorize(session, requested)
	first := decision

	for hops := 0; decision.Outcome == Redirect && hops < maxHops; hops++ {
		next := a.Authorize(session, decision.Target)
		if next.Outcome == Render {
			break
		}
		if next.Target == decision.Target {
			break
		}
		decision = next
	}

	if first.From != "" && decision.From == "" {
		decision.From = first.From
	}
	if first.Outcome == Redirect {
		decision.Reason = first.Reason
	}
	return decision
}

// Allowed reports whether the session may render the view at p.
func (a *Authorizer) Allowed(session *auth.Session, p string) bool {
	return a.Authorize(session, p).Outcome == Render
}

// ReturnPath picks where to go after a successful login. The remembered path
// is only used when honor is set and the new session may render it.
func (a *Authorizer) ReturnPath(session *auth.Session, from string, honor bool) string {
	if honor && from != "" {
		p := Clean(from)
		if p != PathLogin && a.Allowed(session, p) {
			return p
		}
	}
	return HomePath(session.Role())
}

// AllowedRoles lists who may render the view at p, nil for views without a
// role restriction.
func (a *Authorizer) AllowedRoles(p string) []users.Role {
	return a.routes[Clean(p)].Allow
}
