package server

import (
	"net/http"

	"github.com/jrsteele09/graphene-portal/router"
	"github.com/jrsteele09/graphene-portal/sessions"
	"github.com/jrsteele09/graphene-portal/users"
	"github.com/rs/zerolog/log"
)

// NavItem is one entry of a portal's side navigation. Items without a path
// are not built yet and render disabled.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

type portalLayout struct {
	title       string
	placeholder string
	nav         []NavItem
}

var portalLayouts = map[users.Role]portalLayout{
	users.RolePatient: {
		title:       "Patient Dashboard",
		placeholder: "Patient Dashboard (placeholder)",
		nav: []NavItem{
			{Label: "Dashboard", Path: router.PathPatientDashboard},
			{Label: "Readings (soon)"},
			{Label: "Comments (soon)"},
		},
	},
	users.RoleClinician: {
		title:       "Clinician Home",
		placeholder: "Clinician Home (placeholder)",
		nav: []NavItem{
			{Label: "Home", Path: router.PathClinician},
			{Label: "Patients (soon)"},
			{Label: "Alerts (soon)"},
		},
	},
	users.RoleAdmin: {
		title:       "Admin Home",
		placeholder: "Admin Home (placeholder)",
		nav: []NavItem{
			{Label: "Overview", Path: router.PathAdmin},
			{Label: "Users (soon)"},
			{Label: "Assignments (soon)"},
			{Label: "Settings (soon)"},
		},
	},
}

// PortalPageData contains data for rendering a role's portal shell
type PortalPageData struct {
	AppName     string
	Portal      string
	Title       string
	Placeholder string
	Nav         []NavItem
	User        users.Identity
	Initials    string
	LogoutPath  string
}

func newPortalPageData(appName, path string, user users.Identity) (PortalPageData, bool) {
	layout, ok := portalLayouts[user.Role]
	if !ok {
		return PortalPageData{}, false
	}
	nav := make([]NavItem, len(layout.nav))
	for i, item := range layout.nav {
		item.Active = item.Path != "" && item.Path == path
		nav[i] = item
	}
	return PortalPageData{
		AppName:     appName,
		Portal:      user.Role.Label(),
		Title:       layout.title,
		Placeholder: layout.placeholder,
		Nav:         nav,
		User:        user,
		Initials:    user.Initials(),
		LogoutPath:  RouteAuthLogout,
	}, true
}

// PortalViewHandler renders the layout shell of the signed-in role. It runs
// behind NavigationMiddleware, so only views the session may see get here.
func (s *Server) PortalViewHandler() (http.HandlerFunc, error) {
	tmpl, err := ParseTemplate("portal.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session := sessions.MustFromContext(r.Context()).Session()
		if session == nil {
			http.Redirect(w, r, router.PathLogin, http.StatusFound)
			return
		}

		data, ok := newPortalPageData(s.config.GetAppName(), router.Clean(r.URL.Path), session.User)
		if !ok {
			http.Redirect(w, r, router.PathLogin, http.StatusFound)
			return
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		w.Header().Set("Cache-Control", "no-store")
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render portal template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}, nil
}
