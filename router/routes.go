package router

import "github.com/jrsteele09/graphene-portal/users"

// View paths
const (
	PathIndex            = "/"
	PathLogin            = "/login"
	PathPatient          = "/patient"
	PathPatientDashboard = "/patient/dashboard"
	PathClinician        = "/clinician"
	PathAdmin            = "/admin"
)

var roleHomes = map[users.Role]string{
	users.RolePatient:   PathPatientDashboard,
	users.RoleClinician: PathClinician,
	users.RoleAdmin:     PathAdmin,
}

// HomePath is the landing view of a role. Anything that is not a known role
// goes to the login view.
func HomePath(role users.Role) string {
	if home, ok := roleHomes[role]; ok {
		return home
	}
	return PathLogin
}

// Route is a view and the guards that run, in order, before it renders.
type Route struct {
	Path   string
	Allow  []users.Role
	Guards []Guard
}

func defaultRoutes() []Route {
	return []Route{
		{Path: PathLogin, Guards: []Guard{RedirectAuthenticated()}},
		{Path: PathIndex, Guards: []Guard{RequireAuth(), IndexRedirect()}},
		portal(PathPatient, RedirectTo(PathPatientDashboard), users.RolePatient),
		portal(PathPatientDashboard, nil, users.RolePatient),
		portal(PathClinician, nil, users.RoleClinician),
		portal(PathAdmin, nil, users.RoleAdmin),
	}
}

func portal(path string, then Guard, allow ...users.Role) Route {
	guards := []Guard{RequireAuth(), RequireRole(allow...)}
	if then != nil {
		guards = append(guards, then)
	}
	return Route{Path: path, Allow: allow, Guards: guards}
}
