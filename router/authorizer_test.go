package router_test

import (
	"testing"

	"github.com/jrsteele09/graphene-portal/auth"
	"github.com/jrsteele09/graphene-portal/router"
	"github.com/jrsteele09/graphene-portal/users"
	"github.com/stretchr/testify/require"
)

func sessionFor(role users.Role) *auth.Session {
	return &auth.Session{
		User:  users.Identity{ID: "u_" + string(role), Email: string(role) + "@demo.com", Name: "Demo", Role: role},
		Token: "token-" + string(role),
	}
}

var protectedPaths = []string{
	router.PathIndex,
	router.PathPatient,
	router.PathPatientDashboard,
	router.PathClinician,
	router.PathAdmin,
}

func TestHomePath(t *testing.T) {
	require.Equal(t, "/patient/dashboard", router.HomePath(users.RolePatient))
	require.Equal(t, "/clinician", router.HomePath(users.RoleClinician))
	require.Equal(t, "/admin", router.HomePath(users.RoleAdmin))
	require.Equal(t, "/login", router.HomePath("root"))
	require.Equal(t, "/login", router.HomePath(""))
}

func TestAuthorize_NoSessionGoesToLogin(t *testing.T) {
	a := router.New()

	for _, p := range protectedPaths {
		t.Run(p, func(t *testing.T) {
			d := a.Authorize(nil, p)
			require.Equal(t, router.Redirect, d.Outcome)
			require.Equal(t, router.PathLogin, d.Target)
			require.Equal(t, p, d.From, "requested path is remembered")
		})
	}

	require.Equal(t, router.Render, a.Authorize(nil, router.PathLogin).Outcome)
}

func TestAuthorize_CorrectRoleRenders(t *testing.T) {
	a := router.New()

	require.Equal(t, router.Render, a.Authorize(sessionFor(users.RolePatient), router.PathPatientDashboard).Outcome)
	require.Equal(t, router.Render, a.Authorize(sessionFor(users.RoleClinician), router.PathClinician).Outcome)
	require.Equal(t, router.Render, a.Authorize(sessionFor(users.RoleAdmin), router.PathAdmin).Outcome)
	require.Equal(t, router.Render, a.Authorize(sessionFor(users.RoleAdmin), "/admin/").Outcome)
}

func TestAuthorize_WrongRoleGoesToOwnHome(t *testing.T) {
	a := router.New()

	for _, role := range users.Roles() {
		for _, p := range []string{router.PathPatientDashboard, router.PathClinician, router.PathAdmin} {
			if a.Allowed(sessionFor(role), p) {
				continue
			}
			t.Run(string(role)+p, func(t *testing.T) {
				d := a.Authorize(sessionFor(role), p)
				require.Equal(t, router.Redirect, d.Outcome)
				require.Equal(t, router.HomePath(role), d.Target)
				require.NotEqual(t, router.PathLogin, d.Target)
				require.Equal(t, router.ReasonWrongRole, d.Reason)
				require.Equal(t, p, d.From)
			})
		}
	}
}

func TestAuthorize_PatientOnClinicianView(t *testing.T) {
	d := router.New().Resolve(sessionFor(users.RolePatient), router.PathClinician)
	require.Equal(t, router.Redirect, d.Outcome)
	require.Equal(t, "/patient/dashboard", d.Target)
}

func TestAuthorize_LoginWhileAuthenticated(t *testing.T) {
	a := router.New()

	for _, role := range users.Roles() {
		d := a.Authorize(sessionFor(role), router.PathLogin)
		require.Equal(t, router.Redirect, d.Outcome)
		require.Equal(t, router.HomePath(role), d.Target)
		require.Equal(t, router.ReasonAuthenticated, d.Reason)
	}
}

func TestAuthorize_Index(t *testing.T) {
	a := router.New()

	d := a.Resolve(nil, router.PathIndex)
	require.Equal(t, router.PathLogin, d.Target)

	for _, role := range users.Roles() {
		d := a.Authorize(sessionFor(role), router.PathIndex)
		require.Equal(t, router.Redirect, d.Outcome)
		require.Equal(t, router.HomePath(role), d.Target)
	}
}

func TestAuthorize_UnknownRoleIsSignedOut(t *testing.T) {
	a := router.New()
	corrupt := sessionFor("superuser")

	for _, p := range protectedPaths {
		d := a.Resolve(corrupt, p)
		require.Equal(t, router.Redirect, d.Outcome, p)
		require.Equal(t, router.PathLogin, d.Target, p)
	}
	require.Equal(t, router.Render, a.Authorize(corrupt, router.PathLogin).Outcome)
}

func TestAuthorize_PatientIndexRedirects(t *testing.T) {
	a := router.New()

	d := a.Authorize(sessionFor(users.RolePatient), router.PathPatient)
	require.Equal(t, router.Redirect, d.Outcome)
	require.Equal(t, router.PathPatientDashboard, d.Target)

	d = a.Authorize(sessionFor(users.RoleAdmin), router.PathPatient)
	require.Equal(t, router.PathAdmin, d.Target)
}

func TestResolve_UnknownPath(t *testing.T) {
	a := router.New()

	d := a.Resolve(nil, "/nowhere")
	require.Equal(t, router.Redirect, d.Outcome)
	require.Equal(t, router.PathLogin, d.Target)
	require.Equal(t, router.ReasonUnknownPath, d.Reason)

	d = a.Resolve(sessionFor(users.RoleClinician), "/admin/users")
	require.Equal(t, router.PathClinician, d.Target)

	d = a.Resolve(sessionFor(users.RoleAdmin), "/admin/users")
	require.Equal(t, router.PathAdmin, d.Target)
}

func TestResolve_RendersPassThrough(t *testing.T) {
	d := router.New().Resolve(sessionFor(users.RoleAdmin), router.PathAdmin)
	require.Equal(t, router.Render, d.Outcome)
	require.Equal(t, router.PathAdmin, d.Target)
}

func TestResolve_StopsOnCycles(t *testing.T) {
	a := router.NewWithRoutes([]router.Route{
		{Path: "/a", Guards: []router.Guard{router.RedirectTo("/b")}},
		{Path: "/b", Guards: []router.Guard{router.RedirectTo("/a")}},
	})

	d := a.Resolve(nil, "/a")
	require.Equal(t, router.Redirect, d.Outcome)
}

// login as admin, then ask for a patient-only view: the admin home, not login
func TestScenario_AdminOnPatientView(t *testing.T) {
	a := router.New()
	admin := sessionFor(users.RoleAdmin)
	require.Equal(t, users.RoleAdmin, admin.Role())

	d := a.Resolve(admin, router.PathPatientDashboard)
	require.Equal(t, router.Redirect, d.Outcome)
	require.Equal(t, router.PathAdmin, d.Target)
}

func TestReturnPath(t *testing.T) {
	a := router.New()
	patient := sessionFor(users.RolePatient)

	require.Equal(t, router.PathPatientDashboard, a.ReturnPath(patient, router.PathPatientDashboard, false))
	require.Equal(t, router.PathPatientDashboard, a.ReturnPath(patient, router.PathAdmin, true))
	require.Equal(t, router.PathPatientDashboard, a.ReturnPath(patient, router.PathLogin, true))
	require.Equal(t, router.PathPatientDashboard, a.ReturnPath(patient, "", true))
	require.Equal(t, router.PathAdmin, a.ReturnPath(sessionFor(users.RoleAdmin), "/admin/", true))
}

func TestAllowedRoles(t *testing.T) {
	a := router.New()
	require.Equal(t, []users.Role{users.RoleClinician}, a.AllowedRoles(router.PathClinician))
	require.Nil(t, a.AllowedRoles(router.PathLogin))
	require.Len(t, a.Routes(), 6)
}

func TestClean(t *testing.T) {
	require.Equal(t, "/", router.Clean(""))
	require.Equal(t, "/admin", router.Clean("admin/"))
	require.Equal(t, "/patient", router.Clean("/admin/../patient"))
}
