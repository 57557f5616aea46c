package server

import "github.com/jrsteele09/graphene-portal/router"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Views
	RouteLogin            = router.PathLogin
	RoutePatient          = router.PathPatient
	RoutePatientDashboard = router.PathPatientDashboard
	RouteClinician        = router.PathClinician
	RouteAdmin            = router.PathAdmin

	// Auth Routes - Login & Logout
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// API Routes
	RouteAPISession = "/api/session"
	RouteAPILogin   = "/api/login"
	RouteAPILogout  = "/api/logout"

	// Operational Routes
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
