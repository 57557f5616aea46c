// Package metrics provides Prometheus metrics for the portal.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// Login outcomes
const (
	LoginSuccess     = "success"
	LoginInvalid     = "invalid_credentials"
	LoginRateLimited = "rate_limited"
	LoginError       = "error"
)

var (
	// LoginsTotal counts login attempts by outcome and, for successes, role.
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of login attempts",
		},
		[]string{"outcome", "role"},
	)

	// LoginDuration measures login attempts including the simulated round trip.
	LoginDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "login_duration_seconds",
			Help:      "Duration of login attempts in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.35, 0.5, 1, 2.5, 5},
		},
	)

	// LogoutsTotal counts logouts.
	LogoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Total number of logouts",
		},
	)

	// NavigationsTotal counts authorization decisions.
	NavigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_total",
			Help:      "Total number of navigation decisions",
		},
		[]string{"outcome", "reason"},
	)

	// RestoredSessions counts device stores restored from storage.
	RestoredSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restored_sessions_total",
			Help:      "Total number of device stores restored, by whether a session was found",
		},
		[]string{"found"},
	)

	// ActiveDevices tracks device stores held in memory.
	ActiveDevices = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_devices",
			Help:      "Number of device session stores held in memory",
		},
	)
)
