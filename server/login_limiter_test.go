package server

import (
	"testing"
	"time"

	"github.com/jrsteele09/graphene-portal/users"
	"github.com/stretchr/testify/require"
)

func TestLoginLimiter_AllowAndPrune(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(1, 2)
	l.nowTime = func() time.Time { return now }

	require.True(t, l.Allow("device-a"))
	require.True(t, l.Allow("device-a"))
	require.False(t, l.Allow("device-a"))
	require.True(t, l.Allow("device-b"))

	// One second refills one token
	now = now.Add(time.Second)
	require.True(t, l.Allow("device-a"))
	require.Equal(t, 2, l.Len())

	// device-b was last seen a second ago
	l.Prune(now)
	require.Equal(t, 1, l.Len())
	l.Prune(now.Add(time.Nanosecond))
	require.Equal(t, 0, l.Len())
}

func TestNewLoginLimiter_MinimumBurst(t *testing.T) {
	l := NewLoginLimiter(0, 0)
	require.True(t, l.Allow("device"))
	require.False(t, l.Allow("device"))
}

func TestLoginURL(t *testing.T) {
	require.Equal(t, "/login", loginURL(""))
	require.Equal(t, "/login", loginURL("/"))
	require.Equal(t, "/login", loginURL("/login"))
	require.Equal(t, "/login?from=%2Fadmin", loginURL("/admin"))
}

func TestNewPortalPageData(t *testing.T) {
	identity := users.Identity{ID: "u_pat_001", Email: "patient@demo.com", Name: "Demo Patient", Role: users.RolePatient}

	data, ok := newPortalPageData("Graphene Trace", "/patient/dashboard", identity)
	require.True(t, ok)
	require.Equal(t, "Patient", data.Portal)
	require.Equal(t, "DP", data.Initials)
	require.Equal(t, "Dashboard", data.Nav[0].Label)
	require.True(t, data.Nav[0].Active)
	for _, item := range data.Nav[1:] {
		require.Empty(t, item.Path)
		require.False(t, item.Active)
	}

	_, ok = newPortalPageData("Graphene Trace", "/admin", users.Identity{Name: "Nobody", Role: "superuser"})
	require.False(t, ok)
}
