package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrsteele09/graphene-portal/internal/metrics"
	"github.com/jrsteele09/graphene-portal/router"
	"github.com/jrsteele09/graphene-portal/sessions"
	"github.com/rs/zerolog/log"
)

type deviceKey struct{}

// DeviceMiddleware identifies the browser by its device cookie and provides
// that device's session store to the request. A browser without a cookie is
// issued one and gets a fresh signed-out store that is not kept; a login on
// it is persisted and restored by the device's next request.
func (s *Server) DeviceMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			store *sessions.Store
			err   error
		)
		id, ok := deviceID(r)
		if ok {
			store, err = s.devices.Get(id)
		} else {
			id = uuid.NewString()
			s.SetDeviceCookie(w, r, id)
			store, err = s.newStore(id)
		}
		if err != nil {
			log.Err(err).Str("device", id).Msg("Failed to load device session store")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		ctx := sessions.WithStore(r.Context(), store)
		ctx = context.WithValue(ctx, deviceKey{}, id)
		next(w, r.WithContext(ctx))
	}
}

func deviceFromContext(ctx context.Context) string {
	id, _ := ctx.Value(deviceKey{}).(string)
	return id
}

// NavigationMiddleware runs the route authorizer for the requested view and
// either lets it render or redirects to where the visitor belongs.
func (s *Server) NavigationMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessions.MustFromContext(r.Context())
		decision := s.authorizer.Resolve(store.Session(), r.URL.Path)
		metrics.NavigationsTotal.WithLabelValues(decision.Outcome.String(), string(decision.Reason)).Inc()

		if decision.Outcome == router.Render {
			next(w, r)
			return
		}

		target := decision.Target
		if target == router.PathLogin {
			target = loginURL(decision.From)
		}
		log.Debug().
			Str("path", r.URL.Path).
			Str("target", target).
			Str("reason", string(decision.Reason)).
			Msg("Navigation redirected")
		http.Redirect(w, r, target, http.StatusFound)
	}
}
