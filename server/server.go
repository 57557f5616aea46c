package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/graphene-portal/auth"
	"github.com/jrsteele09/graphene-portal/internal/config"
	"github.com/jrsteele09/graphene-portal/internal/metrics"
	"github.com/jrsteele09/graphene-portal/router"
	"github.com/jrsteele09/graphene-portal/server/devicestore"
	"github.com/jrsteele09/graphene-portal/sessions"
	"github.com/jrsteele09/graphene-portal/users"
	"github.com/rs/zerolog/log"
)

const janitorInterval = 5 * time.Minute

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	directory  users.Directory
	authorizer *router.Authorizer
	devices    devicestore.Repo
	limiter    *LoginLimiter

	renderLogin loginRenderer
	demoSecret  string
	verifier    sessions.TokenVerifier
	newStore    func(deviceID string) (*sessions.Store, error)
}

type Option func(*Server)

// WithDemoSecretHint shows the shared secret of the demo accounts on the
// login page.
func WithDemoSecretHint(secret string) Option {
	return func(s *Server) {
		s.demoSecret = secret
	}
}

// WithTokenVerifier drops restored sessions whose token does not verify.
func WithTokenVerifier(verifier sessions.TokenVerifier) Option {
	return func(s *Server) {
		s.verifier = verifier
	}
}

// New wires the portal. The authenticator checks credentials, the storage
// keeps each device's session record and the directory feeds the login
// page's demo hints.
func New(config config.Config, authenticator auth.Authenticator, storage sessions.Storage, directory users.Directory, opts ...Option) (*Server, error) {
	if authenticator == nil {
		return nil, fmt.Errorf("[Server New] authenticator is required")
	}
	if storage == nil {
		return nil, fmt.Errorf("[Server New] storage is required")
	}
	if directory == nil {
		return nil, fmt.Errorf("[Server New] directory is required")
	}

	s := &Server{
		env:        config.GetEnv(),
		mux:        http.NewServeMux(),
		config:     config,
		directory:  directory,
		authorizer: router.New(),
		limiter:    NewLoginLimiter(config.GetLoginRate(), config.GetLoginBurst()),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.newStore = func(deviceID string) (*sessions.Store, error) {
		var opts []sessions.StoreOption
		if s.verifier != nil {
			opts = append(opts, sessions.WithTokenVerifier(s.verifier))
		}
		return sessions.NewStore(sessions.Prefixed(storage, deviceID), authenticator, opts...)
	}
	s.devices = devicestore.NewInMemoryDeviceRepo(func(deviceID string) (*sessions.Store, error) {
		store, err := s.newStore(deviceID)
		if err != nil {
			return nil, err
		}
		found := store.Restore() != nil
		metrics.RestoredSessions.WithLabelValues(fmt.Sprint(found)).Inc()
		return store, nil
	})

	if err := s.initRoutes(); err != nil {
		return nil, fmt.Errorf("[Server New] failed to register routes: %w", err)
	}
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// RunJanitor drops idle device stores and login limiters until ctx is done.
// Dropped stores are restored from storage when the device comes back.
func (s *Server) RunJanitor(ctx context.Context, idle time.Duration) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.sweep(now.Add(-idle))
		}
	}
}

func (s *Server) sweep(before time.Time) {
	dropped := s.devices.DeleteIdle(before)
	s.limiter.Prune(before)
	metrics.ActiveDevices.Set(float64(s.devices.Len()))
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Msg("Janitor: released idle device stores")
	}
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
