package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/graphene-portal/auth"
	"github.com/jrsteele09/graphene-portal/internal/errors"
	"github.com/jrsteele09/graphene-portal/internal/metrics"
	"github.com/jrsteele09/graphene-portal/router"
	"github.com/jrsteele09/graphene-portal/sessions"
	"github.com/rs/zerolog/log"
)

const (
	defaultLoginEmail = "patient@demo.com"
	invalidLoginMsg   = "Invalid email or password."
	loginFailedMsg    = "Login failed. Try again."
	rateLimitedMsg    = "Too many login attempts. Try again shortly."
)

// DemoHint is a one-click demo account shown under the login form
type DemoHint struct {
	Label string
	Email string
}

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName    string
	Error      string
	Email      string // Preserve email on error, never the secret
	From       string
	DemoHints  []DemoHint
	DemoSecret string
	SubmitPath string
}

func (s *Server) loginPageData(email, from, errMsg string) LoginPageData {
	if email == "" {
		email = defaultLoginEmail
	}
	identities := s.directory.List()
	hints := make([]DemoHint, 0, len(identities))
	for _, identity := range identities {
		hints = append(hints, DemoHint{Label: identity.Role.Label(), Email: identity.Email})
	}
	return LoginPageData{
		AppName:    s.config.GetAppName(),
		Error:      errMsg,
		Email:      email,
		From:       from,
		DemoHints:  hints,
		DemoSecret: s.demoSecret,
		SubmitPath: RouteAuthLogin,
	}
}

// loginRenderer writes the login page with the given status code.
type loginRenderer func(w http.ResponseWriter, status int, data LoginPageData)

func (s *Server) newLoginRenderer() (loginRenderer, error) {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		return nil, err
	}
	return func(w http.ResponseWriter, status int, data LoginPageData) {
		// Render to a buffer first so a template failure can still become a 500
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_, _ = buf.WriteTo(w)
	}, nil
}

// LoginPageUIHandler displays the login page (GET /login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get(fromParam)
		s.renderLogin(w, http.StatusOK, s.loginPageData("", from, ""))
	}
}

// LoginSubmissionHandler processes the login form submission
// (POST /auth/login). Failures re-render the form with the message.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		credentials := auth.Credentials{
			Email:  r.PostFormValue("email"),
			Secret: r.PostFormValue("password"),
		}
		from := r.PostFormValue(fromParam)

		session, status, err := s.attemptLogin(r, credentials)
		if err != nil {
			s.renderLogin(w, status, s.loginPageData(credentials.Email, from, loginErrorMessage(err)))
			return
		}

		redirectSuccess(w, r, s.authorizer.ReturnPath(session, from, s.config.GetHonorReturnPath()))
	}
}

// attemptLogin runs one login for the requesting device, returning the HTTP
// status that fits the outcome. Attempts are throttled per client address,
// which a client cannot reset the way it can drop its device cookie.
func (s *Server) attemptLogin(r *http.Request, credentials auth.Credentials) (*auth.Session, int, error) {
	device := deviceFromContext(r.Context())
	client := clientAddress(r, s.config.GetTrustProxyHeaders())
	if s.config.GetEnableRateLimiting() && !s.limiter.Allow(client) {
		metrics.LoginsTotal.WithLabelValues(metrics.LoginRateLimited, "").Inc()
		log.Warn().Str("client", client).Msg("Login rate limited")
		return nil, http.StatusTooManyRequests, errors.ErrRateLimited
	}

	store := sessions.MustFromContext(r.Context())
	start := time.Now()
	// An attempt in flight is not cancelled when the client goes away
	session, err := store.Login(context.WithoutCancel(r.Context()), credentials)
	metrics.LoginDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.LoginsTotal.WithLabelValues(metrics.LoginSuccess, session.Role().String()).Inc()
		log.Info().Str("email", session.User.Email).Str("role", session.Role().String()).Msg("Login succeeded")
		return session, http.StatusOK, nil
	case errors.Is(err, auth.InvalidCredentialsErr):
		metrics.LoginsTotal.WithLabelValues(metrics.LoginInvalid, "").Inc()
		log.Debug().Str("device", device).Msg("Login rejected")
		return nil, http.StatusUnauthorized, err
	default:
		metrics.LoginsTotal.WithLabelValues(metrics.LoginError, "").Inc()
		log.Err(err).Str("device", device).Msg("Login failed")
		return nil, http.StatusInternalServerError, fmt.Errorf("[Server attemptLogin] %w", err)
	}
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.InvalidCredentialsErr):
		return invalidLoginMsg
	case errors.Is(err, errors.ErrRateLimited):
		return rateLimitedMsg
	}
	return loginFailedMsg
}

// LogoutHandler ends the device's session and returns to the login view
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.logout(r); err != nil {
			http.Error(w, "Failed to sign out", http.StatusInternalServerError)
			return
		}
		redirectSuccess(w, r, router.PathLogin)
	}
}

func (s *Server) logout(r *http.Request) error {
	store := sessions.MustFromContext(r.Context())
	wasSignedIn := store.IsAuthenticated()
	if err := store.Logout(); err != nil {
		log.Err(err).Str("device", deviceFromContext(r.Context())).Msg("Logout failed")
		return err
	}
	if id := deviceFromContext(r.Context()); id != "" {
		if err := s.devices.Delete(id); err != nil {
			log.Err(err).Msg("Logout: failed to release device store")
		}
	}
	if wasSignedIn {
		metrics.LogoutsTotal.Inc()
	}
	return nil
}
