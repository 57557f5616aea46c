package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/graphene-portal/auth"
	"github.com/jrsteele09/graphene-portal/sessions"
)

const maxLoginBodyBytes = 4 << 10

// SessionResponse is the JSON view of a device's session state
type SessionResponse struct {
	IsAuthenticated bool          `json:"isAuthenticated"`
	Session         *auth.Session `json:"session"`
	Home            string        `json:"home,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SessionAPIHandler reports the current session (GET /api/session)
func (s *Server) SessionAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := sessions.MustFromContext(r.Context()).Session()
		writeJSON(w, http.StatusOK, s.sessionResponse(session))
	}
}

// LoginAPIHandler logs in with a JSON body of email and password
// (POST /api/login)
func (s *Server) LoginAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials auth.Credentials
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBodyBytes))
		if err := decoder.Decode(&credentials); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		session, status, err := s.attemptLogin(r, credentials)
		if err != nil {
			writeJSON(w, status, errorResponse{Error: loginErrorMessage(err)})
			return
		}
		writeJSON(w, http.StatusOK, s.sessionResponse(session))
	}
}

// LogoutAPIHandler ends the session (POST /api/logout)
func (s *Server) LogoutAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.logout(r); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to sign out"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) sessionResponse(session *auth.Session) SessionResponse {
	if session == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		IsAuthenticated: true,
		Session:         session,
		Home:            s.authorizer.ReturnPath(session, "", false),
	}
}
