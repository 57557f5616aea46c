package server

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/graphene-portal/router"
	"github.com/rs/zerolog/log"
)

const (
	// deviceCookieName identifies the browser whose session store is used
	deviceCookieName = "gtlb_device"
	// fromParam carries the path a visitor was bounced from to the login view
	fromParam = "from"
)

// deviceID returns the device cookie value when it is a well formed id.
func deviceID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(deviceCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (s *Server) SetDeviceCookie(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetDeviceCookieMaxAge() / time.Second),
	})
}

// clientAddress is the host the request came from. Behind a trusted proxy it
// is the first X-Forwarded-For entry, otherwise the connection's address.
func clientAddress(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// loginURL builds the login view address, remembering from when it names a
// real view.
func loginURL(from string) string {
	if from == "" || from == router.PathIndex || from == router.PathLogin {
		return router.PathLogin
	}
	return router.PathLogin + "?" + fromParam + "=" + url.QueryEscape(from)
}

// redirectSuccess sends the browser on with See Other so a form POST turns
// into a GET of the target
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to encode JSON response")
	}
}
