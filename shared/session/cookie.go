package session

import (
	"bookingpay/config"
	"net/http"

	"github.com/google/uuid"
)

// ID returns the session id carried by the request cookie, issuing a new
// cookie when the request has none.
func ID(w http.ResponseWriter, r *http.Request, cfg *config.Config) string {
	name := cfg.App.Session.CookieName

	if cookie, err := r.Cookie(name); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		MaxAge:   cfg.App.Session.TTLSeconds,
		HttpOnly: true,
		Secure:   cfg.App.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}
