package handlers

import (
	"net/http"

	"github.com/2HgO/signup-go/config"
	"github.com/2HgO/signup-go/services"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
)

const sessionCookie = "signup_sid"

type MiddleWareHandler interface {
	AttachSession(http.HandlerFunc) http.HandlerFunc
}

type middlewareHandler struct {
	notificationService services.NotificationService
	secure              bool
	log                 *zap.Logger
}

func NewMiddlewareHandler(cfg *config.Config, notifications services.NotificationService, log *zap.Logger) MiddleWareHandler {
	return &middlewareHandler{notificationService: notifications, secure: cfg.CookieSecure, log: log}
}

// AttachSession binds the browser session to the request context, issuing
// a new session cookie when the request carries none.
func (m *middlewareHandler) AttachSession(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(sessionCookie); err == nil && validSessionID(c.Value) {
			sessionID = c.Value
		} else {
			sessionID = cuid.New()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
			m.log.Debug("issued session", zap.String("session_id", sessionID))
		}
		m.notificationService.Touch(sessionID)

		h.ServeHTTP(w, r.WithContext(services.WithSession(r.Context(), sessionID)))
	}
}

// cuids are lowercase alphanumerics starting with 'c'
func validSessionID(v string) bool {
	if len(v) < 20 || len(v) > 32 || v[0] != 'c' {
		return false
	}
	for _, ch := range v {
		if (ch < 'a' || ch > 'z') && (ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}
