package middlewares

import (
	"context"
	"net/http"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

// Session makes sure every request carries a session id, issuing a new
// cookie when the browser has none or an unrecognized one.
func (m *Middlewares) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(constvars.SessionCookieName); err == nil && utils.IsValidSessionID(cookie.Value) {
			sessionID = cookie.Value
		}

		if sessionID == "" {
			sessionID = utils.GenerateSessionID()
			m.Log.Debug("Middlewares.Session issued new session",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingSessionIDKey, sessionID),
			)
		}

		// The expiry is refreshed on every request.
		maxAge := time.Duration(m.InternalConfig.App.SessionExpiredTimeInHours) * time.Hour
		http.SetCookie(w, &http.Cookie{
			Name:     constvars.SessionCookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(maxAge.Seconds()),
			HttpOnly: true,
			Secure:   m.InternalConfig.App.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_ID_KEY, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
