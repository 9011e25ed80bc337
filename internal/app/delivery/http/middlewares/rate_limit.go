package middlewares

import (
	"net/http"
	"personas-web/internal/pkg/exceptions"
	"personas-web/internal/pkg/utils"
	"time"

	"github.com/go-chi/httprate"
)

// SessionRateLimit limits mutating requests per browser session on top of
// the global per-IP limit.
func (m *Middlewares) SessionRateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP, keyBySession),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrOperationInProgress("request"))
		}),
	)
}

func keyBySession(r *http.Request) (string, error) {
	return utils.GetSessionID(r.Context()), nil
}
