package middlewares

import (
	"net/http"
	"net/http/httptest"
	"personas-web/internal/app/config"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/utils"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares() *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{
			Env:                       "development",
			MaxRequests:               2,
			SessionExpiredTimeInHours: 1,
		},
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares()
	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
	}))

	t.Run("Client request id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-id", seen)
		assert.Equal(t, "client-id", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Missing request id is generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, strings.HasPrefix(seen, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestSession(t *testing.T) {
	m := newTestMiddlewares()
	var seen string
	handler := m.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetSessionID(r.Context())
	}))

	t.Run("New browser gets a cookie", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, constvars.SessionCookieName, cookies[0].Name)
		assert.Equal(t, seen, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, utils.IsValidSessionID(seen))
	})

	t.Run("Known cookie is reused", func(t *testing.T) {
		sessionID := utils.GenerateSessionID()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: constvars.SessionCookieName, Value: sessionID})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, sessionID, seen)
	})

	t.Run("Forged cookie is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: constvars.SessionCookieName, Value: "../../etc"})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEqual(t, "../../etc", seen)
		assert.True(t, utils.IsValidSessionID(seen))
	})
}

func TestErrorHandler(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), constvars.ErrClientCannotProcessRequest)
}

func TestLogging(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestSessionRateLimit(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.Session(m.SessionRateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	sessionID := utils.GenerateSessionID()
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/personas", nil)
		req.AddCookie(&http.Cookie{Name: constvars.SessionCookieName, Value: sessionID})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
