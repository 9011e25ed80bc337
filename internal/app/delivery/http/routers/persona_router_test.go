package routers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"personas-web/internal/app/config"
	"personas-web/internal/app/delivery/http/controllers"
	"personas-web/internal/app/delivery/http/middlewares"
	"personas-web/internal/app/delivery/http/views"
	"personas-web/internal/app/models"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/dto/responses"
	"personas-web/internal/pkg/exceptions"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPersonaUsecase struct {
	mock.Mock
}

func (m *MockPersonaUsecase) Page(ctx context.Context, sessionID string) (*responses.PersonaPage, error) {
	args := m.Called(ctx, sessionID)
	page, _ := args.Get(0).(*responses.PersonaPage)
	return page, args.Error(1)
}

func (m *MockPersonaUsecase) ListPersonas(ctx context.Context) responses.PersonaListView {
	args := m.Called(ctx)
	return args.Get(0).(responses.PersonaListView)
}

func (m *MockPersonaUsecase) FindAll(ctx context.Context) ([]responses.PersonaRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]responses.PersonaRow)
	return rows, args.Error(1)
}

func (m *MockPersonaUsecase) Refetch(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockPersonaUsecase) OnChange(ctx context.Context, sessionID string, changes ...requests.FieldChange) (models.PersonaDraft, error) {
	args := m.Called(ctx, sessionID, changes)
	return args.Get(0).(models.PersonaDraft), args.Error(1)
}

func (m *MockPersonaUsecase) OnSubmit(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockPersonaUsecase) OnDeleteRow(ctx context.Context, sessionID, personaID string) error {
	args := m.Called(ctx, sessionID, personaID)
	return args.Error(0)
}

func (m *MockPersonaUsecase) OnEditRow(ctx context.Context, sessionID string, record models.PersonaDraft) (string, error) {
	args := m.Called(ctx, sessionID, record)
	return args.String(0), args.Error(1)
}

func (m *MockPersonaUsecase) OnFieldChange(ctx context.Context, sessionID, token string, changes ...requests.FieldChange) (models.PersonaDraft, error) {
	args := m.Called(ctx, sessionID, token, changes)
	return args.Get(0).(models.PersonaDraft), args.Error(1)
}

func (m *MockPersonaUsecase) OnSave(ctx context.Context, sessionID, token string) error {
	args := m.Called(ctx, sessionID, token)
	return args.Error(0)
}

func (m *MockPersonaUsecase) OnCancel(ctx context.Context, sessionID, token string) error {
	args := m.Called(ctx, sessionID, token)
	return args.Error(0)
}

func (m *MockPersonaUsecase) DismissNotification(ctx context.Context, sessionID, notificationID string) error {
	args := m.Called(ctx, sessionID, notificationID)
	return args.Error(0)
}

func newTestInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{
			Version:                   "v1",
			FrontendDomain:            "*",
			MaxRequests:               100,
			RequestTimeoutInSeconds:   5,
			SessionExpiredTimeInHours: 1,
		},
	}
}

func newTestRouter(t *testing.T, personaUsecase *MockPersonaUsecase) *chi.Mux {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := newTestInternalConfig()

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewPersonaController(logger, personaUsecase, renderer, internalConfig),
	)
	return router
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPersonaRouter_Page(t *testing.T) {
	t.Run("renders the page and issues a session cookie", func(t *testing.T) {
		personaUsecase := new(MockPersonaUsecase)
		personaUsecase.On("Page", mock.Anything, mock.AnythingOfType("string")).Return(&responses.PersonaPage{
			List: responses.PersonaListView{
				Status: responses.ListStatusReady,
				Rows:   []responses.PersonaRow{{Index: 1, ID: "p1", Nombre: "Ana", Apellido: "Diaz", Email: "ana@example.com"}},
			},
		}, nil)

		rr := httptest.NewRecorder()
		newTestRouter(t, personaUsecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rr.Body.String(), "<td>Ana</td>")
		assert.Contains(t, rr.Header().Get("Set-Cookie"), constvars.SessionCookieName)
		personaUsecase.AssertExpectations(t)
	})

	t.Run("session store failure returns a JSON error", func(t *testing.T) {
		personaUsecase := new(MockPersonaUsecase)
		personaUsecase.On("Page", mock.Anything, mock.Anything).Return(nil, exceptions.ErrRedisGet(errors.New("down")))

		rr := httptest.NewRecorder()
		newTestRouter(t, personaUsecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	})
}

func TestPersonaRouter_CreatePersona(t *testing.T) {
	personaUsecase := new(MockPersonaUsecase)
	expectedChanges := []requests.FieldChange{
		{Field: constvars.FieldNombre, Value: "Ana"},
		{Field: constvars.FieldApellido, Value: "Diaz"},
		{Field: constvars.FieldEmail, Value: "ana@example.com"},
		{Field: constvars.FieldEdad, Value: ""},
	}
	personaUsecase.On("OnChange", mock.Anything, mock.AnythingOfType("string"), expectedChanges).Return(models.PersonaDraft{}, nil)
	personaUsecase.On("OnSubmit", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	form := url.Values{
		"nombre":   {"Ana"},
		"apellido": {"Diaz"},
		"email":    {"ana@example.com"},
		"edad":     {""},
		"unknown":  {"ignored"},
	}
	rr := httptest.NewRecorder()
	newTestRouter(t, personaUsecase).ServeHTTP(rr, postForm("/personas", form))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	personaUsecase.AssertExpectations(t)
}

func TestPersonaRouter_EditPersona(t *testing.T) {
	personaUsecase := new(MockPersonaUsecase)
	personaUsecase.On("OnEditRow", mock.Anything, mock.AnythingOfType("string"), models.PersonaDraft{
		ID:       "p1",
		Nombre:   "Ana",
		Apellido: "Diaz",
		Email:    "ana@example.com",
		Telefono: "",
	}).Return("token-1", nil)

	form := url.Values{
		"nombre":   {"Ana"},
		"apellido": {"Diaz"},
		"email":    {"ana@example.com"},
		"telefono": {""},
	}
	rr := httptest.NewRecorder()
	newTestRouter(t, personaUsecase).ServeHTTP(rr, postForm("/personas/p1/edit", form))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	personaUsecase.AssertExpectations(t)
}

func TestPersonaRouter_SaveEdit(t *testing.T) {
	t.Run("applies the posted fields then saves", func(t *testing.T) {
		personaUsecase := new(MockPersonaUsecase)
		personaUsecase.On("OnFieldChange", mock.Anything, mock.Anything, "token-1", []requests.FieldChange{
			{Field: constvars.FieldApellido, Value: "Ruiz"},
		}).Return(models.PersonaDraft{}, nil)
		personaUsecase.On("OnSave", mock.Anything, mock.Anything, "token-1").Return(nil)

		rr := httptest.NewRecorder()
		newTestRouter(t, personaUsecase).ServeHTTP(rr, postForm("/personas/edit/save", url.Values{
			"token":    {"token-1"},
			"apellido": {"Ruiz"},
		}))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		personaUsecase.AssertExpectations(t)
	})

	t.Run("closed surface redirects without saving", func(t *testing.T) {
		personaUsecase := new(MockPersonaUsecase)
		personaUsecase.On("OnFieldChange", mock.Anything, mock.Anything, "stale", mock.Anything).
			Return(models.PersonaDraft{}, exceptions.ErrEditSurfaceClosed())

		rr := httptest.NewRecorder()
		newTestRouter(t, personaUsecase).ServeHTTP(rr, postForm("/personas/edit/save", url.Values{
			"token":  {"stale"},
			"nombre": {"X"},
		}))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		personaUsecase.AssertNotCalled(t, "OnSave", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPersonaRouter_RowAndNotificationActions(t *testing.T) {
	personaUsecase := new(MockPersonaUsecase)
	personaUsecase.On("OnDeleteRow", mock.Anything, mock.Anything, "p1").Return(nil)
	personaUsecase.On("OnCancel", mock.Anything, mock.Anything, "token-1").Return(nil)
	personaUsecase.On("Refetch", mock.Anything, mock.Anything).Return(nil)
	personaUsecase.On("DismissNotification", mock.Anything, mock.Anything, "n1").Return(nil)
	router := newTestRouter(t, personaUsecase)

	actions := []*http.Request{
		postForm("/personas/p1/delete", nil),
		postForm("/personas/edit/cancel", url.Values{"token": {"token-1"}}),
		postForm("/personas/refetch", nil),
		postForm("/notifications/n1/dismiss", nil),
	}
	for _, req := range actions {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusSeeOther, rr.Code, req.URL.Path)
	}
	personaUsecase.AssertExpectations(t)
}

func TestPersonaRouter_API(t *testing.T) {
	personaUsecase := new(MockPersonaUsecase)
	personaUsecase.On("FindAll", mock.Anything).Return([]responses.PersonaRow{
		{Index: 1, ID: "p1", Nombre: "Ana", Apellido: "Diaz", Email: "ana@example.com"},
	}, nil)
	router := newTestRouter(t, personaUsecase)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/personas", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Success bool                   `json:"success"`
		Data    []responses.PersonaRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "p1", body.Data[0].ID)
	assert.Empty(t, rr.Header().Get("Set-Cookie"), "the API does not issue sessions")

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, allowedOrigins(""))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, allowedOrigins("https://a.example, https://b.example,"))
}
