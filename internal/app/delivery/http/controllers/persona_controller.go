package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"personas-web/internal/app/config"
	"personas-web/internal/app/contracts"
	"personas-web/internal/app/models"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/dto/responses"
	"personas-web/internal/pkg/exceptions"
	"personas-web/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	formTokenKey   = "token"
	urlParamID     = "id"
	pageRedirectTo = "/"
)

type PageRenderer interface {
	RenderPage(w io.Writer, page *responses.PersonaPage) error
}

type PersonaController struct {
	Log            *zap.Logger
	PersonaUsecase contracts.PersonaUsecase
	Renderer       PageRenderer
	InternalConfig *config.InternalConfig
}

func NewPersonaController(logger *zap.Logger, personaUsecase contracts.PersonaUsecase, renderer PageRenderer, internalConfig *config.InternalConfig) *PersonaController {
	return &PersonaController{
		Log:            logger,
		PersonaUsecase: personaUsecase,
		Renderer:       renderer,
		InternalConfig: internalConfig,
	}
}

func (ctrl *PersonaController) Page(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}

	page, err := ctrl.PersonaUsecase.Page(ctx, sessionID)
	if err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}

	var buf bytes.Buffer
	if err := ctrl.Renderer.RenderPage(&buf, page); err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextHTMLCharsetUTF8)
	w.WriteHeader(constvars.StatusOK)
	buf.WriteTo(w)
}

func (ctrl *PersonaController) CreatePersona(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}
	changes, ok := ctrl.parseFieldChanges(w, r)
	if !ok {
		return
	}

	if _, err := ctrl.PersonaUsecase.OnChange(ctx, sessionID, changes...); err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}
	if err := ctrl.PersonaUsecase.OnSubmit(ctx, sessionID); err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}
	redirectToPage(w, r)
}

func (ctrl *PersonaController) Refetch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}
	if err := ctrl.PersonaUsecase.Refetch(ctx, sessionID); err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}
	redirectToPage(w, r)
}

// EditPersona opens the edit surface with the row values posted back by the
// page, so no extra fetch is needed.
func (ctrl *PersonaController) EditPersona(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}
	changes, ok := ctrl.parseFieldChanges(w, r)
	if !ok {
		return
	}

	record := models.PersonaDraft{ID: chi.URLParam(r, urlParamID)}
	for _, change := range changes {
		next, err := record.With(change.Field, change.Value)
		if err != nil {
			ctrl.buildErrorResponse(w, err)
			return
		}
		record = next
	}

	if _, err := ctrl.PersonaUsecase.OnEditRow(ctx, sessionID, record); err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}
	redirectToPage(w, r)
}

func (ctrl *PersonaController) SaveEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}
	changes, ok := ctrl.parseFieldChanges(w, r)
	if !ok {
		return
	}
	token := r.PostFormValue(formTokenKey)

	if _, err := ctrl.PersonaUsecase.OnFieldChange(ctx, sessionID, token, changes...); err != nil {
		// A closed surface has already been reported to the user.
		if exceptions.KindOf(err) == exceptions.KindValidation {
			redirectToPage(w, r)
			return
		}
		ctrl.buildErrorResponse(w, err)
		return
	}
	if err := ctrl.PersonaUsecase.OnSave(ctx, sessionID, token); err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}
	redirectToPage(w, r)
}

func (ctrl *PersonaController) CancelEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		ctrl.buildErrorResponse(w, exceptions.ErrCannotParseForm(err))
		return
	}
	if err := ctrl.PersonaUsecase.OnCancel(ctx, sessionID, r.PostFormValue(formTokenKey)); err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}
	redirectToPage(w, r)
}

func (ctrl *PersonaController) DeletePersona(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}
	if err := ctrl.PersonaUsecase.OnDeleteRow(ctx, sessionID, chi.URLParam(r, urlParamID)); err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}
	redirectToPage(w, r)
}

func (ctrl *PersonaController) DismissNotification(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}
	if err := ctrl.PersonaUsecase.DismissNotification(ctx, sessionID, chi.URLParam(r, urlParamID)); err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}
	redirectToPage(w, r)
}

// FindAll serves the record list as JSON for scripts and health probes.
func (ctrl *PersonaController) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.PersonaUsecase.FindAll(ctx)
	if err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPersonasSuccessMessage, result)
}

func (ctrl *PersonaController) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthyMessage, nil)
}

func (ctrl *PersonaController) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), timeout)
}

func (ctrl *PersonaController) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := utils.GetSessionID(r.Context())
	if sessionID == "" {
		ctrl.buildErrorResponse(w, exceptions.ErrSessionMissing())
		return "", false
	}
	return sessionID, true
}

// parseFieldChanges turns the posted form into one change per known draft
// field that is present in the body. Other keys are ignored.
func (ctrl *PersonaController) parseFieldChanges(w http.ResponseWriter, r *http.Request) ([]requests.FieldChange, bool) {
	if err := r.ParseForm(); err != nil {
		ctrl.buildErrorResponse(w, exceptions.ErrCannotParseForm(err))
		return nil, false
	}
	changes := make([]requests.FieldChange, 0, len(constvars.DraftFields))
	for _, field := range constvars.DraftFields {
		if _, present := r.PostForm[field]; !present {
			continue
		}
		changes = append(changes, requests.FieldChange{
			Field: field,
			Value: r.PostForm.Get(field),
		})
	}
	return changes, true
}

func (ctrl *PersonaController) buildErrorResponse(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}

func redirectToPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, pageRedirectTo, constvars.StatusSeeOther)
}
