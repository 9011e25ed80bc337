package personas

import (
	"context"
	"personas-web/internal/app/config"
	"personas-web/internal/app/contracts"
	"personas-web/internal/app/models"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/dto/responses"
	"personas-web/internal/pkg/exceptions"
	"personas-web/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

type personaUsecase struct {
	PersonaGraphQLClient contracts.PersonaGraphQLClient
	SessionService       contracts.SessionService
	LockerService        contracts.LockerService
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
	now                  func() time.Time
}

func NewPersonaUsecase(
	personaGraphQLClient contracts.PersonaGraphQLClient,
	sessionService contracts.SessionService,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PersonaUsecase {
	return &personaUsecase{
		PersonaGraphQLClient: personaGraphQLClient,
		SessionService:       sessionService,
		LockerService:        lockerService,
		InternalConfig:       internalConfig,
		Log:                  logger,
		now:                  time.Now,
	}
}

func (uc *personaUsecase) Page(ctx context.Context, sessionID string) (*responses.PersonaPage, error) {
	state, err := uc.SessionService.Update(ctx, sessionID, func(state *models.PageState) error {
		state.PruneNotifications(uc.now(), uc.notificationDuration())
		return nil
	})
	if err != nil {
		uc.Log.Error("personaUsecase.Page error calling SessionService.Update",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}

	list := uc.ListPersonas(ctx)
	return buildPersonaPage(state, list), nil
}

// ListPersonas projects the latest fetch into a single render state. A fetch
// still running at the render deadline yields Loading and keeps running, its
// result fills the cache for the next render.
func (uc *personaUsecase) ListPersonas(ctx context.Context) responses.PersonaListView {
	requestID := utils.GetRequestID(ctx)

	type fetchResult struct {
		personas []models.Persona
		err      error
	}
	done := make(chan fetchResult, 1)
	go func() {
		personas, err := uc.PersonaGraphQLClient.FindAll(context.WithoutCancel(ctx))
		done <- fetchResult{personas: personas, err: err}
	}()

	var deadline <-chan time.Time
	if renderDeadline := uc.listRenderDeadline(); renderDeadline > 0 {
		timer := time.NewTimer(renderDeadline)
		defer timer.Stop()
		deadline = timer.C
	}

	var view responses.PersonaListView
	select {
	case result := <-done:
		view = buildPersonaListView(result.personas, result.err)
	case <-deadline:
		view = responses.PersonaListView{Status: responses.ListStatusLoading}
	case <-ctx.Done():
		view = responses.PersonaListView{Status: responses.ListStatusLoading}
	}

	uc.Log.Debug("personaUsecase.ListPersonas rendered",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingListStatusKey, string(view.Status)),
		zap.Int(constvars.LoggingPersonaCountKey, len(view.Rows)),
	)
	return view
}

func (uc *personaUsecase) FindAll(ctx context.Context) ([]responses.PersonaRow, error) {
	personas, err := uc.PersonaGraphQLClient.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildPersonaRows(personas), nil
}

// Refetch reloads the list. A failure is not returned, the next render shows
// it in place of the table.
func (uc *personaUsecase) Refetch(ctx context.Context, sessionID string) error {
	uc.Log.Info("personaUsecase.Refetch called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)
	uc.refetch(ctx)
	return nil
}

func (uc *personaUsecase) OnChange(ctx context.Context, sessionID string, changes ...requests.FieldChange) (models.PersonaDraft, error) {
	state, err := uc.SessionService.Update(ctx, sessionID, func(state *models.PageState) error {
		return state.ApplyDraftChanges(changes...)
	})
	if err != nil {
		utils.LogErrorByKind(uc.Log, "personaUsecase.OnChange error applying draft changes", err,
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
		)
		return models.PersonaDraft{}, err
	}
	return state.Draft, nil
}

// OnSubmit creates a record from the current draft. Validation and remote
// failures end up as notifications; only session store failures are
// returned.
func (uc *personaUsecase) OnSubmit(ctx context.Context, sessionID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("personaUsecase.OnSubmit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	state, err := uc.SessionService.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	revision := state.DraftRevision
	form := state.Draft.ToCreateForm()
	utils.SanitizePersonaForm(&form)

	err = utils.ValidateStruct(form)
	if err != nil {
		validationErr := exceptions.ErrInputValidation(err)
		utils.LogErrorByKind(uc.Log, "personaUsecase.OnSubmit draft is not valid", validationErr,
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return uc.notifyError(ctx, sessionID, constvars.NotificationValidationMessage, validationErr.ClientMessage)
	}

	release, acquired, err := uc.acquireLock(ctx, sessionID, constvars.LockComponentCreate)
	if err != nil || !acquired {
		return err
	}
	defer release()

	created, err := uc.PersonaGraphQLClient.Create(ctx, utils.BuildCreatePersonaVariables(form))
	if err != nil {
		return uc.notifyError(ctx, sessionID, constvars.NotificationCreateErrorMessage,
			failureDescription(err, constvars.NotificationCreateErrorDescription))
	}

	uc.refetch(ctx)

	_, err = uc.SessionService.Update(context.WithoutCancel(ctx), sessionID, func(state *models.PageState) error {
		if !state.ResetDraft(revision) {
			uc.Log.Info("personaUsecase.OnSubmit draft changed while saving, keeping it",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int64(constvars.LoggingDraftRevisionKey, revision),
			)
		}
		state.NotifySuccess(constvars.NotificationCreateSuccessMessage, constvars.NotificationCreateSuccessDescription, uc.now())
		return nil
	})
	if err != nil {
		return err
	}

	uc.Log.Info("personaUsecase.OnSubmit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPersonaIDKey, personaID(created)),
	)
	return nil
}

func (uc *personaUsecase) OnDeleteRow(ctx context.Context, sessionID, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("personaUsecase.OnDeleteRow called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String(constvars.LoggingPersonaIDKey, id),
	)

	id = strings.TrimSpace(id)
	if id == "" {
		return uc.notifyError(ctx, sessionID, constvars.NotificationDeleteErrorMessage, constvars.NotificationDeleteErrorDescription)
	}

	release, acquired, err := uc.acquireLock(ctx, sessionID, constvars.LockComponentDelete, id)
	if err != nil || !acquired {
		return err
	}
	defer release()

	deleted, err := uc.PersonaGraphQLClient.Delete(ctx, id)
	if err != nil {
		return uc.notifyError(ctx, sessionID, constvars.NotificationDeleteErrorMessage,
			failureDescription(err, constvars.NotificationDeleteErrorDescription))
	}
	if !deleted {
		uc.Log.Warn("personaUsecase.OnDeleteRow record was already gone",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPersonaIDKey, id),
		)
	}

	uc.refetch(ctx)
	return uc.notifySuccess(ctx, sessionID, constvars.NotificationDeleteSuccessMessage, constvars.NotificationDeleteSuccessDescription)
}

// OnEditRow opens the edit surface on a copy of record, replacing any open
// one.
func (uc *personaUsecase) OnEditRow(ctx context.Context, sessionID string, record models.PersonaDraft) (string, error) {
	var token string
	_, err := uc.SessionService.Update(ctx, sessionID, func(state *models.PageState) error {
		token = state.OpenEdit(record)
		return nil
	})
	if err != nil {
		return "", err
	}

	uc.Log.Info("personaUsecase.OnEditRow opened edit surface",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingPersonaIDKey, record.ID),
		zap.String(constvars.LoggingEditTokenKey, token),
	)
	return token, nil
}

// OnFieldChange edits the draft of the surface opened with token. A closed or
// replaced surface is reported to the user and returned as a validation
// error.
func (uc *personaUsecase) OnFieldChange(ctx context.Context, sessionID, token string, changes ...requests.FieldChange) (models.PersonaDraft, error) {
	closed := false
	state, err := uc.SessionService.Update(ctx, sessionID, func(state *models.PageState) error {
		if !state.IsEditing(token) {
			closed = true
			state.NotifyError(constvars.NotificationEditClosedMessage, constvars.ErrClientEditSurfaceClosed, uc.now())
			return nil
		}
		return state.ApplyEditChanges(token, changes...)
	})
	if err != nil {
		utils.LogErrorByKind(uc.Log, "personaUsecase.OnFieldChange error applying edit changes", err,
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEditTokenKey, token),
		)
		return models.PersonaDraft{}, err
	}
	if closed {
		return models.PersonaDraft{}, exceptions.ErrEditSurfaceClosed()
	}
	return state.Edit.Draft, nil
}

// OnSave sends every field of the edit draft. The result is applied only if
// the surface is still open with the same token.
func (uc *personaUsecase) OnSave(ctx context.Context, sessionID, token string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("personaUsecase.OnSave called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String(constvars.LoggingEditTokenKey, token),
	)

	state, err := uc.SessionService.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if !state.IsEditing(token) {
		utils.LogErrorByKind(uc.Log, "personaUsecase.OnSave edit surface is not open", exceptions.ErrEditSurfaceClosed(),
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return uc.notifyError(ctx, sessionID, constvars.NotificationEditClosedMessage, constvars.ErrClientEditSurfaceClosed)
	}

	form := state.Edit.Draft.ToEditForm()
	utils.SanitizePersonaEditForm(&form)
	err = utils.ValidateStruct(form)
	if err != nil {
		validationErr := exceptions.ErrInputValidation(err)
		utils.LogErrorByKind(uc.Log, "personaUsecase.OnSave draft is not valid", validationErr,
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return uc.notifyError(ctx, sessionID, constvars.NotificationValidationMessage, validationErr.ClientMessage)
	}

	release, acquired, err := uc.acquireLock(ctx, sessionID, constvars.LockComponentUpdate, form.ID)
	if err != nil || !acquired {
		return err
	}
	defer release()

	_, err = uc.PersonaGraphQLClient.Update(ctx, utils.BuildUpdatePersonaVariables(form))
	if err != nil {
		description := failureDescription(err, constvars.NotificationUpdateErrorDescription)
		_, err = uc.SessionService.Update(context.WithoutCancel(ctx), sessionID, func(state *models.PageState) error {
			if !state.IsEditing(token) {
				uc.logStaleSave(requestID, token)
				return nil
			}
			state.NotifyError(constvars.NotificationUpdateErrorMessage, description, uc.now())
			return nil
		})
		return err
	}

	uc.refetch(ctx)

	_, err = uc.SessionService.Update(context.WithoutCancel(ctx), sessionID, func(state *models.PageState) error {
		if !state.CloseEdit(token) {
			uc.logStaleSave(requestID, token)
			return nil
		}
		state.NotifySuccess(constvars.NotificationUpdateSuccessMessage, constvars.NotificationUpdateSuccessDescription, uc.now())
		return nil
	})
	if err != nil {
		return err
	}

	uc.Log.Info("personaUsecase.OnSave succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPersonaIDKey, form.ID),
	)
	return nil
}

// OnCancel closes the surface and drops its draft. It never reaches the
// network.
func (uc *personaUsecase) OnCancel(ctx context.Context, sessionID, token string) error {
	_, err := uc.SessionService.Update(ctx, sessionID, func(state *models.PageState) error {
		if !state.CloseEdit(token) {
			state.NotifyError(constvars.NotificationEditClosedMessage, constvars.ErrClientEditSurfaceClosed, uc.now())
		}
		return nil
	})
	return err
}

func (uc *personaUsecase) DismissNotification(ctx context.Context, sessionID, notificationID string) error {
	_, err := uc.SessionService.Update(ctx, sessionID, func(state *models.PageState) error {
		state.DismissNotification(notificationID)
		return nil
	})
	return err
}

// acquireLock guards one mutation per session and component. When the lock
// is held the user is told and ok is false.
func (uc *personaUsecase) acquireLock(ctx context.Context, sessionID, component string, ids ...string) (release func(), ok bool, err error) {
	key := utils.BuildLockKey(component, sessionID, ids...)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, key, uc.mutationLockExpiration())
	if err != nil {
		return nil, false, err
	}
	if !acquired {
		busyErr := exceptions.ErrOperationInProgress(component)
		utils.LogErrorByKind(uc.Log, "personaUsecase.acquireLock operation already in flight", busyErr,
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return nil, false, uc.notifyError(ctx, sessionID, constvars.NotificationBusyMessage, busyErr.ClientMessage)
	}

	release = func() {
		err := uc.LockerService.Unlock(context.WithoutCancel(ctx), key, lockValue)
		if err != nil {
			uc.Log.Error("personaUsecase.acquireLock error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}
	return release, true, nil
}

func (uc *personaUsecase) refetch(ctx context.Context) {
	_, err := uc.PersonaGraphQLClient.Refetch(context.WithoutCancel(ctx))
	if err != nil {
		utils.LogErrorByKind(uc.Log, "personaUsecase.refetch error calling PersonaGraphQLClient.Refetch", err,
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		)
	}
}

func (uc *personaUsecase) notifyError(ctx context.Context, sessionID, message, description string) error {
	_, err := uc.SessionService.Update(context.WithoutCancel(ctx), sessionID, func(state *models.PageState) error {
		state.NotifyError(message, description, uc.now())
		return nil
	})
	return err
}

func (uc *personaUsecase) notifySuccess(ctx context.Context, sessionID, message, description string) error {
	_, err := uc.SessionService.Update(context.WithoutCancel(ctx), sessionID, func(state *models.PageState) error {
		state.NotifySuccess(message, description, uc.now())
		return nil
	})
	return err
}

func (uc *personaUsecase) logStaleSave(requestID, token string) {
	uc.Log.Info("personaUsecase.OnSave edit surface closed or replaced while saving, result discarded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEditTokenKey, token),
	)
}

func (uc *personaUsecase) notificationDuration() time.Duration {
	return time.Duration(uc.InternalConfig.App.NotificationDurationInSeconds) * time.Second
}

func (uc *personaUsecase) listRenderDeadline() time.Duration {
	return time.Duration(uc.InternalConfig.App.ListRenderDeadlineInMilliseconds) * time.Millisecond
}

func (uc *personaUsecase) mutationLockExpiration() time.Duration {
	expiration := time.Duration(uc.InternalConfig.App.MutationLockExpirationInSeconds) * time.Second
	if expiration <= 0 {
		return 30 * time.Second
	}
	return expiration
}

// failureDescription shows what the remote service said when it refused the
// operation, and a generic text for anything else.
func failureDescription(err error, fallback string) string {
	if exceptions.KindOf(err) == exceptions.KindService {
		return exceptions.ClientMessageOf(err)
	}
	return fallback
}

func personaID(persona *models.Persona) string {
	if persona == nil {
		return ""
	}
	return persona.ID
}
