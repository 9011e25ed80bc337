package contracts

import (
	"context"
	"personas-web/internal/app/models"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/dto/responses"
)

type PersonaUsecase interface {
	Page(ctx context.Context, sessionID string) (*responses.PersonaPage, error)
	ListPersonas(ctx context.Context) responses.PersonaListView
	FindAll(ctx context.Context) ([]responses.PersonaRow, error)
	Refetch(ctx context.Context, sessionID string) error
	OnChange(ctx context.Context, sessionID string, changes ...requests.FieldChange) (models.PersonaDraft, error)
	OnSubmit(ctx context.Context, sessionID string) error
	OnDeleteRow(ctx context.Context, sessionID, personaID string) error
	OnEditRow(ctx context.Context, sessionID string, record models.PersonaDraft) (string, error)
	OnFieldChange(ctx context.Context, sessionID, token string, changes ...requests.FieldChange) (models.PersonaDraft, error)
	OnSave(ctx context.Context, sessionID, token string) error
	OnCancel(ctx context.Context, sessionID, token string) error
	DismissNotification(ctx context.Context, sessionID, notificationID string) error
}

type PersonaGraphQLClient interface {
	FindAll(ctx context.Context) ([]models.Persona, error)
	Refetch(ctx context.Context) ([]models.Persona, error)
	Create(ctx context.Context, variables requests.CreatePersonaVariables) (*models.Persona, error)
	Update(ctx context.Context, variables requests.UpdatePersonaVariables) (*models.Persona, error)
	Delete(ctx context.Context, personaID string) (bool, error)
}
