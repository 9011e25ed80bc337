package contracts

import (
	"context"
	"personas-web/internal/app/models"
)

type SessionService interface {
	// Get returns the page state of sessionID, or a fresh one if the session
	// holds nothing yet.
	Get(ctx context.Context, sessionID string) (*models.PageState, error)
	// Update applies fn to the page state of sessionID and persists the
	// result. When fn returns an error nothing is persisted.
	Update(ctx context.Context, sessionID string, fn func(state *models.PageState) error) (*models.PageState, error)
	Delete(ctx context.Context, sessionID string) error
}
