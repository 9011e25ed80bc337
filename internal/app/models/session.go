package models

import (
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/dto/responses"
	"personas-web/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
)

// EditSurface is the modal editing session for one record. It is either
// closed, or open with a token that identifies this particular opening.
type EditSurface struct {
	Open  bool         `json:"open"`
	Token string       `json:"token,omitempty"`
	Draft PersonaDraft `json:"draft"`
}

type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PageState is everything one browser session keeps between requests: the
// create form draft, the edit surface and pending notifications.
type PageState struct {
	Draft         PersonaDraft   `json:"draft"`
	DraftRevision int64          `json:"draft_revision"`
	Edit          EditSurface    `json:"edit"`
	Notifications []Notification `json:"notifications,omitempty"`
}

func NewPageState() *PageState {
	return &PageState{}
}

// ApplyDraftChanges replaces the create draft with a new value holding the
// changes. Nothing is applied if any field is unknown.
func (s *PageState) ApplyDraftChanges(changes ...requests.FieldChange) error {
	draft, err := applyChanges(s.Draft, changes)
	if err != nil {
		return err
	}
	if draft != s.Draft {
		s.Draft = draft
		s.DraftRevision++
	}
	return nil
}

// ResetDraft clears the create draft if it is still at the given revision.
// A newer revision means the user kept typing while a submit was in flight.
func (s *PageState) ResetDraft(revision int64) bool {
	if s.DraftRevision != revision {
		return false
	}
	s.Draft = PersonaDraft{}
	s.DraftRevision++
	return true
}

// OpenEdit moves the surface to open with a copy of record, replacing any
// previous editing session.
func (s *PageState) OpenEdit(record PersonaDraft) string {
	s.Edit = EditSurface{
		Open:  true,
		Token: uuid.NewString(),
		Draft: record,
	}
	return s.Edit.Token
}

func (s *PageState) IsEditing(token string) bool {
	return s.Edit.Open && token != "" && s.Edit.Token == token
}

func (s *PageState) ApplyEditChanges(token string, changes ...requests.FieldChange) error {
	if !s.IsEditing(token) {
		return exceptions.ErrEditSurfaceClosed()
	}
	draft, err := applyChanges(s.Edit.Draft, changes)
	if err != nil {
		return err
	}
	s.Edit.Draft = draft
	return nil
}

// CloseEdit closes the surface opened with token. It reports false when the
// surface is already closed or belongs to another opening.
func (s *PageState) CloseEdit(token string) bool {
	if !s.IsEditing(token) {
		return false
	}
	s.Edit = EditSurface{}
	return true
}

func (s *PageState) Notify(notificationType, message, description string, now time.Time) Notification {
	notification := Notification{
		ID:          uuid.NewString(),
		Type:        notificationType,
		Message:     message,
		Description: description,
		CreatedAt:   now,
	}
	s.Notifications = append(s.Notifications, notification)
	return notification
}

func (s *PageState) NotifySuccess(message, description string, now time.Time) Notification {
	return s.Notify(constvars.NotificationTypeSuccess, message, description, now)
}

func (s *PageState) NotifyError(message, description string, now time.Time) Notification {
	return s.Notify(constvars.NotificationTypeError, message, description, now)
}

func (s *PageState) DismissNotification(id string) bool {
	for i, notification := range s.Notifications {
		if notification.ID == id {
			s.Notifications = append(s.Notifications[:i:i], s.Notifications[i+1:]...)
			return true
		}
	}
	return false
}

// PruneNotifications drops notifications older than ttl. A non-positive ttl
// keeps them until dismissed.
func (s *PageState) PruneNotifications(now time.Time, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	kept := s.Notifications[:0:0]
	for _, notification := range s.Notifications {
		if now.Sub(notification.CreatedAt) < ttl {
			kept = append(kept, notification)
		}
	}
	s.Notifications = kept
}

func (n Notification) ConvertIntoResponse() responses.Notification {
	return responses.Notification{
		ID:          n.ID,
		Type:        n.Type,
		Message:     n.Message,
		Description: n.Description,
	}
}

func (e EditSurface) ConvertIntoResponse() responses.EditSurface {
	return responses.EditSurface{
		Open:  e.Open,
		Token: e.Token,
		Draft: e.Draft.ConvertIntoResponse(),
	}
}

func applyChanges(draft PersonaDraft, changes []requests.FieldChange) (PersonaDraft, error) {
	for _, change := range changes {
		next, err := draft.With(change.Field, change.Value)
		if err != nil {
			return draft, err
		}
		draft = next
	}
	return draft, nil
}
