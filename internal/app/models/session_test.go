package models

import (
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageState_ApplyDraftChanges(t *testing.T) {
	state := NewPageState()

	require.NoError(t, state.ApplyDraftChanges(
		requests.FieldChange{Field: constvars.FieldNombre, Value: "Ana"},
		requests.FieldChange{Field: constvars.FieldEdad, Value: "34"},
	))
	assert.Equal(t, "Ana", state.Draft.Nombre)
	assert.Equal(t, "34", state.Draft.Edad)
	assert.Equal(t, int64(1), state.DraftRevision)

	t.Run("same values keep the revision", func(t *testing.T) {
		require.NoError(t, state.ApplyDraftChanges(requests.FieldChange{Field: constvars.FieldNombre, Value: "Ana"}))
		assert.Equal(t, int64(1), state.DraftRevision)
	})

	t.Run("unknown field applies nothing", func(t *testing.T) {
		err := state.ApplyDraftChanges(
			requests.FieldChange{Field: constvars.FieldApellido, Value: "Diaz"},
			requests.FieldChange{Field: "apodo", Value: "Anita"},
		)
		require.Error(t, err)
		assert.Equal(t, exceptions.KindValidation, exceptions.KindOf(err))
		assert.Empty(t, state.Draft.Apellido)
	})
}

func TestPageState_ResetDraft(t *testing.T) {
	state := NewPageState()
	require.NoError(t, state.ApplyDraftChanges(requests.FieldChange{Field: constvars.FieldNombre, Value: "Ana"}))
	revision := state.DraftRevision

	require.NoError(t, state.ApplyDraftChanges(requests.FieldChange{Field: constvars.FieldNombre, Value: "Ana Maria"}))
	assert.False(t, state.ResetDraft(revision), "a newer draft is not reset")
	assert.Equal(t, "Ana Maria", state.Draft.Nombre)

	assert.True(t, state.ResetDraft(state.DraftRevision))
	assert.True(t, state.Draft.IsEmpty())
}

func TestPageState_EditSurface(t *testing.T) {
	state := NewPageState()
	record := PersonaDraft{ID: "p1", Nombre: "Ana", Apellido: "Diaz", Email: "ana@example.com"}

	first := state.OpenEdit(record)
	assert.True(t, state.IsEditing(first))
	assert.False(t, state.IsEditing(""))

	require.NoError(t, state.ApplyEditChanges(first, requests.FieldChange{Field: constvars.FieldApellido, Value: "Ruiz"}))
	assert.Equal(t, "Ruiz", state.Edit.Draft.Apellido)
	assert.Equal(t, "Diaz", record.Apellido, "the draft does not alias the record")

	second := state.OpenEdit(record)
	assert.NotEqual(t, first, second)
	assert.False(t, state.IsEditing(first), "reopening replaces the previous session")
	assert.Equal(t, "Diaz", state.Edit.Draft.Apellido)

	err := state.ApplyEditChanges(first, requests.FieldChange{Field: constvars.FieldNombre, Value: "X"})
	assert.Equal(t, exceptions.KindValidation, exceptions.KindOf(err))

	assert.False(t, state.CloseEdit(first))
	assert.True(t, state.CloseEdit(second))
	assert.False(t, state.Edit.Open)
	assert.False(t, state.CloseEdit(second))
}

func TestPageState_Notifications(t *testing.T) {
	state := NewPageState()
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	old := state.NotifySuccess(constvars.NotificationCreateSuccessMessage, "", start)
	recent := state.NotifyError(constvars.NotificationDeleteErrorMessage, "", start.Add(4*time.Second))

	state.PruneNotifications(start.Add(5*time.Second), 0)
	assert.Len(t, state.Notifications, 2, "no ttl keeps everything")

	state.PruneNotifications(start.Add(5*time.Second), 5*time.Second)
	require.Len(t, state.Notifications, 1)
	assert.Equal(t, recent.ID, state.Notifications[0].ID)

	assert.False(t, state.DismissNotification(old.ID))
	assert.True(t, state.DismissNotification(recent.ID))
	assert.Empty(t, state.Notifications)
}

func TestPersona_Normalize(t *testing.T) {
	empty := ""
	zero := 0
	genero := constvars.GeneroFemenino

	persona := Persona{ID: "p1", Nombre: "Ana", Telefono: &empty, Edad: &zero, Genero: &genero}.Normalize()

	assert.Nil(t, persona.Telefono)
	assert.Nil(t, persona.Edad)
	require.NotNil(t, persona.Genero)
	assert.Equal(t, constvars.GeneroFemenino, *persona.Genero)

	row := persona.ConvertIntoResponse(3)
	assert.Equal(t, 3, row.Index)
	assert.Empty(t, row.Edad)
}
