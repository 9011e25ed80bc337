package personas

import (
	"personas-web/internal/app/models"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/responses"
	"personas-web/internal/pkg/exceptions"
)

func buildPersonaListView(personas []models.Persona, err error) responses.PersonaListView {
	if err != nil {
		return responses.PersonaListView{
			Status:       responses.ListStatusError,
			ErrorMessage: constvars.ListErrorPrefix + exceptions.ClientMessageOf(err),
		}
	}
	return responses.PersonaListView{
		Status: responses.ListStatusReady,
		Rows:   buildPersonaRows(personas),
	}
}

// buildPersonaRows numbers rows from 1 in fetch order.
func buildPersonaRows(personas []models.Persona) []responses.PersonaRow {
	rows := make([]responses.PersonaRow, len(personas))
	for i, persona := range personas {
		rows[i] = persona.ConvertIntoResponse(i + 1)
	}
	return rows
}

func buildPersonaPage(state *models.PageState, list responses.PersonaListView) *responses.PersonaPage {
	notifications := make([]responses.Notification, len(state.Notifications))
	for i, notification := range state.Notifications {
		notifications[i] = notification.ConvertIntoResponse()
	}
	return &responses.PersonaPage{
		Draft:         state.Draft.ConvertIntoResponse(),
		Edit:          state.Edit.ConvertIntoResponse(),
		Notifications: notifications,
		List:          list,
		GeneroOptions: []string{constvars.GeneroMasculino, constvars.GeneroFemenino},
	}
}
