package routers

import (
	"personas-web/internal/app/delivery/http/controllers"
	"personas-web/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPersonaRoutes(router chi.Router, middlewares *middlewares.Middlewares, personaController *controllers.PersonaController) {
	router.Get("/", personaController.Page)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.SessionRateLimit())

		r.Post("/personas", personaController.CreatePersona)
		r.Post("/personas/refetch", personaController.Refetch)
		r.Post("/personas/edit/save", personaController.SaveEdit)
		r.Post("/personas/edit/cancel", personaController.CancelEdit)
		r.Post("/personas/{id}/edit", personaController.EditPersona)
		r.Post("/personas/{id}/delete", personaController.DeletePersona)
		r.Post("/notifications/{id}/dismiss", personaController.DismissNotification)
	})
}

func attachPersonaAPIRoutes(router chi.Router, middlewares *middlewares.Middlewares, personaController *controllers.PersonaController) {
	router.Get("/", personaController.FindAll)
}
