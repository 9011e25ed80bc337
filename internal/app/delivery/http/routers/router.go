package routers

import (
	"personas-web/internal/app/config"
	"personas-web/internal/app/delivery/http/controllers"
	"personas-web/internal/app/delivery/http/middlewares"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	personaController *controllers.PersonaController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins(internalConfig.App.FrontendDomain),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)

	router.Get("/healthz", personaController.Healthz)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Session)
		attachPersonaRoutes(r, middlewares, personaController)
	})

	router.Route("/api/"+internalConfig.App.Version, func(r chi.Router) {
		r.Route("/personas", func(r chi.Router) {
			attachPersonaAPIRoutes(r, middlewares, personaController)
		})
	})
}

func allowedOrigins(frontendDomain string) []string {
	var origins []string
	for _, origin := range strings.Split(frontendDomain, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
