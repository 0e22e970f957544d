package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/musekitchen/muse-api/internal/api"
	apiMiddleware "github.com/musekitchen/muse-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	validate := validator.New()

	stateHandler := api.NewStateHandler(app.controller, validate, app.logger)
	generateHandler := api.NewGenerateHandler(app.controller, validate, app.logger)
	historyHandler := api.NewHistoryHandler(app.controller, app.logger)
	mediaHandler := api.NewMediaHandler(app.generator, app.generator, validate, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", stateHandler.GetState)
		r.Post("/navigate", stateHandler.Navigate)

		r.Post("/generate", generateHandler.GenerateFromCapture)
		r.Post("/generate/text", generateHandler.GenerateFromText)

		r.Get("/history", historyHandler.ListHistory)
		r.Post("/history/{id}/select", historyHandler.SelectRecipe)

		r.Post("/recipes/image", mediaHandler.GenerateDishImage)
		r.Post("/speech", mediaHandler.GenerateSpeech)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
