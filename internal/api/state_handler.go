// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/musekitchen/muse-api/internal/api/shared"
	"github.com/musekitchen/muse-api/internal/platform/logger"
	"github.com/musekitchen/muse-api/internal/service"
)

// StateHandler exposes the application screen state and navigation.
type StateHandler struct {
	controller *service.AppController
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(
	controller *service.AppController,
	validate *validator.Validate,
	logger *slog.Logger,
) *StateHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StateHandler")
	}

	return &StateHandler{
		controller: controller,
		validate:   validate,
		logger:     logger.With(slog.String("component", "state_handler")),
	}
}

// GetState handles GET /api/state requests.
// It returns a consistent snapshot of the current screen, recipe and error.
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.controller.Snapshot())
}

// Navigate handles POST /api/navigate requests.
// It applies a named navigation action and returns the resulting state.
func (h *StateHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode navigate request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("navigate request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing action")
		return
	}

	var err error
	switch req.Action {
	case "start":
		err = h.controller.Start()
	case "about":
		err = h.controller.ShowAbout()
	case "cookbook":
		err = h.controller.ShowCookbook()
	case "back":
		err = h.controller.Back()
	case "record":
		err = h.controller.BeginRecording()
	case "reset":
		err = h.controller.Reset()
	}

	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("navigation applied", slog.String("action", req.Action))
	shared.RespondWithJSON(w, r, http.StatusOK, h.controller.Snapshot())
}
