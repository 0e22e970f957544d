package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/musekitchen/muse-api/internal/api/shared"
	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/platform/logger"
	"github.com/musekitchen/muse-api/internal/service"
)

// HistoryHandler exposes the cookbook history.
type HistoryHandler struct {
	controller *service.AppController
	logger     *slog.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(controller *service.AppController, logger *slog.Logger) *HistoryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for HistoryHandler")
	}

	return &HistoryHandler{
		controller: controller,
		logger:     logger.With(slog.String("component", "history_handler")),
	}
}

// ListHistory handles GET /api/history requests.
// It returns all stored recipes, newest first.
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	history := h.controller.History()
	shared.RespondWithJSON(w, r, http.StatusOK, HistoryResponse{
		Recipes: history,
		Count:   len(history),
	})
}

// SelectRecipe handles POST /api/history/{id}/select requests.
// It makes a stored recipe the current one and shows the recipe view.
func (h *HistoryHandler) SelectRecipe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Recipe ID is required")
		return
	}

	recipeID, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid recipe ID format", slog.String("recipe_id", pathID))
		idErr := fmt.Errorf("%w: %v", domain.ErrInvalidID, err)
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(idErr), GetSafeErrorMessage(idErr), idErr)
		return
	}

	recipe, err := h.controller.SelectRecipe(recipeID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("recipe selected", slog.String("recipe_id", recipe.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, recipe)
}
