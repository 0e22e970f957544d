package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/musekitchen/muse-api/internal/api/shared"
	"github.com/musekitchen/muse-api/internal/generation"
	"github.com/musekitchen/muse-api/internal/platform/logger"
)

// MediaHandler handles dish image and speech synthesis requests. Both
// are stateless enrichments; they never touch the screen state.
type MediaHandler struct {
	images   generation.ImageSynthesizer
	speech   generation.SpeechSynthesizer
	validate *validator.Validate
	logger   *slog.Logger
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(
	images generation.ImageSynthesizer,
	speech generation.SpeechSynthesizer,
	validate *validator.Validate,
	logger *slog.Logger,
) *MediaHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MediaHandler")
	}

	return &MediaHandler{
		images:   images,
		speech:   speech,
		validate: validate,
		logger:   logger.With(slog.String("component", "media_handler")),
	}
}

// GenerateDishImage handles POST /api/recipes/image requests.
// It synthesizes a photographic dish image for a recipe title and
// description and returns the base64 payload.
func (h *MediaHandler) GenerateDishImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DishImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode dish image request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("dish image request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title is required")
		return
	}

	imageData, err := h.images.GenerateDishImage(r.Context(), req.Title, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("dish image synthesized", slog.String("title", req.Title))
	shared.RespondWithJSON(w, r, http.StatusOK, DishImageResponse{ImageData: imageData})
}

// GenerateSpeech handles POST /api/speech requests.
// It synthesizes spoken narration for recipe text and returns the
// base64 audio payload.
func (h *MediaHandler) GenerateSpeech(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode speech request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("speech request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Text is required")
		return
	}

	audioData, err := h.speech.GenerateSpeech(r.Context(), req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SpeechResponse{AudioData: audioData})
}
