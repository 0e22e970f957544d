package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/musekitchen/muse-api/internal/api/shared"
	"github.com/musekitchen/muse-api/internal/platform/logger"
	"github.com/musekitchen/muse-api/internal/service"
)

// maxCaptureBytes bounds the capture request body. Three JPEG frames
// plus an audio note fit comfortably; anything larger is rejected.
const maxCaptureBytes = 32 << 20

// GenerateHandler handles recipe generation requests.
type GenerateHandler struct {
	controller *service.AppController
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(
	controller *service.AppController,
	validate *validator.Validate,
	logger *slog.Logger,
) *GenerateHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerateHandler")
	}

	return &GenerateHandler{
		controller: controller,
		validate:   validate,
		logger:     logger.With(slog.String("component", "generate_handler")),
	}
}

// GenerateFromCapture handles POST /api/generate requests.
// It submits a capture bundle and returns the generated recipe, or a
// classified error the client can render on the error screen.
func (h *GenerateHandler) GenerateFromCapture(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, maxCaptureBytes)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode generate request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Audio != nil {
		if err := h.validate.Struct(req.Audio); err != nil {
			log.Warn("audio clip validation failed", slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Audio clip requires data and mimeType")
			return
		}
	}

	recipe, err := h.controller.SubmitCapture(r.Context(), req.toCapture())
	if err != nil {
		h.respondGenerationError(w, r, err)
		return
	}

	log.Debug("recipe generated", slog.String("recipe_id", recipe.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, recipe)
}

// GenerateFromText handles POST /api/generate/text requests.
// It submits a text-only prompt from the cookbook screen.
func (h *GenerateHandler) GenerateFromText(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TextGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode text generate request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("text generate request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Prompt is required")
		return
	}

	recipe, err := h.controller.SubmitText(r.Context(), req.Prompt)
	if err != nil {
		h.respondGenerationError(w, r, err)
		return
	}

	log.Debug("recipe generated from text", slog.String("recipe_id", recipe.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, recipe)
}

// respondGenerationError writes the error for a failed submission. A
// classified failure carries its user-facing category in the body so
// the client can render the error screen directly; everything else
// (invalid captures, busy rejections, bad transitions) goes through
// the standard sanitized error response.
func (h *GenerateHandler) respondGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	var classified *service.ClassifiedError
	if errors.As(err, &classified) {
		status := MapErrorToStatusCode(classified.Err)

		h.logger.ErrorContext(r.Context(), "generation failed",
			slog.String("category", classified.Category.Code),
			slog.String("trace_id", shared.GetTraceID(r.Context())),
			slog.String("error", classified.Err.Error()))

		shared.RespondWithJSON(w, r, status, GenerationErrorResponse{
			Error:    classified.Category.Title,
			Category: classified.Category,
			TraceID:  shared.GetTraceID(r.Context()),
		})
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
