package api

import (
	"errors"
	"net/http"

	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/generation"
	"github.com/musekitchen/muse-api/internal/service"
	"github.com/musekitchen/muse-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Invalid input
	case errors.Is(err, domain.ErrEmptyCapture),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, generation.ErrInvalidCapture):
		return http.StatusBadRequest

	// State machine violations
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict

	// A generation is already running
	case errors.Is(err, service.ErrGenerationInFlight):
		return http.StatusTooManyRequests

	// Not found
	case errors.Is(err, service.ErrRecipeNotFound):
		return http.StatusNotFound

	// Provider refused or returned nothing usable
	case errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrEmptyResponse):
		return http.StatusUnprocessableEntity

	// Provider answered in an unusable shape
	case errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrNoImageData),
		errors.Is(err, generation.ErrNoAudioData):
		return http.StatusBadGateway

	// Server-side configuration problems
	case errors.Is(err, generation.ErrMissingCredential),
		errors.Is(err, generation.ErrInvalidConfig),
		errors.Is(err, store.ErrSaveFailed):
		return http.StatusInternalServerError

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details such as credential fragments or provider URLs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrEmptyCapture):
		return "Capture must include at least one image, an audio note, or text"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid recipe ID format"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, generation.ErrInvalidCapture):
		return "Invalid capture data"

	case errors.Is(err, service.ErrInvalidTransition):
		return "Action is not valid from the current screen"

	case errors.Is(err, service.ErrGenerationInFlight):
		return "A generation is already in progress"

	case errors.Is(err, service.ErrRecipeNotFound):
		return "Recipe not found"

	case errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrEmptyResponse):
		return "The model declined to answer"

	case errors.Is(err, generation.ErrMalformedResponse):
		return "The model response could not be read"

	case errors.Is(err, generation.ErrNoImageData):
		return "No image was produced"

	case errors.Is(err, generation.ErrNoAudioData):
		return "No audio was produced"

	case errors.Is(err, generation.ErrMissingCredential),
		errors.Is(err, generation.ErrInvalidConfig):
		return "The service is not configured correctly"

	case errors.Is(err, store.ErrSaveFailed):
		return "Failed to persist history"

	default:
		return "An unexpected error occurred"
	}
}
