package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/generation"
	"github.com/musekitchen/muse-api/internal/service"
)

func TestMapErrorToStatusCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"empty capture", domain.ErrEmptyCapture, http.StatusBadRequest},
		{"invalid capture", generation.ErrInvalidCapture, http.StatusBadRequest},
		{"invalid ID", domain.ErrInvalidID, http.StatusBadRequest},
		{"invalid transition", service.ErrInvalidTransition, http.StatusConflict},
		{"generation in flight", service.ErrGenerationInFlight, http.StatusTooManyRequests},
		{"recipe not found", service.ErrRecipeNotFound, http.StatusNotFound},
		{"content blocked", generation.ErrContentBlocked, http.StatusUnprocessableEntity},
		{"empty response", generation.ErrEmptyResponse, http.StatusUnprocessableEntity},
		{"malformed response", generation.ErrMalformedResponse, http.StatusBadGateway},
		{"no image data", generation.ErrNoImageData, http.StatusBadGateway},
		{"no audio data", generation.ErrNoAudioData, http.StatusBadGateway},
		{"missing credential", generation.ErrMissingCredential, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCodeWrapped(t *testing.T) {
	err := fmt.Errorf("submit failed: %w", service.ErrGenerationInFlight)
	assert.Equal(t, http.StatusTooManyRequests, MapErrorToStatusCode(err))
}

func TestGetSafeErrorMessage(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"empty capture", domain.ErrEmptyCapture, "Capture must include at least one image, an audio note, or text"},
		{"not found", service.ErrRecipeNotFound, "Recipe not found"},
		{"invalid ID", domain.ErrInvalidID, "Invalid recipe ID format"},
		{"blocked", generation.ErrContentBlocked, "The model declined to answer"},
		{"credential", generation.ErrMissingCredential, "The service is not configured correctly"},
		{"unknown", errors.New("pq: connection to 10.0.0.3 failed"), "An unexpected error occurred"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

// Raw upstream detail must never surface in the safe message.
func TestSafeMessageNeverEchoesError(t *testing.T) {
	err := errors.New("Post \"https://generativelanguage.googleapis.com\": key=AIzaSyExample")
	msg := GetSafeErrorMessage(err)
	assert.NotContains(t, msg, "AIza")
	assert.NotContains(t, msg, "googleapis")
}
