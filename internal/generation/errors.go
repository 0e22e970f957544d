package generation

import "errors"

// Common errors returned by the generation gateway. The gateway never
// recovers from a failure: every error propagates to the controller,
// which is the sole classifier. Transport and provider errors that do
// not fit this taxonomy pass through unchanged in meaning.
var (
	// ErrMissingCredential is returned when no API credential is
	// configured. It is a hard precondition failure for every gateway
	// operation and is raised before any network call.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrInvalidConfig is returned when the gateway configuration is
	// otherwise invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyResponse is returned when the provider produced no text.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrContentBlocked is returned when the provider refused to answer
	// due to safety filtering.
	ErrContentBlocked = errors.New("content blocked by model safety filters")

	// ErrMalformedResponse is returned when the response text is not
	// valid JSON or does not satisfy the recipe schema expectations.
	ErrMalformedResponse = errors.New("malformed response from model")

	// ErrNoImageData is returned when an image synthesis response
	// contains no inline image payload.
	ErrNoImageData = errors.New("no image data in response")

	// ErrNoAudioData is returned when a speech synthesis response
	// contains no audio payload.
	ErrNoAudioData = errors.New("no audio data in response")

	// ErrInvalidCapture is returned when the capture bundle cannot be
	// turned into a request (e.g. undecodable payloads).
	ErrInvalidCapture = errors.New("invalid capture data")
)
