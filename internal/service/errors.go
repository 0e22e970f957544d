package service

import "errors"

// Common errors returned by the application controller.
var (
	// ErrInvalidTransition is returned when a trigger is not valid in
	// the current screen.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrGenerationInFlight is returned when a submission arrives while
	// a generation is already processing. The controller allows at most
	// one in-flight request.
	ErrGenerationInFlight = errors.New("a generation is already in progress")

	// ErrRecipeNotFound is returned when a history selection references
	// an unknown recipe ID.
	ErrRecipeNotFound = errors.New("recipe not found in history")
)
