package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyCapture is returned when a capture carries no images,
	// no audio and no text prompt.
	ErrEmptyCapture = errors.New("capture must contain at least one image, an audio clip, or a text prompt")
)

// Validation errors for Recipe.
var (
	ErrEmptyRecipeID          = errors.New("recipe ID cannot be empty")
	ErrEmptyRecipeTitle       = errors.New("recipe title cannot be empty")
	ErrEmptyRecipeDescription = errors.New("recipe description cannot be empty")
	ErrInvalidDifficulty      = errors.New("invalid recipe difficulty")
	ErrNoSteps                = errors.New("recipe must contain at least one step")
	ErrEmptyStepInstruction   = errors.New("recipe step instruction cannot be empty")
)
