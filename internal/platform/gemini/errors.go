package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyImagePrompt is returned when dish image synthesis is
	// requested without a recipe title.
	ErrEmptyImagePrompt = errors.New("image prompt title cannot be empty")

	// ErrEmptyNarrationText is returned when speech synthesis is
	// requested with no text.
	ErrEmptyNarrationText = errors.New("narration text cannot be empty")
)
