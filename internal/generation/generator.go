package generation

import (
	"context"

	"github.com/musekitchen/muse-api/internal/domain"
)

// RecipeGenerator turns a capture bundle into a validated Recipe.
//
// Implementations are stateless: they build a single provider request,
// await a single response, and extract a typed payload. No retries are
// performed; retry policy, if any, belongs to the caller.
type RecipeGenerator interface {
	// GenerateRecipe assembles a multi-modal request from the capture
	// and returns the completed Recipe with a fresh ID, a creation
	// timestamp, and the original constraints attached.
	//
	// Returns ErrMissingCredential, ErrEmptyResponse, ErrContentBlocked
	// or ErrMalformedResponse for the narrow failure modes; transport
	// and provider errors are propagated unchanged.
	GenerateRecipe(ctx context.Context, capture domain.CaptureData) (*domain.Recipe, error)
}

// ImageSynthesizer produces a dish photo for a generated recipe.
type ImageSynthesizer interface {
	// GenerateDishImage builds a photographic prompt from the title and
	// description and returns the first inline image payload found in
	// the response, base64-encoded. Returns ErrNoImageData when the
	// response carries no image.
	GenerateDishImage(ctx context.Context, title, description string) (string, error)
}

// SpeechSynthesizer produces spoken narration for recipe text.
type SpeechSynthesizer interface {
	// GenerateSpeech requests audio-modality output with a fixed voice
	// and returns the first audio payload found in the response,
	// base64-encoded. Returns ErrNoAudioData when the response carries
	// no audio.
	GenerateSpeech(ctx context.Context, text string) (string, error)
}
