package gemini

import (
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/generation"
)

const (
	// defaultInstruction is used when the capture carries neither an
	// explicit text prompt nor an audio note.
	defaultInstruction = "Identify the ingredients you can see and make me something delicious with them."

	// analysisInstruction is the fixed final part of every recipe request.
	analysisInstruction = "Analyze everything provided above and craft exactly one complete recipe. " +
		"Detect the available ingredients, assume common pantry staples, and respond only with " +
		"JSON conforming to the requested schema."
)

// constraintDirective builds the strict-adherence prefix enumerating
// the user's declared restrictions. Returns "" when there are none.
func constraintDirective(constraints []string) string {
	if len(constraints) == 0 {
		return ""
	}

	return fmt.Sprintf(
		"STRICT CONSTRAINTS: the user has declared the following restrictions: %s. "+
			"The recipe MUST respect every single one of them. If a restriction forbids a piece of "+
			"equipment (for example 'No Stove'), you are forbidden from using that equipment in any "+
			"step; rely on alternatives such as a microwave, an oven, or raw preparation instead.\n\n",
		strings.Join(constraints, ", "),
	)
}

// captureText derives the single text part of the request.
// Priority: explicit text prompt, then the default instruction when no
// audio is present, then constraint-only text when audio speaks for the
// user. The constraint directive always prefixes the chosen text.
func captureText(capture domain.CaptureData) string {
	var text string
	switch {
	case capture.TextPrompt != "":
		text = capture.TextPrompt
	case !capture.HasAudio():
		text = defaultInstruction
	}

	return constraintDirective(capture.Constraints) + text
}

// buildRecipeParts assembles the ordered content parts for a recipe
// request: one part per image, the audio clip if present, exactly one
// text part, then the fixed analysis instruction.
func buildRecipeParts(capture domain.CaptureData) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(capture.Images)+3)

	for i, image := range capture.Images {
		data, err := base64.StdEncoding.DecodeString(image)
		if err != nil {
			return nil, fmt.Errorf("%w: image %d is not valid base64: %v",
				generation.ErrInvalidCapture, i, err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, "image/jpeg"))
	}

	if capture.HasAudio() {
		data, err := base64.StdEncoding.DecodeString(capture.Audio.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: audio clip is not valid base64: %v",
				generation.ErrInvalidCapture, err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, capture.Audio.MIMEType))
	}

	parts = append(parts,
		genai.NewPartFromText(captureText(capture)),
		genai.NewPartFromText(analysisInstruction),
	)

	return parts, nil
}
