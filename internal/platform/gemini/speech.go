package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/musekitchen/muse-api/internal/generation"
)

// GenerateSpeech implements generation.SpeechSynthesizer.
//
// It requests audio-modality output with the configured prebuilt voice
// and returns the first audio payload found in the response.
func (g *Generator) GenerateSpeech(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", ErrEmptyNarrationText
	}

	g.logger.InfoContext(ctx, "requesting narration",
		"model", g.config.SpeechModel,
		"voice", g.config.VoiceName,
		"text_length", len(text))

	resp, err := g.client.Models.GenerateContent(ctx, g.config.SpeechModel,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
						VoiceName: g.config.VoiceName,
					},
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("narration request failed: %w", err)
	}

	data, err := firstInlinePayload(resp, "audio/")
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrNoAudioData, err)
	}

	return data, nil
}
