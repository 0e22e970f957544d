package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"github.com/musekitchen/muse-api/internal/generation"
)

// dishImagePrompt is the photographic prompt template for dish images.
const dishImagePrompt = "An appetizing, professional food photo of %s. %s " +
	"Plated beautifully on a rustic table, cinematic lighting, 4k."

// GenerateDishImage implements generation.ImageSynthesizer.
//
// This is an unstructured image-generation call: no schema validation
// applies. The first inline image payload found among the response's
// content parts is returned, base64-encoded.
func (g *Generator) GenerateDishImage(ctx context.Context, title, description string) (string, error) {
	if title == "" {
		return "", ErrEmptyImagePrompt
	}

	prompt := fmt.Sprintf(dishImagePrompt, title, description)

	g.logger.InfoContext(ctx, "requesting dish image",
		"model", g.config.ImageModel,
		"title", title)

	resp, err := g.client.Models.GenerateContent(ctx, g.config.ImageModel,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		})
	if err != nil {
		return "", fmt.Errorf("dish image request failed: %w", err)
	}

	data, err := firstInlinePayload(resp, "image/")
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrNoImageData, err)
	}

	return data, nil
}

// firstInlinePayload scans the response candidates for the first inline
// blob whose MIME type carries the given prefix and returns its data
// base64-encoded. An empty prefix matches any blob.
func firstInlinePayload(resp *genai.GenerateContentResponse, mimePrefix string) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("nil response")
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			if mimePrefix != "" && !hasMIMEPrefix(part.InlineData.MIMEType, mimePrefix) {
				continue
			}
			return base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
		}
	}

	return "", fmt.Errorf("no inline payload in response")
}

func hasMIMEPrefix(mimeType, prefix string) bool {
	return len(mimeType) >= len(prefix) && mimeType[:len(prefix)] == prefix
}
