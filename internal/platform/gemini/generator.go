package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/musekitchen/muse-api/internal/config"
	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/generation"
)

// Generator implements the generation gateway interfaces using the
// Gemini API. It is stateless: each call builds one request, awaits one
// response, and extracts one typed payload.
type Generator struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
}

// Compile-time interface checks.
var (
	_ generation.RecipeGenerator   = (*Generator)(nil)
	_ generation.ImageSynthesizer  = (*Generator)(nil)
	_ generation.SpeechSynthesizer = (*Generator)(nil)
)

// NewGenerator creates a Generator with the provided dependencies.
// A missing API key fails here, before any network call is attempted.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is not configured", generation.ErrMissingCredential)
	}

	if cfg.RecipeModel == "" || cfg.ImageModel == "" || cfg.SpeechModel == "" {
		return nil, fmt.Errorf("%w: model names cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger,
		config: cfg,
		client: client,
	}, nil
}

// GenerateRecipe implements generation.RecipeGenerator.
//
// It assembles the ordered multi-modal parts, requests a deterministic
// JSON response conforming to the recipe schema with an elevated
// thinking budget, and maps the parsed content onto a domain Recipe.
// No retry is performed; transport and provider errors propagate to the
// caller unchanged.
func (g *Generator) GenerateRecipe(ctx context.Context, capture domain.CaptureData) (*domain.Recipe, error) {
	if err := capture.Validate(); err != nil {
		return nil, err
	}

	parts, err := buildRecipeParts(capture)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "requesting recipe generation",
		"model", g.config.RecipeModel,
		"image_parts", len(capture.Images),
		"has_audio", capture.HasAudio(),
		"constraints", len(capture.Constraints))

	resp, err := g.client.Models.GenerateContent(ctx, g.config.RecipeModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   recipeResponseSchema,
			Temperature:      genai.Ptr[float32](0),
			ThinkingConfig: &genai.ThinkingConfig{
				ThinkingBudget: genai.Ptr(g.config.ThinkingBudget),
			},
		})
	if err != nil {
		return nil, fmt.Errorf("recipe generation request failed: %w", err)
	}

	text, err := extractResponseText(resp)
	if err != nil {
		return nil, err
	}

	recipe, err := parseRecipeContent(text, capture.Constraints)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "recipe generated",
		"recipe_id", recipe.ID.String(),
		"title", recipe.Title,
		"steps", len(recipe.Steps))

	return recipe, nil
}

// extractResponseText pulls the concatenated text out of the first
// candidate, distinguishing blocked content from an empty response.
func extractResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", generation.ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, candidate.FinishReason)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", generation.ErrEmptyResponse)
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}

	if text == "" {
		return "", fmt.Errorf("%w: candidate contains no text", generation.ErrEmptyResponse)
	}

	return text, nil
}

// parseRecipeContent unmarshals the model's JSON and builds the domain
// Recipe: fresh ID, creation timestamp, original constraints attached.
// Both parse failures and schema violations surface as
// ErrMalformedResponse.
func parseRecipeContent(text string, constraints []string) (*domain.Recipe, error) {
	var content recipeContent
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", generation.ErrMalformedResponse, err)
	}

	steps := make([]domain.Step, 0, len(content.Steps))
	for _, step := range content.Steps {
		steps = append(steps, domain.Step{
			Instruction: step.Instruction,
			Tip:         step.Tip,
			Duration:    step.Duration,
		})
	}

	recipe, err := domain.NewRecipe(domain.Recipe{
		Title:             content.Title,
		Description:       content.Description,
		CuisineStyle:      content.CuisineStyle,
		Difficulty:        domain.Difficulty(content.Difficulty),
		TotalTime:         content.TotalTime,
		IngredientsFound:  content.IngredientsFound,
		PantryItemsNeeded: content.PantryItemsNeeded,
		Steps:             steps,
	}, constraints)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedResponse, err)
	}

	return recipe, nil
}
