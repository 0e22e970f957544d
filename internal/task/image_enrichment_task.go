package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/musekitchen/muse-api/internal/generation"
)

// ImageAttacher persists a synthesized dish image onto a stored recipe.
// It is implemented by the application controller, which owns History.
type ImageAttacher interface {
	// AttachImage stores the base64 image payload on the recipe with
	// the given ID and persists the updated history.
	AttachImage(ctx context.Context, recipeID uuid.UUID, imageData string) error
}

// ImageEnrichmentPayload is the event payload for image enrichment requests.
type ImageEnrichmentPayload struct {
	RecipeID    string `json:"recipe_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ImageEnrichmentTask synthesizes a dish image for a recipe and
// attaches it to the stored history entry. Best effort: a failure
// leaves the recipe without an image and nothing else.
type ImageEnrichmentTask struct {
	id          uuid.UUID
	recipeID    uuid.UUID
	title       string
	description string
	synthesizer generation.ImageSynthesizer
	attacher    ImageAttacher
	logger      *slog.Logger
}

// Ensure ImageEnrichmentTask implements the Task interface.
var _ Task = (*ImageEnrichmentTask)(nil)

// ID returns the task's unique identifier.
func (t *ImageEnrichmentTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier.
func (t *ImageEnrichmentTask) Type() string {
	return TaskTypeImageEnrichment
}

// Execute synthesizes the dish image and attaches it to the recipe.
func (t *ImageEnrichmentTask) Execute(ctx context.Context) error {
	t.logger.InfoContext(ctx, "enriching recipe with dish image",
		"recipe_id", t.recipeID,
		"title", t.title)

	imageData, err := t.synthesizer.GenerateDishImage(ctx, t.title, t.description)
	if err != nil {
		return fmt.Errorf("failed to synthesize dish image: %w", err)
	}

	if err := t.attacher.AttachImage(ctx, t.recipeID, imageData); err != nil {
		return fmt.Errorf("failed to attach dish image: %w", err)
	}

	t.logger.InfoContext(ctx, "recipe enriched", "recipe_id", t.recipeID)
	return nil
}

// ImageEnrichmentTaskFactory creates image enrichment tasks from event
// payloads.
type ImageEnrichmentTaskFactory struct {
	synthesizer generation.ImageSynthesizer
	attacher    ImageAttacher
	logger      *slog.Logger
}

// NewImageEnrichmentTaskFactory creates a factory with the provided
// dependencies.
func NewImageEnrichmentTaskFactory(
	synthesizer generation.ImageSynthesizer,
	attacher ImageAttacher,
	logger *slog.Logger,
) (*ImageEnrichmentTaskFactory, error) {
	if synthesizer == nil {
		return nil, errors.New("synthesizer cannot be nil")
	}
	if attacher == nil {
		return nil, errors.New("attacher cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &ImageEnrichmentTaskFactory{
		synthesizer: synthesizer,
		attacher:    attacher,
		logger:      logger,
	}, nil
}

// CreateTask builds an ImageEnrichmentTask from the given payload.
func (f *ImageEnrichmentTaskFactory) CreateTask(payload ImageEnrichmentPayload) (*ImageEnrichmentTask, error) {
	recipeID, err := uuid.Parse(payload.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe ID %q: %w", payload.RecipeID, err)
	}

	if payload.Title == "" {
		return nil, errors.New("payload title cannot be empty")
	}

	return &ImageEnrichmentTask{
		id:          uuid.New(),
		recipeID:    recipeID,
		title:       payload.Title,
		description: payload.Description,
		synthesizer: f.synthesizer,
		attacher:    f.attacher,
		logger:      f.logger.With("component", "image_enrichment_task"),
	}, nil
}
