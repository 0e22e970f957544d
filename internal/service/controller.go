package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/events"
	"github.com/musekitchen/muse-api/internal/generation"
	"github.com/musekitchen/muse-api/internal/store"
	"github.com/musekitchen/muse-api/internal/task"
)

// Screen identifies which application screen is visible.
type Screen string

// The fixed set of screens.
const (
	ScreenLanding    Screen = "landing"
	ScreenAbout      Screen = "about"
	ScreenCookbook   Screen = "cookbook"
	ScreenIdle       Screen = "idle"
	ScreenRecording  Screen = "recording"
	ScreenProcessing Screen = "processing"
	ScreenError      Screen = "error"
	ScreenRecipeView Screen = "recipe_view"
)

// StateSnapshot is a consistent view of the controller's state,
// suitable for rendering.
type StateSnapshot struct {
	Screen        Screen         `json:"screen"`
	CurrentRecipe *domain.Recipe `json:"currentRecipe,omitempty"`
	LastError     *ErrorCategory `json:"lastError,omitempty"`
	HistoryCount  int            `json:"historyCount"`
}

// AppController is the application state controller. It exclusively
// owns the current recipe, the last classified error, and the cookbook
// history for the lifetime of the running application.
//
// All state is guarded by a single mutex; at most one generation is in
// flight at a time, and a submission during processing is rejected with
// ErrGenerationInFlight.
type AppController struct {
	mu      sync.Mutex
	screen  Screen
	current *domain.Recipe
	lastErr *ClassifiedError
	history []*domain.Recipe

	generator    generation.RecipeGenerator
	historyStore store.HistoryStore
	emitter      events.EventEmitter
	logger       *slog.Logger
}

// NewAppController creates the controller and loads the persisted
// history. A corrupt or absent history falls back to empty without
// failing startup; only a real store error (e.g. unreachable database)
// is fatal. The emitter may be nil, disabling enrichment events.
func NewAppController(
	ctx context.Context,
	generator generation.RecipeGenerator,
	historyStore store.HistoryStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (*AppController, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if historyStore == nil {
		return nil, errors.New("history store cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	history, err := historyStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	logger = logger.With(slog.String("component", "app_controller"))
	logger.InfoContext(ctx, "controller initialized", "history_size", len(history))

	return &AppController{
		screen:       ScreenLanding,
		history:      history,
		generator:    generator,
		historyStore: historyStore,
		emitter:      emitter,
		logger:       logger,
	}, nil
}

// Snapshot returns a consistent view of the current state.
func (c *AppController) Snapshot() StateSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := StateSnapshot{
		Screen:       c.screen,
		HistoryCount: len(c.history),
	}
	if c.current != nil {
		snapshot.CurrentRecipe = cloneRecipe(c.current)
	}
	if c.lastErr != nil {
		category := c.lastErr.Category
		snapshot.LastError = &category
	}
	return snapshot
}

// History returns a copy of the history, newest first.
func (c *AppController) History() []*domain.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()

	history := make([]*domain.Recipe, len(c.history))
	for i, recipe := range c.history {
		history[i] = cloneRecipe(recipe)
	}
	return history
}

// cloneRecipe returns a value copy of a stored recipe. The controller
// only ever hands out copies: the enrichment worker writes ImageData on
// the stored entry under the mutex, and a shared pointer would let a
// caller read that field unsynchronized (e.g. while marshaling a
// response). Slice fields stay shared; they are never written after
// creation.
func cloneRecipe(recipe *domain.Recipe) *domain.Recipe {
	clone := *recipe
	return &clone
}

// Start transitions Landing -> Idle.
func (c *AppController) Start() error {
	return c.transition("start", map[Screen]Screen{
		ScreenLanding: ScreenIdle,
	})
}

// ShowAbout transitions Landing -> About.
func (c *AppController) ShowAbout() error {
	return c.transition("about", map[Screen]Screen{
		ScreenLanding: ScreenAbout,
	})
}

// ShowCookbook transitions Landing -> Cookbook.
func (c *AppController) ShowCookbook() error {
	return c.transition("cookbook", map[Screen]Screen{
		ScreenLanding: ScreenCookbook,
	})
}

// Back transitions About/Cookbook -> Landing.
func (c *AppController) Back() error {
	return c.transition("back", map[Screen]Screen{
		ScreenAbout:    ScreenLanding,
		ScreenCookbook: ScreenLanding,
	})
}

// BeginRecording transitions Idle -> Recording.
func (c *AppController) BeginRecording() error {
	return c.transition("record", map[Screen]Screen{
		ScreenIdle: ScreenRecording,
	})
}

// Reset transitions RecipeView/ErrorState -> Idle, clearing the current
// recipe and error. This is the only user-visible failure remedy.
func (c *AppController) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen != ScreenRecipeView && c.screen != ScreenError {
		return fmt.Errorf("%w: reset is not valid from %s", ErrInvalidTransition, c.screen)
	}

	c.screen = ScreenIdle
	c.current = nil
	c.lastErr = nil
	return nil
}

// transition applies a trigger using the given from->to table.
func (c *AppController) transition(trigger string, table map[Screen]Screen) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	to, ok := table[c.screen]
	if !ok {
		return fmt.Errorf("%w: %s is not valid from %s", ErrInvalidTransition, trigger, c.screen)
	}

	c.logger.Debug("screen transition", "trigger", trigger, "from", c.screen, "to", to)
	c.screen = to
	return nil
}

// SubmitCapture runs a capture submission: Idle/Recording ->
// Processing -> RecipeView or ErrorState. On success the recipe is
// stored as current, prepended to history, and persisted; on failure
// the error is classified and history is left untouched.
func (c *AppController) SubmitCapture(ctx context.Context, capture domain.CaptureData) (*domain.Recipe, error) {
	return c.generate(ctx, capture, ScreenIdle, ScreenRecording)
}

// SubmitText runs a text-only submission from the cookbook screen.
func (c *AppController) SubmitText(ctx context.Context, prompt string) (*domain.Recipe, error) {
	capture := domain.CaptureData{TextPrompt: prompt}
	return c.generate(ctx, capture, ScreenCookbook)
}

// generate performs the Processing transition for a capture. The mutex
// is released while the gateway call is in flight; the Processing
// screen itself is what rejects concurrent submissions.
func (c *AppController) generate(
	ctx context.Context,
	capture domain.CaptureData,
	validFrom ...Screen,
) (*domain.Recipe, error) {
	if err := capture.Validate(); err != nil {
		return nil, err
	}

	if err := c.enterProcessing(validFrom); err != nil {
		return nil, err
	}

	recipe, err := c.generator.GenerateRecipe(ctx, capture)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		classified := Classify(err)
		c.screen = ScreenError
		c.lastErr = classified
		c.current = nil
		c.logger.ErrorContext(ctx, "generation failed",
			"category", classified.Category.Code,
			"error", err)
		return nil, classified
	}

	c.screen = ScreenRecipeView
	c.current = recipe
	c.lastErr = nil
	c.history = append([]*domain.Recipe{recipe}, c.history...)

	if err := c.historyStore.Save(ctx, c.history); err != nil {
		// The recipe is still served from memory; only durability
		// suffered. Surfacing this as a generation failure would
		// discard a perfectly good recipe.
		c.logger.ErrorContext(ctx, "failed to persist history", "error", err)
	}

	c.emitEnrichment(ctx, recipe)

	c.logger.InfoContext(ctx, "recipe stored",
		"recipe_id", recipe.ID.String(),
		"history_size", len(c.history))

	return cloneRecipe(recipe), nil
}

// enterProcessing validates the submission screen and flips to
// Processing, enforcing the single in-flight generation.
func (c *AppController) enterProcessing(validFrom []Screen) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen == ScreenProcessing {
		return ErrGenerationInFlight
	}

	for _, screen := range validFrom {
		if c.screen == screen {
			c.screen = ScreenProcessing
			return nil
		}
	}

	return fmt.Errorf("%w: submission is not valid from %s", ErrInvalidTransition, c.screen)
}

// emitEnrichment publishes an image enrichment request for the recipe.
// Best effort; failures are logged. Callers hold the mutex.
func (c *AppController) emitEnrichment(ctx context.Context, recipe *domain.Recipe) {
	if c.emitter == nil {
		return
	}

	event, err := events.NewTaskRequestEvent(task.TaskTypeImageEnrichment, task.ImageEnrichmentPayload{
		RecipeID:    recipe.ID.String(),
		Title:       recipe.Title,
		Description: recipe.Description,
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to build enrichment event", "error", err)
		return
	}

	if err := c.emitter.EmitEvent(ctx, event); err != nil {
		c.logger.ErrorContext(ctx, "failed to emit enrichment event", "error", err)
	}
}

// SelectRecipe sets the current recipe from a history entry and shows
// it: Cookbook -> RecipeView. Selection never mutates history, so
// selecting the same entry twice yields the identical recipe.
func (c *AppController) SelectRecipe(id uuid.UUID) (*domain.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen != ScreenCookbook {
		return nil, fmt.Errorf("%w: selection is not valid from %s", ErrInvalidTransition, c.screen)
	}

	for _, recipe := range c.history {
		if recipe.ID == id {
			c.screen = ScreenRecipeView
			c.current = recipe
			c.lastErr = nil
			return cloneRecipe(recipe), nil
		}
	}

	return nil, ErrRecipeNotFound
}

// AttachImage implements task.ImageAttacher: it stores a synthesized
// dish image on the history entry with the given ID and persists the
// updated history.
func (c *AppController) AttachImage(ctx context.Context, recipeID uuid.UUID, imageData string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, recipe := range c.history {
		if recipe.ID == recipeID {
			recipe.ImageData = imageData
			if err := c.historyStore.Save(ctx, c.history); err != nil {
				return fmt.Errorf("failed to persist enriched history: %w", err)
			}
			return nil
		}
	}

	return ErrRecipeNotFound
}
