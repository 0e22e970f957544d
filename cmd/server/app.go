package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/musekitchen/muse-api/internal/config"
	"github.com/musekitchen/muse-api/internal/events"
	"github.com/musekitchen/muse-api/internal/platform/gemini"
	"github.com/musekitchen/muse-api/internal/platform/localstore"
	"github.com/musekitchen/muse-api/internal/platform/postgres"
	"github.com/musekitchen/muse-api/internal/service"
	"github.com/musekitchen/muse-api/internal/store"
	"github.com/musekitchen/muse-api/internal/task"
)

// enrichmentEventHandler bridges the event emitter and the task runner:
// it turns image enrichment request events into queued tasks.
type enrichmentEventHandler struct {
	taskFactory *task.ImageEnrichmentTaskFactory
	taskRunner  *task.TaskRunner
	logger      *slog.Logger
}

// HandleEvent creates and submits an enrichment task for the event.
func (h *enrichmentEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != task.TaskTypeImageEnrichment {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload task.ImageEnrichmentPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	enrichmentTask, err := h.taskFactory.CreateTask(payload)
	if err != nil {
		h.logger.Error("failed to create enrichment task",
			"error", err,
			"recipe_id", payload.RecipeID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create enrichment task: %w", err)
	}

	if err := h.taskRunner.Submit(enrichmentTask); err != nil {
		h.logger.Error("failed to submit enrichment task",
			"error", err,
			"task_id", enrichmentTask.ID(),
			"event_id", event.ID)
		return fmt.Errorf("failed to submit enrichment task: %w", err)
	}

	h.logger.Debug("enrichment task queued",
		"task_id", enrichmentTask.ID(),
		"recipe_id", payload.RecipeID)
	return nil
}

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	historyStore store.HistoryStore
	generator    *gemini.Generator
	controller   *service.AppController
	eventEmitter events.EventEmitter
	taskRunner   *task.TaskRunner
}

// newApplication creates a new application instance with all
// dependencies initialized. The db may be nil, in which case the
// cookbook history is persisted to the configured JSON file.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.generator, err = gemini.NewGenerator(ctx, logger.With("component", "gemini_gateway"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini gateway: %w", err)
	}
	logger.Info("Gemini gateway initialized",
		"recipe_model", cfg.LLM.RecipeModel,
		"image_model", cfg.LLM.ImageModel,
		"speech_model", cfg.LLM.SpeechModel)

	if db != nil {
		app.historyStore = postgres.NewPostgresHistoryStore(db, logger)
	} else {
		app.historyStore, err = localstore.NewFileHistoryStore(cfg.Store.HistoryPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize history store: %w", err)
		}
	}

	var emitter events.EventEmitter
	var inMemoryEmitter *events.InMemoryEventEmitter
	if cfg.LLM.EnrichImages {
		inMemoryEmitter = events.NewInMemoryEventEmitter(logger)
		emitter = inMemoryEmitter
	}
	app.eventEmitter = emitter

	app.controller, err = service.NewAppController(ctx, app.generator, app.historyStore, emitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create application controller: %w", err)
	}

	if cfg.LLM.EnrichImages {
		app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfig{
			QueueSize:   cfg.Task.QueueSize,
			WorkerCount: cfg.Task.WorkerCount,
		}, logger)
		app.taskRunner.Start()

		taskFactory, err := task.NewImageEnrichmentTaskFactory(app.generator, app.controller, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create enrichment task factory: %w", err)
		}

		inMemoryEmitter.RegisterHandler(&enrichmentEventHandler{
			taskFactory: taskFactory,
			taskRunner:  app.taskRunner,
			logger:      logger.With("component", "enrichment_event_handler"),
		})
		logger.Info("Image enrichment pipeline started",
			"queue_size", cfg.Task.QueueSize,
			"worker_count", cfg.Task.WorkerCount)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
