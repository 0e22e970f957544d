package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musekitchen/muse-api/internal/config"
	"github.com/musekitchen/muse-api/internal/events"
	"github.com/musekitchen/muse-api/internal/generation"
	"github.com/musekitchen/muse-api/internal/service"
	"github.com/musekitchen/muse-api/internal/task"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Port:     8080,
			LogLevel: "info",
		},
		Store: config.StoreConfig{
			HistoryPath: filepath.Join(t.TempDir(), "history.json"),
		},
		LLM: config.LLMConfig{
			GeminiAPIKey:   "test-key",
			RecipeModel:    "gemini-2.5-flash",
			ImageModel:     "gemini-2.5-flash-image-preview",
			SpeechModel:    "gemini-2.5-flash-preview-tts",
			VoiceName:      "Kore",
			ThinkingBudget: 2048,
		},
		Task: config.TaskConfig{
			QueueSize:   4,
			WorkerCount: 1,
		},
	}
}

func TestNewApplicationWithFileStore(t *testing.T) {
	cfg := testConfig(t)

	app, err := newApplication(context.Background(), cfg, slog.Default(), nil)
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.NotNil(t, app.controller)
	assert.NotNil(t, app.generator)
	assert.NotNil(t, app.historyStore)
	assert.Nil(t, app.taskRunner, "enrichment is off by default")

	app.cleanup()
}

func TestNewApplicationWithEnrichment(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.EnrichImages = true

	app, err := newApplication(context.Background(), cfg, slog.Default(), nil)
	require.NoError(t, err)

	assert.NotNil(t, app.taskRunner)
	assert.NotNil(t, app.eventEmitter)

	app.cleanup()
}

func TestNewApplicationRequiresAPIKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.GeminiAPIKey = ""

	_, err := newApplication(context.Background(), cfg, slog.Default(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrMissingCredential)
}

func TestRouterHealthAndState(t *testing.T) {
	cfg := testConfig(t)

	app, err := newApplication(context.Background(), cfg, slog.Default(), nil)
	require.NoError(t, err)
	defer app.cleanup()

	router := app.setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot service.StateSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, service.ScreenLanding, snapshot.Screen)
}

func TestEnrichmentHandlerIgnoresOtherEventTypes(t *testing.T) {
	handler := &enrichmentEventHandler{logger: slog.Default()}

	event, err := events.NewTaskRequestEvent("something_else", map[string]string{})
	require.NoError(t, err)

	assert.NoError(t, handler.HandleEvent(context.Background(), event),
		"unsupported events are skipped, not failed")
}

func TestEnrichmentHandlerRejectsBadPayload(t *testing.T) {
	cfg := testConfig(t)
	app, err := newApplication(context.Background(), cfg, slog.Default(), nil)
	require.NoError(t, err)
	defer app.cleanup()

	taskFactory, err := task.NewImageEnrichmentTaskFactory(app.generator, app.controller, slog.Default())
	require.NoError(t, err)

	runner := task.NewTaskRunner(task.DefaultTaskRunnerConfig(), slog.Default())
	handler := &enrichmentEventHandler{
		taskFactory: taskFactory,
		taskRunner:  runner,
		logger:      slog.Default(),
	}

	event, err := events.NewTaskRequestEvent(task.TaskTypeImageEnrichment, task.ImageEnrichmentPayload{
		RecipeID: "not-a-uuid",
		Title:    "Dish",
	})
	require.NoError(t, err)

	assert.Error(t, handler.HandleEvent(context.Background(), event))
}
