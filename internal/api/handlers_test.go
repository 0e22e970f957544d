package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/generation"
	"github.com/musekitchen/muse-api/internal/service"
)

// stubGenerator implements generation.RecipeGenerator for handler tests.
type stubGenerator struct {
	recipe *domain.Recipe
	err    error
}

func (g *stubGenerator) GenerateRecipe(_ context.Context, capture domain.CaptureData) (*domain.Recipe, error) {
	if g.err != nil {
		return nil, g.err
	}
	recipe := *g.recipe
	recipe.Constraints = capture.Constraints
	return &recipe, nil
}

// stubHistoryStore implements store.HistoryStore in memory.
type stubHistoryStore struct {
	recipes []*domain.Recipe
}

func (s *stubHistoryStore) Load(context.Context) ([]*domain.Recipe, error) {
	if s.recipes == nil {
		return []*domain.Recipe{}, nil
	}
	return s.recipes, nil
}

func (s *stubHistoryStore) Save(_ context.Context, recipes []*domain.Recipe) error {
	s.recipes = recipes
	return nil
}

type stubImageSynthesizer struct {
	data string
	err  error
}

func (s *stubImageSynthesizer) GenerateDishImage(context.Context, string, string) (string, error) {
	return s.data, s.err
}

type stubSpeechSynthesizer struct {
	data string
	err  error
}

func (s *stubSpeechSynthesizer) GenerateSpeech(context.Context, string) (string, error) {
	return s.data, s.err
}

func testRecipe(t *testing.T, title string) *domain.Recipe {
	t.Helper()
	recipe, err := domain.NewRecipe(domain.Recipe{
		Title:            title,
		Description:      "desc",
		Difficulty:       domain.DifficultyEasy,
		IngredientsFound: []string{"eggs"},
		Steps:            []domain.Step{{Instruction: "cook"}},
	}, nil)
	require.NoError(t, err)
	return recipe
}

func testController(t *testing.T, gen generation.RecipeGenerator, hs *stubHistoryStore) *service.AppController {
	t.Helper()
	if hs == nil {
		hs = &stubHistoryStore{}
	}
	controller, err := service.NewAppController(context.Background(), gen, hs, nil, slog.Default())
	require.NoError(t, err)
	return controller
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestGetState(t *testing.T) {
	controller := testController(t, &stubGenerator{}, nil)
	handler := NewStateHandler(controller, validator.New(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	w := httptest.NewRecorder()
	handler.GetState(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var snapshot service.StateSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, service.ScreenLanding, snapshot.Screen)
	assert.Zero(t, snapshot.HistoryCount)
}

func TestNavigate(t *testing.T) {
	testCases := []struct {
		name       string
		action     string
		wantStatus int
		wantScreen service.Screen
	}{
		{"start from landing", "start", http.StatusOK, service.ScreenIdle},
		{"about from landing", "about", http.StatusOK, service.ScreenAbout},
		{"cookbook from landing", "cookbook", http.StatusOK, service.ScreenCookbook},
		{"back from landing is invalid", "back", http.StatusConflict, ""},
		{"reset from landing is invalid", "reset", http.StatusConflict, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			controller := testController(t, &stubGenerator{}, nil)
			handler := NewStateHandler(controller, validator.New(), slog.Default())

			w := postJSON(t, handler.Navigate, "/api/navigate", NavigateRequest{Action: tc.action})
			require.Equal(t, tc.wantStatus, w.Code)

			if tc.wantStatus == http.StatusOK {
				var snapshot service.StateSnapshot
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
				assert.Equal(t, tc.wantScreen, snapshot.Screen)
			}
		})
	}
}

func TestNavigateRejectsUnknownAction(t *testing.T) {
	controller := testController(t, &stubGenerator{}, nil)
	handler := NewStateHandler(controller, validator.New(), slog.Default())

	w := postJSON(t, handler.Navigate, "/api/navigate", NavigateRequest{Action: "fly"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNavigateRejectsMalformedBody(t *testing.T) {
	controller := testController(t, &stubGenerator{}, nil)
	handler := NewStateHandler(controller, validator.New(), slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/navigate", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	handler.Navigate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateFromCapture(t *testing.T) {
	gen := &stubGenerator{recipe: testRecipe(t, "Pan Roasted Things")}
	controller := testController(t, gen, nil)
	require.NoError(t, controller.Start())

	handler := NewGenerateHandler(controller, validator.New(), slog.Default())
	w := postJSON(t, handler.GenerateFromCapture, "/api/generate", GenerateRequest{
		Images:      []string{"aGVsbG8="},
		Constraints: []string{"vegetarian"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var recipe domain.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	assert.Equal(t, "Pan Roasted Things", recipe.Title)
	assert.Equal(t, []string{"vegetarian"}, recipe.Constraints)
}

func TestGenerateFromCaptureEmpty(t *testing.T) {
	controller := testController(t, &stubGenerator{}, nil)
	require.NoError(t, controller.Start())

	handler := NewGenerateHandler(controller, validator.New(), slog.Default())
	w := postJSON(t, handler.GenerateFromCapture, "/api/generate", GenerateRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// A classified failure must return the category body so the client can
// render the error screen directly.
func TestGenerateFromCaptureClassifiedError(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("%w: prompt feedback", generation.ErrContentBlocked)}
	controller := testController(t, gen, nil)
	require.NoError(t, controller.Start())

	handler := NewGenerateHandler(controller, validator.New(), slog.Default())
	w := postJSON(t, handler.GenerateFromCapture, "/api/generate", GenerateRequest{
		Images: []string{"aGVsbG8="},
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp GenerationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Inspiration Blocked", resp.Category.Title)
	assert.Equal(t, "blocked", resp.Category.Code)
	assert.NotContains(t, w.Body.String(), "prompt feedback",
		"raw provider detail must stay out of the response")
}

func TestGenerateFromText(t *testing.T) {
	gen := &stubGenerator{recipe: testRecipe(t, "Cookbook Dish")}
	controller := testController(t, gen, nil)
	require.NoError(t, controller.ShowCookbook())

	handler := NewGenerateHandler(controller, validator.New(), slog.Default())
	w := postJSON(t, handler.GenerateFromText, "/api/generate/text", TextGenerateRequest{
		Prompt: "something warming",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var recipe domain.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	assert.Equal(t, "Cookbook Dish", recipe.Title)
}

func TestGenerateFromTextMissingPrompt(t *testing.T) {
	controller := testController(t, &stubGenerator{}, nil)
	require.NoError(t, controller.ShowCookbook())

	handler := NewGenerateHandler(controller, validator.New(), slog.Default())
	w := postJSON(t, handler.GenerateFromText, "/api/generate/text", TextGenerateRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListHistory(t *testing.T) {
	stored := testRecipe(t, "Stored")
	hs := &stubHistoryStore{recipes: []*domain.Recipe{stored}}
	controller := testController(t, &stubGenerator{}, hs)

	handler := NewHistoryHandler(controller, slog.Default())
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	handler.ListHistory(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, stored.ID, resp.Recipes[0].ID)
}

func TestSelectRecipe(t *testing.T) {
	stored := testRecipe(t, "Stored")
	hs := &stubHistoryStore{recipes: []*domain.Recipe{stored}}
	controller := testController(t, &stubGenerator{}, hs)
	require.NoError(t, controller.ShowCookbook())

	handler := NewHistoryHandler(controller, slog.Default())

	router := chi.NewRouter()
	router.Post("/api/history/{id}/select", handler.SelectRecipe)

	req := httptest.NewRequest(http.MethodPost, "/api/history/"+stored.ID.String()+"/select", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var recipe domain.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	assert.Equal(t, stored.ID, recipe.ID)
}

func TestSelectRecipeBadID(t *testing.T) {
	controller := testController(t, &stubGenerator{}, nil)
	require.NoError(t, controller.ShowCookbook())

	handler := NewHistoryHandler(controller, slog.Default())

	router := chi.NewRouter()
	router.Post("/api/history/{id}/select", handler.SelectRecipe)

	req := httptest.NewRequest(http.MethodPost, "/api/history/not-a-uuid/select", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid recipe ID format")
}

func TestGenerateDishImage(t *testing.T) {
	handler := NewMediaHandler(
		&stubImageSynthesizer{data: "aW1hZ2U="},
		&stubSpeechSynthesizer{},
		validator.New(),
		slog.Default(),
	)

	w := postJSON(t, handler.GenerateDishImage, "/api/recipes/image", DishImageRequest{
		Title:       "Seared Salmon",
		Description: "with lemon butter",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp DishImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "aW1hZ2U=", resp.ImageData)
}

func TestGenerateDishImageNoData(t *testing.T) {
	handler := NewMediaHandler(
		&stubImageSynthesizer{err: generation.ErrNoImageData},
		&stubSpeechSynthesizer{},
		validator.New(),
		slog.Default(),
	)

	w := postJSON(t, handler.GenerateDishImage, "/api/recipes/image", DishImageRequest{
		Title: "Seared Salmon",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGenerateSpeech(t *testing.T) {
	handler := NewMediaHandler(
		&stubImageSynthesizer{},
		&stubSpeechSynthesizer{data: "YXVkaW8="},
		validator.New(),
		slog.Default(),
	)

	w := postJSON(t, handler.GenerateSpeech, "/api/speech", SpeechRequest{
		Text: "First, season the salmon.",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp SpeechResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "YXVkaW8=", resp.AudioData)
}

func TestGenerateSpeechMissingText(t *testing.T) {
	handler := NewMediaHandler(
		&stubImageSynthesizer{},
		&stubSpeechSynthesizer{},
		validator.New(),
		slog.Default(),
	)

	w := postJSON(t, handler.GenerateSpeech, "/api/speech", SpeechRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
