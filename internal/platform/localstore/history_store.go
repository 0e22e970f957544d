package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/platform/logger"
	"github.com/musekitchen/muse-api/internal/store"
)

// FileHistoryStore implements store.HistoryStore on top of a single
// JSON file holding the serialized recipe list, newest first.
type FileHistoryStore struct {
	path   string
	logger *slog.Logger
}

// Ensure FileHistoryStore implements store.HistoryStore.
var _ store.HistoryStore = (*FileHistoryStore)(nil)

// NewFileHistoryStore creates a file-backed history store at the given
// path. If logger is nil, a default logger is used. The file is created
// lazily on the first Save.
func NewFileHistoryStore(path string, log *slog.Logger) (*FileHistoryStore, error) {
	if path == "" {
		return nil, errors.New("history path cannot be empty")
	}

	if log == nil {
		log = slog.Default()
	}

	return &FileHistoryStore{
		path:   path,
		logger: log.With(slog.String("component", "history_store")),
	}, nil
}

// Load implements store.HistoryStore.Load.
//
// An absent file yields an empty history. A corrupt file is logged and
// likewise yields an empty history: losing the cookbook beats refusing
// to start.
func (s *FileHistoryStore) Load(ctx context.Context) ([]*domain.Recipe, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.DebugContext(ctx, "no history file yet", "path", s.path)
			return []*domain.Recipe{}, nil
		}
		return nil, fmt.Errorf("failed to read history file %s: %w", s.path, err)
	}

	var recipes []*domain.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		log.WarnContext(ctx, "history file is corrupt, starting with an empty history",
			"path", s.path,
			"error", err)
		return []*domain.Recipe{}, nil
	}

	log.DebugContext(ctx, "history loaded", "path", s.path, "recipes", len(recipes))
	return recipes, nil
}

// Save implements store.HistoryStore.Save.
//
// The history is written to a temporary file in the same directory and
// renamed into place, so a failed write leaves the previous history
// intact.
func (s *FileHistoryStore) Save(ctx context.Context, recipes []*domain.Recipe) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if recipes == nil {
		recipes = []*domain.Recipe{}
	}

	data, err := json.MarshalIndent(recipes, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal history: %v", store.ErrSaveFailed, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create history directory: %v", store.ErrSaveFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".muse_history_*.json")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", store.ErrSaveFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to write history: %v", store.ErrSaveFailed, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to close temp file: %v", store.ErrSaveFailed, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to replace history file: %v", store.ErrSaveFailed, err)
	}

	log.DebugContext(ctx, "history saved", "path", s.path, "recipes", len(recipes))
	return nil
}
