package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/platform/logger"
	"github.com/musekitchen/muse-api/internal/store"
)

// PostgresHistoryStore implements the store.HistoryStore interface
// using a PostgreSQL database as the storage backend. Each recipe is a
// JSONB row ordered by an explicit position column, newest first.
type PostgresHistoryStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure PostgresHistoryStore implements store.HistoryStore.
var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// NewPostgresHistoryStore creates a new PostgreSQL implementation of
// the HistoryStore interface. The connection should be initialized and
// managed by the caller. If logger is nil, a default logger is used.
func NewPostgresHistoryStore(db *sql.DB, log *slog.Logger) *PostgresHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresHistoryStore{
		db:     db,
		logger: log.With(slog.String("component", "history_store")),
	}
}

// Load implements store.HistoryStore.Load.
// Rows that fail to decode are skipped with a warning rather than
// failing the whole load.
func (s *PostgresHistoryStore) Load(ctx context.Context) ([]*domain.Recipe, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT content FROM history_recipes ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.WarnContext(ctx, "failed to close rows", "error", err)
		}
	}()

	recipes := []*domain.Recipe{}
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		var recipe domain.Recipe
		if err := json.Unmarshal(content, &recipe); err != nil {
			log.WarnContext(ctx, "skipping corrupt history row", "error", err)
			continue
		}
		recipes = append(recipes, &recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	log.DebugContext(ctx, "history loaded", "recipes", len(recipes))
	return recipes, nil
}

// Save implements store.HistoryStore.Save.
// The table is rewritten in full inside a single transaction, so a
// failed save leaves the previously persisted history untouched.
func (s *PostgresHistoryStore) Save(ctx context.Context, recipes []*domain.Recipe) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", store.ErrSaveFailed, err)
	}
	defer func() {
		// No-op once the transaction is committed.
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.WarnContext(ctx, "failed to roll back transaction", "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history_recipes`); err != nil {
		return fmt.Errorf("%w: failed to clear history: %v", store.ErrSaveFailed, err)
	}

	const insert = `
		INSERT INTO history_recipes (id, position, content, created_at)
		VALUES ($1, $2, $3, $4)`

	for position, recipe := range recipes {
		content, err := json.Marshal(recipe)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal recipe %s: %v",
				store.ErrSaveFailed, recipe.ID, err)
		}

		if _, err := tx.ExecContext(ctx, insert,
			recipe.ID, position, content, recipe.CreatedAt); err != nil {
			return fmt.Errorf("%w: failed to insert recipe %s: %v",
				store.ErrSaveFailed, recipe.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit history: %v", store.ErrSaveFailed, err)
	}

	log.DebugContext(ctx, "history saved", "recipes", len(recipes))
	return nil
}
