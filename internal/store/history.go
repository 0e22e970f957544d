package store

import (
	"context"

	"github.com/musekitchen/muse-api/internal/domain"
)

// HistoryStore defines the interface for cookbook history persistence.
//
// History is an ordered list of previously generated recipes, newest
// first. It is loaded once at startup and rewritten in full after every
// successful generation; implementations must make Save atomic enough
// that a failed write never corrupts a previously persisted history.
type HistoryStore interface {
	// Load retrieves the full history, newest first.
	// A missing or corrupt backing store yields an empty history and no
	// error; corruption is logged, not propagated.
	Load(ctx context.Context) ([]*domain.Recipe, error)

	// Save persists the full history, replacing whatever was stored.
	// The slice order (newest first) is preserved.
	Save(ctx context.Context, recipes []*domain.Recipe) error
}
