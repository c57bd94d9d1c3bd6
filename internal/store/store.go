package store

import (
	"context"
	"strings"

	"github.com/jonathan/resume-share/internal/types"
	"github.com/rs/zerolog"
)

// Store is the persistence boundary for saved resumes. Records keep their insertion order.
type Store interface {
	List(ctx context.Context) ([]types.SavedResume, error)
	// Get returns ErrNotFound when no record has the identifier.
	Get(ctx context.Context, id string) (*types.SavedResume, error)
	// Put inserts the record or replaces the record with the same identifier.
	Put(ctx context.Context, rec *types.SavedResume) error
	// Delete returns ErrNotFound when no record has the identifier.
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open selects a backend from the DSN:
//
//	memory            in-process map, lost on exit
//	sqlite:<path>     SQLite database file
//	<path>.db         SQLite database file
//	<path>.sqlite     SQLite database file
//	<path>            JSON file holding every record
func Open(ctx context.Context, dsn string, logger zerolog.Logger) (Store, error) {
	switch {
	case dsn == "memory":
		return NewMemoryStore(), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return OpenSQLite(ctx, strings.TrimPrefix(dsn, "sqlite:"))
	case strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return OpenSQLite(ctx, dsn)
	default:
		return NewFileStore(dsn, logger), nil
	}
}
