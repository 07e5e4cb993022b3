// Package store is the storage facade for the notes collection. The whole
// collection lives in one record and every save replaces it.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tableflip.dev/notas/pkg/config"
	"tableflip.dev/notas/pkg/note"
)

// RecordName is the name of the single persisted record.
const RecordName = "notes"

// Backend names accepted by Load.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var (
	// ErrWatchUnsupported is returned by Watch for backends without change
	// notification.
	ErrWatchUnsupported = errors.New("store: backend does not support watch")
)

// Config selects and locates a backend.
type Config interface {
	BasePath() string
	Backend() string
}

// Persistence is the contract every backend, cache and bridge satisfies.
//
// GetNotes returns an empty slice when nothing has been persisted. A record
// that cannot be decoded is logged and reported as empty. SaveNotes replaces
// the whole collection.
type Persistence interface {
	GetNotes(ctx context.Context) ([]*note.Note, error)
	SaveNotes(ctx context.Context, notes []*note.Note) error
}

// Watcher is implemented by backends that can report changes made by other
// processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load opens the backend described by cfg. A nil cfg loads the user's
// configuration.
func Load(cfg Config, logger *slog.Logger) (Persistence, error) {
	if cfg == nil {
		settings, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = settings
	}
	if logger == nil {
		logger = discardLogger()
	}

	switch backend := strings.ToLower(strings.TrimSpace(cfg.Backend())); backend {
	case "", BackendDiskv:
		if cfg.BasePath() == "" {
			return nil, errors.New("store: base path unknown")
		}
		return newDiskv(cfg.BasePath(), logger), nil
	case BackendSQLite:
		if cfg.BasePath() == "" {
			return nil, errors.New("store: base path unknown")
		}
		return openSQLite(cfg.BasePath(), logger)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}

// Watch subscribes to p's change events if the backend supports them.
func Watch(ctx context.Context, p Persistence) (<-chan Event, error) {
	w, ok := p.(Watcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

// Close releases backend resources when p holds any.
func Close(p Persistence) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
