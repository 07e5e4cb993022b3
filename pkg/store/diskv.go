package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/notas/pkg/note"
)

const tempDirName = ".tmp"

type diskvPersistence struct {
	d        *diskv.Diskv
	basePath string
	logger   *slog.Logger
}

func newDiskv(basePath string, logger *slog.Logger) *diskvPersistence {
	return &diskvPersistence{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			TempDir:  filepath.Join(basePath, tempDirName),
			// No read cache: the relay and the CLI write the same record from
			// different processes.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		logger:   logger,
	}
}

func (p *diskvPersistence) GetNotes(ctx context.Context) ([]*note.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	val, err := p.d.Read(RecordName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*note.Note{}, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", RecordName, err)
	}
	return decodeRecord(val, p.logger), nil
}

func (p *diskvPersistence) SaveNotes(ctx context.Context, notes []*note.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeRecord(notes)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", RecordName, err)
	}
	if err := os.MkdirAll(filepath.Join(p.basePath, tempDirName), 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	if err := p.d.Write(RecordName, data); err != nil {
		return fmt.Errorf("store: write %s: %w", RecordName, err)
	}
	return nil
}

func (p *diskvPersistence) recordPath() string {
	return filepath.Join(p.basePath, RecordName)
}
