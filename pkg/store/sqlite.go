package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tableflip.dev/notas/pkg/note"
)

const sqliteFile = "notas.sqlite"

type sqlitePersistence struct {
	db     *sql.DB
	logger *slog.Logger
}

func openSQLite(basePath string, logger *slog.Logger) (*sqlitePersistence, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(basePath, sqliteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	ctx := context.Background()
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}
	const schema = `CREATE TABLE IF NOT EXISTS records (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &sqlitePersistence{db: db, logger: logger}, nil
}

func (p *sqlitePersistence) GetNotes(ctx context.Context) ([]*note.Note, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM records WHERE name = ?`, RecordName).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []*note.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", RecordName, err)
	}
	return decodeRecord([]byte(value), p.logger), nil
}

func (p *sqlitePersistence) SaveNotes(ctx context.Context, notes []*note.Note) error {
	data, err := encodeRecord(notes)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", RecordName, err)
	}
	_, err = p.db.ExecContext(ctx, `INSERT INTO records (name, value, updated_at_unixms) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at_unixms = excluded.updated_at_unixms`,
		RecordName, string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("store: write %s: %w", RecordName, err)
	}
	return nil
}

func (p *sqlitePersistence) Close() error {
	return p.db.Close()
}
