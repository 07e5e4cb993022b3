package store

import (
	"context"
	"sync"

	"tableflip.dev/notas/pkg/note"
)

// Memory is an in-process Persistence. Reads and writes deep-copy so callers
// never share state with the stored collection.
type Memory struct {
	mu    sync.Mutex
	notes []*note.Note
	saves int
	err   error
}

// NewMemory returns a Memory seeded with notes.
func NewMemory(notes ...*note.Note) *Memory {
	return &Memory{notes: note.CloneAll(notes)}
}

// GetNotes implements Persistence.
func (m *Memory) GetNotes(ctx context.Context) ([]*note.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return note.CloneAll(m.notes), nil
}

// SaveNotes implements Persistence.
func (m *Memory) SaveNotes(ctx context.Context, notes []*note.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.notes = note.CloneAll(notes)
	m.saves++
	return nil
}

// Saves reports how many successful writes Memory has accepted.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SetError makes every following call fail with err until cleared with nil.
func (m *Memory) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
