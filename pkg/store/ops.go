package store

import (
	"context"
	"time"

	"tableflip.dev/notas/pkg/note"
)

// The helpers below read the whole collection, change it in memory and write
// it back. They are not atomic: a writer that saves between another helper's
// read and write loses its update. Callers serialize writes.

// Patch lists the fields UpdateNote replaces. Nil fields are left alone.
type Patch struct {
	Content *string
	Todos   []note.Todo
}

// AddNote prepends n to the collection.
func AddNote(ctx context.Context, p Persistence, n *note.Note) error {
	notes, err := p.GetNotes(ctx)
	if err != nil {
		return err
	}
	notes = append([]*note.Note{n}, notes...)
	return p.SaveNotes(ctx, notes)
}

// UpdateNote applies patch to the note with id and refreshes its UpdatedAt.
// It reports whether the note was found; nothing is written otherwise.
func UpdateNote(ctx context.Context, p Persistence, id string, patch Patch) (bool, error) {
	notes, err := p.GetNotes(ctx)
	if err != nil {
		return false, err
	}
	idx := note.Index(notes, id)
	if idx < 0 {
		return false, nil
	}
	n := notes[idx]
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Todos != nil {
		n.Todos = append([]note.Todo{}, patch.Todos...)
	}
	n.Touch(time.Now())
	return true, p.SaveNotes(ctx, notes)
}

// DeleteNote removes the note with id.
func DeleteNote(ctx context.Context, p Persistence, id string) error {
	notes, err := p.GetNotes(ctx)
	if err != nil {
		return err
	}
	filtered := make([]*note.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			filtered = append(filtered, n)
		}
	}
	return p.SaveNotes(ctx, filtered)
}

// ClearAllNotes replaces the collection with an empty one.
func ClearAllNotes(ctx context.Context, p Persistence) error {
	return p.SaveNotes(ctx, []*note.Note{})
}
