// Package edit provides the runner logic for replacing a note's text.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/printers"
	"tableflip.dev/notas/pkg/store"
)

// Edit replaces the content of the note with ID.
type Edit struct {
	ID          string
	Message     string
	HTML        bool // store Message as given instead of converting plain text
	Persistence store.Persistence
	Out         io.Writer
}

// Do writes the new content and prints the note.
func (n *Edit) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not edit, no persistence")
	}
	content := n.Message
	if !n.HTML {
		content = note.FromText(n.Message)
	}

	found, err := store.UpdateNote(ctx, n.Persistence, n.ID, store.Patch{Content: &content})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("note %q not found", n.ID)
	}

	notes, err := n.Persistence.GetNotes(ctx)
	if err != nil {
		return err
	}
	if idx := note.Index(notes, n.ID); idx >= 0 {
		pp := printers.PrettyPrint{Out: n.Out}
		pp.NewLine()
		pp.Note(notes[idx])
	}
	return nil
}
