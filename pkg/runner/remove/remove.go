// Package remove provides the runner logic for deleting notes.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/printers"
	"tableflip.dev/notas/pkg/store"
)

// Remove deletes the notes with IDs. Unknown ids fail before anything is
// deleted.
type Remove struct {
	IDs         []string
	Persistence store.Persistence
	Out         io.Writer
}

// Do deletes the notes and prints what is left.
func (n *Remove) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not remove, no persistence")
	}
	notes, err := n.Persistence.GetNotes(ctx)
	if err != nil {
		return err
	}
	for _, id := range n.IDs {
		if note.Index(notes, id) < 0 {
			return fmt.Errorf("note %q not found", id)
		}
	}
	for _, id := range n.IDs {
		if err := store.DeleteNote(ctx, n.Persistence, id); err != nil {
			return err
		}
	}

	left, err := n.Persistence.GetNotes(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.NewLine()
	pp.TitleWithCount("Notes", len(left), "note")
	pp.Notes(left...)
	return nil
}
