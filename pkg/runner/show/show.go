// Package show provides the runner logic for printing one note.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/printers"
	"tableflip.dev/notas/pkg/store"
)

// Show prints a note with its todos. An empty ID shows the newest note.
type Show struct {
	ID          string
	ShowID      bool
	Persistence store.Persistence
	Out         io.Writer
}

// Do renders the note.
func (n *Show) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not show, no persistence")
	}
	notes, err := n.Persistence.GetNotes(ctx)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		return errors.New("no notes yet")
	}

	found := notes[0]
	if n.ID != "" {
		idx := note.Index(notes, n.ID)
		if idx < 0 {
			return fmt.Errorf("note %q not found", n.ID)
		}
		found = notes[idx]
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.Note(found)
	return nil
}
