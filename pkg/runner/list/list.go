// Package list provides the runner logic for listing notes.
package list

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/printers"
	"tableflip.dev/notas/pkg/store"
	"tableflip.dev/notas/pkg/timeutil"
)

// List prints every note, newest first.
type List struct {
	ShowID      bool
	Since       time.Duration // only notes updated within this window; zero lists all
	Persistence store.Persistence
	Out         io.Writer

	now func() time.Time
}

// Do renders the collection.
func (n *List) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not list, no persistence")
	}
	notes, err := n.Persistence.GetNotes(ctx)
	if err != nil {
		return err
	}

	title := "Notes"
	if n.Since > 0 {
		notes = n.recent(notes)
		title = "Notes updated in the last " + timeutil.Format(n.Since)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.TitleWithCount(title, len(notes), "note")
	pp.Notes(notes...)
	return nil
}

func (n *List) recent(notes []*note.Note) []*note.Note {
	now := time.Now
	if n.now != nil {
		now = n.now
	}
	cutoff := now().Add(-n.Since)
	kept := notes[:0:0]
	for _, nt := range notes {
		if !nt.Updated().Before(cutoff) {
			kept = append(kept, nt)
		}
	}
	return kept
}
