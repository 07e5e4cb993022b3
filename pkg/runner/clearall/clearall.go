// Package clearall provides the runner logic for deleting every note.
package clearall

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/notas/pkg/store"
)

// Clear empties the collection. Confirm must be set.
type Clear struct {
	Confirm     bool
	Persistence store.Persistence
	Out         io.Writer
}

// Do clears the collection.
func (n *Clear) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not clear, no persistence")
	}
	if !n.Confirm {
		return errors.New("refusing to clear without confirmation, pass --yes")
	}
	notes, err := n.Persistence.GetNotes(ctx)
	if err != nil {
		return err
	}
	if err := store.ClearAllNotes(ctx, n.Persistence); err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "removed %d notes\n", len(notes))
	return nil
}
