// Package add provides the runner logic for creating notes.
package add

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/printers"
	"tableflip.dev/notas/pkg/store"
)

// Add creates a note from plain text and puts it first.
type Add struct {
	Message     string
	Todos       []string
	ShowID      bool
	Persistence store.Persistence
	Out         io.Writer

	// Created is set by Do.
	Created *note.Note
}

// Do stores the new note and prints it.
func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}

	created := note.New(time.Now())
	created.Content = note.FromText(n.Message)
	for _, text := range n.Todos {
		todo, err := note.NewTodo(text)
		if err != nil {
			return err
		}
		created.Todos = append(created.Todos, todo)
	}

	if err := store.AddNote(ctx, n.Persistence, created); err != nil {
		return err
	}
	n.Created = created

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.Note(created)
	return nil
}
