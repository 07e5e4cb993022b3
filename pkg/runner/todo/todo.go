// Package todo provides the runner logic for changing a note's todos. Every
// change goes through the controller so the CLI follows the same rules as
// the overlay.
package todo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tableflip.dev/notas/pkg/controller"
	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/printers"
	"tableflip.dev/notas/pkg/store"
)

// Op names a todo change.
type Op string

const (
	OpAdd     Op = "add"
	OpCapture Op = "capture"
	OpToggle  Op = "toggle"
	OpRemove  Op = "rm"
)

// Todo applies Op to the note with NoteID, or the newest note when NoteID
// is empty.
type Todo struct {
	Op     Op
	NoteID string

	// Text is the todo text for OpAdd and OpCapture.
	Text      string
	PageURL   string
	PageTitle string

	// TodoID selects the todo for OpToggle and OpRemove.
	TodoID string

	ShowID      bool
	Persistence store.Persistence
	// Debounce is the controller's content-edit quiet period; zero keeps
	// the controller default.
	Debounce time.Duration
	Logger   *slog.Logger
	Out      io.Writer
}

// Do applies the change and prints the note.
func (n *Todo) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not change todos, no persistence")
	}

	c := controller.New(n.Persistence, n.controllerOptions())
	defer func() { _ = c.Close(ctx) }()

	if err := c.Load(ctx); err != nil {
		return err
	}
	if n.NoteID != "" {
		if note.Index(c.Notes(), n.NoteID) < 0 {
			return fmt.Errorf("note %q not found", n.NoteID)
		}
		if err := c.SelectNote(ctx, n.NoteID); err != nil {
			return err
		}
	}

	if err := n.apply(ctx, c); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.Note(c.Current())
	return nil
}

func (n *Todo) controllerOptions() controller.Options {
	return controller.Options{Debounce: n.Debounce, Logger: n.Logger}
}

func (n *Todo) apply(ctx context.Context, c *controller.Controller) error {
	switch n.Op {
	case OpAdd, OpCapture:
		if _, err := note.NewTodo(n.Text); err != nil {
			return err
		}
		if n.Op == OpAdd {
			return c.AddTodo(ctx, n.Text)
		}
		return c.AddTodoFromCapture(ctx, note.Capture{Text: n.Text, PageURL: n.PageURL, PageTitle: n.PageTitle})
	case OpToggle, OpRemove:
		cur := c.Current()
		if cur == nil || cur.TodoIndex(n.TodoID) < 0 {
			return fmt.Errorf("todo %q not found", n.TodoID)
		}
		if n.Op == OpToggle {
			return c.ToggleTodo(ctx, n.TodoID)
		}
		return c.DeleteTodo(ctx, n.TodoID)
	default:
		return fmt.Errorf("unknown todo operation %q", n.Op)
	}
}
