package todo

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/store"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, mem *store.Memory, td Todo) error {
	t.Helper()
	td.Persistence = mem
	td.Out = &bytes.Buffer{}
	return td.Do(context.Background())
}

func TestTodoOps(t *testing.T) {
	mem := store.NewMemory(
		&note.Note{ID: "new", Todos: []note.Todo{{ID: "1", Text: "one"}}},
		&note.Note{ID: "old", Todos: []note.Todo{}},
	)
	ctx := context.Background()

	if err := run(t, mem, Todo{Op: OpAdd, Text: "two"}); err != nil {
		t.Fatal(err)
	}
	if err := run(t, mem, Todo{Op: OpCapture, Text: "quote", PageURL: "https://example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := run(t, mem, Todo{Op: OpToggle, TodoID: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := run(t, mem, Todo{Op: OpAdd, NoteID: "old", Text: "elsewhere"}); err != nil {
		t.Fatal(err)
	}

	notes, _ := mem.GetNotes(ctx)
	todos := notes[0].Todos
	if len(todos) != 3 || todos[0].Text != "quote" || todos[2].Text != "two" {
		t.Fatalf("unexpected todos %#v", todos)
	}
	if !todos[1].Completed {
		t.Fatalf("expected todo 1 toggled, got %#v", todos[1])
	}
	if len(notes[1].Todos) != 1 || notes[1].Todos[0].Text != "elsewhere" {
		t.Fatalf("expected todo on old note, got %#v", notes[1].Todos)
	}

	if err := run(t, mem, Todo{Op: OpRemove, TodoID: "1"}); err != nil {
		t.Fatal(err)
	}
	notes, _ = mem.GetNotes(ctx)
	if len(notes[0].Todos) != 2 {
		t.Fatalf("expected todo removed, got %#v", notes[0].Todos)
	}
}

func TestTodoErrors(t *testing.T) {
	tests := []struct {
		name string
		td   Todo
	}{
		{name: "blank text", td: Todo{Op: OpAdd, Text: "  "}},
		{name: "unknown note", td: Todo{Op: OpAdd, NoteID: "nope", Text: "x"}},
		{name: "unknown todo", td: Todo{Op: OpToggle, TodoID: "nope"}},
		{name: "unknown op", td: Todo{Op: "bump"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := store.NewMemory(&note.Note{ID: "a", Todos: []note.Todo{}})
			if err := run(t, mem, tt.td); err == nil {
				t.Fatal("expected an error")
			}
			if mem.Saves() != 0 {
				t.Fatalf("failed op wrote %d times", mem.Saves())
			}
		})
	}
}

func TestControllerUsesConfiguredDebounce(t *testing.T) {
	td := Todo{Debounce: 2 * time.Second}
	if got := td.controllerOptions().Debounce; got != 2*time.Second {
		t.Fatalf("expected the configured debounce, got %v", got)
	}
	if got := (&Todo{}).controllerOptions().Debounce; got != 0 {
		t.Fatalf("expected zero to defer to the controller default, got %v", got)
	}
}
