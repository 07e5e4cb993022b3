package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/notas/pkg/note"
)

func init() {
	color.NoColor = true
}

func TestNotes(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{ShowID: true, Out: &buf}
	pp.Notes(&note.Note{
		ID:      "n1",
		Content: "<p>Shopping <b>list</b></p>",
		Todos:   []note.Todo{{ID: "a", Text: "milk", Completed: true}, {ID: "b", Text: "eggs"}},
	})

	out := buf.String()
	for _, want := range []string{"n1", "Shopping list", "1/2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestNotesEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Notes()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestNote(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Note(&note.Note{
		ID:      "n1",
		Content: "<p>Read later</p>",
		Todos: []note.Todo{
			{ID: "a", Text: "article", PageURL: "https://example.com", PageTitle: "Example"},
			{ID: "b", Text: "done thing", Completed: true},
		},
	})

	out := buf.String()
	for _, want := range []string{"Read later", "Todos - 2 todos", "[ ] article (Example)", "[x] done thing"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "n1") {
		t.Errorf("id printed without ShowID:\n%s", out)
	}
}

func TestInteractive(t *testing.T) {
	if Interactive(&bytes.Buffer{}) {
		t.Fatal("a buffer is not a terminal")
	}
}
