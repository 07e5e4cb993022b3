package note

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewNote(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	n := New(now)
	if n.ID == "" {
		t.Fatal("expected an id")
	}
	if n.Content != EmptyContent {
		t.Fatalf("expected empty document, got %q", n.Content)
	}
	if n.CreatedAt != 1700000000123 || n.UpdatedAt != 1700000000123 {
		t.Fatalf("unexpected timestamps %d/%d", n.CreatedAt, n.UpdatedAt)
	}
	if n.Todos == nil || len(n.Todos) != 0 {
		t.Fatalf("expected empty, non-nil todos, got %#v", n.Todos)
	}
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d ids", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestNewTodoRejectsBlankText(t *testing.T) {
	tests := []struct {
		name string
		text string
		ok   bool
	}{
		{name: "text", text: "buy milk", ok: true},
		{name: "padded", text: "  call bob ", ok: true},
		{name: "empty", text: ""},
		{name: "spaces", text: "   "},
		{name: "tabs and newlines", text: "\t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo, err := NewTodo(tt.text)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if todo.Text != tt.text || todo.Completed {
					t.Fatalf("unexpected todo %#v", todo)
				}
				return
			}
			if err != ErrEmptyText {
				t.Fatalf("expected ErrEmptyText, got %v", err)
			}
		})
	}
}

func TestCapturedTodoKeepsProvenance(t *testing.T) {
	todo, err := NewCapturedTodo(Capture{Text: "quote", PageURL: "https://example.com", PageTitle: "Example"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todo.PageURL != "https://example.com" || todo.PageTitle != "Example" {
		t.Fatalf("provenance lost: %#v", todo)
	}
	if todo.Source() != "Example" {
		t.Fatalf("expected title as source, got %q", todo.Source())
	}
	todo.PageTitle = ""
	if todo.Source() != "Source" {
		t.Fatalf("expected fallback source label, got %q", todo.Source())
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	todo := Todo{ID: "1", Text: "x"}
	todo.Toggle()
	if !todo.Completed {
		t.Fatal("expected completed after first toggle")
	}
	todo.Toggle()
	if todo.Completed {
		t.Fatal("expected open after second toggle")
	}
}

func TestCloneIsDeep(t *testing.T) {
	n := &Note{ID: "a", Todos: []Todo{{ID: "t1", Text: "one"}}}
	cp := n.Clone()
	cp.Todos[0].Text = "changed"
	cp.Content = "other"
	if n.Todos[0].Text != "one" || n.Content != "" {
		t.Fatalf("clone shares state with original: %#v", n)
	}
}

func TestJSONFieldNames(t *testing.T) {
	n := Note{
		ID:        "n1",
		Content:   "hi",
		Todos:     []Todo{{ID: "t1", Text: "x", PageURL: "u", PageTitle: "p"}, {ID: "t2", Text: "y"}},
		CreatedAt: 1,
		UpdatedAt: 2,
	}
	b, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"n1","content":"hi","todos":[{"id":"t1","text":"x","completed":false,"pageUrl":"u","pageTitle":"p"},{"id":"t2","text":"y","completed":false}],"createdAt":1,"updatedAt":2}`
	if string(b) != want {
		t.Fatalf("unexpected encoding\n got: %s\nwant: %s", b, want)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{content: EmptyContent, want: "Empty note"},
		{content: "", want: "Empty note"},
		{content: "<p>Hello <strong>world</strong></p>", want: "Hello world"},
		{content: "<p>Fish &amp; chips</p>", want: "Fish & chips"},
		{content: "<p>abcdefghijklmnopqrstuvwxyz0123456789</p>", want: "abcdefghijklmnopqrstuvwxyz0123"},
	}
	for _, tt := range tests {
		n := &Note{Content: tt.content}
		if got := n.Preview(PreviewWidth); got != tt.want {
			t.Errorf("Preview(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "", want: EmptyContent},
		{name: "blank", text: " \n\n ", want: EmptyContent},
		{name: "one paragraph", text: "hello", want: "<p>hello</p>"},
		{name: "escaped", text: "a < b", want: "<p>a &lt; b</p>"},
		{name: "two paragraphs", text: "one\n\ntwo", want: "<p>one</p><p>two</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromText(tt.text); got != tt.want {
				t.Fatalf("FromText(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if got := PlainText(FromText(tt.text)); tt.want != EmptyContent && got == "" {
				t.Fatalf("round trip lost text for %q", tt.text)
			}
		})
	}
}
