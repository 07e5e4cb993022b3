package note

import (
	"errors"
	"strings"
)

// ErrEmptyText is returned when a todo would be created without text.
var ErrEmptyText = errors.New("note: todo text is empty")

// Todo is a task item, optionally linked back to the page it was captured from.
type Todo struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	PageURL   string `json:"pageUrl,omitempty" yaml:"pageUrl,omitempty"`
	PageTitle string `json:"pageTitle,omitempty" yaml:"pageTitle,omitempty"`
}

// Capture is a page selection turned into a todo seed.
type Capture struct {
	Text      string `json:"selectedText" yaml:"selectedText"`
	PageURL   string `json:"pageUrl,omitempty" yaml:"pageUrl,omitempty"`
	PageTitle string `json:"pageTitle,omitempty" yaml:"pageTitle,omitempty"`
}

// NewTodo creates an open todo. Whitespace-only text is rejected.
func NewTodo(text string) (Todo, error) {
	if strings.TrimSpace(text) == "" {
		return Todo{}, ErrEmptyText
	}
	return Todo{ID: GenerateID(), Text: text}, nil
}

// NewCapturedTodo creates an open todo that keeps the capture's provenance.
func NewCapturedTodo(c Capture) (Todo, error) {
	t, err := NewTodo(c.Text)
	if err != nil {
		return Todo{}, err
	}
	t.PageURL = c.PageURL
	t.PageTitle = c.PageTitle
	return t, nil
}

// Toggle flips Completed.
func (t *Todo) Toggle() {
	t.Completed = !t.Completed
}

// Source returns the label used when linking back to the captured page.
func (t Todo) Source() string {
	if t.PageURL == "" {
		return ""
	}
	if t.PageTitle != "" {
		return t.PageTitle
	}
	return "Source"
}
