// Package mcp provides the Model Context Protocol server integration for notas.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/store"
)

// Service coordinates persistence-backed operations that are shared by the MCP server.
type Service struct {
	Persistence store.Persistence

	// Writes are read-modify-write of the whole collection; mu keeps this
	// server's own tool calls from losing each other's updates.
	mu sync.Mutex
}

// ErrNoteNotFound is returned when a note cannot be located in persistence.
var ErrNoteNotFound = errors.New("note not found")

// ErrTodoNotFound is returned when a todo cannot be located on its note.
var ErrTodoNotFound = errors.New("todo not found")

// NoteSummary describes a note for listings.
type NoteSummary struct {
	ID          string `json:"id"`
	Preview     string `json:"preview"`
	TodoCount   int    `json:"todoCount"`
	OpenCount   int    `json:"openCount"`
	Created     string `json:"created"`
	LastUpdated string `json:"lastUpdated"`
}

// NoteDTO is a transport-friendly projection of a note.
type NoteDTO struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	Text        string      `json:"text"`
	Todos       []note.Todo `json:"todos"`
	CreatedAt   int64       `json:"createdAt"`
	UpdatedAt   int64       `json:"updatedAt"`
	Created     string      `json:"created"`
	LastUpdated string      `json:"lastUpdated"`
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence) *Service {
	return &Service{Persistence: p}
}

// ListNotes returns summaries for every note, newest first.
func (s *Service) ListNotes(ctx context.Context) ([]NoteSummary, error) {
	notes, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]NoteSummary, 0, len(notes))
	for _, n := range notes {
		summaries = append(summaries, toSummary(n))
	}
	return summaries, nil
}

// NoteByID locates a note by id and returns the DTO representation.
func (s *Service) NoteByID(ctx context.Context, id string) (*NoteDTO, error) {
	n, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(n)
	return &dto, nil
}

// CreateNote stores a new note holding text and puts it first.
func (s *Service) CreateNote(ctx context.Context, text string) (*NoteDTO, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := note.New(time.Now())
	n.Content = note.FromText(text)
	if err := store.AddNote(ctx, s.Persistence, n); err != nil {
		return nil, err
	}
	dto := toDTO(n)
	return &dto, nil
}

// UpdateContent replaces the text of a note.
func (s *Service) UpdateContent(ctx context.Context, id, text string) (*NoteDTO, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	content := note.FromText(text)
	found, err := store.UpdateNote(ctx, s.Persistence, id, store.Patch{Content: &content})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return s.NoteByID(ctx, id)
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return store.DeleteNote(ctx, s.Persistence, id)
}

// AddTodo appends a todo to a note.
func (s *Service) AddTodo(ctx context.Context, noteID, text string) (*NoteDTO, error) {
	todo, err := note.NewTodo(text)
	if err != nil {
		return nil, err
	}
	return s.updateTodos(ctx, noteID, func(todos []note.Todo) ([]note.Todo, error) {
		return append(todos, todo), nil
	})
}

// CaptureTodo puts a captured selection first on a note.
func (s *Service) CaptureTodo(ctx context.Context, noteID string, c note.Capture) (*NoteDTO, error) {
	todo, err := note.NewCapturedTodo(c)
	if err != nil {
		return nil, err
	}
	return s.updateTodos(ctx, noteID, func(todos []note.Todo) ([]note.Todo, error) {
		return append([]note.Todo{todo}, todos...), nil
	})
}

// ToggleTodo flips the completion of a todo.
func (s *Service) ToggleTodo(ctx context.Context, noteID, todoID string) (*NoteDTO, error) {
	return s.updateTodos(ctx, noteID, func(todos []note.Todo) ([]note.Todo, error) {
		for i := range todos {
			if todos[i].ID == todoID {
				todos[i].Toggle()
				return todos, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
	})
}

// DeleteTodo removes a todo.
func (s *Service) DeleteTodo(ctx context.Context, noteID, todoID string) (*NoteDTO, error) {
	return s.updateTodos(ctx, noteID, func(todos []note.Todo) ([]note.Todo, error) {
		for i := range todos {
			if todos[i].ID == todoID {
				return append(todos[:i], todos[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
	})
}

// SearchNotes performs a case-insensitive substring match across note text
// and todo text.
func (s *Service) SearchNotes(ctx context.Context, query string, limit int) ([]NoteSummary, error) {
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return []NoteSummary{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	notes, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]NoteSummary, 0, limit)
	for _, n := range notes {
		if len(results) >= limit {
			break
		}
		if matches(n, q) {
			results = append(results, toSummary(n))
		}
	}
	return results, nil
}

func matches(n *note.Note, q string) bool {
	if strings.Contains(strings.ToLower(note.PlainText(n.Content)), q) {
		return true
	}
	for _, t := range n.Todos {
		if strings.Contains(strings.ToLower(t.Text), q) {
			return true
		}
	}
	return false
}

func (s *Service) updateTodos(ctx context.Context, noteID string, fn func([]note.Todo) ([]note.Todo, error)) (*NoteDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.find(ctx, noteID)
	if err != nil {
		return nil, err
	}
	todos, err := fn(append([]note.Todo{}, n.Todos...))
	if err != nil {
		return nil, err
	}
	if _, err := store.UpdateNote(ctx, s.Persistence, noteID, store.Patch{Todos: todos}); err != nil {
		return nil, err
	}
	return s.NoteByID(ctx, noteID)
}

func (s *Service) all(ctx context.Context) ([]*note.Note, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	return s.Persistence.GetNotes(ctx)
}

func (s *Service) find(ctx context.Context, id string) (*note.Note, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}
	notes, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	idx := note.Index(notes, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return notes[idx], nil
}

func toSummary(n *note.Note) NoteSummary {
	return NoteSummary{
		ID:          n.ID,
		Preview:     n.Preview(note.PreviewWidth),
		TodoCount:   len(n.Todos),
		OpenCount:   n.OpenCount(),
		Created:     note.FormatMillis(n.CreatedAt),
		LastUpdated: note.FormatMillis(n.UpdatedAt),
	}
}

func toDTO(n *note.Note) NoteDTO {
	todos := n.Todos
	if todos == nil {
		todos = []note.Todo{}
	}
	return NoteDTO{
		ID:          n.ID,
		Content:     n.Content,
		Text:        note.PlainText(n.Content),
		Todos:       todos,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
		Created:     note.FormatMillis(n.CreatedAt),
		LastUpdated: note.FormatMillis(n.UpdatedAt),
	}
}
