// Package controller mediates every mutation made in the overlay: it keeps
// the known notes collection, the active note and its todos, and writes the
// whole collection back after each user action.
package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/notas/pkg/debounce"
	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/store"
)

// DefaultDebounce is the quiet period before a content edit is written.
const DefaultDebounce = 500 * time.Millisecond

// ErrClosed is returned by operations on a closed Controller.
var ErrClosed = errors.New("controller: closed")

// Options configure a Controller. Zero values pick the defaults.
type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
	// Seed is a capture to add to the active note once Load finishes.
	Seed *note.Capture
	Now  func() time.Time
}

// Controller holds the overlay's view of the notes collection. It is safe
// for concurrent use; operations run one at a time, each including its
// write.
type Controller struct {
	p      store.Persistence
	logger *slog.Logger
	now    func() time.Time
	edits  *debounce.Debouncer

	mu        sync.Mutex
	notes     []*note.Note
	current   *note.Note
	seed      *note.Capture
	pendingID string
	editGen   uint64
	closed    bool
}

// New returns a Controller writing through p.
func New(p store.Persistence, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := &Controller{
		p:      p,
		logger: opts.Logger,
		now:    opts.Now,
		edits:  debounce.New(opts.Debounce),
		notes:  []*note.Note{},
	}
	if opts.Seed != nil {
		seed := *opts.Seed
		c.seed = &seed
	}
	return c
}

// Load reads the collection and selects its first note, creating one when
// the collection is empty. A read failure is logged and treated as empty.
// A seed capture given in Options is added afterwards, once.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.flushLocked(ctx)

	notes, err := c.p.GetNotes(ctx)
	if err != nil {
		c.logger.Warn("controller: load failed, starting empty", "error", err)
		notes = nil
	}
	c.notes = note.CloneAll(notes)
	c.current = nil

	if len(c.notes) > 0 {
		c.current = c.notes[0]
	} else if err := c.createLocked(ctx); err != nil {
		return err
	}

	if c.seed != nil && c.current != nil {
		seed := *c.seed
		c.seed = nil
		return c.captureLocked(ctx, seed)
	}
	return nil
}

// CreateNewNote prepends an empty note, makes it active and writes.
func (c *Controller) CreateNewNote(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.flushLocked(ctx)
	return c.createLocked(ctx)
}

// SelectNote makes the note with id active. It writes nothing besides a
// pending content edit of the previous note. Unknown ids are ignored.
func (c *Controller) SelectNote(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	idx := note.Index(c.notes, id)
	if idx < 0 {
		return nil
	}
	c.flushLocked(ctx)
	c.current = c.notes[idx]
	return nil
}

// EditContent replaces the active note's content and schedules a write.
// Edits within the debounce period collapse into one write of the latest
// content; UpdatedAt is stamped when that write happens.
func (c *Controller) EditContent(ctx context.Context, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.current == nil {
		return nil
	}
	if c.pendingID != "" && c.pendingID != c.current.ID {
		c.flushLocked(ctx)
	}
	c.current.Content = content
	c.pendingID = c.current.ID
	c.editGen++
	gen := c.editGen

	wctx := context.WithoutCancel(ctx)
	c.edits.Trigger(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// A timer that fired while an operation held the lock may find its
		// edit already written, or superseded by a newer one.
		if gen != c.editGen {
			return
		}
		if err := c.writeContentLocked(wctx); err != nil {
			c.logger.Warn("controller: content write failed", "error", err)
		}
	})
	return nil
}

// AddTodo appends a todo to the active note. Blank text, or no active note,
// is a silent no-op.
func (c *Controller) AddTodo(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.current == nil {
		return nil
	}
	todo, err := note.NewTodo(text)
	if err != nil {
		c.logger.Debug("controller: todo rejected", "error", err)
		return nil
	}
	c.current.Todos = append(c.current.Todos, todo)
	return c.touchAndSaveLocked(ctx)
}

// AddTodoFromCapture puts the captured text first in the active note's
// todos. Without an active note the capture is dropped.
func (c *Controller) AddTodoFromCapture(ctx context.Context, capture note.Capture) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.captureLocked(ctx, capture)
}

// ToggleTodo flips the completion of the todo with id in the active note.
func (c *Controller) ToggleTodo(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.current == nil {
		return nil
	}
	idx := c.current.TodoIndex(id)
	if idx < 0 {
		return nil
	}
	c.current.Todos[idx].Toggle()
	return c.touchAndSaveLocked(ctx)
}

// DeleteTodo removes the todo with id from the active note.
func (c *Controller) DeleteTodo(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.current == nil {
		return nil
	}
	idx := c.current.TodoIndex(id)
	if idx < 0 {
		return nil
	}
	c.current.Todos = append(c.current.Todos[:idx], c.current.Todos[idx+1:]...)
	return c.touchAndSaveLocked(ctx)
}

// DeleteNote removes the note with id. When it was active the first
// remaining note becomes active, or a new note is created if none remain.
func (c *Controller) DeleteNote(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	idx := note.Index(c.notes, id)
	if idx < 0 {
		return nil
	}
	if c.pendingID == id {
		c.edits.Cancel()
		c.pendingID = ""
		c.editGen++
	}
	c.flushLocked(ctx)

	wasActive := c.current != nil && c.current.ID == id
	c.notes = append(c.notes[:idx], c.notes[idx+1:]...)
	if wasActive {
		c.current = nil
		if len(c.notes) == 0 {
			return c.createLocked(ctx)
		}
		c.current = c.notes[0]
	}
	return c.saveLocked(ctx)
}

// Flush writes a pending content edit now. It reports whether there was one.
func (c *Controller) Flush(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edits.Cancel()
	if c.pendingID == "" {
		return false, nil
	}
	return true, c.writeContentLocked(ctx)
}

// Close flushes a pending edit and stops the controller.
func (c *Controller) Close(ctx context.Context) error {
	_, err := c.Flush(ctx)
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.edits.Stop()
	return err
}

// Notes returns a copy of the known collection.
func (c *Controller) Notes() []*note.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return note.CloneAll(c.notes)
}

// Current returns a copy of the active note, or nil.
func (c *Controller) Current() *note.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Clone()
}

// Todos returns the active note's todos, empty when nothing is active.
func (c *Controller) Todos() []note.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return []note.Todo{}
	}
	return append([]note.Todo{}, c.current.Todos...)
}

// Pending reports whether a content edit is waiting to be written.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingID != ""
}

func (c *Controller) createLocked(ctx context.Context) error {
	n := note.New(c.now())
	c.notes = append([]*note.Note{n}, c.notes...)
	c.current = n
	return c.saveLocked(ctx)
}

func (c *Controller) captureLocked(ctx context.Context, capture note.Capture) error {
	if c.current == nil {
		c.logger.Debug("controller: capture dropped, no active note")
		return nil
	}
	todo, err := note.NewCapturedTodo(capture)
	if err != nil {
		c.logger.Debug("controller: capture rejected", "error", err)
		return nil
	}
	c.current.Todos = append([]note.Todo{todo}, c.current.Todos...)
	return c.touchAndSaveLocked(ctx)
}

// flushLocked writes a pending content edit, if any, before a switch.
func (c *Controller) flushLocked(ctx context.Context) {
	c.edits.Cancel()
	if c.pendingID == "" {
		return
	}
	if err := c.writeContentLocked(ctx); err != nil {
		c.logger.Warn("controller: content write failed", "error", err)
	}
}

func (c *Controller) writeContentLocked(ctx context.Context) error {
	id := c.pendingID
	c.pendingID = ""
	c.editGen++
	if id == "" {
		return nil
	}
	if idx := note.Index(c.notes, id); idx >= 0 {
		c.notes[idx].Touch(c.now())
	}
	return c.saveLocked(ctx)
}

func (c *Controller) touchAndSaveLocked(ctx context.Context) error {
	c.current.Touch(c.now())
	return c.saveLocked(ctx)
}

func (c *Controller) saveLocked(ctx context.Context) error {
	if err := c.p.SaveNotes(ctx, note.CloneAll(c.notes)); err != nil {
		c.logger.Warn("controller: save failed", "error", err)
		return err
	}
	return nil
}
