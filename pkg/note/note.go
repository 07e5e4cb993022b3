// Package note defines the note and todo records shared by every context
// that reads or writes the notes collection.
package note

import (
	"time"
)

// EmptyContent is the serialized form of an empty editor document.
const EmptyContent = "<p></p>"

// Note is a rich-text document with an ordered list of todos attached.
type Note struct {
	ID        string `json:"id" yaml:"id"`
	Content   string `json:"content" yaml:"content"`
	Todos     []Todo `json:"todos" yaml:"todos"`
	CreatedAt int64  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt int64  `json:"updatedAt" yaml:"updatedAt"`
}

// New allocates an empty note stamped with now.
func New(now time.Time) *Note {
	ms := Millis(now)
	return &Note{
		ID:        GenerateID(),
		Content:   EmptyContent,
		Todos:     []Todo{},
		CreatedAt: ms,
		UpdatedAt: ms,
	}
}

// Touch refreshes UpdatedAt. Call it on every content or todo mutation.
func (n *Note) Touch(now time.Time) {
	n.UpdatedAt = Millis(now)
}

// Created returns CreatedAt as a time.
func (n *Note) Created() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

// Updated returns UpdatedAt as a time.
func (n *Note) Updated() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

// TodoIndex returns the position of the todo with id, or -1.
func (n *Note) TodoIndex(id string) int {
	for i := range n.Todos {
		if n.Todos[i].ID == id {
			return i
		}
	}
	return -1
}

// OpenCount counts todos that are not completed.
func (n *Note) OpenCount() int {
	count := 0
	for _, t := range n.Todos {
		if !t.Completed {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of n.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	cp := *n
	cp.Todos = make([]Todo, len(n.Todos))
	copy(cp.Todos, n.Todos)
	return &cp
}

// CloneAll deep-copies a collection, dropping nil entries.
func CloneAll(notes []*Note) []*Note {
	out := make([]*Note, 0, len(notes))
	for _, n := range notes {
		if n == nil {
			continue
		}
		out = append(out, n.Clone())
	}
	return out
}

// Index returns the position of the note with id, or -1.
func Index(notes []*Note, id string) int {
	for i, n := range notes {
		if n != nil && n.ID == id {
			return i
		}
	}
	return -1
}

// Millis converts t to milliseconds since the epoch.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FormatMillis renders a millisecond timestamp as RFC3339 in UTC.
func FormatMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
