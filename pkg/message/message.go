// Package message defines what the extension's contexts say to each other:
// runtime requests answered by the privileged relay, and posts exchanged
// between the overlay and the page.
package message

import (
	"tableflip.dev/notas/pkg/note"
)

// Action names a runtime request.
type Action string

const (
	// ActionGetNotes asks the relay for the persisted collection.
	ActionGetNotes Action = "getNotes"
	// ActionSaveNotes asks the relay to replace the persisted collection.
	ActionSaveNotes Action = "saveNotes"
	// ActionToggleOverlay tells a page to show or hide its overlay.
	ActionToggleOverlay Action = "toggleOverlay"
	// ActionAddSelectedText carries a page selection to capture.
	ActionAddSelectedText Action = "addSelectedText"
)

// Request is a runtime message. Only the fields of its Action are set.
type Request struct {
	ID     string       `json:"id,omitempty"`
	Action Action       `json:"action"`
	Data   []*note.Note `json:"data,omitempty"`

	SelectedText string `json:"selectedText,omitempty"`
	PageURL      string `json:"pageUrl,omitempty"`
	PageTitle    string `json:"pageTitle,omitempty"`
}

// Response answers a Request. Notes and Success are always on the wire so a
// reader never sees them undefined.
type Response struct {
	ID      string       `json:"id,omitempty"`
	Notes   []*note.Note `json:"notes"`
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
}

// CaptureRequest builds the addSelectedText request for c.
func CaptureRequest(c note.Capture) Request {
	return Request{
		Action:       ActionAddSelectedText,
		SelectedText: c.Text,
		PageURL:      c.PageURL,
		PageTitle:    c.PageTitle,
	}
}

// Capture extracts the capture payload of an addSelectedText request.
func (r Request) Capture() note.Capture {
	return note.Capture{Text: r.SelectedText, PageURL: r.PageURL, PageTitle: r.PageTitle}
}

// PostType names a cross-context post.
type PostType string

const (
	TypeGetNotes  PostType = "GET_NOTES"
	TypeNotesData PostType = "NOTES_DATA"
	TypeSaveNotes PostType = "SAVE_NOTES"
)

// Post is a message exchanged between the overlay and the page.
type Post struct {
	Type  PostType     `json:"type"`
	Notes []*note.Note `json:"notes,omitempty"`
}

// Clone deep-copies p, the way a structured clone crosses a context boundary.
func (p Post) Clone() Post {
	cp := Post{Type: p.Type}
	if p.Notes != nil {
		cp.Notes = note.CloneAll(p.Notes)
	}
	return cp
}
