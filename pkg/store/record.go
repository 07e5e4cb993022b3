package store

import (
	"encoding/json"
	"log/slog"

	"tableflip.dev/notas/pkg/note"
)

// record is the persisted layout: {"notes": [...]}.
type record struct {
	Notes []*note.Note `json:"notes"`
}

func encodeRecord(notes []*note.Note) ([]byte, error) {
	r := record{Notes: make([]*note.Note, 0, len(notes))}
	for _, n := range notes {
		if n == nil {
			continue
		}
		r.Notes = append(r.Notes, n)
	}
	return json.Marshal(r)
}

// decodeRecord never fails: a malformed record reads as an empty collection.
func decodeRecord(data []byte, logger *slog.Logger) []*note.Note {
	if len(data) == 0 {
		return []*note.Note{}
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		logger.Warn("store: malformed notes record, treating as empty", "error", err)
		return []*note.Note{}
	}
	out := make([]*note.Note, 0, len(r.Notes))
	for _, n := range r.Notes {
		if n == nil {
			continue
		}
		if n.Todos == nil {
			n.Todos = []note.Todo{}
		}
		out = append(out, n)
	}
	return out
}
