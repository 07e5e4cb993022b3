// Package relay is the privileged side of the notes protocol: it owns the
// storage and answers runtime requests and overlay posts on behalf of
// contexts that cannot reach it.
package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"tableflip.dev/notas/pkg/bridge"
	"tableflip.dev/notas/pkg/message"
	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/store"
)

// Relay serializes access to Persistence for every context it serves.
type Relay struct {
	Persistence store.Persistence
	Logger      *slog.Logger

	mu sync.Mutex
}

// New returns a Relay over p.
func New(p store.Persistence, logger *slog.Logger) *Relay {
	return &Relay{Persistence: p, Logger: logger}
}

func (r *Relay) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Handle answers a runtime request. Storage failures never escape: a failed
// read answers with an empty collection and a failed write with
// success=false.
func (r *Relay) Handle(ctx context.Context, req message.Request) message.Response {
	resp := message.Response{ID: req.ID}
	switch req.Action {
	case message.ActionGetNotes:
		resp.Notes = r.load(ctx)
	case message.ActionSaveNotes:
		if err := r.save(ctx, req.Data); err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.Success = true
	default:
		resp.Error = fmt.Sprintf("relay: unknown action %q", req.Action)
	}
	return resp
}

// HandlePost answers an overlay post. GET_NOTES produces a NOTES_DATA reply;
// SAVE_NOTES is persisted without a reply.
func (r *Relay) HandlePost(ctx context.Context, p message.Post) (message.Post, bool) {
	switch p.Type {
	case message.TypeGetNotes:
		return message.Post{Type: message.TypeNotesData, Notes: r.load(ctx)}, true
	case message.TypeSaveNotes:
		if err := r.save(ctx, p.Notes); err != nil {
			r.logger().Warn("relay: SAVE_NOTES dropped", "error", err)
		}
	}
	return message.Post{}, false
}

// Attach answers posts arriving on ch until the returned detach is called.
func (r *Relay) Attach(ch bridge.Channel) (detach func()) {
	return ch.Subscribe(func(p message.Post) {
		ctx := context.Background()
		reply, ok := r.HandlePost(ctx, p)
		if !ok {
			return
		}
		if err := ch.Post(ctx, reply); err != nil {
			r.logger().Warn("relay: reply not delivered", "type", reply.Type, "error", err)
		}
	})
}

func (r *Relay) load(ctx context.Context) []*note.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	notes, err := r.Persistence.GetNotes(ctx)
	if err != nil {
		r.logger().Warn("relay: storage read failed, answering empty", "error", err)
		return []*note.Note{}
	}
	if notes == nil {
		notes = []*note.Note{}
	}
	return notes
}

func (r *Relay) save(ctx context.Context, notes []*note.Note) error {
	if notes == nil {
		notes = []*note.Note{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Persistence.SaveNotes(ctx, notes); err != nil {
		r.logger().Warn("relay: storage write failed", "error", err)
		return err
	}
	r.logger().Debug("relay: saved notes", "count", len(notes))
	return nil
}
