// Package host provides the runner logic for the native messaging relay.
package host

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"tableflip.dev/notas/pkg/relay"
	"tableflip.dev/notas/pkg/store"
)

// Host answers getNotes and saveNotes requests framed on In until In is
// closed. Responses go to Out; logs must not.
type Host struct {
	Persistence store.Persistence
	Logger      *slog.Logger
	In          io.Reader
	Out         io.Writer
}

// Do serves until EOF or cancellation.
func (h *Host) Do(ctx context.Context) error {
	if h.Persistence == nil {
		return errors.New("can not relay, no persistence")
	}
	if h.In == nil || h.Out == nil {
		return errors.New("can not relay, no stream")
	}
	h.logger().Info("relay: serving")
	err := relay.New(h.Persistence, h.Logger).Serve(ctx, h.In, h.Out)
	h.logger().Info("relay: stopped", "error", err)
	return err
}

func (h *Host) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return h.Logger
}
