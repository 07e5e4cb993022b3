package relay

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/notas/pkg/message"
)

// Serve runs a native messaging host: it reads framed requests from in and
// writes one framed response per request to out. It returns nil when in
// reaches EOF. Cancellation is checked between frames.
func (r *Relay) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	dec := message.NewDecoder(in)
	enc := message.NewEncoder(out)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var req message.Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		r.logger().Debug("relay: request", "id", req.ID, "action", req.Action)
		if err := enc.Encode(r.Handle(ctx, req)); err != nil {
			return err
		}
	}
}
