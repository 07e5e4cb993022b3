// Package watch provides the runner logic for following changes made by
// other processes, such as the relay serving the browser.
package watch

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/notas/pkg/printers"
	"tableflip.dev/notas/pkg/store"
)

// Watch prints the collection, then prints it again after every change
// until ctx is done.
type Watch struct {
	ShowID      bool
	Persistence store.Persistence
	Out         io.Writer

	// OnEvent is called after each change is printed.
	OnEvent func(store.Event)
}

// Do follows the store.
func (n *Watch) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not watch, no persistence")
	}
	events, err := store.Watch(ctx, n.Persistence)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if err := n.print(ctx, &pp, "Notes"); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := n.print(ctx, &pp, "Notes "+ev.Type.String()+" at "+ev.At.Format("15:04:05")); err != nil {
				return err
			}
			if n.OnEvent != nil {
				n.OnEvent(ev)
			}
		}
	}
}

func (n *Watch) print(ctx context.Context, pp *printers.PrettyPrint, title string) error {
	notes, err := n.Persistence.GetNotes(ctx)
	if err != nil {
		return err
	}
	pp.NewLine()
	pp.TitleWithCount(title, len(notes), "note")
	pp.Notes(notes...)
	return nil
}
