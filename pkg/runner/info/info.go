// Package info provides the runner logic for describing where notes live.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/notas/pkg/config"
	"tableflip.dev/notas/pkg/store"
)

type Info struct {
	Settings    *config.Settings
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("NOTAS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "NOTAS_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "NOTAS_CONFIG_PATH env var not set")
	}

	if n.Settings == nil {
		var err error
		n.Settings, err = config.Load()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.backend: ", n.Settings.Backend())
	_, _ = fmt.Fprintln(out, "Config.path: ", n.Settings.BasePath())
	_, _ = fmt.Fprintln(out, "Config.cache: ", n.Settings.Cache)
	_, _ = fmt.Fprintln(out, "Config.timeout: ", n.Settings.Timeout)
	_, _ = fmt.Fprintln(out, "Config.debounce: ", n.Settings.Debounce)

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	notes, err := n.Persistence.GetNotes(ctx)
	if err != nil {
		return err
	}
	open := 0
	for _, nt := range notes {
		open += nt.OpenCount()
	}
	_, _ = fmt.Fprintf(out, "Notes: %d\nOpen todos: %d\n", len(notes), open)
	return nil
}
