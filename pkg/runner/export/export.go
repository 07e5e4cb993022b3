// Package export provides the runner logic for dumping the collection.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/store"
)

// Formats accepted by Export.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export writes the collection in the persisted layout, {"notes": [...]}.
type Export struct {
	Format      string
	Persistence store.Persistence
	Out         io.Writer
}

type document struct {
	Notes []*note.Note `json:"notes" yaml:"notes"`
}

// Do writes the export.
func (n *Export) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not export, no persistence")
	}
	notes, err := n.Persistence.GetNotes(ctx)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	doc := document{Notes: notes}

	switch n.Format {
	case "", FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (expected json or yaml)", n.Format)
	}
}
