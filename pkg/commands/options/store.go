package options

import (
	"github.com/spf13/cobra"
)

// StoreOptions choose where a command reads and writes notes.
type StoreOptions struct {
	// Relay is a notas binary to spawn; when set, notes go through its
	// native messaging host instead of opening the store directly.
	Relay string
}

func AddStoreArgs(cmd *cobra.Command, o *StoreOptions) {
	cmd.PersistentFlags().StringVar(&o.Relay, "relay", "",
		"Reach the store through a relay host started from this binary.")
}
