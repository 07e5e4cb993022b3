package options

import (
	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of notes and todos.")
}

func AddNoteIDArg(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().StringVarP(&o.ID, "note", "n", "",
		"Id of the note to change, defaults to the newest note.")
}
