package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/commands/options"
	"tableflip.dev/notas/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	mo := &options.MessageOptions{}
	io := &options.IDOptions{}
	var raw bool

	cmd := &cobra.Command{
		Use:   "edit <note id> [text]",
		Short: "Replace the text of a note.",
		Example: `
notas edit 1700000000000-1 new text for the note
notas edit 1700000000000-1 --stdin < draft.txt
notas edit 1700000000000-1 --html "<p><b>bold</b></p>"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a note id")
			}
			io.ID = args[0]
			return mo.Resolve(args[1:], cmd.InOrStdin())
		},
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				e := edit.Edit{
					ID:          io.ID,
					Message:     mo.Message,
					HTML:        raw,
					Persistence: s.Persistence,
					Out:         cmd.OutOrStdout(),
				}
				return e.Do(cmd.Context())
			})
		},
	}

	options.AddStdinArg(cmd, mo)
	cmd.Flags().BoolVar(&raw, "html", false, "Store the text as editor markup without conversion.")
	topLevel.AddCommand(cmd)
}
