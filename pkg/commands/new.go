package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/commands/options"
	"tableflip.dev/notas/pkg/runner/add"
)

func addNew(topLevel *cobra.Command) {
	mo := &options.MessageOptions{}
	io := &options.IDOptions{}
	var todos []string

	cmd := &cobra.Command{
		Use:     "new [text]",
		Aliases: []string{"add"},
		Short:   "Create a note. It becomes the newest note.",
		Example: `
notas new reading list
notas new meeting notes --todo "send minutes" --todo "book room"
pbpaste | notas new --stdin
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if !mo.Stdin && len(args) == 0 {
				// An empty note is allowed, like a fresh overlay.
				return nil
			}
			return mo.Resolve(args, cmd.InOrStdin())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				a := add.Add{
					Message:     mo.Message,
					Todos:       todos,
					ShowID:      io.ShowID,
					Persistence: s.Persistence,
					Out:         cmd.OutOrStdout(),
				}
				return a.Do(cmd.Context())
			})
		},
	}

	options.AddStdinArg(cmd, mo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringArrayVarP(&todos, "todo", "t", nil, "Add a todo to the new note. Repeatable.")
	topLevel.AddCommand(cmd)
}
