package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	var ids []string

	cmd := &cobra.Command{
		Use:     "rm <note id>...",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete notes and their todos.",
		Example: `
notas rm 1700000000000-1
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a note id")
			}
			ids = args
			return nil
		},
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				r := remove.Remove{
					IDs:         ids,
					Persistence: s.Persistence,
					Out:         cmd.OutOrStdout(),
				}
				return r.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
