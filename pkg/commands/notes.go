package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/commands/options"
	"tableflip.dev/notas/pkg/runner/list"
	"tableflip.dev/notas/pkg/runner/show"
	"tableflip.dev/notas/pkg/timeutil"
)

func addNotes(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var since string

	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"ls", "list"},
		Short:   "List notes, newest first.",
		Example: `
notas notes
notas notes --show-id
notas notes --since 3d
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			window, err := timeutil.ParseSince(since)
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), func(s *session) error {
				l := list.List{
					ShowID:      io.ShowID,
					Since:       window,
					Persistence: s.Persistence,
					Out:         cmd.OutOrStdout(),
				}
				return l.Do(cmd.Context())
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVar(&since, "since", "", "only notes updated within this window, like 3d or 1w2d")
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show [note id]",
		Short: "Print a note and its todos, the newest note by default.",
		Example: `
notas show
notas show 1700000000000-1 --show-id
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("show takes at most one note id")
			}
			if len(args) == 1 {
				io.ID = args[0]
			}
			return nil
		},
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				sh := show.Show{
					ID:          io.ID,
					ShowID:      io.ShowID,
					Persistence: s.Persistence,
					Out:         cmd.OutOrStdout(),
				}
				return sh.Do(cmd.Context())
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
