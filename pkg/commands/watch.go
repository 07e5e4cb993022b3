package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/commands/options"
	"tableflip.dev/notas/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: options.Wrap80("Print the notes again whenever another process, such as the browser relay, changes them."),
		Example: `
notas watch
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(cmd.Context(), func(s *session) error {
				w := watch.Watch{
					ShowID:      io.ShowID,
					Persistence: s.Persistence,
					Out:         cmd.OutOrStdout(),
				}
				return w.Do(cmd.Context())
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
