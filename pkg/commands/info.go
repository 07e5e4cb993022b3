package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where notes are stored.",
		Example: `
notas info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(cmd.Context(), func(s *session) error {
				i := info.Info{
					Settings:    s.Settings,
					Persistence: s.Persistence,
					Out:         cmd.OutOrStdout(),
				}
				return i.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
