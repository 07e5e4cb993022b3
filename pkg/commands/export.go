package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	format := export.FormatJSON

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every note in the stored layout.",
		Example: `
notas export > notes.json
notas export --format yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				e := export.Export{
					Format:      format,
					Persistence: s.Persistence,
					Out:         cmd.OutOrStdout(),
				}
				return e.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", export.FormatJSON, "Output format. One of 'json' or 'yaml'.")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{export.FormatJSON, export.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
	topLevel.AddCommand(cmd)
}
