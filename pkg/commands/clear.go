package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/printers"
	"tableflip.dev/notas/pkg/prompt"
	"tableflip.dev/notas/pkg/runner/clearall"
)

func addClear(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every note.",
		Long: `Delete every note. On a terminal you are asked to confirm,
otherwise --yes is required.`,
		Example: `
notas clear
notas clear --yes
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				if in, ok := cmd.InOrStdin().(*os.File); ok && printers.Interactive(in) {
					ok, err := prompt.Confirm(in, cmd.OutOrStdout(), "Delete every note")
					if err != nil {
						return err
					}
					yes = ok
				}
			}
			return withSession(cmd.Context(), func(s *session) error {
				c := clearall.Clear{
					Confirm:     yes,
					Persistence: s.Persistence,
					Out:         cmd.OutOrStdout(),
				}
				return c.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deleting every note.")
	topLevel.AddCommand(cmd)
}
