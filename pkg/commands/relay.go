package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/runner/host"
)

func addRelay(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Serve notes to the browser extension over native messaging.",
		Long: `Run as a native messaging host. Requests arrive on stdin and responses
leave on stdout, each a 4-byte length in native byte order followed by JSON.
Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if so.Relay != "" {
				return errors.New("relay can not itself use --relay")
			}
			return withSession(cmd.Context(), func(s *session) error {
				h := host.Host{
					Persistence: s.Persistence,
					Logger:      s.Logger,
					In:          cmd.InOrStdin(),
					Out:         cmd.OutOrStdout(),
				}
				return h.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
