package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/config"
	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(notas completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(notas completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)
}

// noteCompletions offers note ids, described by their preview.
func noteCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	settings, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	p, err := store.Load(settings, nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer func() { _ = store.Close(p) }()

	notes, err := p.GetNotes(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		if strings.HasPrefix(n.ID, toComplete) {
			out = append(out, n.ID+"\t"+n.Preview(note.PreviewWidth))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
