package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/commands/options"
	"tableflip.dev/notas/pkg/printers"
)

var (
	output = &options.OutputOptions{}
	so     = &options.StoreOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "notas",
		Short: options.Wrap80("Notes and todos captured while browsing, on the command line."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if output.NoColor || !printers.Interactive(cmd.OutOrStdout()) {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddStoreArgs(cmd, so)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addNotes(topLevel)
	addShow(topLevel)
	addNew(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addTodo(topLevel)
	addClear(topLevel)
	addExport(topLevel)
	addWatch(topLevel)
	addRelay(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
