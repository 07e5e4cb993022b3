package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/commands/options"
	"tableflip.dev/notas/pkg/runner/todo"
)

func addTodo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Change the todos of a note.",
		Example: `
notas todo add buy milk
notas todo capture "quoted text" --url https://example.com --title Example
notas todo toggle <todo id> --note <note id>
notas todo rm <todo id>
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTodoText(cmd, todo.OpAdd, "add [text]", "Append a todo to a note.")
	addTodoText(cmd, todo.OpCapture, "capture [text]", "Put captured page text first on a note.")
	addTodoID(cmd, todo.OpToggle, "toggle <todo id>", "Flip a todo between open and done.")
	addTodoID(cmd, todo.OpRemove, "rm <todo id>", "Remove a todo.")

	topLevel.AddCommand(cmd)
}

func addTodoText(parent *cobra.Command, op todo.Op, use, short string) {
	io := &options.IDOptions{}
	mo := &options.MessageOptions{}
	var pageURL, pageTitle string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			return mo.Resolve(args, cmd.InOrStdin())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				t := todo.Todo{
					Op:          op,
					NoteID:      io.ID,
					Text:        mo.Message,
					PageURL:     pageURL,
					PageTitle:   pageTitle,
					ShowID:      io.ShowID,
					Persistence: s.Persistence,
					Debounce:    s.Settings.Debounce,
					Logger:      s.Logger,
					Out:         cmd.OutOrStdout(),
				}
				return t.Do(cmd.Context())
			})
		},
	}

	options.AddNoteIDArg(cmd, io)
	options.AddShowIDArgs(cmd, io)
	options.AddStdinArg(cmd, mo)
	if op == todo.OpCapture {
		cmd.Flags().StringVar(&pageURL, "url", "", "Address of the page the text came from.")
		cmd.Flags().StringVar(&pageTitle, "title", "", "Title of the page the text came from.")
	}
	_ = cmd.RegisterFlagCompletionFunc("note", noteCompletions)

	parent.AddCommand(cmd)
}

func addTodoID(parent *cobra.Command, op todo.Op, use, short string) {
	io := &options.IDOptions{}
	var todoID string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires one todo id")
			}
			todoID = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				t := todo.Todo{
					Op:          op,
					NoteID:      io.ID,
					TodoID:      todoID,
					ShowID:      io.ShowID,
					Persistence: s.Persistence,
					Debounce:    s.Settings.Debounce,
					Logger:      s.Logger,
					Out:         cmd.OutOrStdout(),
				}
				return t.Do(cmd.Context())
			})
		},
	}

	options.AddNoteIDArg(cmd, io)
	options.AddShowIDArgs(cmd, io)
	_ = cmd.RegisterFlagCompletionFunc("note", noteCompletions)

	parent.AddCommand(cmd)
}
