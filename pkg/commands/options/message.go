package options

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// MessageOptions collect the text of a note or todo from args or stdin.
type MessageOptions struct {
	Message string
	Stdin   bool
}

func AddStdinArg(cmd *cobra.Command, o *MessageOptions) {
	cmd.Flags().BoolVar(&o.Stdin, "stdin", false,
		"Read the text from stdin instead of the arguments.")
}

// Resolve sets Message from args, or from in when Stdin is set.
func (o *MessageOptions) Resolve(args []string, in io.Reader) error {
	if o.Stdin {
		b, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		o.Message = strings.TrimRight(string(b), "\n")
		return nil
	}
	o.Message = strings.Join(args, " ")
	if strings.TrimSpace(o.Message) == "" {
		return errors.New("requires some text")
	}
	return nil
}
