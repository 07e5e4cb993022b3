package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions are the persistent output flags shared by every command.
type OutputOptions struct {
	JSON    bool
	NoColor bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output errors as JSON.")
	cmd.PersistentFlags().BoolVar(&po.NoColor, "no-color", false,
		"Disable colored output.")
}

// HandleError reports err as {"error": "..."} on stdout when --json is set
// and swallows it; otherwise err is returned for cobra to print.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil || !o.JSON {
		return err
	}
	b, merr := json.Marshal(struct {
		Error string `json:"error"`
	}{err.Error()})
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
