package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/exact/internal/tui"
)

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive calculator",
		Long: `Starts the interactive calculator.

Enter one operation per line, e.g. "sum 0.1 0.2" or "power 2 10".
Tab switches to the list of operations, up and down recall earlier
lines, "clear" or ctrl+l empties the history, esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			evaluator, release, err := opts.evaluator()
			if err != nil {
				return err
			}
			defer release()
			return tui.Run(evaluator, opts.target())
		},
	}
}
