package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newOperationsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "operations",
		Aliases: []string{"ops"},
		Short:   "List the available operations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), evaluateTimeout)
			defer cancel()

			ops, err := opts.listOperations(ctx)
			if err != nil {
				return err
			}

			if opts.output == OutputJSON {
				return writeJSON(cmd, ops)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tARITY\tDESCRIPTION")
			for _, op := range ops {
				fmt.Fprintf(w, "%s\t%s\t%s\n", op.Name, op.Arity, op.Description)
			}
			return w.Flush()
		},
	}
}
