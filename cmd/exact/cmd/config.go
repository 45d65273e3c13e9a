package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if src := opts.config.Source(); src != "" {
				fmt.Fprintf(out, "# loaded from %s\n", src)
			} else {
				fmt.Fprintln(out, "# built-in defaults")
			}
			return opts.config.Encode(out)
		},
	}
}
