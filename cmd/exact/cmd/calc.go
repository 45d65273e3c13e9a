package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/exact/foundation/utils/mathx"
	"github.com/msto63/exact/internal/calc/service"
)

// evaluateTimeout bounds one command line evaluation
const evaluateTimeout = 10 * time.Second

// addOperationCommands adds one subcommand per mathx operation
func addOperationCommands(rootCmd *cobra.Command, opts *options) {
	for _, op := range mathx.Operations() {
		rootCmd.AddCommand(newOperationCmd(op, opts))
	}
}

func newOperationCmd(op mathx.Operation, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Short:   op.Description,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, opts, op.Name, args)
		},
	}

	switch op.Arity {
	case mathx.ArityUnary:
		cmd.Use = op.Name + " <value>"
		cmd.Args = cobra.ExactArgs(1)
	case mathx.ArityPower:
		cmd.Use = op.Name + " <value> [exponent]"
		cmd.Args = cobra.RangeArgs(1, 2)
	default:
		cmd.Use = op.Name + " [values...]"
		cmd.Args = cobra.ArbitraryArgs
	}
	cmd.Example = "  exact " + exampleFor(op)

	return cmd
}

func exampleFor(op mathx.Operation) string {
	switch op.Arity {
	case mathx.ArityUnary:
		return op.Name + " 12.5"
	case mathx.ArityPower:
		return op.Name + " 0.1 3"
	default:
		return op.Name + " 0.1 0.2 \"1,000\""
	}
}

// runCalc evaluates operation on the command line operands and prints
// the response
func runCalc(cmd *cobra.Command, opts *options, operation string, args []string) error {
	req, err := service.NewRequest(operation, args)
	if err != nil {
		return err
	}

	evaluator, release, err := opts.evaluator()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := context.WithTimeout(cmd.Context(), evaluateTimeout)
	defer cancel()

	resp, err := evaluator.Evaluate(ctx, req)
	if err != nil {
		return err
	}

	if err := printResponse(cmd, opts.output, resp); err != nil {
		return err
	}
	if resp.Outcome == service.OutcomeError {
		return errReported
	}
	return nil
}

func printResponse(cmd *cobra.Command, output string, resp *service.Response) error {
	if output == OutputJSON {
		return writeJSON(cmd, resp)
	}

	if resp.Outcome == service.OutcomeError {
		fmt.Fprintln(cmd.ErrOrStderr(), resp.String())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.String())
	return nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
