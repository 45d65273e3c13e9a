package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	mdwerrors "github.com/msto63/exact/foundation/core/errors"
	"github.com/msto63/exact/internal/calc/server"
	"github.com/msto63/exact/internal/calc/service"
	"github.com/msto63/exact/internal/tui"
	"github.com/msto63/exact/pkg/core/config"
	"github.com/msto63/exact/pkg/core/logging"
)

// Output formats of the --output flag
const (
	OutputText = "text"
	OutputJSON = "json"
)

// errReported marks failures whose details were already printed
var errReported = errors.New("reported")

// options holds the persistent flags and the loaded configuration
type options struct {
	cfgFile string
	verbose bool
	output  string
	remote  string

	config *config.Config
}

// NewRootCmd builds the exact command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "exact",
		Short: "exact - decimal-safe arithmetic",
		Long: `exact performs arithmetic on loosely-typed operands without binary
floating point artifacts: sum 0.1 0.2 is 0.3.

Operands may be numbers, numeric strings such as 1,234.5, true or false.
Use null or _ for a missing operand. Values that are not numeric are
skipped by series operations.

Put -- before negative operands: exact difference -- 1 -2

The calculator runs in-process unless --remote names an exact server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default: ./configs/config.toml or $EXACT_CONFIG)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.StringVarP(&opts.output, "output", "o", OutputText, "output format: text or json")
	flags.StringVar(&opts.remote, "remote", "", "evaluate on the exact gRPC server at this address")

	addOperationCommands(rootCmd, opts)
	rootCmd.AddCommand(
		newOperationsCmd(opts),
		newServeCmd(opts),
		newTUICmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)

	return rootCmd
}

// Execute runs the command line
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd, err)
	}
	return err
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}

// setup validates the flags, loads the configuration and configures logging
func (o *options) setup() error {
	o.output = strings.ToLower(o.output)
	if o.output != OutputText && o.output != OutputJSON {
		return mdwerrors.InvalidInput("cli", "output", o.output, "text or json")
	}

	var err error
	if o.cfgFile != "" {
		o.config, err = config.Load(o.cfgFile)
	} else {
		o.config, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level := o.config.General.LogLevel
	if o.verbose {
		level = "debug"
	}
	logging.Configure(level, o.config.General.LogFormat, os.Stderr)
	return nil
}

// evaluator returns the in-process service, or a client of the remote
// server when --remote is set. The returned func releases it.
func (o *options) evaluator() (tui.Evaluator, func(), error) {
	if o.remote != "" {
		client, err := server.Dial(o.remote)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	}

	svc, err := o.newService()
	if err != nil {
		return nil, nil, err
	}
	return svc, func() {}, nil
}

func (o *options) newService() (*service.Service, error) {
	return service.NewService(service.Config{
		MaxSeriesLength: o.config.Calc.MaxSeriesLength,
		Logger:          logging.New("calc-service"),
	})
}

// target describes where evaluations run
func (o *options) target() string {
	if o.remote != "" {
		return "remote " + o.remote
	}
	return "local"
}

// listOperations lists the operations of the local or remote calculator
func (o *options) listOperations(ctx context.Context) ([]service.OperationInfo, error) {
	if o.remote == "" {
		return service.ListOperations(), nil
	}

	client, err := server.Dial(o.remote)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	return client.ListOperations(ctx)
}
