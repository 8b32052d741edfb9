package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/axondata/go-supctl"
	"github.com/axondata/go-supctl/internal/clog"

	"github.com/spf13/cobra"
)

var (
	flagVerbose  bool
	flagTimeout  time.Duration
	flagInterval time.Duration

	logger *slog.Logger
)

func main() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "verbose logging")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", supctl.DefaultTimeout, "convergence wait timeout for start/stop")
	rootCmd.PersistentFlags().DurationVar(&flagInterval, "interval", supctl.DefaultPollInterval, "liveness poll interval")

	// errors are reported through the logger, with a distinct exit code
	// per failure kind
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("supctl failed", "err", err)
		os.Exit(supctl.ExitFailure)
	}
}

var rootCmd = &cobra.Command{
	Use:          "supctl",
	Short:        "Manage a supervisord instance from a declarative configuration",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = clog.New(flagVerbose)
	},
}

var writeCmd = &cobra.Command{
	Use:   "write <config>",
	Short: "render the supervisord config files from inline JSON or a JSON file",
	Args:  cobra.ExactArgs(1),
	Run:   runOp("write", (*supctl.Control).Write),
}

var startCmd = &cobra.Command{
	Use:   "start <config>",
	Short: "launch supervisord and wait until its control endpoint answers",
	Args:  cobra.ExactArgs(1),
	Run:   runOp("start", (*supctl.Control).Start),
}

var stopCmd = &cobra.Command{
	Use:   "stop <config>",
	Short: "terminate supervisord and wait until it is gone",
	Args:  cobra.ExactArgs(1),
	Run:   runOp("stop", (*supctl.Control).Stop),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the supctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(supctl.Version)
	},
}

// runOp adapts a lifecycle operation to a cobra handler: the (bool, error)
// outcome is translated to a process exit status in exactly one place, so
// all three commands fail identically.
func runOp(name string, op func(*supctl.Control, context.Context, any) (bool, error)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctl := supctl.New(
			supctl.WithTimeout(flagTimeout),
			supctl.WithPollInterval(flagInterval),
		)

		ok, err := op(ctl, cmd.Context(), args[0])
		if err != nil {
			logger.Error("operation failed", "op", name, "err", err)
		} else {
			logger.Debug("operation finished", "op", name, "ok", ok)
		}

		if code := supctl.ExitCode(ok, err); code != supctl.ExitOK {
			os.Exit(code)
		}
	}
}
