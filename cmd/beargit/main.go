package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/beargit/cmd/ui"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/common/logger"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	logLevel  string
	logFormat string
	verbose   bool
	dir       string
	overrides []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(stderr, ui.ErrorLine(scerr.UserMessage(err)))
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "beargit",
		Short: "beargit - a minimal local version control system",
		Long: `beargit tracks a set of files and snapshots them into a linear chain of
commits stored under .beargit/ in the repository directory.

Get started with: beargit init
Check status with: beargit status`,
		Version:       fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")
	flags.StringVarP(&opts.dir, "directory", "C", "", "Run as if beargit was started in this directory")
	flags.StringArrayVarP(&opts.overrides, "config", "c", nil, "Override a configuration value (key=value)")

	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newRmCmd(opts))
	rootCmd.AddCommand(newCommitCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newLogCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newVerifyCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

func setupLogging(opts *globalOptions, out io.Writer) error {
	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	if opts.verbose {
		level = logger.LevelDebug
	}

	format, err := logger.ParseFormat(opts.logFormat)
	if err != nil {
		return err
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: out,
	})
	return nil
}
