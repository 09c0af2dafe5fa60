package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/beargit/pkg/common/logger"
	"github.com/utkarsh5026/beargit/pkg/index"
)

func newAddCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <file>...",
		Short: "Start tracking files",
		Long: `Add file names to the staging index so the next commit snapshots them.
Names are relative to the repository root. Adding a name that is already
tracked fails and leaves the index unchanged; with several names either all
are added or none.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository(opts)
			if err != nil {
				return err
			}

			if err := index.NewManager(repo).AddAll(args); err != nil {
				return err
			}

			logger.Default.Info("files added", slog.Int("count", len(args)))
			return nil
		},
	}

	return cmd
}

func newRmCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <file>...",
		Short: "Stop tracking files",
		Long: `Remove file names from the staging index. The working files themselves
are not touched. Removing a name that is not tracked fails and leaves the
index unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository(opts)
			if err != nil {
				return err
			}

			if err := index.NewManager(repo).RemoveAll(args); err != nil {
				return err
			}

			logger.Default.Info("files removed", slog.Int("count", len(args)))
			return nil
		},
	}

	return cmd
}
