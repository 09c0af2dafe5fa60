package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/beargit/cmd/ui"
	"github.com/utkarsh5026/beargit/pkg/commitmanager"
)

func newCommitCmd(opts *globalOptions) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit -m <message>",
		Short: "Record a snapshot of every tracked file",
		Long: `Create a new commit holding the staging index, the previous head and a
full copy of every tracked file, then advance the head to it.

The message must contain the configured commit marker (commit.marker,
"GO BEARS!" by default).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, cfg, err := openWithConfig(ctx, opts)
			if err != nil {
				return err
			}

			policy := commitmanager.NewMarkerPolicy(cfg.CommitMarker())
			mgr := commitmanager.NewManager(repo, commitmanager.WithPolicy(policy))

			c, err := mgr.CreateCommit(ctx, message)
			if err != nil {
				return err
			}

			if opts.verbose {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.SuccessMessage("Committed", c.ID.String()))
				fmt.Fprintln(out, ui.CommitLine(c.ID.Short(), c.Message))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
