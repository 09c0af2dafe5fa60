package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/beargit/cmd/ui"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/verify"
)

func newVerifyCmd(opts *globalOptions) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that every commit is complete on disk",
		Long: `Walk the history from the head and check each commit directory holds its
index, parent pointer, message and a snapshot of every file it lists.
Exits with status 1 when a problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository(opts)
			if err != nil {
				return err
			}

			var checkerOpts []verify.Option
			if jobs > 0 {
				checkerOpts = append(checkerOpts, verify.WithConcurrency(jobs))
			}

			report, err := verify.NewChecker(repo, checkerOpts...).Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report.OK() {
				fmt.Fprintln(out, ui.SuccessMessage(fmt.Sprintf("%d commits checked, no problems found", report.Checked)))
				return nil
			}

			for _, p := range report.Problems {
				fmt.Fprintln(out, ui.FormatMissing(p.String()))
			}
			return scerr.New("cli", scerr.CodeCorrupt, "verify",
				fmt.Sprintf("%d problems found in %d commits", len(report.Problems), report.Checked), nil)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of commits to check concurrently (default: number of CPUs)")

	return cmd
}
