package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/beargit/cmd/ui"
	"github.com/utkarsh5026/beargit/pkg/commitid"
	"github.com/utkarsh5026/beargit/pkg/commitmanager"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/config"
	"github.com/utkarsh5026/beargit/pkg/history"
)

func newLogCmd(opts *globalOptions) *cobra.Command {
	var limit int
	var useTable bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit logs",
		Long: `Show the commit history starting from the head, newest first.
The default rendering and limit come from log.format and log.limit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, cfg, err := openWithConfig(ctx, opts)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				limit = cfg.LogLimit()
			}
			if !cmd.Flags().Changed("table") {
				useTable = cfg.LogFormat() == config.LogFormatTable
			}

			walker := history.NewWalker(repo)
			out := cmd.OutOrStdout()

			if useTable {
				entries, err := walker.Collect(ctx, limit)
				if err != nil {
					return err
				}
				return displayCommitsAsTable(out, entries)
			}

			seq, err := walker.Walk(ctx)
			if err != nil {
				return err
			}

			shown := 0
			for entry, err := range seq {
				if err != nil {
					return err
				}
				if err := history.WriteEntry(out, entry); err != nil {
					return err
				}
				shown++
				if limit > 0 && shown >= limit {
					break
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit the number of commits to show (0 shows all)")
	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display commits in table format")

	return cmd
}

// displayCommitsAsTable shows commits in a compact table format
func displayCommitsAsTable(out io.Writer, entries []history.Entry) error {
	table := tablewriter.NewWriter(out)
	table.Header("Commit", "Parent", "Message")

	for _, e := range entries {
		parent := "-"
		if !e.Parent.IsSentinel() {
			parent = e.Parent.Short()
		}
		if err := table.Append(e.ID.Short(), parent, ui.Truncate(e.Message, 50)); err != nil {
			return err
		}
	}

	return table.Render()
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <commit>",
		Short: "Show a commit's message and files",
		Long: `Show the message, parent and frozen file list of one commit. The commit
is named by its full 40 character identifier.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository(opts)
			if err != nil {
				return err
			}

			id, err := commitid.Parse(args[0])
			if err != nil {
				return scerr.New("cli", scerr.CodeInvalidInput, "show",
					fmt.Sprintf("%s is not a commit identifier", args[0]), err)
			}

			c, err := commitmanager.NewManager(repo).GetCommit(id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "commit %s\n", c.ID)
			if c.IsRoot() {
				fmt.Fprintln(out, "parent (none)")
			} else {
				fmt.Fprintf(out, "parent %s\n", c.Parent)
			}
			fmt.Fprintf(out, "\n\t%s\n\n", c.Message)

			fmt.Fprintln(out, ui.Section("Files:"))
			for _, f := range c.Files {
				fmt.Fprintf(out, "\t%s\n", f)
			}
			fmt.Fprintf(out, "\n%d files total\n", len(c.Files))
			return nil
		},
	}

	return cmd
}
