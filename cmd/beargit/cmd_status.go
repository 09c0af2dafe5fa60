package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/beargit/cmd/ui"
	"github.com/utkarsh5026/beargit/pkg/workdir"
)

func newStatusCmd(opts *globalOptions) *cobra.Command {
	var showChanges bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "List the tracked files",
		Long: `List every tracked file in index order followed by the total count.
Tracked files missing from the working directory are reported on stderr
because the next commit would fail on them.

With --changes, the listing is followed by the files that differ from the
head commit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository(opts)
			if err != nil {
				return err
			}

			mgr := workdir.NewManager(repo)
			status, err := mgr.Status()
			if err != nil {
				return err
			}

			if err := workdir.WriteText(cmd.OutOrStdout(), status); err != nil {
				return err
			}

			if !status.Clean() {
				errOut := cmd.ErrOrStderr()
				fmt.Fprintln(errOut, ui.WarningMessage("Tracked files missing from the working directory:"))
				for _, name := range status.Missing {
					fmt.Fprintln(errOut, ui.FormatMissing(name))
				}
			}

			if !showChanges {
				return nil
			}

			changes, err := mgr.Changes()
			if err != nil {
				return err
			}
			displayChanges(cmd.OutOrStdout(), changes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showChanges, "changes", false, "Also list files that differ from the head commit")

	return cmd
}

func displayChanges(out io.Writer, c *workdir.Changes) {
	fmt.Fprintln(out)
	if c.Empty() {
		fmt.Fprintln(out, ui.Green(ui.IconCheck+" Nothing changed since the last commit"))
		return
	}

	sections := []struct {
		title string
		files []string
		label string
	}{
		{"Modified since last commit:", c.Modified, "modified:"},
		{"Added since last commit:", c.Added, "added:"},
		{"Removed since last commit:", c.Removed, "removed:"},
	}
	for _, s := range sections {
		if len(s.files) == 0 {
			continue
		}
		fmt.Fprintln(out, ui.Section(s.title))
		for _, f := range s.files {
			fmt.Fprintf(out, "\t%s %s\n", ui.Yellow(s.label), f)
		}
	}
}
