package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/beargit/cmd/ui"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/repository/sourcerepo"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty beargit repository",
		Long: `Create an empty beargit repository in the current directory or the given path.
This creates a .beargit directory holding an empty staging index and a head
that points at no commit. An existing repository is left untouched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := workingPath(opts)
			if err != nil {
				return err
			}

			path := base.String()
			if len(args) > 0 {
				path = args[0]
				if !filepath.IsAbs(path) {
					path = filepath.Join(base.String(), path)
				}
			}

			repoPath, err := scpath.NewRepositoryPath(path)
			if err != nil {
				return err
			}

			if _, err := sourcerepo.InitializeRepository(repoPath); err != nil {
				return err
			}

			displayPath := filepath.Join(repoPath.String(), scpath.SourceDir)
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage("Initialized empty beargit repository in", displayPath))
			return nil
		},
	}

	return cmd
}
