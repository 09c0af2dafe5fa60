package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/config"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set configuration values",
		Long: `Read and write configuration. Values are looked up in order: -c overrides,
the repository file (.beargit/config.json), the user file, then built-in
defaults.`,
	}

	cmd.AddCommand(newConfigGetCmd(opts))
	cmd.AddCommand(newConfigSetCmd(opts))
	cmd.AddCommand(newConfigUnsetCmd(opts))
	cmd.AddCommand(newConfigListCmd(opts))

	return cmd
}

// configRepositoryPath returns the enclosing repository, or "" outside one.
func configRepositoryPath(opts *globalOptions) (scpath.RepositoryPath, error) {
	repo, err := findRepository(opts)
	if err != nil {
		if scerr.IsCode(err, scerr.CodeNotInitialized) {
			return "", nil
		}
		return "", err
	}
	return repo.WorkingDirectory(), nil
}

func configLevel(user bool) config.ConfigLevel {
	if user {
		return config.UserLevel
	}
	return config.RepositoryLevel
}

func newConfigGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := configRepositoryPath(opts)
			if err != nil {
				return err
			}
			mgr, err := loadConfig(cmd.Context(), opts, repoPath)
			if err != nil {
				return err
			}

			entry := mgr.Get(args[0])
			if entry == nil {
				return config.NewNotFoundError(args[0], "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), entry.Value)
			return nil
		},
	}
}

func newConfigSetCmd(opts *globalOptions) *cobra.Command {
	var user bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value in the repository or user file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := configRepositoryPath(opts)
			if err != nil {
				return err
			}
			mgr, err := loadConfig(cmd.Context(), opts, repoPath)
			if err != nil {
				return err
			}
			return mgr.Set(args[0], args[1], configLevel(user))
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write to the user configuration file")
	return cmd
}

func newConfigUnsetCmd(opts *globalOptions) *cobra.Command {
	var user bool

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a value from the repository or user file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := configRepositoryPath(opts)
			if err != nil {
				return err
			}
			mgr, err := loadConfig(cmd.Context(), opts, repoPath)
			if err != nil {
				return err
			}
			return mgr.Unset(args[0], configLevel(user))
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Remove from the user configuration file")
	return cmd
}

func newConfigListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every effective value and where it comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := configRepositoryPath(opts)
			if err != nil {
				return err
			}
			mgr, err := loadConfig(cmd.Context(), opts, repoPath)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Key", "Value", "Level", "Source")
			for _, e := range mgr.List() {
				if err := table.Append(e.Key, e.Value, e.Level.String(), e.Source.String()); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
