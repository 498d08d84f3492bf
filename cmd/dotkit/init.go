package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/dotkit/pkg/config"
	"github.com/jaspreet-dot-casa/dotkit/pkg/project"
)

func newInitCmd(g *globalOptions) *cobra.Command {
	var (
		force    bool
		user     bool
		generate []string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .dotkit.yaml",
		Long: `Write a .dotkit.yaml with the default settings to the current directory,
the --config path, or the user config at $XDG_CONFIG_HOME/dotkit/config.yaml
with --user.

Examples:
  dotkit init
  dotkit init --generate AUTH_SECRET,JWT_SECRET
  dotkit init --user`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := project.ConfigFileName
			if g.configPath != "" {
				path = g.configPath
			}
			if user {
				path = config.UserConfigPath()
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					return fmt.Errorf("failed to create config directory: %w", err)
				}
			}

			cfg := config.Default()
			cfg.Generate = generate
			if err := cfg.Save(path, force); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s\n", path)
			if !user {
				fmt.Fprintln(out, "Run 'dotkit sync' to create or update your .env file.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	cmd.Flags().BoolVar(&user, "user", false, "write the user config instead of the project config")
	cmd.Flags().StringSliceVar(&generate, "generate", nil, "variables to generate secrets for")

	return cmd
}
