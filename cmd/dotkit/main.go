// Package main provides the dotkit CLI for managing dotenv files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// globalOptions holds the persistent root flags.
type globalOptions struct {
	configPath string
	verbose    bool
	noColor    bool
}

// newRootCmd creates the root command for dotkit
func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "dotkit",
		Short: "A toolkit for managing environment variables and dotenv files",
		Long: `dotkit keeps a .env file in line with its template.

It supports:
  - Copying variables that are missing from .env out of .env.example
  - Generating random secrets for variables that need them
  - Checking a .env file against its template
  - Project defaults in .dotkit.yaml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default: nearest .dotkit.yaml, then $XDG_CONFIG_HOME/dotkit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newSyncCmd(g),
		newSecretCmd(g),
		newSetupCmd(g),
		newCheckCmd(g),
		newInitCmd(g),
	)

	return rootCmd
}
