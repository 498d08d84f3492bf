package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/dotkit/pkg/dotenv"
	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
	"github.com/jaspreet-dot-casa/dotkit/pkg/tui"
	"github.com/jaspreet-dot-casa/dotkit/pkg/ui"
)

type secretFlags struct {
	target      string
	length      int
	format      string
	dryRun      bool
	force       bool
	interactive bool
}

func newSecretCmd(g *globalOptions) *cobra.Command {
	var (
		flags secretFlags
		out   outputFlags
	)

	cmd := &cobra.Command{
		Use:     "secret [variables...]",
		Aliases: []string{"generate"},
		Short:   "Generate random hex values for environment variables",
		Long: `Generate random values for the named variables and write them to the target file.

Variables that already exist are left alone unless --force is given. Without
arguments the generate list from .dotkit.yaml is used.

Examples:
  dotkit secret AUTH_SECRET JWT_SECRET
  dotkit secret SESSION_KEY -l 64 --format base64
  dotkit secret AUTH_SECRET --force --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSecret(cmd, g, args, flags, out)
		},
	}

	cmd.Flags().StringVarP(&flags.target, "target", "t", ".env", "target .env file")
	cmd.Flags().IntVarP(&flags.length, "length", "l", dotenv.DefaultLength, "length in bytes for generated values")
	cmd.Flags().StringVar(&flags.format, "format", string(dotenv.FormatHex), "value encoding: hex, base64 or uuid")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show what would be generated without making changes")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing values")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "ask before overwriting existing values")
	out.register(cmd)

	return cmd
}

func runSecret(cmd *cobra.Command, g *globalOptions, args []string, flags secretFlags, out outputFlags) error {
	rt, err := g.load(cmd)
	if err != nil {
		return err
	}

	variables := args
	if len(variables) == 0 {
		variables = rt.cfg.Generate
	}

	opts := dotenv.NewGenerateOptions()
	opts.Target = pick(cmd, "target", flags.target, rt.cfg.Target)
	opts.Variables = variables
	opts.Length = flags.length
	if !cmd.Flags().Changed("length") {
		opts.Length = rt.cfg.Length
	}
	format, err := dotenv.ParseValueFormat(pick(cmd, "format", flags.format, rt.cfg.Format))
	if err != nil {
		return err
	}
	opts.Format = format
	opts.DryRun = flags.dryRun
	opts.Force = flags.force
	opts.Logger = rt.logger

	engineOpts, err := opts.Options()
	if err != nil {
		return err
	}

	plan, err := dotenv.PlanSetup(engineOpts)
	if err != nil {
		return err
	}

	if flags.interactive && !flags.dryRun && plan.Mode == dotenv.ModeRewrite {
		ok, err := confirmOverwrite(plan, variables)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(rt.out, "Aborted - nothing written.")
			return nil
		}
	}

	return rt.finish(plan, out, opts.DryRun, func(p *ui.Printer) {
		p.Secret(&plan.Result, opts.Target, variables, opts.Force)
	})
}

func confirmOverwrite(plan *dotenv.Plan, variables []string) (bool, error) {
	if err := tui.RequireInteractive(); err != nil {
		return false, err
	}

	current := envfile.ParseString(plan.Before)
	var existing []string
	for _, v := range variables {
		if current.Has(v) {
			existing = append(existing, v)
		}
	}

	question := fmt.Sprintf("Overwrite existing values for %s in %s?", strings.Join(existing, ", "), plan.Target)
	return tui.RunConfirm(question)
}
