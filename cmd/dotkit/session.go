package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jaspreet-dot-casa/dotkit/pkg/config"
	"github.com/jaspreet-dot-casa/dotkit/pkg/dotenv"
	"github.com/jaspreet-dot-casa/dotkit/pkg/logging"
	"github.com/jaspreet-dot-casa/dotkit/pkg/ui"
)

// session is everything a command needs after flags are parsed.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	styles ui.Styles
	out    io.Writer
}

func (g *globalOptions) load(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}

	logger := logging.New(g.verbose, cmd.ErrOrStderr())
	if cfg.Path() != "" {
		logger.Sugar().Debugw("loaded config", "path", cfg.Path())
	}

	out := cmd.OutOrStdout()
	return &session{
		cfg:    cfg,
		logger: logger,
		styles: ui.NewStyles(out, g.noColor),
		out:    out,
	}, nil
}

// outputFlags select how a plan is reported.
type outputFlags struct {
	diff bool
	json bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.diff, "diff", false, "show a diff of the target file before and after")
	cmd.Flags().BoolVar(&o.json, "json", false, "print the result as JSON")
}

// finish applies the plan unless dryRun is set and reports the outcome.
func (rt *session) finish(plan *dotenv.Plan, out outputFlags, dryRun bool, report func(*ui.Printer)) error {
	if out.diff && !out.json {
		ui.WriteDiff(rt.out, rt.styles, plan.Target, plan.Before, plan.After)
	}

	if !dryRun {
		if err := plan.Apply(); err != nil {
			return err
		}
	}

	if out.json {
		return ui.WriteJSON(rt.out, plan, dryRun)
	}
	report(ui.NewPrinter(rt.out, rt.styles, dryRun))
	return nil
}

// pick returns the flag value when it was set on the command line, then the
// config value when non-empty, then the flag default.
func pick(cmd *cobra.Command, name, flagValue, configValue string) string {
	if cmd.Flags().Changed(name) || configValue == "" {
		return flagValue
	}
	return configValue
}

// pickList is pick for list flags. A list flag set on the command line is
// never nil, so an explicitly empty list stays distinguishable from unset.
func pickList(cmd *cobra.Command, name string, flagValue, configValue []string) []string {
	if !cmd.Flags().Changed(name) {
		return configValue
	}
	if flagValue == nil {
		return []string{}
	}
	return flagValue
}
