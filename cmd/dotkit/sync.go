package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/dotkit/pkg/dotenv"
	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
	"github.com/jaspreet-dot-casa/dotkit/pkg/tui"
	"github.com/jaspreet-dot-casa/dotkit/pkg/ui"
)

// syncFlags are the template sync flags shared by sync and setup.
type syncFlags struct {
	target           string
	source           string
	only             []string
	dryRun           bool
	noOverwriteEmpty bool
	skipEmptySource  bool
}

func (f *syncFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.target, "target", "t", ".env", "target .env file (destination)")
	cmd.Flags().StringVarP(&f.source, "source", "s", ".env.example", "source file to sync from (e.g., .env.example)")
	cmd.Flags().StringSliceVar(&f.only, "only", nil, "only copy these specific variables (comma separated or repeated)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "show what would be copied without making changes")
	cmd.Flags().BoolVar(&f.noOverwriteEmpty, "no-overwrite-empty-values", false, "don't overwrite empty values in target file (default: overwrite)")
	cmd.Flags().BoolVar(&f.skipEmptySource, "skip-empty-source-values", false, "skip variables with empty values in source file (default: include)")
}

func (f *syncFlags) options(cmd *cobra.Command, rt *session) dotenv.SyncOptions {
	o := dotenv.NewSyncOptions()
	o.Target = pick(cmd, "target", f.target, rt.cfg.Target)
	o.Source = pick(cmd, "source", f.source, rt.cfg.Source)
	o.Only = pickList(cmd, "only", f.only, rt.cfg.Only)
	o.DryRun = f.dryRun

	o.OverwriteEmptyValues = rt.cfg.OverwriteEmpty()
	if cmd.Flags().Changed("no-overwrite-empty-values") {
		o.OverwriteEmptyValues = !f.noOverwriteEmpty
	}
	o.SkipEmptySourceValues = rt.cfg.SkipEmptySourceValues
	if cmd.Flags().Changed("skip-empty-source-values") {
		o.SkipEmptySourceValues = f.skipEmptySource
	}

	o.Logger = rt.logger
	return o
}

func newSyncCmd(g *globalOptions) *cobra.Command {
	var (
		flags       syncFlags
		out         outputFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync environment variables from template to .env file",
		Long: `Copy variables that are missing from the target file out of the template.

When the target does not exist it is created from the template. Otherwise
missing variables are appended at the end of the file; existing values are
never changed, except empty ones (see --no-overwrite-empty-values).

Examples:
  dotkit sync
  dotkit sync --dry-run
  dotkit sync -s .env.production.example -t .env.production
  dotkit sync --only DB_URL,DEBUG`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, g, &flags, out, interactive)
		},
	}

	flags.register(cmd)
	out.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose the variables to copy interactively")

	return cmd
}

func runSync(cmd *cobra.Command, g *globalOptions, flags *syncFlags, out outputFlags, interactive bool) error {
	rt, err := g.load(cmd)
	if err != nil {
		return err
	}

	opts := flags.options(cmd, rt)

	if interactive {
		only, err := pickVariables(opts.Source, opts.Only)
		if errors.Is(err, tui.ErrCancelled) {
			fmt.Fprintln(rt.out, "Cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
		if len(only) == 0 {
			fmt.Fprintln(rt.out, "No variables selected - nothing to do.")
			return nil
		}
		opts.Only = only
	}

	plan, err := dotenv.PlanSetup(opts.Options())
	if err != nil {
		return err
	}

	return rt.finish(plan, out, opts.DryRun, func(p *ui.Printer) {
		p.Sync(&plan.Result, opts.Target, opts.Source)
	})
}

// pickVariables lets the user choose among the template's variables,
// restricted to only when it is set.
func pickVariables(source string, only []string) ([]string, error) {
	if err := tui.RequireInteractive(); err != nil {
		return nil, err
	}

	template, err := envfile.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", dotenv.ErrMissingTemplate, source, err)
	}

	var items []tui.PickerItem
	for _, k := range template.Keys() {
		if only != nil && !slices.Contains(only, k) {
			continue
		}
		items = append(items, tui.PickerItem{Key: k, Value: template.Value(k)})
	}

	return tui.RunPicker("Select variables to sync from "+source, items)
}
