package main

import (
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/dotkit/pkg/dotenv"
	"github.com/jaspreet-dot-casa/dotkit/pkg/ui"
)

func newSetupCmd(g *globalOptions) *cobra.Command {
	var (
		flags        syncFlags
		out          outputFlags
		generate     []string
		generateOnly []string
		force        bool
		length       int
		format       string
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Sync from the template and generate secrets in one step",
		Long: `Run a template sync and secret generation as a single write.

Variables listed with --generate get random values instead of their template
values; ones the template does not define are added first. --generate-only
skips the template entirely.

Examples:
  dotkit setup --generate AUTH_SECRET,JWT_SECRET
  dotkit setup --generate AUTH_SECRET --force --diff --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.load(cmd)
			if err != nil {
				return err
			}

			opts := flags.options(cmd, rt).Options()
			opts.GenerateKeys = pickList(cmd, "generate", generate, rt.cfg.Generate)
			opts.GenerateOnlyKeys = generateOnly
			opts.Force = force
			opts.Length = length
			if !cmd.Flags().Changed("length") {
				opts.Length = rt.cfg.Length
			}
			opts.Format, err = dotenv.ParseValueFormat(pick(cmd, "format", format, rt.cfg.Format))
			if err != nil {
				return err
			}

			plan, err := dotenv.PlanSetup(opts)
			if err != nil {
				return err
			}

			source := opts.Source
			if len(opts.GenerateOnlyKeys) > 0 {
				source = ""
			}
			return rt.finish(plan, out, opts.DryRun, func(p *ui.Printer) {
				p.Setup(plan, source)
			})
		},
	}

	flags.register(cmd)
	out.register(cmd)
	cmd.Flags().StringSliceVar(&generate, "generate", nil, "variables to fill with random values")
	cmd.Flags().StringSliceVar(&generateOnly, "generate-only", nil, "generate these variables and ignore the template")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "regenerate values that already exist")
	cmd.Flags().IntVarP(&length, "length", "l", dotenv.DefaultLength, "length in bytes for generated values")
	cmd.Flags().StringVar(&format, "format", string(dotenv.FormatHex), "value encoding: hex, base64 or uuid")

	return cmd
}
