package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/dotkit/pkg/validation"
)

func newCheckCmd(g *globalOptions) *cobra.Command {
	var (
		target   string
		source   string
		generate []string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the .env file against its template",
		Long: `Report variables that are missing from the target file, left empty, or
unknown to the template. Exits non-zero when any variable is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.load(cmd)
			if err != nil {
				return err
			}

			validator := validation.NewValidator(
				pick(cmd, "target", target, rt.cfg.Target),
				pick(cmd, "source", source, rt.cfg.Source),
				pickList(cmd, "generate", generate, rt.cfg.Generate),
			)
			result := validator.Validate()

			if asJSON {
				enc := json.NewEncoder(rt.out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("failed to encode result: %w", err)
				}
			} else {
				printIssues(rt, result)
			}

			if result.HasErrors() {
				return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", ".env", "target .env file")
	cmd.Flags().StringVarP(&source, "source", "s", ".env.example", "template file")
	cmd.Flags().StringSliceVar(&generate, "generate", nil, "variables that must hold generated secrets")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print issues as JSON")

	return cmd
}

func printIssues(rt *session, result *validation.Result) {
	for _, issue := range result.Issues {
		prefix := rt.styles.Warning.Render("[WARNING]")
		if issue.Severity == validation.SeverityError {
			prefix = rt.styles.Error.Render("[ERROR]")
		}
		fmt.Fprintf(rt.out, "%s %s: %s\n", prefix, issue.File, issue.Message)
	}

	switch {
	case result.HasErrors():
	case len(result.Issues) == 0:
		fmt.Fprintln(rt.out, rt.styles.Success.Render("All variables are present."))
	default:
		fmt.Fprintf(rt.out, "\nCheck passed with %d warning(s).\n", result.WarningCount())
	}
}
