package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jaspreet-dot-casa/dotkit/pkg/dotenv"
	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
)

const dryRunPrefix = "[DRY RUN] "

// Printer writes human readable command results.
type Printer struct {
	w      io.Writer
	styles Styles
	dryRun bool
}

// NewPrinter creates a Printer. In dry-run mode every message is prefixed
// with "[DRY RUN]" and phrased as what would happen.
func NewPrinter(w io.Writer, styles Styles, dryRun bool) *Printer {
	return &Printer{w: w, styles: styles, dryRun: dryRun}
}

func (p *Printer) line(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.dryRun {
		msg = p.styles.Warning.Render(strings.TrimSpace(dryRunPrefix)) + " " + msg
	}
	fmt.Fprintln(p.w, msg)
}

func (p *Printer) values(r *dotenv.Result) {
	for _, k := range r.MissingKeys {
		fmt.Fprintf(p.w, "  %s\n", p.styles.Accent.Render(envfile.FormatLine(k, r.MissingKeyValues[k])))
	}
}

// Sync reports the outcome of a template sync.
func (p *Printer) Sync(r *dotenv.Result, target, source string) {
	switch {
	case p.dryRun && r.Bootstrapped:
		p.line("Would create %s from %s", target, source)
		if len(r.MissingKeys) > 0 {
			p.line("Would copy these variables:")
			p.values(r)
		}
	case p.dryRun && r.MissingCount == 0:
		p.line("All variables already present - nothing to do.")
	case p.dryRun:
		p.line("Would append %d variable(s) to %s:", r.MissingCount, target)
		p.values(r)
	case r.Bootstrapped:
		p.line("%s %s from %s", p.styles.Success.Render("Created"), target, source)
	case r.MissingCount == 0:
		p.line("All variables already present - nothing to do.")
	default:
		p.line("%s %d variable(s) to %s", p.styles.Success.Render("Appended"), r.MissingCount, target)
	}
}

// Secret reports the outcome of secret generation for the requested variables.
func (p *Printer) Secret(r *dotenv.Result, target string, variables []string, force bool) {
	var existing []string
	for _, v := range variables {
		if !slices.Contains(r.MissingKeys, v) && !slices.Contains(existing, v) {
			existing = append(existing, v)
		}
	}

	switch {
	case p.dryRun && r.Bootstrapped:
		p.line("Would create %s with generated values:", target)
		p.values(r)
	case r.MissingCount == 0:
		p.line("All variables already exist in %s - nothing to do.", target)
		if !force {
			p.line("Use -f or --force to overwrite existing values.")
		}
	case p.dryRun:
		p.line("Would generate values for:")
		p.values(r)
		if len(existing) > 0 {
			p.line("Already exist (skipping): %s", strings.Join(existing, ", "))
		}
	case r.Bootstrapped:
		p.line("%s %s with generated values for: %s", p.styles.Success.Render("Created"), target, strings.Join(r.MissingKeys, ", "))
	default:
		p.line("%s values for: %s", p.styles.Success.Render("Generated"), strings.Join(r.MissingKeys, ", "))
		if len(existing) > 0 && !force {
			p.line("Already exist (skipped): %s", strings.Join(existing, ", "))
		}
	}
}

// Setup reports the outcome of a combined sync and generate run.
func (p *Printer) Setup(plan *dotenv.Plan, source string) {
	r := &plan.Result
	switch plan.Mode {
	case dotenv.ModeNone:
		p.line("All variables already present - nothing to do.")
	case dotenv.ModeCreate:
		if p.dryRun {
			p.line("Would create %s with these variables:", plan.Target)
			p.values(r)
			return
		}
		if source == "" {
			p.line("%s %s with generated values for: %s", p.styles.Success.Render("Created"), plan.Target, strings.Join(r.MissingKeys, ", "))
			return
		}
		p.line("%s %s from %s", p.styles.Success.Render("Created"), plan.Target, source)
	case dotenv.ModeRewrite:
		if p.dryRun {
			p.line("Would rewrite %s with %d variable(s):", plan.Target, r.MissingCount)
			p.values(r)
			return
		}
		p.line("%s %d variable(s) in %s", p.styles.Success.Render("Rewrote"), r.MissingCount, plan.Target)
	default:
		if p.dryRun {
			p.line("Would append %d variable(s) to %s:", r.MissingCount, plan.Target)
			p.values(r)
			return
		}
		p.line("%s %d variable(s) to %s", p.styles.Success.Render("Appended"), r.MissingCount, plan.Target)
	}
}

// JSONResult is the machine readable form of a run.
type JSONResult struct {
	*dotenv.Result
	Target string `json:"target"`
	Mode   string `json:"mode"`
	DryRun bool   `json:"dryRun"`
}

// WriteJSON writes the plan outcome as indented JSON.
func WriteJSON(w io.Writer, plan *dotenv.Plan, dryRun bool) error {
	out := JSONResult{
		Result: &plan.Result,
		Target: plan.Target,
		Mode:   plan.Mode.String(),
		DryRun: dryRun,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
