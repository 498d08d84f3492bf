package dotenv

import (
	"fmt"
	"os"
	"strings"

	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
)

// render fills in plan.After (and the append block) from the decision.
// It never touches the filesystem.
func render(plan *Plan, d Decision, opts Options, templateRaw string, current *envfile.File) {
	generated := opts.generatedSet()

	switch d.Mode {
	case ModeCreate:
		if !opts.filtering() {
			// Copy template content as-is to keep comments and quoting
			plan.After = templateRaw
			return
		}
		plan.After = block(envfile.FormatLines(d.ToWrite, plan.MissingKeyValues))

	case ModeAppend:
		text := separator(plan.Before) + block(envfile.FormatLines(d.ToWrite, plan.MissingKeyValues))
		plan.appendText = withLineEnding(text, current.LineEnding())
		plan.After = plan.Before + plan.appendText

	case ModeRewrite:
		var regen, rest []string
		for _, k := range d.ToWrite {
			if generated[k] {
				regen = append(regen, k)
			} else {
				rest = append(rest, k)
			}
		}

		body := envfile.CollapseBlankLines(current.Without(d.Replace...))
		body = strings.TrimRight(body, " \t\r\n")

		var b strings.Builder
		b.WriteString(body)
		if body != "" {
			b.WriteString("\n\n")
		}
		b.WriteString(block(envfile.FormatLines(regen, plan.MissingKeyValues)))
		if len(rest) > 0 {
			b.WriteString("\n")
			b.WriteString(block(envfile.FormatLines(rest, plan.MissingKeyValues)))
		}
		plan.After = withLineEnding(b.String(), current.LineEnding())

	default:
		plan.After = plan.Before
	}
}

// separator returns what must precede an appended block so that exactly one
// blank line separates it from existing content.
func separator(existing string) string {
	switch {
	case existing == "":
		return ""
	case strings.HasSuffix(existing, "\n"):
		return "\n"
	default:
		return "\n\n"
	}
}

// withLineEnding converts the "\n" line endings of s to eol.
func withLineEnding(s, eol string) string {
	if eol == "\n" {
		return s
	}
	return strings.ReplaceAll(s, "\n", eol)
}

func block(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Apply performs the file mutation described by the plan.
func (p *Plan) Apply() error {
	switch p.Mode {
	case ModeCreate, ModeRewrite:
		if err := os.WriteFile(p.Target, []byte(p.After), 0644); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteFailed, p.Target, err)
		}

	case ModeAppend:
		if p.appendText == "" {
			return nil
		}
		f, err := os.OpenFile(p.Target, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteFailed, p.Target, err)
		}
		defer f.Close()

		if _, err := f.WriteString(p.appendText); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteFailed, p.Target, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteFailed, p.Target, err)
		}
	}

	return nil
}
