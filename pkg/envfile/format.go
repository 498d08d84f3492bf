package envfile

import "strings"

var valueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// FormatLine renders a KEY="value" assignment.
func FormatLine(key, value string) string {
	return key + `="` + valueEscaper.Replace(value) + `"`
}

// FormatLines renders one assignment per key, in order, using values.
func FormatLines(keys []string, values map[string]string) []string {
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, FormatLine(k, values[k]))
	}
	return lines
}

// CollapseBlankLines reduces every run of blank lines to a single blank line.
func CollapseBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if blank {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
