// Package envfile provides utilities for parsing shell-style environment files.
//
// Parsing keeps every raw line of the file so callers can remove assignments
// structurally and re-serialize the rest untouched.
package envfile

import (
	"os"
	"strings"
)

// Line is a single line of an env file.
type Line struct {
	Raw   string
	Key   string // empty for comments, blank lines and non-assignments
	Value string
}

// IsAssignment reports whether the line sets a variable.
func (l Line) IsAssignment() bool {
	return l.Key != ""
}

// File is a parsed env file. Keys keep their first-occurrence order and the
// last assignment of a key wins.
type File struct {
	Lines  []Line
	keys   []string
	values map[string]string
	eol    string
}

// Parse reads and parses the env file at path.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data)), nil
}

// ParseString parses env file content.
// It handles:
// - KEY=VALUE format, with an optional "export " prefix
// - KEY="VALUE" and KEY='VALUE' (quotes are stripped)
// - Comments (lines starting with #)
// - Empty lines (skipped)
// - Values containing = signs (only first = is used as delimiter)
// - A # comment after a quoted value
//
// Line.Raw never carries the trailing \r of a CRLF line; LineEnding reports
// which ending the content used.
func ParseString(content string) *File {
	f := &File{values: make(map[string]string), eol: "\n"}
	if strings.Contains(content, "\r\n") {
		f.eol = "\r\n"
	}
	if content == "" {
		return f
	}

	for _, raw := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		line := Line{Raw: raw}
		if key, value, ok := parseLine(raw); ok {
			line.Key = key
			line.Value = value
			if _, seen := f.values[key]; !seen {
				f.keys = append(f.keys, key)
			}
			f.values[key] = value
		}
		f.Lines = append(f.Lines, line)
	}

	return f
}

func parseLine(raw string) (key, value string, ok bool) {
	line := strings.TrimSpace(raw)

	// Skip empty lines and comments
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	line = strings.TrimPrefix(line, "export ")

	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}

	key = strings.TrimSpace(parts[0])
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	return key, unquote(strings.TrimSpace(parts[1])), true
}

func unquote(value string) string {
	if value != "" && (value[0] == '"' || value[0] == '\'') {
		if end := closingQuote(value); end > 0 {
			inner := value[1:end]
			if value[0] == '"' {
				return unescape(inner)
			}
			return inner
		}
	}

	// Inline comment on an unquoted value
	if idx := strings.Index(value, " #"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	return value
}

// closingQuote returns the index of the first quote matching value[0] that is
// followed only by whitespace or a # comment, or -1.
func closingQuote(value string) int {
	quote := value[0]
	for i := 1; i < len(value); i++ {
		switch {
		case quote == '"' && value[i] == '\\':
			i++
		case value[i] == quote:
			rest := strings.TrimSpace(value[i+1:])
			if rest == "" || strings.HasPrefix(rest, "#") {
				return i
			}
		}
	}
	return -1
}

func unescape(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}

	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '\\' || i == len(value)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch value[i] {
		case 'n':
			b.WriteByte('\n')
		case '"', '\\':
			b.WriteByte(value[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}
	return b.String()
}

// Keys returns the assigned keys in file order.
func (f *File) Keys() []string {
	keys := make([]string, len(f.keys))
	copy(keys, f.keys)
	return keys
}

// Get returns the value for key and whether it is set.
func (f *File) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Value returns the value for key, or "" when unset.
func (f *File) Value(key string) string {
	return f.values[key]
}

// Has reports whether key is assigned anywhere in the file.
func (f *File) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Len returns the number of distinct keys.
func (f *File) Len() int {
	return len(f.keys)
}

// LineEnding returns "\r\n" when the content used CRLF line endings and
// "\n" otherwise.
func (f *File) LineEnding() string {
	return f.eol
}

// Without returns the file content with every assignment of keys removed,
// joined with "\n". Keys match exactly, so removing FOO leaves FOO_BAR alone.
func (f *File) Without(keys ...string) string {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}

	kept := make([]string, 0, len(f.Lines))
	for _, line := range f.Lines {
		if line.IsAssignment() && drop[line.Key] {
			continue
		}
		kept = append(kept, line.Raw)
	}
	return strings.Join(kept, "\n")
}
