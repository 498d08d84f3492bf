package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffLine is one line of a line-level diff.
type DiffLine struct {
	Op   diffmatchpatch.Operation
	Text string
}

// LineDiff compares before and after line by line.
func LineDiff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		for _, l := range splitLines(d.Text) {
			out = append(out, DiffLine{Op: d.Type, Text: l})
		}
	}
	return out
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// WriteDiff prints a unified-style preview of the change to path.
// Nothing is printed when the content is unchanged.
func WriteDiff(w io.Writer, styles Styles, path, before, after string) {
	if before == after {
		return
	}

	fmt.Fprintln(w, styles.DiffHeader.Render("--- "+path))
	fmt.Fprintln(w, styles.DiffHeader.Render("+++ "+path+" (after)"))
	for _, l := range LineDiff(before, after) {
		switch l.Op {
		case diffmatchpatch.DiffInsert:
			fmt.Fprintln(w, styles.DiffAdd.Render("+"+l.Text))
		case diffmatchpatch.DiffDelete:
			fmt.Fprintln(w, styles.DiffDelete.Render("-"+l.Text))
		default:
			fmt.Fprintln(w, styles.Dim.Render(" "+l.Text))
		}
	}
}
