package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffDelStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	diffCtxStyle = lipgloss.NewStyle().Faint(true)
)

// renderUnifiedDiff renders a line diff between two versions of a
// document, prefixed with a two-line header naming it. Equal inputs
// render nothing.
func renderUnifiedDiff(name, before, after string) string {
	if before == after {
		return ""
	}

	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var sb strings.Builder
	if name != "" {
		fmt.Fprintf(&sb, "--- %s\n+++ %s\n", name, name)
	}
	for _, df := range diffs {
		prefix, style := "  ", diffCtxStyle
		switch df.Type {
		case dmp.DiffDelete:
			prefix, style = "- ", diffDelStyle
		case dmp.DiffInsert:
			prefix, style = "+ ", diffAddStyle
		}
		for _, line := range diffFragmentLines(df.Text) {
			sb.WriteString(style.Render(prefix + line))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// diffFragmentLines splits a line-mode fragment into lines, dropping
// the trailing newline the line diff keeps on every fragment.
func diffFragmentLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
