package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/astpad/astpad/engine"
	"github.com/astpad/astpad/internal/grapheme"
)

var (
	locStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "run a rule against source files",
		ArgsUsage: "file...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "rule",
				Aliases:  []string{"r"},
				Required: true,
				Usage:    "YAML rule file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit matches as JSON",
			},
		},
		Action: runScan,
	}
}

// scanMatch is one hit in the JSON output. Spans are zero-indexed
// row, col pairs; printed locations are one-indexed.
type scanMatch struct {
	File     string            `json:"file"`
	Span     [4]int            `json:"span"`
	Text     string            `json:"text"`
	Captures map[string][4]int `json:"captures,omitempty"`
}

func runScan(ctx context.Context, cmd *cli.Command) error {
	rule, err := loadRule(cmd.String("rule"))
	if err != nil {
		return err
	}
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errNoFiles
	}

	var all []scanMatch
	for _, path := range files {
		source, err := readSource(path)
		if err != nil {
			return err
		}
		matches, err := engine.Scan(ctx, rule, source)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, m := range matches {
			sm := scanMatch{File: path, Span: m.Span.Ints(), Text: m.Text}
			if len(m.Captures) > 0 {
				sm.Captures = make(map[string][4]int, len(m.Captures))
				for name, c := range m.Captures {
					sm.Captures[name] = c.Ints()
				}
			}
			all = append(all, sm)
		}
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	for _, m := range all {
		loc := fmt.Sprintf("%s:%d:%d", m.File, m.Span[0]+1, m.Span[1]+1)
		fmt.Println(locStyle.Render(loc), snippet(m.Text))
	}
	fmt.Println(faintStyle.Render(countLabel(len(all), "match", "matches")))
	return nil
}

// snippet reduces match text to its first line, clipped to a readable
// width.
func snippet(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	if grapheme.Width(line) > 80 {
		line = grapheme.Clip(line, 0, 77) + "..."
	}
	return line
}

func countLabel(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
