package worker

import (
	"context"
	"sort"
	"strings"

	"github.com/astpad/astpad/engine/sitter"
	"github.com/astpad/astpad/span"
)

func (w *Worker) tokenize(ctx context.Context, text string) ([]Token, error) {
	if w.kind == KindDefault || text == "" {
		return nil, nil
	}

	src := []byte(text)
	p := sitter.NewParser(w.lang)
	defer p.Close()
	tree, err := p.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	qms, err := sitter.RunQuery(w.lang, w.queryText, tree.RootNode(), src)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(text, "\n")
	var tokens []Token
	for _, qm := range qms {
		for _, c := range qm.Captures {
			m := sitter.MatchOf(src, c.Node)
			tokens = appendRowTokens(tokens, m, c.Name, lines)
		}
	}

	sort.Slice(tokens, func(i, j int) bool {
		a, b := tokens[i], tokens[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.StartCol != b.StartCol {
			return a.StartCol < b.StartCol
		}
		if a.EndCol != b.EndCol {
			return a.EndCol < b.EndCol
		}
		return a.Class < b.Class
	})
	return dedupe(tokens), nil
}

// appendRowTokens splits a span over its rows: tokens never cross line
// boundaries.
func appendRowTokens(tokens []Token, m span.Match, class string, lines []string) []Token {
	if m.StartRow == m.EndRow {
		if m.StartCol < m.EndCol {
			tokens = append(tokens, Token{Row: m.StartRow, StartCol: m.StartCol, EndCol: m.EndCol, Class: class})
		}
		return tokens
	}
	for row := m.StartRow; row <= m.EndRow && row < len(lines); row++ {
		start, end := 0, len([]rune(lines[row]))
		if row == m.StartRow {
			start = m.StartCol
		}
		if row == m.EndRow {
			end = m.EndCol
		}
		if start < end {
			tokens = append(tokens, Token{Row: row, StartCol: start, EndCol: end, Class: class})
		}
	}
	return tokens
}

func dedupe(tokens []Token) []Token {
	if len(tokens) < 2 {
		return tokens
	}
	out := tokens[:1]
	for _, t := range tokens[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}
