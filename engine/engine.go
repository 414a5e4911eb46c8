// Package engine runs structural queries over source code and applies
// rule-driven rewrites. Queries are tree-sitter patterns; rules add a
// target capture, regex constraints on captures, and a fix template.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/astpad/astpad/engine/sitter"
	"github.com/astpad/astpad/span"
)

// Match is one query hit in a source document.
type Match struct {
	// Span covers the matched region: the target capture when the rule
	// names one, otherwise the smallest region enclosing all captures.
	Span span.Match
	// Text is the source text the span covers.
	Text string
	// Captures maps capture names to their regions.
	Captures map[string]span.Match
}

// FindAll returns every match of a bare tree-sitter pattern.
func FindAll(ctx context.Context, language, pattern, source string) ([]Match, error) {
	return Scan(ctx, Rule{Language: language, Query: pattern}, source)
}

// Scan returns every match of the rule, with constraints applied.
func Scan(ctx context.Context, r Rule, source string) ([]Match, error) {
	hits, err := run(ctx, r, []byte(source))
	if err != nil {
		return nil, err
	}
	out := make([]Match, 0, len(hits))
	for _, h := range hits {
		out = append(out, Match{Span: h.span, Text: h.text, Captures: h.captureSpans()})
	}
	return out, nil
}

// Rewrite applies the rule's fix to every constrained match and
// returns the rewritten source along with the edits it applied.
// Matches overlapping an earlier edit are skipped.
func Rewrite(ctx context.Context, r Rule, source string) (string, []Edit, error) {
	if r.Fix == "" {
		return "", nil, ErrNoFix
	}
	hits, err := run(ctx, r, []byte(source))
	if err != nil {
		return "", nil, err
	}
	edits := make([]Edit, 0, len(hits))
	for _, h := range hits {
		edits = append(edits, Edit{
			Position: h.startByte,
			Deleted:  h.endByte - h.startByte,
			Inserted: expandFix(r.Fix, h.captureTexts()),
		})
	}
	return Apply(source, edits), edits, nil
}

type capture struct {
	span      span.Match
	text      string
	startByte int
	endByte   int
}

type hit struct {
	span      span.Match
	text      string
	startByte int
	endByte   int
	captures  map[string]capture
}

func (h hit) captureSpans() map[string]span.Match {
	if len(h.captures) == 0 {
		return nil
	}
	out := make(map[string]span.Match, len(h.captures))
	for name, c := range h.captures {
		out[name] = c.span
	}
	return out
}

func (h hit) captureTexts() map[string]string {
	out := make(map[string]string, len(h.captures))
	for name, c := range h.captures {
		out[name] = c.text
	}
	return out
}

func run(ctx context.Context, r Rule, src []byte) ([]hit, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	lang, err := sitter.Lookup(r.Language)
	if err != nil {
		return nil, err
	}
	constraints, err := compileConstraints(r.Where)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser(lang)
	defer parser.Close()
	tree, err := parser.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	qms, err := sitter.RunQuery(lang, r.Query, tree.RootNode(), src)
	if err != nil {
		return nil, err
	}

	hits := make([]hit, 0, len(qms))
matches:
	for _, qm := range qms {
		h := hit{captures: make(map[string]capture, len(qm.Captures))}
		first := true
		for _, qc := range qm.Captures {
			c := capture{
				span:      sitter.MatchOf(src, qc.Node),
				text:      qc.Node.Content(src),
				startByte: int(qc.Node.StartByte()),
				endByte:   int(qc.Node.EndByte()),
			}
			h.captures[qc.Name] = c
			if first || c.startByte < h.startByte {
				h.startByte = c.startByte
			}
			if first || c.endByte > h.endByte {
				h.endByte = c.endByte
			}
			first = false
		}

		for _, con := range constraints {
			c, ok := h.captures[con.capture]
			if !ok || !con.re.MatchString(c.text) {
				continue matches
			}
		}

		if r.Capture != "" {
			c, ok := h.captures[r.Capture]
			if !ok {
				continue
			}
			h.startByte, h.endByte = c.startByte, c.endByte
			h.span, h.text = c.span, c.text
		} else {
			h.text = string(src[h.startByte:h.endByte])
			h.span = enclosingSpan(h.captures)
		}
		hits = append(hits, h)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].startByte != hits[j].startByte {
			return hits[i].startByte < hits[j].startByte
		}
		return hits[i].endByte > hits[j].endByte
	})
	return hits, nil
}

func enclosingSpan(captures map[string]capture) span.Match {
	var m span.Match
	first := true
	for _, c := range captures {
		if first {
			m = c.span
			first = false
			continue
		}
		if span.Compare(c.span.Start(), m.Start()) < 0 {
			m.StartRow, m.StartCol = c.span.StartRow, c.span.StartCol
		}
		if span.Compare(c.span.End(), m.End()) > 0 {
			m.EndRow, m.EndCol = c.span.EndRow, c.span.EndCol
		}
	}
	return m
}

type constraint struct {
	capture string
	re      *regexp.Regexp
}

func compileConstraints(where []Constraint) ([]constraint, error) {
	out := make([]constraint, 0, len(where))
	for _, w := range where {
		re, err := regexp.Compile(w.Matches)
		if err != nil {
			return nil, fmt.Errorf("engine: constraint on %q: %w", w.Capture, err)
		}
		out = append(out, constraint{capture: w.Capture, re: re})
	}
	return out, nil
}
