// Package sitter adapts the tree-sitter runtime for the rest of the
// module: grammar lookup by language label, parsing, query execution,
// and conversion of tree-sitter points (byte columns) into document
// positions (code point columns).
package sitter

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	ts "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"

	"github.com/astpad/astpad/span"
)

// Language couples a grammar with the labels and file extensions that
// select it.
type Language struct {
	Name       string
	Grammar    *ts.Language
	Aliases    []string
	Extensions []string
}

var registry = map[string]Language{}
var aliases = map[string]string{}

// Register adds a language to the lookup tables. Later registrations
// win, so callers can override a built-in grammar.
func Register(l Language) {
	registry[l.Name] = l
	for _, a := range l.Aliases {
		aliases[a] = l.Name
	}
}

// Lookup resolves a language label or alias.
func Lookup(name string) (Language, error) {
	key := strings.ToLower(name)
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	l, ok := registry[key]
	if !ok {
		return Language{}, fmt.Errorf("sitter: unknown language %q", name)
	}
	return l, nil
}

// ByExtension resolves a language from a file extension, with or
// without the leading dot.
func ByExtension(ext string) (Language, error) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	for _, l := range registry {
		for _, e := range l.Extensions {
			if e == ext {
				return l, nil
			}
		}
	}
	return Language{}, fmt.Errorf("sitter: no language for extension %q", ext)
}

// Names lists the registered language names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func init() {
	Register(Language{Name: "javascript", Grammar: javascript.GetLanguage(), Aliases: []string{"js", "jsx"}, Extensions: []string{"js", "mjs", "cjs", "jsx"}})
	Register(Language{Name: "typescript", Grammar: typescript.GetLanguage(), Aliases: []string{"ts"}, Extensions: []string{"ts", "mts", "cts"}})
	Register(Language{Name: "tsx", Grammar: tsx.GetLanguage(), Extensions: []string{"tsx"}})
	Register(Language{Name: "css", Grammar: css.GetLanguage(), Extensions: []string{"css"}})
	Register(Language{Name: "html", Grammar: html.GetLanguage(), Extensions: []string{"html", "htm"}})
	Register(Language{Name: "yaml", Grammar: yaml.GetLanguage(), Aliases: []string{"yml"}, Extensions: []string{"yaml", "yml"}})
	Register(Language{Name: "go", Grammar: golang.GetLanguage(), Aliases: []string{"golang"}, Extensions: []string{"go"}})
	Register(Language{Name: "python", Grammar: python.GetLanguage(), Aliases: []string{"py"}, Extensions: []string{"py"}})
	// YAML 1.2 is a superset of JSON, so the YAML grammar serves JSON
	// documents as well.
	Register(Language{Name: "json", Grammar: yaml.GetLanguage(), Extensions: []string{"json"}})
}

// Parser wraps a tree-sitter parser bound to one language.
type Parser struct {
	lang   Language
	parser *ts.Parser
}

// NewParser returns a parser for the given language.
func NewParser(lang Language) *Parser {
	p := ts.NewParser()
	p.SetLanguage(lang.Grammar)
	return &Parser{lang: lang, parser: p}
}

// Parse builds a syntax tree for src. The caller owns the returned
// tree and should Close it when done.
func (p *Parser) Parse(ctx context.Context, src []byte) (*ts.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("sitter: parse %s: %w", p.lang.Name, err)
	}
	return tree, nil
}

// Close releases the underlying parser.
func (p *Parser) Close() {
	p.parser.Close()
}

// Capture is one captured node from a query match.
type Capture struct {
	Name string
	Node *ts.Node
}

// QueryMatch groups the captures of one query match.
type QueryMatch struct {
	Captures []Capture
}

// RunQuery compiles pattern against the language and collects every
// match in the tree rooted at node. Query predicates such as #eq? and
// #match? are honored.
func RunQuery(lang Language, pattern string, node *ts.Node, src []byte) ([]QueryMatch, error) {
	q, err := ts.NewQuery([]byte(pattern), lang.Grammar)
	if err != nil {
		return nil, fmt.Errorf("sitter: query %s: %w", lang.Name, err)
	}
	defer q.Close()

	qc := ts.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, node)

	var out []QueryMatch
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, src)
		if len(m.Captures) == 0 {
			continue
		}
		qm := QueryMatch{Captures: make([]Capture, 0, len(m.Captures))}
		for _, c := range m.Captures {
			qm.Captures = append(qm.Captures, Capture{
				Name: q.CaptureNameForId(c.Index),
				Node: c.Node,
			})
		}
		out = append(out, qm)
	}
	return out, nil
}

// PosOf converts a tree-sitter point and its absolute byte offset to a
// zero-indexed document position with the column in code points.
func PosOf(src []byte, point ts.Point, byteOffset uint32) span.Pos {
	lineStart := int(byteOffset) - int(point.Column)
	if lineStart < 0 {
		lineStart = 0
	}
	end := int(byteOffset)
	if end > len(src) {
		end = len(src)
	}
	if lineStart > end {
		lineStart = end
	}
	return span.Pos{Row: int(point.Row), Col: utf8.RuneCount(src[lineStart:end])}
}

// MatchOf returns the document span a node covers.
func MatchOf(src []byte, n *ts.Node) span.Match {
	start := PosOf(src, n.StartPoint(), n.StartByte())
	end := PosOf(src, n.EndPoint(), n.EndByte())
	return span.Match{StartRow: start.Row, StartCol: start.Col, EndRow: end.Row, EndCol: end.Col}
}

// Errors walks the tree under root and returns the spans of ERROR and
// missing nodes. Subtrees without errors are pruned during the walk.
func Errors(src []byte, root *ts.Node) []span.Match {
	if root == nil || !root.HasError() {
		return nil
	}
	var out []span.Match
	var walk func(n *ts.Node)
	walk = func(n *ts.Node) {
		if n.Type() == "ERROR" || n.IsMissing() {
			out = append(out, MatchOf(src, n))
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return out
}
