package sitter

import (
	"context"
	"testing"

	ts "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/require"

	"github.com/astpad/astpad/span"
)

func TestLookup(t *testing.T) {
	l, err := Lookup("javascript")
	require.NoError(t, err)
	require.Equal(t, "javascript", l.Name)

	l, err = Lookup("TS")
	require.NoError(t, err)
	require.Equal(t, "typescript", l.Name)

	l, err = Lookup("yml")
	require.NoError(t, err)
	require.Equal(t, "yaml", l.Name)

	l, err = Lookup("py")
	require.NoError(t, err)
	require.Equal(t, "python", l.Name)

	_, err = Lookup("cobol")
	require.Error(t, err)
}

func TestByExtension(t *testing.T) {
	l, err := ByExtension(".tsx")
	require.NoError(t, err)
	require.Equal(t, "tsx", l.Name)

	l, err = ByExtension("css")
	require.NoError(t, err)
	require.Equal(t, "css", l.Name)

	_, err = ByExtension(".xyz")
	require.Error(t, err)
}

func TestJSONUsesYAMLGrammar(t *testing.T) {
	j, err := Lookup("json")
	require.NoError(t, err)
	y, err := Lookup("yaml")
	require.NoError(t, err)
	require.Same(t, y.Grammar, j.Grammar)
}

func TestPosOf_CountsCodePoints(t *testing.T) {
	src := []byte("héllo wörld")

	// Byte column 7 is the start of "wörld"; six code points precede it.
	got := PosOf(src, ts.Point{Row: 0, Column: 7}, 7)
	require.Equal(t, span.Pos{Row: 0, Col: 6}, got)

	// ASCII columns pass through unchanged.
	got = PosOf(src, ts.Point{Row: 0, Column: 0}, 0)
	require.Equal(t, span.Pos{Row: 0, Col: 0}, got)
}

func TestParseAndQuery(t *testing.T) {
	lang, err := Lookup("javascript")
	require.NoError(t, err)

	p := NewParser(lang)
	defer p.Close()

	src := []byte("const x = 1")
	tree, err := p.Parse(context.Background(), src)
	require.NoError(t, err)
	defer tree.Close()
	require.Equal(t, "program", tree.RootNode().Type())

	matches, err := RunQuery(lang, "(identifier) @id", tree.RootNode(), src)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "id", matches[0].Captures[0].Name)
	require.Equal(t,
		span.Match{StartRow: 0, StartCol: 6, EndRow: 0, EndCol: 7},
		MatchOf(src, matches[0].Captures[0].Node))
}

func TestRunQuery_BadPattern(t *testing.T) {
	lang, err := Lookup("javascript")
	require.NoError(t, err)

	p := NewParser(lang)
	defer p.Close()
	tree, err := p.Parse(context.Background(), []byte("x"))
	require.NoError(t, err)
	defer tree.Close()

	_, err = RunQuery(lang, "(identifier", tree.RootNode(), []byte("x"))
	require.Error(t, err)
}

func TestErrors_FindsBrokenRegions(t *testing.T) {
	lang, err := Lookup("javascript")
	require.NoError(t, err)

	p := NewParser(lang)
	defer p.Close()

	src := []byte("function (]{")
	tree, err := p.Parse(context.Background(), src)
	require.NoError(t, err)
	defer tree.Close()

	require.NotEmpty(t, Errors(src, tree.RootNode()))

	clean := []byte("const ok = 1")
	cleanTree, err := p.Parse(context.Background(), clean)
	require.NoError(t, err)
	defer cleanTree.Close()
	require.Empty(t, Errors(clean, cleanTree.RootNode()))
}
