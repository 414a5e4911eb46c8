package engine

import (
	"context"
	"fmt"
	"strings"

	ts "github.com/smacker/go-tree-sitter"

	"github.com/astpad/astpad/engine/sitter"
	"github.com/astpad/astpad/span"
)

// Node is one node of a dumped syntax tree.
type Node struct {
	Kind     string
	Span     span.Match
	Named    bool
	Children []*Node
}

// DumpTree parses source and returns its full syntax tree, anonymous
// nodes included.
func DumpTree(ctx context.Context, language, source string) (*Node, error) {
	lang, err := sitter.Lookup(language)
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser(lang)
	defer parser.Close()

	src := []byte(source)
	tree, err := parser.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return convertNode(src, tree.RootNode()), nil
}

func convertNode(src []byte, n *ts.Node) *Node {
	out := &Node{
		Kind:  n.Type(),
		Span:  sitter.MatchOf(src, n),
		Named: n.IsNamed(),
	}
	count := int(n.ChildCount())
	if count > 0 {
		out.Children = make([]*Node, 0, count)
		for i := 0; i < count; i++ {
			out.Children = append(out.Children, convertNode(src, n.Child(i)))
		}
	}
	return out
}

// Render writes the tree in indented form, one node per line. Only
// named nodes are printed unless anonymous is set.
func (n *Node) Render(anonymous bool) string {
	var sb strings.Builder
	n.render(&sb, 0, anonymous)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder, depth int, anonymous bool) {
	if n.Named || anonymous {
		fmt.Fprintf(sb, "%s%s %s\n", strings.Repeat("  ", depth), n.Kind, n.Span)
		depth++
	}
	for _, c := range n.Children {
		c.render(sb, depth, anonymous)
	}
}
