package term

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/astpad/astpad/highlight"
)

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Decorations maps decoration classes to styles. Decorations with
	// an unmapped class render as plain text.
	Decorations map[string]lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Decorations: map[string]lipgloss.Style{
			highlight.MatchClass: lipgloss.NewStyle().Background(lipgloss.Color("58")),
		},
	}
}

func (s Style) decoration(class string) (lipgloss.Style, bool) {
	st, ok := s.Decorations[class]
	return st, ok
}
