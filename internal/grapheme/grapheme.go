// Package grapheme groups the Unicode-aware text helpers the terminal
// widget needs: grapheme cluster splitting and display-cell measurement.
// Document columns count code points; terminal x positions count cells.
// These helpers translate between the two.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len([]rune(text)))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Width returns the number of terminal cells text occupies.
func Width(text string) int {
	if text == "" {
		return 0
	}
	w := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w += runewidth.StringWidth(g.Str())
	}
	return w
}

// Clip returns the part of line visible in a window of the given cell
// count starting at fromCell. Clusters straddling either edge of the
// window are dropped rather than torn.
func Clip(line string, fromCell, cells int) string {
	if cells <= 0 || line == "" {
		return ""
	}
	var sb strings.Builder
	pos := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		w := runewidth.StringWidth(g.Str())
		if pos+w > fromCell+cells {
			break
		}
		if pos >= fromCell {
			sb.WriteString(g.Str())
		}
		pos += w
	}
	return sb.String()
}
