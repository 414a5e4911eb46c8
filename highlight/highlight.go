// Package highlight turns engine match spans into editor decorations
// and keeps an editor's decoration set in step with the latest match
// results.
package highlight

import (
	"github.com/astpad/astpad/span"
	"github.com/astpad/astpad/widget"
)

// MatchClass is the style class placed on every match decoration.
// Surfaces map it to their own styling; widget/term renders it as a
// background highlight.
const MatchClass = "astpad-match"

// Build converts match spans to decorations in document order. The
// input slice is not modified. Zero-width matches are kept; they mark
// a position without covering text.
func Build(matches []span.Match) []widget.Decoration {
	if len(matches) == 0 {
		return nil
	}
	sorted := make([]span.Match, len(matches))
	copy(sorted, matches)
	span.Sort(sorted)

	decos := make([]widget.Decoration, 0, len(sorted))
	for _, m := range sorted {
		decos = append(decos, widget.Decoration{
			Range: widget.RangeFromMatch(m),
			Class: MatchClass,
		})
	}
	return decos
}

// Synchronizer owns the match decorations on one editor. Each Apply
// replaces whatever the previous Apply placed in a single step, so the
// surface never shows a mix of stale and fresh highlights.
type Synchronizer struct {
	set     widget.DecorationSet
	matches []span.Match
}

// NewSynchronizer returns a synchronizer writing to set.
func NewSynchronizer(set widget.DecorationSet) *Synchronizer {
	return &Synchronizer{set: set}
}

// Apply makes matches the complete set of highlighted regions. An
// empty or nil slice clears all match decorations. Applying the same
// matches again is harmless.
func (s *Synchronizer) Apply(matches []span.Match) {
	s.matches = append(s.matches[:0:0], matches...)
	s.set.Replace(Build(s.matches))
}

// Clear removes all match decorations.
func (s *Synchronizer) Clear() {
	s.Apply(nil)
}

// Matches returns a copy of the spans most recently applied.
func (s *Synchronizer) Matches() []span.Match {
	return append([]span.Match(nil), s.matches...)
}
