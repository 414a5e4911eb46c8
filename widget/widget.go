// Package widget defines the capability surface an editor host drives:
// a factory that mounts editors into platform containers, text models,
// decoration sets, and the event hooks a surface must expose. The host
// package works entirely against these interfaces; widget/term carries
// the terminal implementation.
//
// Surface coordinates are one-indexed: the first line is 1 and the
// first column is 1. Engine coordinates (package span) are zero-indexed
// and convert via RangeFromMatch.
package widget

import (
	"errors"

	"github.com/astpad/astpad/span"
)

// ErrContainer is returned by a factory handed a container type it does
// not support.
var ErrContainer = errors.New("widget: unsupported container")

// Container is the opaque platform surface an editor mounts into. Each
// factory documents the concrete types it accepts.
type Container = any

// Position is a one-indexed surface position.
type Position struct {
	Line   int
	Column int
}

// PositionFromSpan converts a zero-indexed document position to the
// surface form.
func PositionFromSpan(p span.Pos) Position {
	return Position{Line: p.Row + 1, Column: p.Col + 1}
}

// Span converts back to the zero-indexed document form.
func (p Position) Span() span.Pos {
	return span.Pos{Row: p.Line - 1, Col: p.Column - 1}
}

// Range is a half-open surface region: Start is inside, End is the
// first position beyond it.
type Range struct {
	Start Position
	End   Position
}

// RangeFromMatch converts an engine match span to surface coordinates.
func RangeFromMatch(m span.Match) Range {
	start, end := m.ToEditor()
	return Range{
		Start: Position{Line: start.Row, Column: start.Col},
		End:   Position{Line: end.Row, Column: end.Col},
	}
}

// Decoration marks a surface range with a style class.
type Decoration struct {
	Range Range
	Class string
}

// Options configures editor creation. Layout stays host-driven in
// every case: a surface never resizes itself, the mounting application
// forwards size changes. Surfaces honor the options they can express
// and ignore the rest.
type Options struct {
	// ReadOnly rejects all content mutations from user input. The
	// model can still be replaced or rewritten programmatically.
	ReadOnly bool
	// WordWrap requests soft wrapping of long lines. Surfaces without
	// wrapping scroll horizontally instead.
	WordWrap bool
	// Minimap requests a document overview strip beside the text.
	Minimap bool
	// InlineSuggestions requests ghost-text completion previews.
	InlineSuggestions bool
	// GutterDigits is the minimum digit width of the line-number
	// gutter. Zero keeps the surface default.
	GutterDigits int
}

// ChangeEvent reports a content change. Text is the full document
// content after the change; Version is the model revision that
// produced it. Events fire once per applied change, with no
// coalescing or delay.
type ChangeEvent struct {
	Text    string
	Version uint64
}

// CursorEvent reports that the primary cursor moved.
type CursorEvent struct {
	Position Position
}

// Model is the text document behind an editor.
type Model interface {
	// Text returns the full content with \n separators.
	Text() string
	// SetText replaces the content, resetting the cursor to the start.
	// Setting identical text is a no-op.
	SetText(text string)
	// Language returns the language tag the model was created with.
	Language() string
	// Version returns the content revision counter.
	Version() uint64
	// Dispose releases the model. Disposed models ignore mutations.
	Dispose()
}

// DecorationSet manages the decorations one owner has placed on an
// editor. Replace swaps the owner's decorations in one step so stale
// marks never coexist with fresh ones.
type DecorationSet interface {
	Replace(decos []Decoration)
	Clear()
	Decorations() []Decoration
}

// Editor is a mounted editing surface.
type Editor interface {
	// Model returns the current text model.
	Model() Model
	// SetModel swaps in a different model. The view resets: cursor to
	// line 1 column 1, scroll to the top. The swap fires no change or
	// cursor events. The previous model is not disposed; that is the
	// caller's decision.
	SetModel(m Model)
	// Decorations returns the editor's decoration set.
	Decorations() DecorationSet
	// Cursor returns the primary cursor position.
	Cursor() Position
	// SetCursor moves the primary cursor, clamping to the content.
	SetCursor(p Position)
	// SetReadOnly toggles rejection of user input mutations.
	SetReadOnly(ro bool)
	// SetChangeHandler registers the single content-change callback.
	// A nil handler unregisters.
	SetChangeHandler(fn func(ChangeEvent))
	// SetCursorHandler registers the single cursor-move callback.
	// A nil handler unregisters.
	SetCursorHandler(fn func(CursorEvent))
	// Dispose detaches the editor from its container and drops its
	// handlers. Dispose is idempotent.
	Dispose()
}

// Factory creates editors and models for one platform surface.
type Factory interface {
	// New mounts a fresh editor into container. It returns
	// ErrContainer when the container type is not supported.
	New(container Container, opts Options) (Editor, error)
	// NewModel creates a detached text model.
	NewModel(text, language string) Model
}
