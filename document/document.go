// Package document implements the text model behind an editor session:
// lines of Unicode code points with a cursor, an optional selection, a
// language tag, and a version counter that advances on every content
// change. Positions are zero-indexed; columns count code points.
package document

import (
	"strings"

	"github.com/astpad/astpad/span"
)

// Range is a contiguous region of a document. It may run backwards
// while a selection is being dragged; Normalized puts Start first.
type Range struct {
	Start span.Pos
	End   span.Pos
}

// Normalized returns r with Start ordered before End.
func (r Range) Normalized() Range {
	if span.Compare(r.End, r.Start) < 0 {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

type selection struct {
	active bool
	anchor span.Pos
	head   span.Pos
}

// Document is a mutable text model. The zero value is not usable; call
// New. A Document is not safe for concurrent use.
type Document struct {
	lines    [][]rune
	language string
	version  uint64
	cursor   span.Pos
	goalCol  int
	sel      selection
	disposed bool
}

// New returns a document holding text, tagged with the given language.
func New(text, language string) *Document {
	return &Document{
		lines:    splitLines(text),
		language: language,
	}
}

// Text returns the full document content with \n line separators.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, line := range d.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// SetText replaces the entire content. The cursor returns to the
// document start and any selection is dropped. Setting text identical
// to the current content is a no-op and does not advance the version.
func (d *Document) SetText(text string) {
	if d.disposed || text == d.Text() {
		return
	}
	d.lines = splitLines(text)
	d.cursor = span.Pos{}
	d.goalCol = 0
	d.sel = selection{}
	d.version++
}

// Language returns the language tag the document was created with.
func (d *Document) Language() string {
	return d.language
}

// Version returns the content revision counter. It starts at 0 and
// advances by one for each applied change.
func (d *Document) Version() uint64 {
	return d.version
}

// LineCount returns the number of lines. A document always has at
// least one line; empty content is a single empty line.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the content of row, or "" when row is out of range.
func (d *Document) Line(row int) string {
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return string(d.lines[row])
}

// LineLen returns the number of code points in row, 0 when out of range.
func (d *Document) LineLen(row int) int {
	if row < 0 || row >= len(d.lines) {
		return 0
	}
	return len(d.lines[row])
}

// Cursor returns the current cursor position.
func (d *Document) Cursor() span.Pos {
	return d.cursor
}

// SetCursor moves the cursor, clamping to the document shape, and
// drops any selection.
func (d *Document) SetCursor(p span.Pos) {
	if d.disposed {
		return
	}
	d.cursor = d.clampPos(p)
	d.goalCol = d.cursor.Col
	d.sel = selection{}
}

// Selection returns the normalized selection range, if one is active
// and non-empty.
func (d *Document) Selection() (Range, bool) {
	if !d.sel.active {
		return Range{}, false
	}
	r := Range{Start: d.sel.anchor, End: d.sel.head}.Normalized()
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// Select sets the selection anchor and head directly, clamping both,
// and moves the cursor to the head.
func (d *Document) Select(anchor, head span.Pos) {
	if d.disposed {
		return
	}
	d.sel = selection{active: true, anchor: d.clampPos(anchor), head: d.clampPos(head)}
	d.cursor = d.sel.head
	d.goalCol = d.cursor.Col
}

// ClearSelection drops the selection without moving the cursor.
func (d *Document) ClearSelection() {
	d.sel = selection{}
}

// Dispose releases the document. Further mutations are ignored; reads
// keep returning the last content. Dispose is idempotent.
func (d *Document) Dispose() {
	d.disposed = true
}

// Disposed reports whether Dispose has been called.
func (d *Document) Disposed() bool {
	return d.disposed
}

func (d *Document) clampPos(p span.Pos) span.Pos {
	if len(d.lines) == 0 {
		return span.Pos{}
	}
	row := clampInt(p.Row, 0, len(d.lines)-1)
	col := clampInt(p.Col, 0, len(d.lines[row]))
	return span.Pos{Row: row, Col: col}
}

func (d *Document) clampRange(r Range) Range {
	return Range{Start: d.clampPos(r.Start), End: d.clampPos(r.End)}
}

func (d *Document) endPos() span.Pos {
	last := len(d.lines) - 1
	return span.Pos{Row: last, Col: len(d.lines[last])}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	if len(parts) == 0 {
		parts = []string{""}
	}
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	return lines
}
