package document

import (
	"strings"

	"github.com/astpad/astpad/span"
)

// Edit describes one applied content change. Before is the replaced
// region in pre-edit coordinates, After the region the inserted text
// occupies afterwards.
type Edit struct {
	Before   Range
	After    Range
	Inserted string
	Deleted  string
}

// Replace substitutes text for the region r. It reports false when the
// change would be a no-op (empty range with empty text, or identical
// replacement). On success the cursor lands at the end of the inserted
// text, the selection is dropped, and the version advances.
func (d *Document) Replace(r Range, text string) (Edit, bool) {
	if d.disposed {
		return Edit{}, false
	}
	edit, ok := d.splice(r, text)
	if !ok {
		return Edit{}, false
	}
	d.cursor = edit.After.End
	d.goalCol = d.cursor.Col
	d.sel = selection{}
	d.version++
	return edit, true
}

// InsertText inserts text at the cursor, replacing the selection when
// one is active.
func (d *Document) InsertText(text string) (Edit, bool) {
	if text == "" {
		return Edit{}, false
	}
	r := Range{Start: d.cursor, End: d.cursor}
	if sel, ok := d.Selection(); ok {
		r = sel
	}
	return d.Replace(r, text)
}

// InsertNewline splits the current line at the cursor.
func (d *Document) InsertNewline() (Edit, bool) {
	return d.InsertText("\n")
}

// DeleteBackward applies backspace semantics: it removes the selection
// when one is active, otherwise the code point before the cursor,
// joining with the previous line at column 0.
func (d *Document) DeleteBackward() (Edit, bool) {
	if sel, ok := d.Selection(); ok {
		return d.Replace(sel, "")
	}

	cur := d.cursor
	if cur.Row == 0 && cur.Col == 0 {
		return Edit{}, false
	}

	start := span.Pos{Row: cur.Row, Col: cur.Col - 1}
	if cur.Col == 0 {
		// Join with the previous line (delete the newline).
		start = span.Pos{Row: cur.Row - 1, Col: d.LineLen(cur.Row - 1)}
	}
	return d.Replace(Range{Start: start, End: cur}, "")
}

// DeleteForward applies delete-key semantics: it removes the selection
// when one is active, otherwise the code point after the cursor,
// joining with the next line at end of line.
func (d *Document) DeleteForward() (Edit, bool) {
	if sel, ok := d.Selection(); ok {
		return d.Replace(sel, "")
	}

	cur := d.cursor
	if cur == d.endPos() {
		return Edit{}, false
	}

	end := span.Pos{Row: cur.Row, Col: cur.Col + 1}
	if cur.Col == d.LineLen(cur.Row) {
		// Join with the next line (delete the newline).
		end = span.Pos{Row: cur.Row + 1, Col: 0}
	}
	return d.Replace(Range{Start: cur, End: end}, "")
}

// DeleteSelection removes the active selection, if any.
func (d *Document) DeleteSelection() (Edit, bool) {
	sel, ok := d.Selection()
	if !ok {
		return Edit{}, false
	}
	return d.Replace(sel, "")
}

// TextIn returns the content covered by r with \n separators.
func (d *Document) TextIn(r Range) string {
	r = d.clampRange(r.Normalized())
	if r.IsEmpty() {
		return ""
	}

	if r.Start.Row == r.End.Row {
		return string(d.lines[r.Start.Row][r.Start.Col:r.End.Col])
	}

	var sb strings.Builder
	for row := r.Start.Row; row <= r.End.Row; row++ {
		if row > r.Start.Row {
			sb.WriteByte('\n')
		}
		from, to := 0, len(d.lines[row])
		if row == r.Start.Row {
			from = r.Start.Col
		}
		if row == r.End.Row {
			to = r.End.Col
		}
		sb.WriteString(string(d.lines[row][from:to]))
	}
	return sb.String()
}

func (d *Document) splice(r Range, text string) (Edit, bool) {
	r = d.clampRange(r.Normalized())
	if r.IsEmpty() && text == "" {
		return Edit{}, false
	}
	deleted := d.TextIn(r)
	if deleted == text {
		return Edit{}, false
	}

	prefix := append([]rune(nil), d.lines[r.Start.Row][:r.Start.Col]...)
	suffix := append([]rune(nil), d.lines[r.End.Row][r.End.Col:]...)

	parts := strings.Split(text, "\n")
	repl := make([][]rune, 0, len(parts))
	var after span.Pos
	if len(parts) == 1 {
		ins := []rune(parts[0])
		line := make([]rune, 0, len(prefix)+len(ins)+len(suffix))
		line = append(line, prefix...)
		line = append(line, ins...)
		line = append(line, suffix...)
		repl = append(repl, line)
		after = span.Pos{Row: r.Start.Row, Col: len(prefix) + len(ins)}
	} else {
		first := []rune(parts[0])
		head := make([]rune, 0, len(prefix)+len(first))
		head = append(head, prefix...)
		head = append(head, first...)
		repl = append(repl, head)

		for i := 1; i < len(parts)-1; i++ {
			repl = append(repl, []rune(parts[i]))
		}

		last := []rune(parts[len(parts)-1])
		tail := make([]rune, 0, len(last)+len(suffix))
		tail = append(tail, last...)
		tail = append(tail, suffix...)
		repl = append(repl, tail)

		after = span.Pos{Row: r.Start.Row + len(parts) - 1, Col: len(last)}
	}

	before := d.lines[:r.Start.Row]
	rest := d.lines[r.End.Row+1:]
	out := make([][]rune, 0, len(before)+len(repl)+len(rest))
	out = append(out, before...)
	out = append(out, repl...)
	out = append(out, rest...)
	d.lines = out

	return Edit{
		Before:   r,
		After:    Range{Start: r.Start, End: after},
		Inserted: text,
		Deleted:  deleted,
	}, true
}
