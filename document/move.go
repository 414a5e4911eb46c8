package document

import (
	"unicode"

	"github.com/astpad/astpad/span"
)

// MoveLeft moves the cursor one code point left, wrapping to the end
// of the previous line. Without extend, an active selection collapses
// to its start instead of moving.
func (d *Document) MoveLeft(extend bool) {
	if !extend {
		if sel, ok := d.Selection(); ok {
			d.collapseTo(sel.Start)
			return
		}
	}
	cur := d.cursor
	switch {
	case cur.Col > 0:
		cur.Col--
	case cur.Row > 0:
		cur.Row--
		cur.Col = d.LineLen(cur.Row)
	}
	d.moveTo(cur, extend)
}

// MoveRight moves the cursor one code point right, wrapping to the
// start of the next line. Without extend, an active selection
// collapses to its end instead of moving.
func (d *Document) MoveRight(extend bool) {
	if !extend {
		if sel, ok := d.Selection(); ok {
			d.collapseTo(sel.End)
			return
		}
	}
	cur := d.cursor
	switch {
	case cur.Col < d.LineLen(cur.Row):
		cur.Col++
	case cur.Row < len(d.lines)-1:
		cur.Row++
		cur.Col = 0
	}
	d.moveTo(cur, extend)
}

// MoveUp moves the cursor one line up, keeping the sticky goal column.
func (d *Document) MoveUp(extend bool) {
	cur := d.cursor
	if cur.Row == 0 {
		cur.Col = 0
	} else {
		cur.Row--
		cur.Col = clampInt(d.goalCol, 0, d.LineLen(cur.Row))
	}
	d.moveVertical(cur, extend)
}

// MoveDown moves the cursor one line down, keeping the sticky goal column.
func (d *Document) MoveDown(extend bool) {
	cur := d.cursor
	if cur.Row == len(d.lines)-1 {
		cur.Col = d.LineLen(cur.Row)
	} else {
		cur.Row++
		cur.Col = clampInt(d.goalCol, 0, d.LineLen(cur.Row))
	}
	d.moveVertical(cur, extend)
}

// MoveLineStart moves the cursor to column 0 of the current line.
func (d *Document) MoveLineStart(extend bool) {
	d.moveTo(span.Pos{Row: d.cursor.Row, Col: 0}, extend)
}

// MoveLineEnd moves the cursor past the last code point of the line.
func (d *Document) MoveLineEnd(extend bool) {
	d.moveTo(span.Pos{Row: d.cursor.Row, Col: d.LineLen(d.cursor.Row)}, extend)
}

// MoveDocStart moves the cursor to the first position of the document.
func (d *Document) MoveDocStart(extend bool) {
	d.moveTo(span.Pos{}, extend)
}

// MoveDocEnd moves the cursor past the last code point of the document.
func (d *Document) MoveDocEnd(extend bool) {
	d.moveTo(d.endPos(), extend)
}

// MoveWordLeft moves to the start of the previous word.
func (d *Document) MoveWordLeft(extend bool) {
	cur := d.cursor
	if cur.Col == 0 {
		if cur.Row == 0 {
			return
		}
		d.moveTo(span.Pos{Row: cur.Row - 1, Col: d.LineLen(cur.Row - 1)}, extend)
		return
	}

	line := d.lines[cur.Row]
	col := cur.Col
	for col > 0 && runeClass(line[col-1]) == classSpace {
		col--
	}
	if col > 0 {
		cls := runeClass(line[col-1])
		for col > 0 && runeClass(line[col-1]) == cls {
			col--
		}
	}
	d.moveTo(span.Pos{Row: cur.Row, Col: col}, extend)
}

// MoveWordRight moves past the end of the next word.
func (d *Document) MoveWordRight(extend bool) {
	cur := d.cursor
	line := d.lines[cur.Row]
	if cur.Col >= len(line) {
		if cur.Row == len(d.lines)-1 {
			return
		}
		d.moveTo(span.Pos{Row: cur.Row + 1, Col: 0}, extend)
		return
	}

	col := cur.Col
	for col < len(line) && runeClass(line[col]) == classSpace {
		col++
	}
	if col < len(line) {
		cls := runeClass(line[col])
		for col < len(line) && runeClass(line[col]) == cls {
			col++
		}
	}
	d.moveTo(span.Pos{Row: cur.Row, Col: col}, extend)
}

func (d *Document) moveTo(p span.Pos, extend bool) {
	p = d.clampPos(p)
	if extend {
		if !d.sel.active {
			d.sel = selection{active: true, anchor: d.cursor}
		}
		d.sel.head = p
	} else {
		d.sel = selection{}
	}
	d.cursor = p
	d.goalCol = p.Col
}

// moveVertical is moveTo without resetting the goal column.
func (d *Document) moveVertical(p span.Pos, extend bool) {
	goal := d.goalCol
	d.moveTo(p, extend)
	if p.Col < goal {
		d.goalCol = goal
	}
}

func (d *Document) collapseTo(p span.Pos) {
	d.sel = selection{}
	d.cursor = d.clampPos(p)
	d.goalCol = d.cursor.Col
}

type charClass uint8

const (
	classSpace charClass = iota
	classWord
	classPunct
)

func runeClass(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return classWord
	default:
		return classPunct
	}
}
