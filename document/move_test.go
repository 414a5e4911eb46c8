package document

import (
	"testing"

	"github.com/astpad/astpad/span"
)

func TestMoveLeftRight_WrapsLines(t *testing.T) {
	d := New("ab\ncd", "")

	d.SetCursor(span.Pos{Row: 1, Col: 0})
	d.MoveLeft(false)
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 2}) {
		t.Fatalf("left wrap: got %+v", got)
	}

	d.MoveRight(false)
	if got := d.Cursor(); got != (span.Pos{Row: 1, Col: 0}) {
		t.Fatalf("right wrap: got %+v", got)
	}
}

func TestMoveLeftRight_CollapsesSelection(t *testing.T) {
	d := New("abcdef", "")
	d.Select(span.Pos{Row: 0, Col: 1}, span.Pos{Row: 0, Col: 4})

	d.MoveLeft(false)
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 1}) {
		t.Fatalf("collapse left: got %+v", got)
	}
	if _, ok := d.Selection(); ok {
		t.Fatalf("selection must be dropped")
	}

	d.Select(span.Pos{Row: 0, Col: 1}, span.Pos{Row: 0, Col: 4})
	d.MoveRight(false)
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 4}) {
		t.Fatalf("collapse right: got %+v", got)
	}
}

func TestMoveVertical_StickyColumn(t *testing.T) {
	d := New("longer line\nab\nanother long", "")
	d.SetCursor(span.Pos{Row: 0, Col: 8})

	d.MoveDown(false)
	if got := d.Cursor(); got != (span.Pos{Row: 1, Col: 2}) {
		t.Fatalf("down onto short line: got %+v", got)
	}

	d.MoveDown(false)
	if got := d.Cursor(); got != (span.Pos{Row: 2, Col: 8}) {
		t.Fatalf("goal column must stick: got %+v", got)
	}
}

func TestMoveVertical_Edges(t *testing.T) {
	d := New("one\ntwo", "")

	d.SetCursor(span.Pos{Row: 0, Col: 2})
	d.MoveUp(false)
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 0}) {
		t.Fatalf("up at first line: got %+v", got)
	}

	d.SetCursor(span.Pos{Row: 1, Col: 1})
	d.MoveDown(false)
	if got := d.Cursor(); got != (span.Pos{Row: 1, Col: 3}) {
		t.Fatalf("down at last line: got %+v", got)
	}
}

func TestMoveExtend_GrowsSelection(t *testing.T) {
	d := New("hello", "")
	d.SetCursor(span.Pos{Row: 0, Col: 1})

	d.MoveRight(true)
	d.MoveRight(true)

	sel, ok := d.Selection()
	if !ok {
		t.Fatalf("want active selection")
	}
	if sel.Start != (span.Pos{Row: 0, Col: 1}) || sel.End != (span.Pos{Row: 0, Col: 3}) {
		t.Fatalf("selection: got %+v", sel)
	}
	if got, want := d.TextIn(sel), "el"; got != want {
		t.Fatalf("selected text: got %q, want %q", got, want)
	}
}

func TestMoveLineAndDoc(t *testing.T) {
	d := New("first\nlast line", "")
	d.SetCursor(span.Pos{Row: 1, Col: 4})

	d.MoveLineStart(false)
	if got := d.Cursor(); got != (span.Pos{Row: 1, Col: 0}) {
		t.Fatalf("line start: got %+v", got)
	}
	d.MoveLineEnd(false)
	if got := d.Cursor(); got != (span.Pos{Row: 1, Col: 9}) {
		t.Fatalf("line end: got %+v", got)
	}
	d.MoveDocStart(false)
	if got := d.Cursor(); got != (span.Pos{}) {
		t.Fatalf("doc start: got %+v", got)
	}
	d.MoveDocEnd(false)
	if got := d.Cursor(); got != (span.Pos{Row: 1, Col: 9}) {
		t.Fatalf("doc end: got %+v", got)
	}
}

func TestMoveWord(t *testing.T) {
	d := New("foo bar.baz", "")

	d.SetCursor(span.Pos{})
	d.MoveWordRight(false)
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 3}) {
		t.Fatalf("word right: got %+v", got)
	}
	d.MoveWordRight(false)
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 7}) {
		t.Fatalf("word right over space: got %+v", got)
	}
	d.MoveWordRight(false)
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 8}) {
		t.Fatalf("word right over punct: got %+v", got)
	}

	d.MoveWordLeft(false)
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 7}) {
		t.Fatalf("word left over punct: got %+v", got)
	}
	d.MoveWordLeft(false)
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 4}) {
		t.Fatalf("word left: got %+v", got)
	}
}

func TestMoveWord_AcrossLines(t *testing.T) {
	d := New("end\nnext", "")

	d.SetCursor(span.Pos{Row: 0, Col: 3})
	d.MoveWordRight(false)
	if got := d.Cursor(); got != (span.Pos{Row: 1, Col: 0}) {
		t.Fatalf("word right at line end: got %+v", got)
	}

	d.MoveWordLeft(false)
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 3}) {
		t.Fatalf("word left at line start: got %+v", got)
	}
}
