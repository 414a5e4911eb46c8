package document

import (
	"testing"

	"github.com/astpad/astpad/span"
)

func TestReplace_SingleLine(t *testing.T) {
	d := New("hello world", "")

	edit, ok := d.Replace(Range{
		Start: span.Pos{Row: 0, Col: 6},
		End:   span.Pos{Row: 0, Col: 11},
	}, "there")
	if !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "hello there"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := edit.Deleted, "world"; got != want {
		t.Fatalf("deleted: got %q, want %q", got, want)
	}
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 11}) {
		t.Fatalf("cursor: got %+v", got)
	}
	if got := d.Version(); got != 1 {
		t.Fatalf("version: got %d, want 1", got)
	}
}

func TestReplace_MultilineInsert(t *testing.T) {
	d := New("ab", "")
	d.SetCursor(span.Pos{Row: 0, Col: 1})

	_, ok := d.InsertText("1\n2\n3")
	if !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "a1\n2\n3b"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got := d.Cursor(); got != (span.Pos{Row: 2, Col: 1}) {
		t.Fatalf("cursor: got %+v", got)
	}
}

func TestReplace_AcrossLines(t *testing.T) {
	d := New("one\ntwo\nthree", "")

	edit, ok := d.Replace(Range{
		Start: span.Pos{Row: 0, Col: 2},
		End:   span.Pos{Row: 2, Col: 3},
	}, "ly")
	if !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "onlyee"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := edit.Deleted, "e\ntwo\nthr"; got != want {
		t.Fatalf("deleted: got %q, want %q", got, want)
	}
	if got := edit.After.End; got != (span.Pos{Row: 0, Col: 4}) {
		t.Fatalf("after end: got %+v", got)
	}
}

func TestReplace_NoOps(t *testing.T) {
	d := New("stable", "")

	if _, ok := d.Replace(Range{Start: span.Pos{Row: 0, Col: 3}, End: span.Pos{Row: 0, Col: 3}}, ""); ok {
		t.Fatalf("empty range with empty text must not apply")
	}
	if _, ok := d.Replace(Range{Start: span.Pos{Row: 0, Col: 0}, End: span.Pos{Row: 0, Col: 3}}, "sta"); ok {
		t.Fatalf("identical replacement must not apply")
	}
	if got := d.Version(); got != 0 {
		t.Fatalf("version after no-ops: got %d, want 0", got)
	}
}

func TestReplace_BackwardsRangeNormalizes(t *testing.T) {
	d := New("abcdef", "")

	_, ok := d.Replace(Range{
		Start: span.Pos{Row: 0, Col: 4},
		End:   span.Pos{Row: 0, Col: 1},
	}, "")
	if !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "aef"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestInsertText_ReplacesSelection(t *testing.T) {
	d := New("hello world", "")
	d.Select(span.Pos{Row: 0, Col: 6}, span.Pos{Row: 0, Col: 11})

	if _, ok := d.InsertText("go"); !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "hello go"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if _, ok := d.Selection(); ok {
		t.Fatalf("selection must be dropped after insert")
	}
}

func TestInsertNewline(t *testing.T) {
	d := New("split", "")
	d.SetCursor(span.Pos{Row: 0, Col: 2})

	if _, ok := d.InsertNewline(); !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "sp\nlit"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got := d.Cursor(); got != (span.Pos{Row: 1, Col: 0}) {
		t.Fatalf("cursor: got %+v", got)
	}
}

func TestDeleteBackward(t *testing.T) {
	d := New("ab\ncd", "")

	d.SetCursor(span.Pos{Row: 1, Col: 1})
	if _, ok := d.DeleteBackward(); !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "ab\nd"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}

	// At column 0 the line joins up.
	d.SetCursor(span.Pos{Row: 1, Col: 0})
	if _, ok := d.DeleteBackward(); !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "abd"; got != want {
		t.Fatalf("join: got %q, want %q", got, want)
	}
	if got := d.Cursor(); got != (span.Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor after join: got %+v", got)
	}

	// At the document start nothing happens.
	d.SetCursor(span.Pos{})
	if _, ok := d.DeleteBackward(); ok {
		t.Fatalf("backspace at start must be a no-op")
	}
}

func TestDeleteForward(t *testing.T) {
	d := New("ab\ncd", "")

	d.SetCursor(span.Pos{Row: 0, Col: 0})
	if _, ok := d.DeleteForward(); !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "b\ncd"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}

	// At end of line the next line joins up.
	d.SetCursor(span.Pos{Row: 0, Col: 1})
	if _, ok := d.DeleteForward(); !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "bcd"; got != want {
		t.Fatalf("join: got %q, want %q", got, want)
	}

	// At the document end nothing happens.
	d.SetCursor(span.Pos{Row: 0, Col: 3})
	if _, ok := d.DeleteForward(); ok {
		t.Fatalf("delete at end must be a no-op")
	}
}

func TestTextIn(t *testing.T) {
	d := New("one\ntwo\nthree", "")

	got := d.TextIn(Range{Start: span.Pos{Row: 0, Col: 1}, End: span.Pos{Row: 2, Col: 2}})
	if want := "ne\ntwo\nth"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got = d.TextIn(Range{Start: span.Pos{Row: 1, Col: 0}, End: span.Pos{Row: 1, Col: 3}})
	if want := "two"; got != want {
		t.Fatalf("single line: got %q, want %q", got, want)
	}

	if got := d.TextIn(Range{}); got != "" {
		t.Fatalf("empty range: got %q, want empty", got)
	}
}

func TestEdit_UnicodeColumnsCountCodePoints(t *testing.T) {
	d := New("héllo", "")

	_, ok := d.Replace(Range{
		Start: span.Pos{Row: 0, Col: 1},
		End:   span.Pos{Row: 0, Col: 2},
	}, "e")
	if !ok {
		t.Fatalf("want applied edit")
	}
	if got, want := d.Text(), "hello"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}
