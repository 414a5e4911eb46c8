package term

import "github.com/astpad/astpad/widget"

// decorationSet holds the decorations placed on one editor. Replace
// swaps the whole set so a repaint never shows stale marks next to
// fresh ones. The dirty flag tells the editor a repaint is due.
type decorationSet struct {
	decos []widget.Decoration
	dirty bool
}

func (s *decorationSet) Replace(decos []widget.Decoration) {
	s.decos = append(s.decos[:0:0], decos...)
	s.dirty = true
}

func (s *decorationSet) Clear() {
	s.decos = nil
	s.dirty = true
}

func (s *decorationSet) Decorations() []widget.Decoration {
	return append([]widget.Decoration(nil), s.decos...)
}

// decorationForRow returns the rune-column interval of d on row, half
// open. ok is false when the decoration does not touch the row.
func decorationForRow(d widget.Decoration, row, lineLen int) (start, end int, ok bool) {
	startRow := d.Range.Start.Line - 1
	endRow := d.Range.End.Line - 1
	if row < startRow || row > endRow {
		return 0, 0, false
	}
	start = 0
	end = lineLen
	if row == startRow {
		start = d.Range.Start.Column - 1
	}
	if row == endRow {
		end = d.Range.End.Column - 1
	}
	if start < 0 {
		start = 0
	}
	if end > lineLen {
		end = lineLen
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}
