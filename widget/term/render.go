package term

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/astpad/astpad/document"
	"github.com/astpad/astpad/internal/grapheme"
	"github.com/astpad/astpad/span"
)

// tabCells is the fixed display width of a tab.
const tabCells = 4

// cell is one rendered grapheme cluster with its rune and display-cell
// extents in the line.
type cell struct {
	text      string
	startRune int
	runes     int
	startCell int
	cells     int
}

func cellsForLine(line string) []cell {
	clusters := grapheme.Split(line)
	out := make([]cell, 0, len(clusters))
	runeCol, cellCol := 0, 0
	for _, cl := range clusters {
		text := cl
		w := runewidth.StringWidth(cl)
		n := utf8.RuneCountInString(cl)
		if cl == "\t" {
			text = strings.Repeat(" ", tabCells)
			w = tabCells
		}
		if w == 0 {
			// Zero-width clusters attach to the cell before them.
			if len(out) > 0 {
				last := &out[len(out)-1]
				last.text += cl
				last.runes += n
				runeCol += n
				continue
			}
			w = 1
		}
		out = append(out, cell{
			text:      text,
			startRune: runeCol,
			runes:     n,
			startCell: cellCol,
			cells:     w,
		})
		runeCol += n
		cellCol += w
	}
	return out
}

// cursorCell returns the display cell a cursor at rune column col sits
// on. Columns inside a cluster snap to the cluster start.
func cursorCell(cells []cell, col int) int {
	for _, c := range cells {
		if col < c.startRune+c.runes {
			return c.startCell
		}
	}
	if n := len(cells); n > 0 {
		last := cells[n-1]
		return last.startCell + last.cells
	}
	return 0
}

// gutterDigits returns the digit width of the line-number gutter,
// never below the mount-time minimum.
func (e *Editor) gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	d := len(strconv.Itoa(lineCount))
	if d < e.minDigits {
		d = e.minDigits
	}
	return d
}

func (e *Editor) renderContent() string {
	if e.doc == nil {
		return ""
	}
	lineCount := e.doc.LineCount()
	digits := 0
	if e.lineNums {
		digits = e.gutterDigits(lineCount)
	}
	cursor := e.doc.Cursor()
	sel, selOK := e.doc.Selection()
	width := e.contentWidth()

	out := make([]string, 0, lineCount)
	for row := 0; row < lineCount; row++ {
		var sb strings.Builder
		if digits > 0 {
			numStyle := e.style.LineNum
			if e.focused && row == cursor.Row {
				numStyle = e.style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(e.style.Gutter.Render(" "))
		}
		sb.WriteString(e.renderLine(row, cursor, sel, selOK, width))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

type paintKind uint8

const (
	paintText paintKind = iota
	paintDeco
	paintSelection
	paintCursor
)

type rowDeco struct {
	start, end int
	style      lipgloss.Style
	styled     bool
}

func (e *Editor) renderLine(row int, cursor span.Pos, sel document.Range, selOK bool, width int) string {
	line := e.doc.Line(row)
	cells := cellsForLine(line)
	lineLen := e.doc.LineLen(row)

	hasCursor := e.focused && cursor.Row == row
	selStart, selEnd, hasSel := 0, 0, false
	if selOK {
		selStart, selEnd, hasSel = selectionForRow(sel, row, lineLen)
	}

	var decos []rowDeco
	for _, d := range e.decos.decos {
		if start, end, ok := decorationForRow(d, row, lineLen); ok {
			st, styled := e.style.decoration(d.Class)
			decos = append(decos, rowDeco{start: start, end: end, style: st, styled: styled})
		}
	}

	left := e.xOffset
	right := left + width
	if width <= 0 {
		// Unsized editors render full lines; the viewport clips.
		left = 0
		right = int(^uint(0) >> 1)
	}

	var sb strings.Builder
	runKind, runDeco := paintText, -1
	var run strings.Builder
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(e.paintStyle(runKind, runDeco, decos).Render(run.String()))
		run.Reset()
	}

	for _, c := range cells {
		segL, segR := c.startCell, c.startCell+c.cells
		spanL, spanR := max(segL, left), min(segR, right)
		if spanL >= spanR {
			continue
		}

		kind, decoIdx := paintFor(c, hasCursor, cursor.Col, hasSel, selStart, selEnd, decos)
		text := c.text
		if spanL != segL || spanR != segR {
			// Partial wide cluster at a window edge keeps alignment
			// with blanks.
			kind, decoIdx = paintText, -1
			text = strings.Repeat(" ", spanR-spanL)
		}
		if kind != runKind || decoIdx != runDeco {
			flush()
			runKind, runDeco = kind, decoIdx
		}
		run.WriteString(text)
	}
	flush()

	// Cursor at EOL renders as a one-cell placeholder space.
	if hasCursor && cursor.Col >= lineLen {
		eol := 0
		if n := len(cells); n > 0 {
			eol = cells[n-1].startCell + cells[n-1].cells
		}
		if eol >= left && eol < right {
			sb.WriteString(e.style.Cursor.Render(" "))
		}
	}
	return sb.String()
}

func (e *Editor) paintStyle(kind paintKind, decoIdx int, decos []rowDeco) lipgloss.Style {
	switch kind {
	case paintCursor:
		return e.style.Cursor
	case paintSelection:
		return e.style.Selection
	case paintDeco:
		if decoIdx >= 0 && decoIdx < len(decos) && decos[decoIdx].styled {
			return decos[decoIdx].style.Inherit(e.style.Text)
		}
		return e.style.Text
	default:
		return e.style.Text
	}
}

func paintFor(c cell, hasCursor bool, cursorCol int, hasSel bool, selStart, selEnd int, decos []rowDeco) (paintKind, int) {
	if hasCursor && cursorCol >= c.startRune && cursorCol < c.startRune+c.runes {
		return paintCursor, -1
	}
	if hasSel && c.startRune < selEnd && c.startRune+c.runes > selStart {
		return paintSelection, -1
	}
	for i, d := range decos {
		if c.startRune < d.end && c.startRune+c.runes > d.start {
			return paintDeco, i
		}
	}
	return paintText, -1
}

func selectionForRow(sel document.Range, row, lineLen int) (start, end int, ok bool) {
	sel = sel.Normalized()
	if row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start = 0
	end = lineLen
	if row == sel.Start.Row {
		start = sel.Start.Col
	}
	if row == sel.End.Row {
		end = sel.End.Col
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
