// Package span defines the coordinate vocabulary shared by the match
// engine, the decoration layer, and the editor host.
//
// Engine coordinates are zero-indexed: rows count lines from 0, columns
// count Unicode code points from 0, and a Match covers the half-open
// region [Start, End). Editor surfaces address the same text with
// one-indexed line and column numbers; ToEditor performs that shift.
package span

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNegative is returned when a coordinate is below zero.
	ErrNegative = errors.New("span: negative coordinate")
	// ErrInverted is returned when the end position precedes the start.
	ErrInverted = errors.New("span: end position before start")
)

// Pos is a zero-indexed document position.
type Pos struct {
	Row int
	Col int
}

// Compare orders positions row-major: -1 if a precedes b, 0 if equal,
// 1 if a follows b.
func Compare(a, b Pos) int {
	if a.Row != b.Row {
		if a.Row < b.Row {
			return -1
		}
		return 1
	}
	if a.Col != b.Col {
		if a.Col < b.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Match is the region a pattern matched, as the half-open span
// [ (StartRow,StartCol), (EndRow,EndCol) ). A match may be empty
// (start equal to end); it may never run backwards.
type Match struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// New validates the four coordinates and returns the Match they denote.
func New(startRow, startCol, endRow, endCol int) (Match, error) {
	if startRow < 0 || startCol < 0 || endRow < 0 || endCol < 0 {
		return Match{}, ErrNegative
	}
	m := Match{StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol}
	if Compare(m.End(), m.Start()) < 0 {
		return Match{}, ErrInverted
	}
	return m, nil
}

// FromInts decodes the wire form [startRow, startCol, endRow, endCol].
func FromInts(vals []int) (Match, error) {
	if len(vals) != 4 {
		return Match{}, fmt.Errorf("span: want 4 coordinates, got %d", len(vals))
	}
	return New(vals[0], vals[1], vals[2], vals[3])
}

// Ints returns the wire form of m.
func (m Match) Ints() [4]int {
	return [4]int{m.StartRow, m.StartCol, m.EndRow, m.EndCol}
}

// Start returns the inclusive start position.
func (m Match) Start() Pos {
	return Pos{Row: m.StartRow, Col: m.StartCol}
}

// End returns the exclusive end position.
func (m Match) End() Pos {
	return Pos{Row: m.EndRow, Col: m.EndCol}
}

// IsEmpty reports whether the span covers no text.
func (m Match) IsEmpty() bool {
	return m.Start() == m.End()
}

// Contains reports whether p falls inside the half-open span.
func (m Match) Contains(p Pos) bool {
	return Compare(p, m.Start()) >= 0 && Compare(p, m.End()) < 0
}

// ToEditor returns the one-indexed start and end positions an editor
// surface uses to address the same region. Both row and column shift
// by one; the half-open reading is unchanged.
func (m Match) ToEditor() (start, end Pos) {
	start = Pos{Row: m.StartRow + 1, Col: m.StartCol + 1}
	end = Pos{Row: m.EndRow + 1, Col: m.EndCol + 1}
	return start, end
}

// String renders the span in row:col-row:col form for logs and errors.
func (m Match) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", m.StartRow, m.StartCol, m.EndRow, m.EndCol)
}

// Sort orders matches in document order: by start position, then by end
// position so that enclosing spans come before the spans they contain.
func Sort(ms []Match) {
	sort.Slice(ms, func(i, j int) bool {
		if c := Compare(ms[i].Start(), ms[j].Start()); c != 0 {
			return c < 0
		}
		return Compare(ms[j].End(), ms[i].End()) < 0
	})
}

// Clamp constrains m to a document with lineCount lines whose row r holds
// lineLen(r) code points. Out-of-range coordinates snap to the nearest
// valid position instead of failing.
func Clamp(m Match, lineCount int, lineLen func(row int) int) Match {
	start := clampPos(m.Start(), lineCount, lineLen)
	end := clampPos(m.End(), lineCount, lineLen)
	if Compare(end, start) < 0 {
		end = start
	}
	return Match{StartRow: start.Row, StartCol: start.Col, EndRow: end.Row, EndCol: end.Col}
}

func clampPos(p Pos, lineCount int, lineLen func(row int) int) Pos {
	if lineCount <= 0 {
		return Pos{}
	}
	row := clampInt(p.Row, 0, lineCount-1)
	col := clampInt(p.Col, 0, lineLen(row))
	return Pos{Row: row, Col: col}
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
