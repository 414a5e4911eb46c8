package term

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/astpad/astpad/widget"
)

type memClipboard struct {
	s string
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	e := newEditor(t, nil, "ab", "javascript")

	e.Update(tea.KeyMsg{Type: tea.KeyRight})
	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := e.Model().Text(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := e.Cursor(); got != (widget.Position{Line: 1, Column: 3}) {
		t.Fatalf("cursor after insert: got %+v, want 1:3", got)
	}

	e.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := e.Model().Text(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}
	if got := e.Cursor(); got != (widget.Position{Line: 1, Column: 2}) {
		t.Fatalf("cursor after backspace: got %+v, want 1:2", got)
	}
}

func TestUpdate_ReadOnly_IgnoresMutations(t *testing.T) {
	e := newEditor(t, nil, "ab", "javascript")
	e.SetReadOnly(true)

	e.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := e.Cursor(); got != (widget.Position{Line: 1, Column: 2}) {
		t.Fatalf("cursor after move: got %+v, want 1:2", got)
	}

	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := e.Model().Text(); got != "ab" {
		t.Fatalf("text after insert in read-only: got %q, want %q", got, "ab")
	}

	e.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := e.Model().Text(); got != "ab" {
		t.Fatalf("text after backspace in read-only: got %q, want %q", got, "ab")
	}
}

func TestUpdate_CopyCutPaste(t *testing.T) {
	cb := &memClipboard{}
	f := &Factory{Style: &Style{}, Clipboard: cb}
	e := newEditor(t, f, "hello", "javascript")

	e.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	e.Update(tea.KeyMsg{Type: tea.KeyShiftRight})

	e.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if got := cb.s; got != "he" {
		t.Fatalf("clipboard after copy: got %q, want %q", got, "he")
	}

	e.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := e.Model().Text(); got != "llo" {
		t.Fatalf("text after cut: got %q, want %q", got, "llo")
	}
	if got := e.Cursor(); got != (widget.Position{Line: 1, Column: 1}) {
		t.Fatalf("cursor after cut: got %+v, want 1:1", got)
	}

	e.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := e.Model().Text(); got != "hello" {
		t.Fatalf("text after paste: got %q, want %q", got, "hello")
	}
}

func TestUpdate_PasteNormalizesNewlines(t *testing.T) {
	cb := &memClipboard{s: "a\r\nb\rc"}
	f := &Factory{Style: &Style{}, Clipboard: cb}
	e := newEditor(t, f, "", "javascript")

	e.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := e.Model().Text(); got != "a\nb\nc" {
		t.Fatalf("text after paste: got %q, want %q", got, "a\nb\nc")
	}
}

func TestUpdate_BracketedPasteInsertsLiteral(t *testing.T) {
	e := newEditor(t, nil, "", "javascript")
	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x\r\ny"), Paste: true})
	if got := e.Model().Text(); got != "x\ny" {
		t.Fatalf("text after bracketed paste: got %q, want %q", got, "x\ny")
	}
}

func TestUpdate_EmitsEvents(t *testing.T) {
	e := newEditor(t, nil, "ab", "javascript")

	var changes []widget.ChangeEvent
	var cursors []widget.CursorEvent
	e.SetChangeHandler(func(ev widget.ChangeEvent) { changes = append(changes, ev) })
	e.SetCursorHandler(func(ev widget.CursorEvent) { cursors = append(cursors, ev) })

	// Pure motion: cursor event only.
	e.Update(tea.KeyMsg{Type: tea.KeyRight})
	if len(changes) != 0 {
		t.Fatalf("motion fired %d change events", len(changes))
	}
	if len(cursors) != 1 {
		t.Fatalf("motion fired %d cursor events, want 1", len(cursors))
	}

	// One keystroke, one change event with the full text.
	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if len(changes) != 1 {
		t.Fatalf("insert fired %d change events, want 1", len(changes))
	}
	if changes[0].Text != "aXb" {
		t.Fatalf("change text = %q, want %q", changes[0].Text, "aXb")
	}
	if changes[0].Version != e.Model().Version() {
		t.Fatalf("change version = %d, want %d", changes[0].Version, e.Model().Version())
	}
	if len(cursors) != 2 {
		t.Fatalf("insert fired %d cursor events total, want 2", len(cursors))
	}
}

func TestUpdate_ViewportFollowsCursor_Minimal(t *testing.T) {
	e := newEditor(t, nil, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9", "javascript")
	e.SetSize(10, 3)

	if got := e.viewport.YOffset; got != 0 {
		t.Fatalf("initial yoffset: got %d, want 0", got)
	}

	// Move to row 2: still visible, no scroll.
	e.Update(tea.KeyMsg{Type: tea.KeyDown})
	e.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := e.viewport.YOffset; got != 0 {
		t.Fatalf("yoffset at row 2: got %d, want 0", got)
	}

	// Move to row 3: scroll down by one line.
	e.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := e.viewport.YOffset; got != 1 {
		t.Fatalf("yoffset at row 3: got %d, want 1", got)
	}

	// Move up within view: no scroll. Rows 2 and 1 are both visible.
	e.Update(tea.KeyMsg{Type: tea.KeyUp})
	e.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := e.viewport.YOffset; got != 1 {
		t.Fatalf("yoffset after up within view: got %d, want 1", got)
	}

	// Move above the viewport: yoffset follows the cursor row.
	e.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := e.viewport.YOffset; got != 0 {
		t.Fatalf("yoffset at row 0: got %d, want 0", got)
	}
}

func TestUpdate_BlurStopsKeys(t *testing.T) {
	e := newEditor(t, nil, "ab", "javascript")
	e.Blur()
	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := e.Model().Text(); got != "ab" {
		t.Fatalf("text after blurred insert: got %q, want %q", got, "ab")
	}
	e.Focus()
	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := e.Model().Text(); got != "Xab" {
		t.Fatalf("text after focused insert: got %q, want %q", got, "Xab")
	}
}
