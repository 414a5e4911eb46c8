package term

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles one Bubble Tea message. Document mutations emit a
// ChangeEvent, cursor motion a CursorEvent, through the registered
// handlers before Update returns.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	if e.disposed {
		return nil
	}
	e.syncModel()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.SetSize(msg.Width, msg.Height)
		return nil
	case tea.MouseMsg:
		// Wheel scrolling moves the viewport without touching the cursor.
		var cmd tea.Cmd
		e.viewport, cmd = e.viewport.Update(msg)
		return cmd
	case tea.KeyMsg:
		e.updateKey(msg)
		return nil
	}
	return nil
}

func (e *Editor) updateKey(msg tea.KeyMsg) {
	if !e.focused || e.doc == nil {
		return
	}

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !e.readOnly {
			e.doc.InsertText(normalizeNewlines(string(msg.Runes)))
		}
		e.emitAfter()
		return
	}

	km := e.keymap
	switch {
	case key.Matches(msg, km.Left):
		e.doc.MoveLeft(false)
	case key.Matches(msg, km.Right):
		e.doc.MoveRight(false)
	case key.Matches(msg, km.Up):
		e.doc.MoveUp(false)
	case key.Matches(msg, km.Down):
		e.doc.MoveDown(false)

	case key.Matches(msg, km.ShiftLeft):
		e.doc.MoveLeft(true)
	case key.Matches(msg, km.ShiftRight):
		e.doc.MoveRight(true)
	case key.Matches(msg, km.ShiftUp):
		e.doc.MoveUp(true)
	case key.Matches(msg, km.ShiftDown):
		e.doc.MoveDown(true)

	case key.Matches(msg, km.WordLeft):
		e.doc.MoveWordLeft(false)
	case key.Matches(msg, km.WordRight):
		e.doc.MoveWordRight(false)

	case key.Matches(msg, km.Home):
		e.doc.MoveLineStart(false)
	case key.Matches(msg, km.End):
		e.doc.MoveLineEnd(false)
	case key.Matches(msg, km.DocStart):
		e.doc.MoveDocStart(false)
	case key.Matches(msg, km.DocEnd):
		e.doc.MoveDocEnd(false)

	case key.Matches(msg, km.Backspace):
		if !e.readOnly {
			e.doc.DeleteBackward()
		}
	case key.Matches(msg, km.Delete):
		if !e.readOnly {
			e.doc.DeleteForward()
		}
	case key.Matches(msg, km.Enter):
		if !e.readOnly {
			e.doc.InsertNewline()
		}

	case key.Matches(msg, km.Copy):
		e.copySelection()
	case key.Matches(msg, km.Cut):
		if !e.readOnly {
			e.cutSelection()
		} else {
			e.copySelection()
		}
	case key.Matches(msg, km.Paste):
		if !e.readOnly {
			e.pasteClipboard()
		}

	default:
		if msg.Type == tea.KeyTab {
			if !e.readOnly {
				e.doc.InsertText("\t")
			}
			break
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			if !e.readOnly {
				e.doc.InsertText(string(msg.Runes))
			}
		}
	}

	e.emitAfter()
}

func (e *Editor) copySelection() {
	if e.clip == nil {
		return
	}
	r, ok := e.doc.Selection()
	if !ok {
		return
	}
	s := e.doc.TextIn(r)
	if s == "" {
		return
	}
	_ = e.clip.WriteText(s)
}

func (e *Editor) cutSelection() {
	if e.clip == nil {
		return
	}
	r, ok := e.doc.Selection()
	if !ok {
		return
	}
	if s := e.doc.TextIn(r); s != "" {
		_ = e.clip.WriteText(s)
	}
	e.doc.DeleteSelection()
}

func (e *Editor) pasteClipboard() {
	if e.clip == nil {
		return
	}
	s, err := e.clip.ReadText()
	if err != nil || s == "" {
		return
	}
	e.doc.InsertText(normalizeNewlines(s))
}

// normalizeNewlines converts line endings from external sources.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
