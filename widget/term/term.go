// Package term renders editors into terminal regions as Bubble Tea
// components. Factory implements widget.Factory for Surface containers;
// the editors it mounts handle key and mouse input, scroll to follow
// the cursor, and draw line numbers, selections, match decorations and
// the cursor cell with lipgloss.
//
// Editors are not safe for concurrent use. Drive every mutation,
// including decoration swaps, from the program's update loop.
package term

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/astpad/astpad/document"
	"github.com/astpad/astpad/span"
	"github.com/astpad/astpad/widget"
)

// Surface describes the terminal region an editor draws into. A zero
// surface is valid; the editor sizes itself on the first window size
// message.
type Surface struct {
	Width  int
	Height int
}

// Clipboard is the copy, cut and paste target. Failures never crash
// the editor; they drop the operation.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// OSClipboard is the system clipboard.
type OSClipboard struct{}

func (OSClipboard) ReadText() (string, error) { return clipboard.ReadAll() }
func (OSClipboard) WriteText(s string) error  { return clipboard.WriteAll(s) }

// Factory mounts terminal editors. It accepts Surface and *Surface
// containers; anything else fails with widget.ErrContainer.
type Factory struct {
	// KeyMap, Style and Clipboard apply to every editor the factory
	// mounts. Nil fields fall back to DefaultKeyMap, DefaultStyle and
	// the system clipboard.
	KeyMap    *KeyMap
	Style     *Style
	Clipboard Clipboard

	// LineNumbers enables the line-number gutter.
	LineNumbers bool
}

func (f *Factory) New(container widget.Container, opts widget.Options) (widget.Editor, error) {
	var surf Surface
	switch c := container.(type) {
	case Surface:
		surf = c
	case *Surface:
		if c != nil {
			surf = *c
		}
	default:
		return nil, widget.ErrContainer
	}

	km := DefaultKeyMap()
	if f.KeyMap != nil {
		km = *f.KeyMap
	}
	st := DefaultStyle()
	if f.Style != nil {
		st = *f.Style
	}
	clip := f.Clipboard
	if clip == nil {
		clip = OSClipboard{}
	}

	e := &Editor{
		keymap:    km,
		style:     st,
		clip:      clip,
		lineNums:  f.LineNumbers,
		minDigits: opts.GutterDigits,
		readOnly:  opts.ReadOnly,
		focused:   true,
		viewport:  viewport.New(surf.Width, surf.Height),
	}
	e.adopt(document.New("", ""))
	return e, nil
}

func (f *Factory) NewModel(text, language string) widget.Model {
	return document.New(text, language)
}

// Editor is a terminal editing surface over a document model.
type Editor struct {
	keymap    KeyMap
	style     Style
	clip      Clipboard
	lineNums  bool
	minDigits int
	readOnly  bool
	focused   bool
	disposed  bool

	model widget.Model
	doc   *document.Document

	viewport viewport.Model
	xOffset  int

	decos decorationSet

	lastVersion uint64
	lastCursor  span.Pos

	changeFn func(widget.ChangeEvent)
	cursorFn func(widget.CursorEvent)
}

func (e *Editor) Model() widget.Model { return e.model }

func (e *Editor) SetModel(m widget.Model) {
	if m == nil {
		return
	}
	d, ok := m.(*document.Document)
	if !ok {
		// A model from another factory is adopted by content.
		d = document.New(m.Text(), m.Language())
	}
	e.adopt(d)
}

func (e *Editor) adopt(d *document.Document) {
	e.model = d
	e.doc = d
	e.xOffset = 0
	e.viewport.SetYOffset(0)
	e.lastVersion = d.Version()
	e.lastCursor = d.Cursor()
	e.rebuild()
}

func (e *Editor) Decorations() widget.DecorationSet { return &e.decos }

func (e *Editor) Cursor() widget.Position {
	if e.doc == nil {
		return widget.Position{Line: 1, Column: 1}
	}
	return widget.PositionFromSpan(e.doc.Cursor())
}

func (e *Editor) SetCursor(p widget.Position) {
	if e.doc == nil {
		return
	}
	e.doc.SetCursor(p.Span())
	e.emitAfter()
}

func (e *Editor) SetReadOnly(ro bool) { e.readOnly = ro }

func (e *Editor) SetChangeHandler(fn func(widget.ChangeEvent)) { e.changeFn = fn }

func (e *Editor) SetCursorHandler(fn func(widget.CursorEvent)) { e.cursorFn = fn }

func (e *Editor) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.changeFn = nil
	e.cursorFn = nil
}

// Disposed reports whether Dispose has been called.
func (e *Editor) Disposed() bool { return e.disposed }

// SetSize resizes the drawing region.
func (e *Editor) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	e.viewport.Width = width
	e.viewport.Height = height
	e.followCursor()
	e.rebuild()
}

// Focus directs key input and cursor rendering to this editor.
func (e *Editor) Focus() {
	if !e.focused {
		e.focused = true
		e.rebuild()
	}
}

// Blur stops key handling and hides the cursor.
func (e *Editor) Blur() {
	if e.focused {
		e.focused = false
		e.rebuild()
	}
}

func (e *Editor) Focused() bool { return e.focused }

// View renders the visible window.
func (e *Editor) View() string {
	e.syncModel()
	return e.viewport.View()
}

func (e *Editor) rebuild() {
	e.decos.dirty = false
	e.viewport.SetContent(e.renderContent())
}

// syncModel folds in changes made through the model rather than the
// keyboard, such as SetText on the shared document or a decoration
// swap. They render without emitting events.
func (e *Editor) syncModel() {
	if e.doc == nil {
		return
	}
	ver := e.doc.Version()
	cur := e.doc.Cursor()
	if ver == e.lastVersion && cur == e.lastCursor && !e.decos.dirty {
		return
	}
	e.lastVersion = ver
	e.lastCursor = cur
	e.followCursor()
	e.rebuild()
}

// emitAfter reconciles the view with the document and reports what
// changed. Each applied change produces exactly one ChangeEvent with
// the full text; cursor motion produces a CursorEvent.
func (e *Editor) emitAfter() {
	if e.doc == nil {
		return
	}
	ver := e.doc.Version()
	cur := e.doc.Cursor()
	changed := ver != e.lastVersion
	moved := cur != e.lastCursor
	if !changed && !moved {
		return
	}
	e.lastVersion = ver
	e.lastCursor = cur
	e.followCursor()
	e.rebuild()

	if changed && e.changeFn != nil {
		e.changeFn(widget.ChangeEvent{Text: e.doc.Text(), Version: ver})
	}
	if moved && e.cursorFn != nil {
		e.cursorFn(widget.CursorEvent{Position: widget.PositionFromSpan(cur)})
	}
}

func (e *Editor) followCursor() {
	if e.doc == nil {
		return
	}
	cur := e.doc.Cursor()

	h := e.viewport.Height - e.viewport.Style.GetVerticalFrameSize()
	if h > 0 {
		y := e.viewport.YOffset
		if cur.Row < y {
			e.viewport.SetYOffset(cur.Row)
		} else if cur.Row >= y+h {
			e.viewport.SetYOffset(cur.Row - h + 1)
		}
	}

	w := e.contentWidth()
	if w <= 0 {
		return
	}
	cell := cursorCell(cellsForLine(e.doc.Line(cur.Row)), cur.Col)
	if cell < e.xOffset {
		e.xOffset = cell
	} else if cell >= e.xOffset+w {
		e.xOffset = cell - w + 1
	}
}

func (e *Editor) contentWidth() int {
	w := e.viewport.Width - e.viewport.Style.GetHorizontalFrameSize()
	if e.lineNums && e.doc != nil {
		w -= e.gutterDigits(e.doc.LineCount()) + 1
	}
	if w < 0 {
		w = 0
	}
	return w
}
