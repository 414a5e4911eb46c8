// Package host implements the editor session lifecycle. A Host mounts
// an editor widget into a platform container, wires its change and
// cursor events to the caller, keeps match highlights in sync, swaps
// text models when the language changes, and hands document snapshots
// to language workers.
//
// A host is either unmounted or mounted. Mount moves it forward,
// Unmount back; both are safe to call in any state. Configuration
// setters work in both states: while unmounted they update the desired
// state the next Mount starts from.
package host

import (
	"context"
	"errors"
	"sync"

	"github.com/astpad/astpad/highlight"
	"github.com/astpad/astpad/span"
	"github.com/astpad/astpad/widget"
	"github.com/astpad/astpad/worker"
)

// DefaultLanguage is used when a session is configured without one.
const DefaultLanguage = "javascript"

var (
	// ErrMounted is returned by Mount on an already mounted host.
	ErrMounted = errors.New("host: already mounted")
	// ErrUnmounted is returned by operations that need a mounted editor.
	ErrUnmounted = errors.New("host: not mounted")
)

// State is the lifecycle position of a host.
type State uint8

const (
	StateUnmounted State = iota
	StateMounted
)

func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateMounted:
		return "mounted"
	default:
		return "unknown"
	}
}

// Config is the desired session state a Mount starts from.
type Config struct {
	// Name identifies the document in worker requests and titles.
	Name string
	// Content is the initial text.
	Content string
	// Language selects syntax services; empty means DefaultLanguage.
	Language string
	// ReadOnly rejects user-input mutations.
	ReadOnly bool
	// Highlights are the match spans decorated at mount.
	Highlights []span.Match
	// OnContentChange receives an event for every user-applied content
	// change. Programmatic SetContent does not echo back.
	OnContentChange func(ContentEvent)
	// OnCursorChange receives an event whenever the cursor moves,
	// including the reset that follows a model swap.
	OnCursorChange func(CursorEvent)
}

// ContentEvent reports the full content after a change.
type ContentEvent struct {
	Text     string
	Language string
	Version  uint64
}

// CursorEvent reports the one-indexed cursor position.
type CursorEvent struct {
	Line   int
	Column int
}

// Host drives one editor session against a widget factory.
type Host struct {
	factory widget.Factory
	router  *worker.Router
	ownRtr  bool

	mu     sync.Mutex
	state  State
	cfg    Config
	editor widget.Editor
	model  widget.Model
	sync   *highlight.Synchronizer
}

// Option configures a Host.
type Option func(*Host)

// WithRouter shares an existing worker router instead of the host
// owning one. Shared routers are not shut down by Close.
func WithRouter(r *worker.Router) Option {
	return func(h *Host) {
		if r != nil {
			h.router = r
			h.ownRtr = false
		}
	}
}

// New returns an unmounted host that creates editors with factory.
func New(factory widget.Factory, opts ...Option) *Host {
	h := &Host{
		factory: factory,
		router:  worker.NewRouter(),
		ownRtr:  true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mount creates an editor in container and starts the session from
// cfg. A nil container is a silent no-op, matching surfaces that may
// hand over an absent mount point. Mounting a mounted host fails with
// ErrMounted.
//
// The editor is created with word wrap and inline suggestions on, no
// minimap, a two digit minimum gutter, and read-only per cfg.
func (h *Host) Mount(container widget.Container, cfg Config) error {
	if container == nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateMounted {
		return ErrMounted
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}

	editor, err := h.factory.New(container, widget.Options{
		ReadOnly:          cfg.ReadOnly,
		WordWrap:          true,
		InlineSuggestions: true,
		GutterDigits:      2,
	})
	if err != nil {
		return err
	}
	model := h.factory.NewModel(cfg.Content, cfg.Language)
	editor.SetModel(model)

	sync := highlight.NewSynchronizer(editor.Decorations())
	sync.Apply(cfg.Highlights)

	editor.SetChangeHandler(h.onWidgetChange)
	editor.SetCursorHandler(h.onWidgetCursor)

	h.cfg = cfg
	h.editor = editor
	h.model = model
	h.sync = sync
	h.state = StateMounted
	return nil
}

// Unmount tears the session down: handlers detach, the editor and its
// model are disposed, and the latest content and language are kept as
// the desired state for a later Mount. Unmounting an unmounted host is
// a no-op.
func (h *Host) Unmount() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateMounted {
		return
	}

	h.cfg.Content = h.model.Text()
	h.cfg.Language = h.model.Language()
	h.cfg.Highlights = h.sync.Matches()

	h.editor.SetChangeHandler(nil)
	h.editor.SetCursorHandler(nil)
	h.model.Dispose()
	h.editor.Dispose()

	h.editor = nil
	h.model = nil
	h.sync = nil
	h.state = StateUnmounted
}

// Close unmounts and, when the host owns its worker router, shuts the
// workers down.
func (h *Host) Close(ctx context.Context) error {
	h.Unmount()
	if h.ownRtr {
		return h.router.Shutdown(ctx)
	}
	return nil
}

// State returns the lifecycle state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Text returns the session content: the live model's while mounted,
// the desired state's otherwise.
func (h *Host) Text() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateMounted {
		return h.model.Text()
	}
	return h.cfg.Content
}

// Language returns the session language.
func (h *Host) Language() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateMounted {
		return h.model.Language()
	}
	if h.cfg.Language == "" {
		return DefaultLanguage
	}
	return h.cfg.Language
}

// Editor returns the mounted editor, or nil while unmounted.
func (h *Host) Editor() widget.Editor {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.editor
}

// SetContent replaces the session content. While mounted the model
// rebuilds from the new text, resetting the cursor; no ContentEvent is
// emitted back to the caller that initiated the change. Setting
// identical content is a no-op.
func (h *Host) SetContent(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg.Content = text
	if h.state == StateMounted {
		h.model.SetText(text)
	}
}

// SetLanguage switches the session language. While mounted the editor
// gets a fresh model built from the current text: the old model is
// disposed, the cursor resets to line 1 column 1, and match
// decorations clear until the next SetHighlights. The cursor reset is
// reported through OnCursorChange; no ContentEvent fires since the
// text is unchanged. Switching to the language already in use is a
// no-op. An empty language selects DefaultLanguage.
func (h *Host) SetLanguage(language string) {
	if language == "" {
		language = DefaultLanguage
	}

	h.mu.Lock()
	h.cfg.Language = language
	if h.state != StateMounted || h.model.Language() == language {
		h.mu.Unlock()
		return
	}

	old := h.model
	fresh := h.factory.NewModel(old.Text(), language)
	h.editor.SetModel(fresh)
	h.model = fresh
	old.Dispose()
	h.sync.Clear()
	h.cfg.Highlights = nil
	fn := h.cfg.OnCursorChange
	h.mu.Unlock()

	if fn != nil {
		fn(CursorEvent{Line: 1, Column: 1})
	}
}

// SetHighlights replaces the highlighted match spans. While mounted the
// decoration swap is atomic; while unmounted the spans wait for the
// next Mount.
func (h *Host) SetHighlights(matches []span.Match) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg.Highlights = append([]span.Match(nil), matches...)
	if h.state == StateMounted {
		h.sync.Apply(matches)
	}
}

// SetReadOnly toggles rejection of user-input mutations.
func (h *Host) SetReadOnly(ro bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg.ReadOnly = ro
	if h.state == StateMounted {
		h.editor.SetReadOnly(ro)
	}
}

// Cursor returns the one-indexed cursor position, or line 1 column 1
// while unmounted.
func (h *Host) Cursor() widget.Position {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateMounted {
		return h.editor.Cursor()
	}
	return widget.Position{Line: 1, Column: 1}
}

// Tokenize runs the session snapshot through the worker serving the
// session language.
func (h *Host) Tokenize(ctx context.Context) (worker.TokenizeResult, error) {
	req, w, err := h.snapshot(ctx)
	if err != nil {
		return worker.TokenizeResult{}, err
	}
	return w.Tokenize(ctx, worker.TokenizeRequest(req))
}

// Validate runs the session snapshot through the worker serving the
// session language.
func (h *Host) Validate(ctx context.Context) (worker.ValidateResult, error) {
	req, w, err := h.snapshot(ctx)
	if err != nil {
		return worker.ValidateResult{}, err
	}
	return w.Validate(ctx, worker.ValidateRequest(req))
}

type snapshotRequest struct {
	Doc     string
	Version uint64
	Text    string
}

func (h *Host) snapshot(ctx context.Context) (snapshotRequest, *worker.Worker, error) {
	h.mu.Lock()
	if h.state != StateMounted {
		h.mu.Unlock()
		return snapshotRequest{}, nil, ErrUnmounted
	}
	req := snapshotRequest{
		Doc:     h.cfg.Name,
		Version: h.model.Version(),
		Text:    h.model.Text(),
	}
	language := h.model.Language()
	h.mu.Unlock()

	w, err := h.router.Get(language)
	if err != nil {
		return snapshotRequest{}, nil, err
	}
	return req, w, nil
}

// onWidgetChange relays widget change events to the configured
// handler. The handler runs without the host lock so it can call back
// into the host.
func (h *Host) onWidgetChange(ev widget.ChangeEvent) {
	h.mu.Lock()
	fn := h.cfg.OnContentChange
	language := ""
	if h.model != nil {
		language = h.model.Language()
	}
	h.mu.Unlock()

	if fn != nil {
		fn(ContentEvent{Text: ev.Text, Language: language, Version: ev.Version})
	}
}

func (h *Host) onWidgetCursor(ev widget.CursorEvent) {
	h.mu.Lock()
	fn := h.cfg.OnCursorChange
	h.mu.Unlock()

	if fn != nil {
		fn(CursorEvent{Line: ev.Position.Line, Column: ev.Position.Column})
	}
}
