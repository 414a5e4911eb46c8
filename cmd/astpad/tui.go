package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/astpad/astpad/engine"
	"github.com/astpad/astpad/engine/sitter"
	"github.com/astpad/astpad/host"
	"github.com/astpad/astpad/span"
	"github.com/astpad/astpad/widget"
	"github.com/astpad/astpad/widget/term"
	"github.com/astpad/astpad/worker"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("237"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// ruleMsg delivers a reloaded rule file, or the reason it failed to
// parse.
type ruleMsg struct {
	rule engine.Rule
	err  error
}

type appConfig struct {
	Path     string
	Text     string
	Language string
	ReadOnly bool
	Rule     engine.Rule
	HasRule  bool
}

// app is the edit command's program: an editor over the buffer, a
// results pane listing matches and problems, and a status line
// between them.
type app struct {
	host   *host.Host
	editor *term.Editor

	results viewport.Model

	cfg      appConfig
	rule     engine.Rule
	hasRule  bool
	ruleErr  error
	scanErr  error
	matches  []engine.Match
	matchIdx int
	diags    []worker.Diagnostic
	showDiff bool

	cursor host.CursorEvent
	dirty  bool
	note   string

	width, height int
}

func newApp(cfg appConfig) (*app, error) {
	a := &app{
		cfg:      cfg,
		rule:     cfg.Rule,
		hasRule:  cfg.HasRule,
		matchIdx: -1,
		results:  viewport.New(0, 0),
		cursor:   host.CursorEvent{Line: 1, Column: 1},
	}

	a.host = host.New(&term.Factory{LineNumbers: true})
	err := a.host.Mount(term.Surface{}, host.Config{
		Name:            cfg.Path,
		Content:         cfg.Text,
		Language:        cfg.Language,
		ReadOnly:        cfg.ReadOnly,
		OnContentChange: func(host.ContentEvent) { a.dirty = true },
		OnCursorChange:  func(ev host.CursorEvent) { a.cursor = ev },
	})
	if err != nil {
		return nil, err
	}
	a.editor = a.host.Editor().(*term.Editor)
	a.refresh()
	return a, nil
}

func (a *app) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return a.host.Close(ctx)
}

func (a *app) Init() tea.Cmd { return nil }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
		return a, nil

	case ruleMsg:
		if msg.err != nil {
			a.ruleErr = msg.err
		} else {
			a.rule, a.hasRule, a.ruleErr = msg.rule, true, nil
			a.note = "rule reloaded"
		}
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return a, tea.Quit
		case "ctrl+j":
			a.jumpToMatch()
			return a, nil
		case "ctrl+r":
			a.applyFix()
			return a, nil
		case "ctrl+d":
			a.toggleDiff()
			return a, nil
		case "ctrl+y":
			a.copyRewritten()
			return a, nil
		case "ctrl+l":
			a.cycleLanguage()
			return a, nil
		case "ctrl+s":
			a.save()
			return a, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			a.results, cmd = a.results.Update(msg)
			return a, cmd
		}
	}

	cmd := a.editor.Update(msg)
	if a.dirty {
		a.dirty = false
		a.note = ""
		a.refresh()
	}
	return a, cmd
}

func (a *app) View() string {
	return a.editor.View() + "\n" + a.statusLine() + "\n" + a.results.View()
}

// layout splits the window: editor on top, one status line, results
// pane at the bottom.
func (a *app) layout() {
	rh := 8
	if a.height < 16 {
		rh = a.height / 3
	}
	eh := a.height - rh - 1
	if eh < 0 {
		eh = 0
	}
	a.editor.SetSize(a.width, eh)
	a.results.Width = a.width
	a.results.Height = rh
	a.results.SetContent(a.resultsContent())
}

// refresh rescans the buffer, swaps the match highlights and renews
// diagnostics. Runs after every content change, rule reload, applied
// fix and language switch.
func (a *app) refresh() {
	a.matches = nil
	a.matchIdx = -1
	a.scanErr = nil
	if a.rule.Fix == "" {
		a.showDiff = false
	}

	text := a.host.Text()
	if a.hasRule {
		rule := a.rule
		// Scan in the buffer's language, not the rule's.
		rule.Language = a.host.Language()
		matches, err := engine.Scan(context.Background(), rule, text)
		if err != nil {
			a.scanErr = err
		} else {
			a.matches = matches
		}
	}

	spans := make([]span.Match, 0, len(a.matches))
	for _, m := range a.matches {
		spans = append(spans, m.Span)
	}
	a.host.SetHighlights(spans)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	a.diags = nil
	if res, err := a.host.Validate(ctx); err == nil {
		a.diags = res.Diagnostics
	}

	a.results.SetContent(a.resultsContent())
}

// jumpToMatch moves the cursor to the next match, wrapping around.
func (a *app) jumpToMatch() {
	if len(a.matches) == 0 {
		return
	}
	a.matchIdx = (a.matchIdx + 1) % len(a.matches)
	start, _ := a.matches[a.matchIdx].Span.ToEditor()
	a.editor.SetCursor(widget.Position{Line: start.Row, Column: start.Col})
	a.results.SetContent(a.resultsContent())
}

func (a *app) applyFix() {
	if !a.hasRule {
		a.note = "no rule loaded"
		return
	}
	if a.rule.Fix == "" {
		a.note = "rule has no fix"
		return
	}
	rule := a.rule
	rule.Language = a.host.Language()
	out, edits, err := engine.Rewrite(context.Background(), rule, a.host.Text())
	if err != nil {
		a.scanErr = err
		return
	}
	if len(edits) == 0 {
		a.note = "nothing to fix"
		return
	}
	a.host.SetContent(out)
	a.note = countLabel(len(edits), "edit applied", "edits applied")
	a.refresh()
}

// toggleDiff switches the results pane between the match list and a
// preview of what applying the fix would change.
func (a *app) toggleDiff() {
	if !a.hasRule || a.rule.Fix == "" {
		a.note = "rule has no fix"
		return
	}
	a.showDiff = !a.showDiff
	a.results.SetContent(a.resultsContent())
}

// copyRewritten puts the fixed source on the clipboard, or the buffer
// as is when the rule has no fix.
func (a *app) copyRewritten() {
	text := a.host.Text()
	label := "buffer"
	if a.hasRule && a.rule.Fix != "" {
		rule := a.rule
		rule.Language = a.host.Language()
		out, _, err := engine.Rewrite(context.Background(), rule, text)
		if err != nil {
			a.note = err.Error()
			return
		}
		text, label = out, "rewrite"
	}
	if err := clipboard.WriteAll(text); err != nil {
		a.note = err.Error()
		return
	}
	a.note = "copied " + label
}

func (a *app) cycleLanguage() {
	names := sitter.Names()
	if len(names) == 0 {
		return
	}
	next := names[0]
	cur := a.host.Language()
	for i, n := range names {
		if n == cur {
			next = names[(i+1)%len(names)]
			break
		}
	}
	a.host.SetLanguage(next)
	a.note = next
	a.refresh()
}

func (a *app) save() {
	if a.cfg.Path == "" || a.cfg.Path == "-" {
		a.note = "no file to write"
		return
	}
	if err := os.WriteFile(a.cfg.Path, []byte(a.host.Text()), 0o644); err != nil {
		a.note = err.Error()
		return
	}
	a.note = "wrote " + a.cfg.Path
}

func (a *app) statusLine() string {
	name := a.cfg.Path
	if name == "" {
		name = "[scratch]"
	}
	parts := []string{name, a.host.Language(), fmt.Sprintf("Ln %d, Col %d", a.cursor.Line, a.cursor.Column)}
	if a.hasRule {
		parts = append(parts, countLabel(len(a.matches), "match", "matches"))
	}
	if n := len(a.diags); n > 0 {
		parts = append(parts, countLabel(n, "problem", "problems"))
	}
	if a.note != "" {
		parts = append(parts, a.note)
	}

	left := " " + strings.Join(parts, "  ")
	help := "ctrl+j next  ctrl+r fix  ctrl+d diff  ctrl+y copy  ctrl+l lang  ctrl+s save  ctrl+q quit "
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 2 {
		return statusStyle.Render(left)
	}
	return statusStyle.Render(left + strings.Repeat(" ", gap) + help)
}

func (a *app) resultsContent() string {
	if a.showDiff {
		return a.diffContent()
	}
	var sb strings.Builder
	if a.ruleErr != nil {
		sb.WriteString(errStyle.Render("rule: "+a.ruleErr.Error()) + "\n")
	}
	if a.scanErr != nil {
		sb.WriteString(errStyle.Render("scan: "+a.scanErr.Error()) + "\n")
	}
	if len(a.matches) > 0 && a.rule.Message != "" {
		sb.WriteString(faintStyle.Render(a.rule.Message) + "\n")
	}
	for i, m := range a.matches {
		marker := "  "
		if i == a.matchIdx {
			marker = "> "
		}
		start, _ := m.Span.ToEditor()
		fmt.Fprintf(&sb, "%s%d:%d %s\n", marker, start.Row, start.Col, snippet(m.Text))
	}
	for _, d := range a.diags {
		start, _ := d.Span.ToEditor()
		sb.WriteString(warnStyle.Render(fmt.Sprintf("! %d:%d %s", start.Row, start.Col, d.Message)) + "\n")
	}
	if sb.Len() == 0 {
		return faintStyle.Render("no matches")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *app) diffContent() string {
	rule := a.rule
	rule.Language = a.host.Language()
	text := a.host.Text()
	out, _, err := engine.Rewrite(context.Background(), rule, text)
	if err != nil {
		return errStyle.Render("rewrite: " + err.Error())
	}
	diff := renderUnifiedDiff(a.cfg.Path, text, out)
	if diff == "" {
		return faintStyle.Render("no changes")
	}
	return strings.TrimRight(diff, "\n")
}
