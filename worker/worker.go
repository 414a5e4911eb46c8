package worker

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/astpad/astpad/engine/sitter"
	"github.com/astpad/astpad/span"
)

// ErrClosed is returned for jobs submitted to a stopped worker.
var ErrClosed = errors.New("worker: closed")

//go:embed queries/*.scm
var queryFS embed.FS

// TokenizeRequest asks for syntax class spans over a document snapshot.
// Doc and Version identify the snapshot; they travel back unchanged in
// the result so callers can discard answers for stale content.
type TokenizeRequest struct {
	Doc     string
	Version uint64
	Text    string
}

// Token is one classified region on a single row. Columns are
// zero-indexed code points, end exclusive.
type Token struct {
	Row      int
	StartCol int
	EndCol   int
	Class    string
}

// TokenizeResult carries the tokens for one document snapshot.
type TokenizeResult struct {
	Doc     string
	Version uint64
	Tokens  []Token
}

// ValidateRequest asks for diagnostics over a document snapshot.
type ValidateRequest struct {
	Doc     string
	Version uint64
	Text    string
}

// Diagnostic flags a region of the document with a message.
type Diagnostic struct {
	Span    span.Match
	Message string
}

// ValidateResult carries the diagnostics for one document snapshot.
type ValidateResult struct {
	Doc         string
	Version     uint64
	Diagnostics []Diagnostic
}

// Worker executes language jobs for one kind on a dedicated goroutine.
// Create workers through a Router; a worker is safe for concurrent use.
type Worker struct {
	kind      Kind
	lang      sitter.Language
	queryText string

	jobs      chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newWorker(kind Kind, queue int) (*Worker, error) {
	w := &Worker{
		kind: kind,
		jobs: make(chan func(), queue),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	if kind != KindDefault {
		lang, err := sitter.Lookup(grammarFor(kind))
		if err != nil {
			return nil, fmt.Errorf("worker %s: %w", kind, err)
		}
		w.lang = lang
		query, err := queryFS.ReadFile("queries/" + queryNameFor(kind))
		if err != nil {
			return nil, fmt.Errorf("worker %s: %w", kind, err)
		}
		w.queryText = string(query)
	}
	go w.run()
	return w, nil
}

// grammarFor picks the grammar label a kind parses with. The
// TypeScript grammar also covers plain JavaScript, and the YAML
// grammar covers JSON.
func grammarFor(kind Kind) string {
	switch kind {
	case KindJSON:
		return "json"
	case KindCSS:
		return "css"
	case KindHTML:
		return "html"
	case KindTypeScript:
		return "typescript"
	case KindYAML:
		return "yaml"
	default:
		return ""
	}
}

func queryNameFor(kind Kind) string {
	if kind == KindJSON {
		return "yaml.scm"
	}
	return string(kind) + ".scm"
}

func (w *Worker) run() {
	defer close(w.done)
	for {
		select {
		case fn := <-w.jobs:
			fn()
		case <-w.quit:
			return
		}
	}
}

// Kind returns the worker's kind.
func (w *Worker) Kind() Kind {
	return w.kind
}

// Tokenize classifies the snapshot's syntax. The default kind returns
// no tokens.
func (w *Worker) Tokenize(ctx context.Context, req TokenizeRequest) (TokenizeResult, error) {
	type reply struct {
		tokens []Token
		err    error
	}
	ch := make(chan reply, 1)
	submit := func() {
		tokens, err := w.tokenize(ctx, req.Text)
		ch <- reply{tokens: tokens, err: err}
	}
	if err := w.do(ctx, submit); err != nil {
		return TokenizeResult{}, err
	}

	r, err := await(ctx, w, ch)
	if err != nil {
		return TokenizeResult{}, err
	}
	if r.err != nil {
		return TokenizeResult{}, r.err
	}
	return TokenizeResult{Doc: req.Doc, Version: req.Version, Tokens: r.tokens}, nil
}

// Validate reports diagnostics for the snapshot. The default kind
// returns none.
func (w *Worker) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	type reply struct {
		diags []Diagnostic
		err   error
	}
	ch := make(chan reply, 1)
	submit := func() {
		diags, err := w.validate(ctx, req.Text)
		ch <- reply{diags: diags, err: err}
	}
	if err := w.do(ctx, submit); err != nil {
		return ValidateResult{}, err
	}

	r, err := await(ctx, w, ch)
	if err != nil {
		return ValidateResult{}, err
	}
	if r.err != nil {
		return ValidateResult{}, r.err
	}
	return ValidateResult{Doc: req.Doc, Version: req.Version, Diagnostics: r.diags}, nil
}

// Close stops the worker's goroutine. Queued jobs are dropped; their
// callers get ErrClosed. Close is idempotent and does not wait; use
// Wait for that.
func (w *Worker) Close() {
	w.closeOnce.Do(func() { close(w.quit) })
}

// Wait blocks until the worker goroutine has exited.
func (w *Worker) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) do(ctx context.Context, fn func()) error {
	select {
	case w.jobs <- fn:
		return nil
	case <-w.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// await reads the job reply, giving a reply that raced worker shutdown
// one last chance to land.
func await[T any](ctx context.Context, w *Worker, ch chan T) (T, error) {
	var zero T
	select {
	case r := <-ch:
		return r, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-w.done:
		select {
		case r := <-ch:
			return r, nil
		default:
			return zero, ErrClosed
		}
	}
}
