package worker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrRouterClosed is returned by Get after Shutdown.
var ErrRouterClosed = errors.New("worker: router closed")

// Router hands out workers by language label. Workers spawn on the
// first request for their kind and are shared by every label that maps
// to that kind. Safe for concurrent use.
type Router struct {
	mu      sync.RWMutex
	workers map[Kind]*Worker
	closed  bool

	queue int
	spawn func(Kind) (*Worker, error)
}

// Option configures a Router.
type Option func(*Router)

// WithQueueDepth sets the per-worker job queue length.
func WithQueueDepth(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.queue = n
		}
	}
}

// WithSpawn replaces the worker constructor. Tests use this to observe
// spawns or substitute stubs.
func WithSpawn(fn func(Kind) (*Worker, error)) Option {
	return func(r *Router) {
		if fn != nil {
			r.spawn = fn
		}
	}
}

// NewRouter returns a router with no workers running yet.
func NewRouter(opts ...Option) *Router {
	r := &Router{
		workers: make(map[Kind]*Worker),
		queue:   16,
	}
	r.spawn = func(kind Kind) (*Worker, error) {
		return newWorker(kind, r.queue)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the worker serving label, spawning it on first use.
func (r *Router) Get(label string) (*Worker, error) {
	kind := KindForLabel(label)

	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return nil, ErrRouterClosed
	}
	w, ok := r.workers[kind]
	r.mu.RUnlock()
	if ok {
		return w, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrRouterClosed
	}
	if w, ok := r.workers[kind]; ok {
		return w, nil
	}
	w, err := r.spawn(kind)
	if err != nil {
		return nil, fmt.Errorf("worker: spawn %s: %w", kind, err)
	}
	r.workers[kind] = w
	return w, nil
}

// Kinds lists the kinds with a running worker, sorted.
func (r *Router) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.workers))
	for kind := range r.workers {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Shutdown stops every worker and waits for their goroutines to exit,
// bounded by ctx. Further Get calls fail with ErrRouterClosed.
// Shutdown is idempotent.
func (r *Router) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	workers := make([]*Worker, 0, len(r.workers))
	for _, w := range r.workers {
		workers = append(workers, w)
	}
	r.workers = nil
	r.mu.Unlock()

	for _, w := range workers {
		w.Close()
	}
	var errs []error
	for _, w := range workers {
		if err := w.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("worker %s: %w", w.kind, err))
		}
	}
	return errors.Join(errs...)
}
