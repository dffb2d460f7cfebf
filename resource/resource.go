// Package resource implements context-bound GPU resources.
//
// A Resource is constructed immediately but creates its native object later,
// on its own goroutine, once the rendering context reports that it is ready.
// The outcome of that creation is published through a single-resolution
// future: every accessor waits on it, and a failure is kept and returned to
// every caller from then on.
package resource

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/richinsley/goglresource/async"
	"github.com/richinsley/goglresource/graphics"
)

var (
	// ErrContextUnavailable is returned when the rendering context failed to
	// become ready. The initializer is never run in that case.
	ErrContextUnavailable = errors.New("rendering context unavailable")

	// ErrInitPanic is returned when the initializer panicked.
	ErrInitPanic = errors.New("resource initializer panicked")

	// ErrReleased is returned by Release once a previous Release succeeded.
	ErrReleased = errors.New("resource already released")
)

// Initializer creates and configures the native object. It runs at most once
// per resource, after the context is ready, and must only issue calls through
// gc.
type Initializer[H any] func(ctx context.Context, gc graphics.Context) (H, error)

// Deleter releases the native object through gc.
type Deleter[H any] func(gc graphics.Context, h H) error

// Resource owns one native handle of type H.
type Resource[H any] struct {
	kind     string
	gc       graphics.Context
	ready    *async.Future[H]

	releaseMu sync.Mutex
	released  atomic.Bool
}

// New records gc and init and schedules initialization. It does not block.
// kind names the resource in log output and errors.
func New[H any](kind string, gc graphics.Context, init Initializer[H]) *Resource[H] {
	r := &Resource[H]{
		kind:  kind,
		gc:    gc,
		ready: async.NewFuture[H](),
	}
	go r.initialize(init)
	return r
}

// Failed returns a resource whose readiness has already failed with err. It
// is used when a configuration is rejected before any native call.
func Failed[H any](kind string, gc graphics.Context, err error) *Resource[H] {
	var zero H
	return &Resource[H]{
		kind:  kind,
		gc:    gc,
		ready: async.Resolved(zero, fmt.Errorf("%s: %w", kind, err)),
	}
}

func (r *Resource[H]) initialize(init Initializer[H]) {
	// Initialization is never cancelled: once the context is ready the
	// initializer runs to completion.
	ctx := context.Background()
	logger := log.WithField("resource", r.kind)

	if err := r.gc.Ready(ctx); err != nil {
		logger.WithError(err).Debug("context failed, skipping initialization")
		var zero H
		r.ready.Resolve(zero, fmt.Errorf("%s: %w: %w", r.kind, ErrContextUnavailable, err))
		return
	}

	h, err := r.run(ctx, init)
	if err != nil {
		logger.WithError(err).Warn("initialization failed")
		var zero H
		r.ready.Resolve(zero, fmt.Errorf("%s: %w", r.kind, err))
		return
	}
	logger.WithField("handle", h).Debug("initialized")
	r.ready.Resolve(h, nil)
}

func (r *Resource[H]) run(ctx context.Context, init Initializer[H]) (h H, err error) {
	defer func() {
		if p := recover(); p != nil {
			log.WithField("resource", r.kind).Errorf("initializer panic: %v\n%s", p, debug.Stack())
			err = fmt.Errorf("%w: %v", ErrInitPanic, p)
		}
	}()
	return init(ctx, r.gc)
}

// Ready waits until initialization has finished and returns its error. ctx
// bounds only this wait.
func (r *Resource[H]) Ready(ctx context.Context) error {
	_, err := r.ready.Wait(ctx)
	return err
}

// Done returns a channel that is closed when initialization has finished,
// successfully or not.
func (r *Resource[H]) Done() <-chan struct{} {
	return r.ready.Done()
}

// Handle waits for initialization and returns the native handle. It does not
// transfer ownership. Calling Handle after Release returns the stale handle;
// using it is the caller's error.
func (r *Resource[H]) Handle(ctx context.Context) (H, error) {
	return r.ready.Wait(ctx)
}

// Context returns the rendering context the resource belongs to.
func (r *Resource[H]) Context() graphics.Context {
	return r.gc
}

// Kind returns the resource kind given to New.
func (r *Resource[H]) Kind() string {
	return r.kind
}

// Released reports whether Release has been called successfully.
func (r *Resource[H]) Released() bool {
	return r.released.Load()
}

// Release waits for initialization, then deletes the native handle with del.
// If initialization failed, its error is returned and del is not called. A
// failed del leaves the resource live, so Release may be called again.
func (r *Resource[H]) Release(ctx context.Context, del Deleter[H]) error {
	h, err := r.ready.Wait(ctx)
	if err != nil {
		return err
	}
	r.releaseMu.Lock()
	defer r.releaseMu.Unlock()
	if r.released.Load() {
		return fmt.Errorf("%s %v: %w", r.kind, h, ErrReleased)
	}
	if err := del(r.gc, h); err != nil {
		log.WithFields(log.Fields{"resource": r.kind, "handle": h}).WithError(err).Warn("release failed")
		return fmt.Errorf("failed to release %s %v: %w", r.kind, h, err)
	}
	r.released.Store(true)
	log.WithFields(log.Fields{"resource": r.kind, "handle": h}).Debug("released")
	return nil
}
