// Package future provides a single-assignment, multi-callback handle for an
// in-flight remote call. A producer emits zero or more chunks, at most one
// error, and exactly one completion signal; a consumer binds its three
// handlers once. Events arriving before the handlers are bound are buffered
// and replayed synchronously at bind time.
package future

import (
	"context"
	"fmt"
	"sync"

	"github.com/stratocloud/cascade/internal/idgen"
)

// Callback is invoked once per delivered chunk.
type Callback func(chunk interface{})

// Errback is invoked at most once when the operation fails.
type Errback func(err error)

// Doneback is invoked exactly once on logical completion, after all chunks
// and any error have been delivered.
type Doneback func()

type eventKind int

const (
	chunkEvent eventKind = iota
	errorEvent
	doneEvent
)

type event struct {
	kind  eventKind
	chunk interface{}
	err   error
}

// Future represents a pending remote call.
type Future struct {
	id string

	mu      sync.Mutex
	bound   bool
	onChunk Callback
	onError Errback
	onDone  Doneback

	pending   []event
	failed    bool
	doneFired bool
}

// New creates an unresolved future.
func New() *Future {
	return &Future{id: idgen.New()}
}

// Resolved creates a future that already delivered the supplied chunks and
// completed.
func Resolved(chunks ...interface{}) *Future {
	f := New()
	for _, chunk := range chunks {
		f.Emit(chunk)
	}
	f.Done()
	return f
}

// Failed creates a future that already failed with err and completed.
func Failed(err error) *Future {
	f := New()
	f.Fail(err)
	f.Done()
	return f
}

// ID returns the future identifier.
func (f *Future) ID() string {
	return f.id
}

// Bind registers the three handlers. A future must not be bound twice. Any
// events delivered before Bind are replayed synchronously, in producer order,
// before Bind returns. Nil handlers are permitted and skip delivery.
func (f *Future) Bind(onChunk Callback, onError Errback, onDone Doneback) error {
	f.mu.Lock()
	if f.bound {
		f.mu.Unlock()
		return fmt.Errorf("future %s already bound", f.id)
	}
	f.bound = true
	f.onChunk = onChunk
	f.onError = onError
	f.onDone = onDone
	backlog := f.pending
	f.pending = nil
	f.mu.Unlock()

	for _, e := range backlog {
		f.deliver(e)
	}
	return nil
}

// Emit delivers a chunk to the consumer. Emit after Done is ignored.
func (f *Future) Emit(chunk interface{}) {
	f.dispatch(event{kind: chunkEvent, chunk: chunk})
}

// Fail delivers an error to the consumer. Only the first error is delivered;
// subsequent failures and failures after Done are ignored.
func (f *Future) Fail(err error) {
	if err == nil {
		return
	}
	f.dispatch(event{kind: errorEvent, err: err})
}

// Done signals logical completion. Only the first call has effect; no events
// are delivered past it.
func (f *Future) Done() {
	f.dispatch(event{kind: doneEvent})
}

func (f *Future) dispatch(e event) {
	f.mu.Lock()
	if f.doneFired {
		f.mu.Unlock()
		return
	}
	switch e.kind {
	case errorEvent:
		if f.failed {
			f.mu.Unlock()
			return
		}
		f.failed = true
	case doneEvent:
		f.doneFired = true
	}
	if !f.bound {
		f.pending = append(f.pending, e)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	f.deliver(e)
}

func (f *Future) deliver(e event) {
	switch e.kind {
	case chunkEvent:
		if f.onChunk != nil {
			f.onChunk(e.chunk)
		}
	case errorEvent:
		if f.onError != nil {
			f.onError(e.err)
		}
	case doneEvent:
		if f.onDone != nil {
			f.onDone()
		}
	}
}

// Wait binds internally and blocks until the future completes or ctx expires.
// It returns all delivered chunks and the first delivered error, if any.
func (f *Future) Wait(ctx context.Context) ([]interface{}, error) {
	var (
		mu      sync.Mutex
		chunks  []interface{}
		failure error
	)
	done := make(chan struct{})
	err := f.Bind(
		func(chunk interface{}) {
			mu.Lock()
			chunks = append(chunks, chunk)
			mu.Unlock()
		},
		func(err error) {
			mu.Lock()
			failure = err
			mu.Unlock()
		},
		func() { close(done) },
	)
	if err != nil {
		return nil, err
	}
	select {
	case <-done:
	case <-ctx.Done():
		mu.Lock()
		defer mu.Unlock()
		return chunks, ctx.Err()
	}
	mu.Lock()
	defer mu.Unlock()
	return chunks, failure
}

// Transform returns a future derived from upstream: each chunk is mapped
// through fn, errors and completion propagate unchanged. A mapping failure
// fails the derived future.
func Transform(upstream *Future, fn func(chunk interface{}) (interface{}, error)) *Future {
	out := New()
	_ = upstream.Bind(
		func(chunk interface{}) {
			mapped, err := fn(chunk)
			if err != nil {
				out.Fail(err)
				return
			}
			out.Emit(mapped)
		},
		out.Fail,
		out.Done,
	)
	return out
}
