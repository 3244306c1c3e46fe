// Package fanin coordinates fan-out/fan-in over a streamed list result: it
// observes one upstream future delivering a textual list of
// "timestamp:identifier" entries, issues one secondary operation per entry
// and guarantees its own completion signal fires exactly once – after all
// secondary operations finished or the upstream failed.
package fanin

import (
	"context"
	"sync/atomic"

	"github.com/stratocloud/cascade/model/entry"
	"github.com/stratocloud/cascade/progress"
	"github.com/stratocloud/cascade/runtime/future"
)

// Op selects the secondary operation issued per list entry.
type Op int

const (
	// OpRead reads each entry's payload.
	OpRead Op = iota
	// OpRemove removes each entry.
	OpRemove
)

// String returns the operation name.
func (o Op) String() string {
	if o == OpRemove {
		return "remove"
	}
	return "read"
}

// Target is the capability interface secondary operations dispatch through.
type Target interface {
	Read(ctx context.Context, namespace, key string) *future.Future
	Remove(ctx context.Context, namespace, key string) *future.Future
}

func (o Op) invoke(ctx context.Context, target Target, namespace, key string) *future.Future {
	if o == OpRemove {
		return target.Remove(ctx, namespace, key)
	}
	return target.Read(ctx, namespace, key)
}

// Counter states.
const (
	stateWaitingForList int32 = iota
	stateFanning
	stateDone
)

type counter struct {
	ctx       context.Context
	out       *future.Future
	target    Target
	namespace string
	op        Op
	filter    entry.Filter

	state       int32
	outstanding int64
}

// Option customises a fan-in run.
type Option func(c *counter)

// WithFilter restricts fan-out to entries accepted by the filter. The
// default passes all entries through.
func WithFilter(filter entry.Filter) Option {
	return func(c *counter) { c.filter = filter }
}

// Fan binds to upstream, fans out one op per filtered entry against target
// and returns a future that forwards every secondary result and error, then
// completes exactly once – regardless of zero entries, secondary failures or
// an upstream error arriving before any entry did.
func Fan(ctx context.Context, upstream *future.Future, target Target, namespace string, op Op, options ...Option) *future.Future {
	c := &counter{
		ctx:       ctx,
		out:       future.New(),
		target:    target,
		namespace: namespace,
		op:        op,
		filter:    entry.ByTimestamp(""),
		state:     stateWaitingForList,
	}
	for _, option := range options {
		option(c)
	}
	_ = upstream.Bind(c.onList, c.onUpstreamError, c.onUpstreamDone)
	return c.out
}

// onList receives the raw list chunk, applies the filter and issues the
// secondary operations.
func (c *counter) onList(chunk interface{}) {
	if !atomic.CompareAndSwapInt32(&c.state, stateWaitingForList, stateFanning) {
		return
	}
	entries, err := entry.Parse(chunk)
	if err != nil {
		c.out.Fail(err)
		c.fireDone()
		return
	}

	selected := entries[:0:0]
	for _, e := range entries {
		if c.filter(e) {
			selected = append(selected, e)
		}
	}
	progress.UpdateCtx(c.ctx, progress.Delta{Filtered: len(entries) - len(selected)})

	if len(selected) == 0 {
		c.fireDone()
		return
	}

	atomic.StoreInt64(&c.outstanding, int64(len(selected)))
	progress.UpdateCtx(c.ctx, progress.Delta{Issued: len(selected)})
	for _, e := range selected {
		secondary := c.op.invoke(c.ctx, c.target, c.namespace, e.Key())
		_ = secondary.Bind(c.out.Emit, c.onSecondaryError, c.onSecondaryDone)
	}
}

func (c *counter) onSecondaryError(err error) {
	progress.UpdateCtx(c.ctx, progress.Delta{Failed: 1})
	c.out.Fail(err)
}

func (c *counter) onSecondaryDone() {
	progress.UpdateCtx(c.ctx, progress.Delta{Completed: 1})
	if atomic.AddInt64(&c.outstanding, -1) == 0 {
		c.fireDone()
	}
}

// onUpstreamError forwards the failure and completes. The state gate in
// fireDone keeps a racing list chunk from completing a second time.
func (c *counter) onUpstreamError(err error) {
	c.out.Fail(err)
	c.fireDone()
}

// onUpstreamDone completes only when no list chunk ever arrived; otherwise
// completion is owned by the outstanding counter.
func (c *counter) onUpstreamDone() {
	if atomic.CompareAndSwapInt32(&c.state, stateWaitingForList, stateDone) {
		c.out.Done()
	}
}

func (c *counter) fireDone() {
	if atomic.SwapInt32(&c.state, stateDone) != stateDone {
		c.out.Done()
	}
}
