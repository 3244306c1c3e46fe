// Package progress provides a lightweight tracker that keeps aggregated
// fan-out counters (secondary operations issued, completed, failed) for a
// single list-driven operation. The tracker instance lives in the operation
// context – every component that receives the context can atomically update
// the counters via the Delta helper without requiring a global registry.

package progress

import (
	"context"
	"sync"
	"time"

	"github.com/stratocloud/cascade/internal/clock"
)

// Delta represents an incremental counter change emitted by the fan-in
// coordinator. The fields are signed and therefore can be either positive
// (increment) or negative (decrement).
type Delta struct {
	Issued    int
	Completed int
	Failed    int
	Filtered  int
}

// Progress keeps aggregated counters for one fan-out/fan-in run. It is safe
// for concurrent use.
type Progress struct {
	// Identification – informative only, filled when the run starts.
	Operation string
	Namespace string
	StartedAt time.Time

	// Counters – modified via Update().
	IssuedOps    int
	CompletedOps int
	FailedOps    int
	FilteredOut  int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta to the tracker. It is safe to call from
// multiple goroutines. If an onChange callback has been registered it will be
// invoked with a copy of the updated tracker outside the critical section so
// that the callback can perform slow operations (e.g. rendering, I/O)
// without blocking coordinator internals.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()

	p.IssuedOps += d.Issued
	p.CompletedOps += d.Completed
	p.FailedOps += d.Failed
	p.FilteredOut += d.Filtered

	// Make a value-copy for the callback while we still hold the lock to
	// avoid seeing partially updated counters.
	snapshot := *p
	cb := p.onChange

	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return *p
}

// OnChange registers a callback that is invoked after every successful
// Update. Passing nil disables the callback. Only one callback can be
// active; subsequent calls overwrite the previous value.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new Progress tracker, embeds it in a derived
// context and returns both. The caller may optionally pass an onChange
// callback that will be invoked after every counter update.
func WithNewTracker(ctx context.Context, operation, namespace string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		Operation: operation,
		Namespace: namespace,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the Progress tracker from ctx. The second return
// value is false when the context carries no tracker.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx is a helper that looks up the tracker in ctx (if any) and applies
// the supplied delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
