package fanin

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratocloud/cascade/model/entry"
	"github.com/stratocloud/cascade/progress"
	"github.com/stratocloud/cascade/runtime/future"
)

// fakeTarget resolves every secondary call with a canned payload, or fails
// the keys listed in failing.
type fakeTarget struct {
	mu      sync.Mutex
	reads   []string
	removes []string
	failing map[string]error
}

func (t *fakeTarget) Read(ctx context.Context, namespace, key string) *future.Future {
	t.mu.Lock()
	t.reads = append(t.reads, key)
	t.mu.Unlock()
	if err := t.failing[key]; err != nil {
		return future.Failed(err)
	}
	return future.Resolved("content of " + key)
}

func (t *fakeTarget) Remove(ctx context.Context, namespace, key string) *future.Future {
	t.mu.Lock()
	t.removes = append(t.removes, key)
	t.mu.Unlock()
	if err := t.failing[key]; err != nil {
		return future.Failed(err)
	}
	return future.Resolved("ok")
}

func TestFanIssuesOneReadPerEntry(t *testing.T) {
	target := &fakeTarget{}
	upstream := future.Resolved([]string{"100:host-a", "200:host-b", "300:host-c"})

	out := Fan(context.Background(), upstream, target, "crashlogs", OpRead)
	chunks, err := out.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"100:host-a", "200:host-b", "300:host-c"}, target.reads)
	assert.Len(t, chunks, 3)
}

func TestFanAppliesTimestampFilter(t *testing.T) {
	target := &fakeTarget{}
	upstream := future.Resolved([]string{"100:host-a", "200:host-b", "300:host-c"})

	out := Fan(context.Background(), upstream, target, "crashlogs", OpRead,
		WithFilter(entry.ByTimestamp("200")))
	chunks, err := out.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"200:host-b"}, target.reads)
	assert.Equal(t, []interface{}{"content of 200:host-b"}, chunks)
}

func TestFanCompletesOnEmptyList(t *testing.T) {
	target := &fakeTarget{}
	upstream := future.Resolved([]string{})

	out := Fan(context.Background(), upstream, target, "crashlogs", OpRemove)
	chunks, err := out.Wait(context.Background())
	require.NoError(t, err)
	assert.Empty(t, chunks)
	assert.Empty(t, target.removes)
}

func TestFanCompletesWhenUpstreamNeverListed(t *testing.T) {
	target := &fakeTarget{}
	upstream := future.New()
	out := Fan(context.Background(), upstream, target, "crashlogs", OpRead)
	upstream.Done()

	_, err := out.Wait(context.Background())
	require.NoError(t, err)
	assert.Empty(t, target.reads)
}

func TestFanForwardsUpstreamError(t *testing.T) {
	target := &fakeTarget{}
	upstream := future.Failed(errors.New("storage unavailable"))

	out := Fan(context.Background(), upstream, target, "crashlogs", OpRead)
	_, err := out.Wait(context.Background())
	assert.EqualError(t, err, "storage unavailable")
	assert.Empty(t, target.reads)
}

func TestFanSecondaryFailureStillCompletes(t *testing.T) {
	target := &fakeTarget{failing: map[string]error{"200:host-b": errors.New("missing key")}}
	upstream := future.Resolved([]string{"100:host-a", "200:host-b", "300:host-c"})

	out := Fan(context.Background(), upstream, target, "crashlogs", OpRemove)
	chunks, err := out.Wait(context.Background())
	assert.EqualError(t, err, "missing key")
	assert.Len(t, target.removes, 3)
	assert.Len(t, chunks, 2)
}

func TestFanCompletesExactlyOnce(t *testing.T) {
	target := &fakeTarget{}
	upstream := future.New()
	out := Fan(context.Background(), upstream, target, "crashlogs", OpRead)

	var doneCount int
	require.NoError(t, out.Bind(nil, nil, func() { doneCount++ }))

	upstream.Emit([]string{"100:host-a"})
	upstream.Done()

	assert.Equal(t, 1, doneCount)
}

func TestFanUpdatesProgressCounters(t *testing.T) {
	target := &fakeTarget{failing: map[string]error{"300:host-c": errors.New("gone")}}
	ctx, tracker := progress.WithNewTracker(context.Background(), "remove", "crashlogs", nil)

	upstream := future.Resolved([]string{"100:host-a", "200:host-b", "300:host-c", "900:other"})
	out := Fan(ctx, upstream, target, "crashlogs", OpRemove,
		WithFilter(func(e entry.Entry) bool { return e.Timestamp != "900" }))
	_, _ = out.Wait(context.Background())

	snapshot := tracker.Snapshot()
	assert.Equal(t, 3, snapshot.IssuedOps)
	assert.Equal(t, 3, snapshot.CompletedOps)
	assert.Equal(t, 1, snapshot.FailedOps)
	assert.Equal(t, 1, snapshot.FilteredOut)
}

func TestFanInvalidListChunkFails(t *testing.T) {
	target := &fakeTarget{}
	upstream := future.Resolved(12345)

	out := Fan(context.Background(), upstream, target, "crashlogs", OpRead)
	_, err := out.Wait(context.Background())
	require.Error(t, err)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "read", OpRead.String())
	assert.Equal(t, "remove", OpRemove.String())
}
