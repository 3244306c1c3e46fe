package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureDeliversInOrder(t *testing.T) {
	f := New()
	var got []interface{}
	var done bool
	err := f.Bind(
		func(chunk interface{}) { got = append(got, chunk) },
		nil,
		func() { done = true },
	)
	require.NoError(t, err)

	f.Emit("a")
	f.Emit("b")
	f.Done()

	assert.Equal(t, []interface{}{"a", "b"}, got)
	assert.True(t, done)
}

func TestFutureReplaysBacklogOnBind(t *testing.T) {
	f := New()
	f.Emit(1)
	f.Emit(2)
	f.Fail(errors.New("boom"))
	f.Done()

	var chunks []interface{}
	var failure error
	var done bool
	err := f.Bind(
		func(chunk interface{}) { chunks = append(chunks, chunk) },
		func(err error) { failure = err },
		func() { done = true },
	)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1, 2}, chunks)
	assert.EqualError(t, failure, "boom")
	assert.True(t, done)
}

func TestFutureSecondBindFails(t *testing.T) {
	f := New()
	require.NoError(t, f.Bind(nil, nil, nil))
	err := f.Bind(nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already bound")
}

func TestFutureOnlyFirstErrorDelivered(t *testing.T) {
	f := New()
	var failures []error
	require.NoError(t, f.Bind(nil, func(err error) { failures = append(failures, err) }, nil))

	f.Fail(errors.New("first"))
	f.Fail(errors.New("second"))
	f.Done()

	require.Len(t, failures, 1)
	assert.EqualError(t, failures[0], "first")
}

func TestFutureIgnoresEventsAfterDone(t *testing.T) {
	f := New()
	var chunks []interface{}
	var doneCount int
	require.NoError(t, f.Bind(
		func(chunk interface{}) { chunks = append(chunks, chunk) },
		nil,
		func() { doneCount++ },
	))

	f.Done()
	f.Emit("late")
	f.Fail(errors.New("late"))
	f.Done()

	assert.Empty(t, chunks)
	assert.Equal(t, 1, doneCount)
}

func TestFutureNilErrorIgnored(t *testing.T) {
	f := New()
	var called bool
	require.NoError(t, f.Bind(nil, func(error) { called = true }, nil))
	f.Fail(nil)
	f.Done()
	assert.False(t, called)
}

func TestResolvedAndFailed(t *testing.T) {
	ctx := context.Background()

	chunks, err := Resolved("x", "y").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"x", "y"}, chunks)

	_, err = Failed(errors.New("nope")).Wait(ctx)
	assert.EqualError(t, err, "nope")
}

func TestWaitHonoursContext(t *testing.T) {
	f := New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitConcurrentProducer(t *testing.T) {
	f := New()
	go func() {
		f.Emit(42)
		f.Done()
	}()
	chunks, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []interface{}{42}, chunks)
}

func TestTransformMapsChunks(t *testing.T) {
	upstream := New()
	derived := Transform(upstream, func(chunk interface{}) (interface{}, error) {
		return chunk.(int) * 2, nil
	})

	upstream.Emit(3)
	upstream.Done()

	chunks, err := derived.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []interface{}{6}, chunks)
}

func TestTransformMappingFailure(t *testing.T) {
	upstream := New()
	derived := Transform(upstream, func(interface{}) (interface{}, error) {
		return nil, errors.New("bad chunk")
	})

	upstream.Emit("whatever")
	upstream.Done()

	_, err := derived.Wait(context.Background())
	assert.EqualError(t, err, "bad chunk")
}
