package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notice struct {
	Operation string
	Namespace string
}

func TestQueuePublishConsumeAck(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[notice](config)

	ctx := context.Background()
	err := queue.Publish(ctx, &notice{Operation: "read", Namespace: "crashlogs"})
	require.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, "read", message.T().Operation)
	assert.Equal(t, "crashlogs", message.T().Namespace)

	require.NoError(t, message.Ack())
	time.Sleep(20 * time.Millisecond)
	assert.Error(t, message.Ack(), "second ack has to fail")
}

func TestQueueNackRetriesThenDeadLetters(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[notice](config)

	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &notice{Operation: "remove"}))

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, message.Nack(nil))
	time.Sleep(20 * time.Millisecond)

	message, err = queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, message.Nack(nil))
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueueConcurrentPublish(t *testing.T) {
	config := DefaultConfig()
	config.QueueBuffer = 256
	queue := NewQueue[notice](config)

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, queue.Publish(ctx, &notice{Operation: "find"}))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, queue.Size())

	for i := 0; i < 50; i++ {
		message, err := queue.Consume(ctx)
		require.NoError(t, err)
		require.NoError(t, message.Ack())
	}
	assert.Equal(t, 0, queue.Size())
}
