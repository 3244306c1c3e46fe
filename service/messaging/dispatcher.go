package messaging

import (
	"context"
	"errors"
	"log"

	"github.com/stratocloud/cascade/runtime/future"
)

// Delivery carries the outcome of one remote call to its future. Chunks are
// emitted in order, Err (if any) follows, and the future always completes.
type Delivery struct {
	Future *future.Future
	Chunks []interface{}
	Err    error
}

// Dispatcher consumes deliveries from a queue and resolves their futures on
// a single goroutine, so callbacks for any one future run serially and in
// publish order.
type Dispatcher struct {
	queue Queue[Delivery]
}

// NewDispatcher creates a dispatcher over the supplied queue.
func NewDispatcher(queue Queue[Delivery]) *Dispatcher {
	return &Dispatcher{queue: queue}
}

// Dispatch enqueues a delivery for asynchronous resolution.
func (d *Dispatcher) Dispatch(ctx context.Context, delivery Delivery) error {
	return d.queue.Publish(ctx, &delivery)
}

// Start runs the delivery loop until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Dispatcher) run(ctx context.Context) {
	for {
		msg, err := d.queue.Consume(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			log.Printf("dispatcher: failed to consume delivery: %v", err)
			continue
		}
		if msg == nil {
			continue
		}
		delivery := msg.T()
		if target := delivery.Future; target != nil {
			for _, chunk := range delivery.Chunks {
				target.Emit(chunk)
			}
			target.Fail(delivery.Err)
			target.Done()
		}
		if err := msg.Ack(); err != nil {
			log.Printf("dispatcher: failed to ack delivery: %v", err)
		}
	}
}
