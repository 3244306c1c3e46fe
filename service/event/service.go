// Package event provides lifecycle notifications for executed actions,
// published through the messaging queue abstraction.
package event

import (
	"context"

	"github.com/stratocloud/cascade/service/messaging/memory"
)

// Service is an untyped event hub with a single optional listener.
type Service struct {
	publisher *Publisher[any]
	listener  *Listener[any]
}

// New creates an event service over an in-memory queue.
func New() *Service {
	queue := memory.NewQueue[Event[any]](memory.DefaultConfig())
	return &Service{publisher: NewPublisher[any](queue)}
}

// Publish emits one lifecycle event.
func (s *Service) Publish(ctx context.Context, event *Event[any]) error {
	return s.publisher.Publish(ctx, event)
}

// SetListener replaces the active listener; passing a handler starts it.
func (s *Service) SetListener(handler func(*Event[any])) {
	if s.listener != nil {
		s.listener.Stop()
	}
	s.listener = NewListener[any](s.publisher, handler)
	s.listener.Start()
}
