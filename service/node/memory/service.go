// Package memory provides an in-memory node.Service used by tests, examples
// and embedded setups. Responses are delivered asynchronously through a
// messaging dispatcher, mirroring the remote delivery model.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/messaging"
	mqueue "github.com/stratocloud/cascade/service/messaging/memory"
	"github.com/stratocloud/cascade/service/node"
)

// Service is an in-memory node client.
type Service struct {
	mu         sync.RWMutex
	apps       map[string]node.AppInfo
	dispatcher *messaging.Dispatcher
}

// Option customises the service.
type Option func(s *Service)

// WithDispatcher overrides the default delivery dispatcher.
func WithDispatcher(dispatcher *messaging.Dispatcher) Option {
	return func(s *Service) { s.dispatcher = dispatcher }
}

// New creates an in-memory node service. Start must be called before any
// issued future resolves.
func New(options ...Option) *Service {
	s := &Service{apps: make(map[string]node.AppInfo)}
	for _, option := range options {
		option(s)
	}
	if s.dispatcher == nil {
		queue := mqueue.NewQueue[messaging.Delivery](mqueue.DefaultConfig())
		s.dispatcher = messaging.NewDispatcher(queue)
	}
	return s
}

// Start launches the delivery loop; futures resolve until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	s.dispatcher.Start(ctx)
}

// SetApp seeds the state of one application. It is a helper for tests and
// examples, not part of the node.Service contract.
func (s *Service) SetApp(name string, info node.AppInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[name] = info
}

// Info delivers a snapshot of all applications.
func (s *Service) Info(ctx context.Context) *future.Future {
	f := future.New()
	s.mu.RLock()
	apps := make(map[string]node.AppInfo, len(s.apps))
	for name, info := range s.apps {
		apps[name] = info
	}
	s.mu.RUnlock()
	s.deliver(ctx, messaging.Delivery{Future: f, Chunks: []interface{}{&node.Snapshot{Apps: apps}}})
	return f
}

// StartApp marks each application running under the supplied profile.
func (s *Service) StartApp(ctx context.Context, apps map[string]string) *future.Future {
	f := future.New()
	if len(apps) == 0 {
		s.deliver(ctx, messaging.Delivery{Future: f, Err: types.NewRemoteError("start_app", errEmptyRequest)})
		return f
	}
	s.mu.Lock()
	for name, profile := range apps {
		s.apps[name] = node.AppInfo{State: node.StateRunning, Profile: profile}
	}
	s.mu.Unlock()
	s.deliver(ctx, messaging.Delivery{Future: f, Chunks: []interface{}{"ok"}})
	return f
}

// PauseApp marks each named application stopped.
func (s *Service) PauseApp(ctx context.Context, names []string) *future.Future {
	f := future.New()
	if len(names) == 0 {
		s.deliver(ctx, messaging.Delivery{Future: f, Err: types.NewRemoteError("pause_app", errEmptyRequest)})
		return f
	}
	s.mu.Lock()
	for _, name := range names {
		info := s.apps[name]
		info.State = node.StateStopped
		s.apps[name] = info
	}
	s.mu.Unlock()
	s.deliver(ctx, messaging.Delivery{Future: f, Chunks: []interface{}{"ok"}})
	return f
}

func (s *Service) deliver(ctx context.Context, delivery messaging.Delivery) {
	if err := s.dispatcher.Dispatch(ctx, delivery); err != nil && delivery.Future != nil {
		delivery.Future.Fail(types.NewRemoteError("dispatch", err))
		delivery.Future.Done()
	}
}

var errEmptyRequest = errors.New("empty request")

var _ node.Service = (*Service)(nil)
