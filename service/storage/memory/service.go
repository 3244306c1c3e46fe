// Package memory provides an in-memory storage.Service used by tests,
// examples and embedded setups. Responses are delivered asynchronously
// through a messaging dispatcher so that callbacks observe the same ordering
// guarantees as with a remote service.
package memory

import (
	"context"
	"sort"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/dao/criteria"
	"github.com/stratocloud/cascade/service/dao/store"
	"github.com/stratocloud/cascade/service/messaging"
	mqueue "github.com/stratocloud/cascade/service/messaging/memory"
	"github.com/stratocloud/cascade/service/storage"
)

// Record is a stored payload with its index tags.
type Record struct {
	Namespace string
	Key       string
	Payload   []byte
	Tags      []string
}

func recordID(r *Record) string {
	return r.Namespace + "/" + r.Key
}

// Service is an in-memory storage client.
type Service struct {
	store      *store.MemoryStore[string, Record]
	dispatcher *messaging.Dispatcher
}

// Option customises the service.
type Option func(s *Service)

// WithDispatcher overrides the default delivery dispatcher.
func WithDispatcher(dispatcher *messaging.Dispatcher) Option {
	return func(s *Service) { s.dispatcher = dispatcher }
}

// New creates an in-memory storage service. Start must be called before any
// issued future resolves.
func New(options ...Option) *Service {
	s := &Service{
		store: store.NewMemoryStore[string, Record](recordID),
	}
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

// Put stores a record synchronously. It is a seeding helper for tests and
// examples, not part of the storage.Service contract.
func (s *Service) Put(ctx context.Context, namespace, key string, payload []byte, tags []string) error {
	return s.store.Save(ctx, &Record{Namespace: namespace, Key: key, Payload: payload, Tags: tags})
}

// Find lists keys in a namespace matching tags; the future delivers a single
// chunk with the sorted key list.
func (s *Service) Find(ctx context.Context, namespace string, tags []string) *future.Future {
	f := future.New()
	records, err := s.store.List(ctx)
	if err != nil {
		s.deliver(ctx, messaging.Delivery{Future: f, Err: types.NewRemoteError("find", err)})
		return f
	}
	var keys []string
	for _, record := range records {
		if record.Namespace != namespace {
			continue
		}
		if !criteria.MatchesTags(record.Tags, tags) {
			continue
		}
		keys = append(keys, record.Key)
	}
	sort.Strings(keys)
	s.deliver(ctx, messaging.Delivery{Future: f, Chunks: []interface{}{keys}})
	return f
}

// Read fetches a payload; a missing key fails the future.
func (s *Service) Read(ctx context.Context, namespace, key string) *future.Future {
	f := future.New()
	record, err := s.store.Load(ctx, namespace+"/"+key)
	if err != nil {
		s.deliver(ctx, messaging.Delivery{Future: f, Err: types.NewRemoteError("read "+namespace+"/"+key, err)})
		return f
	}
	s.deliver(ctx, messaging.Delivery{Future: f, Chunks: []interface{}{record.Payload}})
	return f
}

// Write stores a payload and acknowledges.
func (s *Service) Write(ctx context.Context, namespace, key string, payload []byte, tags []string) *future.Future {
	f := future.New()
	err := s.store.Save(ctx, &Record{Namespace: namespace, Key: key, Payload: payload, Tags: tags})
	if err != nil {
		s.deliver(ctx, messaging.Delivery{Future: f, Err: types.NewRemoteError("write "+namespace+"/"+key, err)})
		return f
	}
	s.deliver(ctx, messaging.Delivery{Future: f, Chunks: []interface{}{"ok"}})
	return f
}

// Remove deletes a record; a missing key fails the future.
func (s *Service) Remove(ctx context.Context, namespace, key string) *future.Future {
	f := future.New()
	err := s.store.Delete(ctx, namespace+"/"+key)
	if err != nil {
		s.deliver(ctx, messaging.Delivery{Future: f, Err: types.NewRemoteError("remove "+namespace+"/"+key, err)})
		return f
	}
	s.deliver(ctx, messaging.Delivery{Future: f, Chunks: []interface{}{"ok"}})
	return f
}

func (s *Service) deliver(ctx context.Context, delivery messaging.Delivery) {
	if err := s.dispatcher.Dispatch(ctx, delivery); err != nil && delivery.Future != nil {
		delivery.Future.Fail(types.NewRemoteError("dispatch", err))
		delivery.Future.Done()
	}
}

var _ storage.Service = (*Service)(nil)
