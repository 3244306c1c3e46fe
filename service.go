package cascade

import (
	"context"
	"reflect"
	"time"

	"github.com/viant/x"

	"github.com/stratocloud/cascade/extension"
	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/action/app"
	"github.com/stratocloud/cascade/service/action/crashlog"
	"github.com/stratocloud/cascade/service/action/info"
	"github.com/stratocloud/cascade/service/action/profile"
	"github.com/stratocloud/cascade/service/action/runlist"
	"github.com/stratocloud/cascade/service/codec"
	"github.com/stratocloud/cascade/service/event"
	"github.com/stratocloud/cascade/service/node"
	nmemory "github.com/stratocloud/cascade/service/node/memory"
	"github.com/stratocloud/cascade/service/storage"
	smemory "github.com/stratocloud/cascade/service/storage/memory"
	"github.com/stratocloud/cascade/tracing"
)

// Service is the high-level façade over the coordination core. It owns the
// collaborator services, the command catalog and the lifecycle event hub.
type Service struct {
	config   *Config
	storage  storage.Service
	node     node.Service
	codec    *codec.Service
	events   *event.Service
	commands *extension.Commands
}

// starter is implemented by collaborators that need a delivery loop.
type starter interface {
	Start(ctx context.Context)
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.registerCommands()
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.storage == nil {
		s.storage = smemory.New()
	}
	if s.node == nil {
		s.node = nmemory.New()
	}
	if s.codec == nil {
		s.codec = codec.New()
	}
	if s.events == nil {
		s.events = event.New()
	}
	s.commands = extension.NewCommands()
}

func (s *Service) registerCommands() {
	for _, command := range []*extension.Command{
		{Name: "app:list", Description: "lists uploaded applications", Type: x.NewType(reflect.TypeOf(app.ListAction{}))},
		{Name: "app:view", Description: "shows an application manifest", Type: x.NewType(reflect.TypeOf(app.ViewAction{}))},
		{Name: "app:upload", Description: "uploads an application manifest and archive", Type: x.NewType(reflect.TypeOf(app.UploadAction{}))},
		{Name: "app:remove", Description: "removes an application", Type: x.NewType(reflect.TypeOf(app.RemoveAction{}))},
		{Name: "app:start", Description: "starts an application with a profile", Type: x.NewType(reflect.TypeOf(app.StartAction{}))},
		{Name: "app:pause", Description: "pauses an application", Type: x.NewType(reflect.TypeOf(app.PauseAction{}))},
		{Name: "app:restart", Description: "restarts an application", Type: x.NewType(reflect.TypeOf(app.RestartAction{}))},
		{Name: "app:check", Description: "checks an application state", Type: x.NewType(reflect.TypeOf(app.CheckAction{}))},
		{Name: "profile:list", Description: "lists profiles", Type: x.NewType(reflect.TypeOf(profile.ListAction{}))},
		{Name: "profile:view", Description: "shows a profile", Type: x.NewType(reflect.TypeOf(profile.ViewAction{}))},
		{Name: "profile:upload", Description: "uploads a profile", Type: x.NewType(reflect.TypeOf(profile.UploadAction{}))},
		{Name: "profile:remove", Description: "removes a profile", Type: x.NewType(reflect.TypeOf(profile.RemoveAction{}))},
		{Name: "runlist:list", Description: "lists runlists", Type: x.NewType(reflect.TypeOf(runlist.ListAction{}))},
		{Name: "runlist:view", Description: "shows a runlist", Type: x.NewType(reflect.TypeOf(runlist.ViewAction{}))},
		{Name: "runlist:upload", Description: "uploads a runlist", Type: x.NewType(reflect.TypeOf(runlist.UploadAction{}))},
		{Name: "runlist:remove", Description: "removes a runlist", Type: x.NewType(reflect.TypeOf(runlist.RemoveAction{}))},
		{Name: "runlist:add-app", Description: "adds an application to a runlist", Type: x.NewType(reflect.TypeOf(runlist.AddAppAction{}))},
		{Name: "crashlog:list", Description: "lists crash logs of an application", Type: x.NewType(reflect.TypeOf(crashlog.ListAction{}))},
		{Name: "crashlog:view", Description: "shows crash logs of an application", Type: x.NewType(reflect.TypeOf(crashlog.ViewAction{}))},
		{Name: "crashlog:remove", Description: "removes crash logs of an application", Type: x.NewType(reflect.TypeOf(crashlog.RemoveAction{}))},
		{Name: "info", Description: "shows the node status snapshot", Type: x.NewType(reflect.TypeOf(info.Action{}))},
	} {
		s.commands.Register(command)
	}
}

// Start launches the delivery loops of collaborators that have one. The
// loops stop when ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	if svc, ok := s.storage.(starter); ok {
		svc.Start(ctx)
	}
	if svc, ok := s.node.(starter); ok {
		svc.Start(ctx)
	}
}

// Storage returns the storage collaborator.
func (s *Service) Storage() storage.Service { return s.storage }

// Node returns the node collaborator.
func (s *Service) Node() node.Service { return s.node }

// Codec returns the payload codec.
func (s *Service) Codec() *codec.Service { return s.codec }

// Events returns the lifecycle event service.
func (s *Service) Events() *event.Service { return s.events }

// Commands returns the command catalog.
func (s *Service) Commands() *extension.Commands { return s.commands }

// Config returns the active configuration.
func (s *Service) Config() *Config { return s.config }

// Execute runs a single-future action under a tracing span and publishes a
// lifecycle event once the action has been issued.
func (s *Service) Execute(ctx context.Context, operation string, action types.FutureAction) (*future.Future, error) {
	ctx, span := tracing.StartSpan(ctx, operation, "CLIENT")
	started := time.Now()
	ret, err := action.Execute(ctx)
	tracing.EndSpan(span, err)
	s.publish(ctx, operation, started, err)
	return ret, err
}

// ExecuteAll runs a batch action under a tracing span and publishes a
// lifecycle event once all futures have been issued.
func (s *Service) ExecuteAll(ctx context.Context, operation string, action types.BatchAction) (future.Group, error) {
	ctx, span := tracing.StartSpan(ctx, operation, "CLIENT")
	started := time.Now()
	ret, err := action.ExecuteAll(ctx)
	tracing.EndSpan(span, err)
	s.publish(ctx, operation, started, err)
	return ret, err
}

func (s *Service) publish(ctx context.Context, operation string, started time.Time, err error) {
	eventType := "issued"
	if err != nil {
		eventType = "failed"
	}
	anEvent := event.NewEvent[any](&event.Context{
		Operation:   operation,
		EventType:   eventType,
		TimeTakenMs: int(time.Since(started).Milliseconds()),
	}, nil)
	if err != nil {
		anEvent.Metadata["error"] = err.Error()
	}
	_ = s.events.Publish(ctx, anEvent)
}

// New creates a Service with the supplied options; absent collaborators
// fall back to in-memory implementations.
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}
