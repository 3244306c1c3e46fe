// Package crashlog provides actions over an application's crash logs. Logs
// are indexed under "timestamp:identifier" keys; viewing and removing fan
// out one secondary operation per matching entry and complete exactly once.
package crashlog

import (
	"context"

	"github.com/stratocloud/cascade/model/entry"
	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/fanin"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/storage"
)

// ListAction lists crash-log entries recorded for one application.
type ListAction struct {
	storage storage.Service
	name    string
}

// NewListAction creates a list action; the application name is required.
func NewListAction(storageService storage.Service, name string) (*ListAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("crashlog name")
	}
	return &ListAction{storage: storageService, name: name}, nil
}

// Execute issues the list call.
func (a *ListAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.storage.Find(ctx, storage.CrashlogsNamespace, []string{a.name}), nil
}

// ViewAction reads the content of crash logs, optionally restricted to one
// timestamp.
type ViewAction struct {
	storage   storage.Service
	name      string
	timestamp string
}

// NewViewAction creates a view action; the application name is required, the
// timestamp is an optional exact-match filter.
func NewViewAction(storageService storage.Service, name, timestamp string) (*ViewAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("name")
	}
	return &ViewAction{storage: storageService, name: name, timestamp: timestamp}, nil
}

// Execute fans out one read per matching entry and completes once all
// finished.
func (a *ViewAction) Execute(ctx context.Context) (*future.Future, error) {
	upstream := a.storage.Find(ctx, storage.CrashlogsNamespace, []string{a.name})
	return fanin.Fan(ctx, upstream, a.storage, storage.CrashlogsNamespace, fanin.OpRead,
		fanin.WithFilter(entry.ByTimestamp(a.timestamp))), nil
}

// RemoveAction removes crash logs, optionally restricted to one timestamp.
type RemoveAction struct {
	storage   storage.Service
	name      string
	timestamp string
}

// NewRemoveAction creates a remove action; the application name is required,
// the timestamp is an optional exact-match filter.
func NewRemoveAction(storageService storage.Service, name, timestamp string) (*RemoveAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("name")
	}
	return &RemoveAction{storage: storageService, name: name, timestamp: timestamp}, nil
}

// Execute fans out one remove per matching entry and completes once all
// finished.
func (a *RemoveAction) Execute(ctx context.Context) (*future.Future, error) {
	upstream := a.storage.Find(ctx, storage.CrashlogsNamespace, []string{a.name})
	return fanin.Fan(ctx, upstream, a.storage, storage.CrashlogsNamespace, fanin.OpRemove,
		fanin.WithFilter(entry.ByTimestamp(a.timestamp))), nil
}

// NewRemoveAllAction creates a remove action covering every entry of the
// application.
func NewRemoveAllAction(storageService storage.Service, name string) (*RemoveAction, error) {
	return NewRemoveAction(storageService, name, "")
}
