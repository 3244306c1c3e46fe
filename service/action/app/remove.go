package app

import (
	"context"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/storage"
)

// RemoveAction removes an application's manifest and package from storage.
type RemoveAction struct {
	storage storage.Service
	name    string
}

// NewRemoveAction creates a remove action; the application name is required.
func NewRemoveAction(storageService storage.Service, name string) (*RemoveAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("application name")
	}
	return &RemoveAction{storage: storageService, name: name}, nil
}

// ExecuteAll issues both removes concurrently.
func (a *RemoveAction) ExecuteAll(ctx context.Context) (future.Group, error) {
	return future.Group{
		a.storage.Remove(ctx, storage.ManifestsNamespace, a.name),
		a.storage.Remove(ctx, storage.AppsNamespace, a.name),
	}, nil
}
