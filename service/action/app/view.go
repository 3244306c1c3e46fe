package app

import (
	"context"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/storage"
)

// ViewAction fetches the manifest of one application.
type ViewAction struct {
	storage storage.Service
	name    string
}

// NewViewAction creates a view action; the application name is required.
func NewViewAction(storageService storage.Service, name string) (*ViewAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("name of application")
	}
	return &ViewAction{storage: storageService, name: name}, nil
}

// Execute issues the read call.
func (a *ViewAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.storage.Read(ctx, storage.ManifestsNamespace, a.name), nil
}
