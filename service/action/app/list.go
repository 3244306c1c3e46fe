// Package app provides actions managing applications: storage-side listing,
// inspection, upload and removal plus node-side start, pause, restart and
// status check.
package app

import (
	"context"

	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/storage"
)

// ListAction lists uploaded applications.
type ListAction struct {
	storage storage.Service
}

// NewListAction creates a list action.
func NewListAction(storageService storage.Service) *ListAction {
	return &ListAction{storage: storageService}
}

// Execute issues the list call.
func (a *ListAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.storage.Find(ctx, storage.ManifestsNamespace, storage.AppTags), nil
}
