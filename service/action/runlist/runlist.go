// Package runlist provides actions managing runlists – the records mapping
// application names to the profiles they launch under.
package runlist

import (
	"context"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/codec"
	"github.com/stratocloud/cascade/service/storage"
)

// ListAction lists uploaded runlists.
type ListAction struct {
	storage storage.Service
}

// NewListAction creates a list action.
func NewListAction(storageService storage.Service) *ListAction {
	return &ListAction{storage: storageService}
}

// Execute issues the list call.
func (a *ListAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.storage.Find(ctx, storage.RunlistsNamespace, storage.RunlistTags), nil
}

// ViewAction fetches one runlist.
type ViewAction struct {
	storage storage.Service
	name    string
}

// NewViewAction creates a view action; the runlist name is required.
func NewViewAction(storageService storage.Service, name string) (*ViewAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("runlist name")
	}
	return &ViewAction{storage: storageService, name: name}, nil
}

// Execute issues the read call.
func (a *ViewAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.storage.Read(ctx, storage.RunlistsNamespace, a.name), nil
}

// UploadAction uploads a runlist, either from a local JSON document or from
// an in-memory record.
type UploadAction struct {
	storage    storage.Service
	codec      *codec.Service
	name       string
	runlistURL string
	raw        map[string]interface{}
}

// NewUploadAction creates an upload action; the name plus either a document
// URL or a raw record are required.
func NewUploadAction(storageService storage.Service, codecService *codec.Service, name, runlistURL string, raw map[string]interface{}) (*UploadAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("runlist name")
	}
	if runlistURL == "" && raw == nil {
		return nil, types.NewConfigurationError("runlist profile file path")
	}
	return &UploadAction{
		storage:    storageService,
		codec:      codecService,
		name:       name,
		runlistURL: runlistURL,
		raw:        raw,
	}, nil
}

// Execute encodes the runlist and issues the write. Encoding failures
// surface synchronously before any remote call.
func (a *UploadAction) Execute(ctx context.Context) (*future.Future, error) {
	var payload []byte
	var err error
	if a.runlistURL != "" {
		payload, err = a.codec.EncodeDocument(ctx, a.runlistURL)
	} else {
		payload, err = a.codec.Encode(a.raw)
	}
	if err != nil {
		return nil, err
	}
	return a.storage.Write(ctx, storage.RunlistsNamespace, a.name, payload, storage.RunlistTags), nil
}

// RemoveAction removes one runlist.
type RemoveAction struct {
	storage storage.Service
	name    string
}

// NewRemoveAction creates a remove action; the runlist name is required.
func NewRemoveAction(storageService storage.Service, name string) (*RemoveAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("runlist name")
	}
	return &RemoveAction{storage: storageService, name: name}, nil
}

// Execute issues the remove call.
func (a *RemoveAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.storage.Remove(ctx, storage.RunlistsNamespace, a.name), nil
}
