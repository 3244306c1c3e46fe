// Package profile provides actions managing deployment profiles stored by
// the platform: listing, inspection, upload and removal.
package profile

import (
	"context"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/codec"
	"github.com/stratocloud/cascade/service/storage"
)

// ListAction lists uploaded profiles.
type ListAction struct {
	storage storage.Service
}

// NewListAction creates a list action.
func NewListAction(storageService storage.Service) *ListAction {
	return &ListAction{storage: storageService}
}

// Execute issues the list call.
func (a *ListAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.storage.Find(ctx, storage.ProfilesNamespace, storage.ProfileTags), nil
}

// ViewAction fetches one profile.
type ViewAction struct {
	storage storage.Service
	name    string
}

// NewViewAction creates a view action; the profile name is required.
func NewViewAction(storageService storage.Service, name string) (*ViewAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("profile name")
	}
	return &ViewAction{storage: storageService, name: name}, nil
}

// Execute issues the read call.
func (a *ViewAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.storage.Read(ctx, storage.ProfilesNamespace, a.name), nil
}

// UploadAction uploads a profile from a local JSON document.
type UploadAction struct {
	storage    storage.Service
	codec      *codec.Service
	name       string
	profileURL string
}

// NewUploadAction creates an upload action; name and profile document are
// required.
func NewUploadAction(storageService storage.Service, codecService *codec.Service, name, profileURL string) (*UploadAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("profile name")
	}
	if profileURL == "" {
		return nil, types.NewConfigurationError("profile file path")
	}
	return &UploadAction{storage: storageService, codec: codecService, name: name, profileURL: profileURL}, nil
}

// Execute encodes the document and issues the write. Encoding failures
// surface synchronously before any remote call.
func (a *UploadAction) Execute(ctx context.Context) (*future.Future, error) {
	payload, err := a.codec.EncodeDocument(ctx, a.profileURL)
	if err != nil {
		return nil, err
	}
	return a.storage.Write(ctx, storage.ProfilesNamespace, a.name, payload, storage.ProfileTags), nil
}

// RemoveAction removes one profile.
type RemoveAction struct {
	storage storage.Service
	name    string
}

// NewRemoveAction creates a remove action; the profile name is required.
func NewRemoveAction(storageService storage.Service, name string) (*RemoveAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("profile name")
	}
	return &RemoveAction{storage: storageService, name: name}, nil
}

// Execute issues the remove call.
func (a *RemoveAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.storage.Remove(ctx, storage.ProfilesNamespace, a.name), nil
}
