package app

import (
	"context"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/codec"
	"github.com/stratocloud/cascade/service/storage"
)

// UploadAction uploads an application: its JSON manifest and its tar
// package, written to storage as two concurrent calls.
type UploadAction struct {
	storage     storage.Service
	codec       *codec.Service
	name        string
	manifestURL string
	packageURL  string
}

// NewUploadAction creates an upload action; name, manifest and package are
// all required.
func NewUploadAction(storageService storage.Service, codecService *codec.Service, name, manifestURL, packageURL string) (*UploadAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("name of the app")
	}
	if manifestURL == "" {
		return nil, types.NewConfigurationError("manifest of the app")
	}
	if packageURL == "" {
		return nil, types.NewConfigurationError("package of the app")
	}
	return &UploadAction{
		storage:     storageService,
		codec:       codecService,
		name:        name,
		manifestURL: manifestURL,
		packageURL:  packageURL,
	}, nil
}

// ExecuteAll encodes both payloads and, only if both are valid, issues the
// two writes. Encoding failures surface synchronously as payload errors
// before any remote call.
func (a *UploadAction) ExecuteAll(ctx context.Context) (future.Group, error) {
	manifest, err := a.codec.EncodeDocument(ctx, a.manifestURL)
	if err != nil {
		return nil, err
	}
	archive, err := a.codec.EncodeArchive(ctx, a.packageURL)
	if err != nil {
		return nil, err
	}
	return future.Group{
		a.storage.Write(ctx, storage.ManifestsNamespace, a.name, manifest, storage.AppTags),
		a.storage.Write(ctx, storage.AppsNamespace, a.name, archive, storage.AppTags),
	}, nil
}
