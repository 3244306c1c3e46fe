package runlist

import (
	"context"
	"fmt"

	"github.com/viant/toolbox"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/chain"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/codec"
	"github.com/stratocloud/cascade/service/storage"
)

// AddAppAction adds an application to an existing runlist. The merge needs
// the current record, so the operation is a chain of three dependent steps:
// read the runlist, merge the app/profile pair in memory, write it back.
type AddAppAction struct {
	storage storage.Service
	codec   *codec.Service
	name    string
	app     string
	profile string
}

// NewAddAppAction creates the action; runlist name, application and profile
// are all required.
func NewAddAppAction(storageService storage.Service, codecService *codec.Service, name, app, profile string) (*AddAppAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("runlist name")
	}
	if app == "" {
		return nil, types.NewConfigurationError("application name")
	}
	if profile == "" {
		return nil, types.NewConfigurationError("profile")
	}
	return &AddAppAction{
		storage: storageService,
		codec:   codecService,
		name:    name,
		app:     app,
		profile: profile,
	}, nil
}

// Execute runs the read-merge-write chain.
func (a *AddAppAction) Execute(ctx context.Context) (*future.Future, error) {
	update := chain.New().
		Then(func(ctx context.Context, _ interface{}) (interface{}, error) {
			return a.storage.Read(ctx, storage.RunlistsNamespace, a.name), nil
		}).
		Then(func(ctx context.Context, prev interface{}) (interface{}, error) {
			return a.merge(prev)
		}).
		Then(func(ctx context.Context, prev interface{}) (interface{}, error) {
			upload, err := NewUploadAction(a.storage, a.codec, a.name, "", prev.(map[string]interface{}))
			if err != nil {
				return nil, err
			}
			return upload.Execute(ctx)
		})
	return update.Run(ctx), nil
}

// merge decodes the stored runlist and binds the application to its profile.
func (a *AddAppAction) merge(chunk interface{}) (map[string]interface{}, error) {
	payload, ok := chunk.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected runlist payload type %T", chunk)
	}
	record, err := a.codec.DecodeMap(payload)
	if err != nil {
		return nil, err
	}
	record = toolbox.DeleteEmptyKeys(record)
	record[a.app] = a.profile
	return record, nil
}
