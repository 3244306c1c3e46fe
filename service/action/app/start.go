package app

import (
	"context"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/node"
)

// StartAction launches an application under a profile.
type StartAction struct {
	node    node.Service
	name    string
	profile string
}

// NewStartAction creates a start action; name and profile are required.
func NewStartAction(nodeService node.Service, name, profile string) (*StartAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("application name")
	}
	if profile == "" {
		return nil, types.NewConfigurationError("profile name")
	}
	return &StartAction{node: nodeService, name: name, profile: profile}, nil
}

// Execute issues the start call.
func (a *StartAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.node.StartApp(ctx, map[string]string{a.name: a.profile}), nil
}
