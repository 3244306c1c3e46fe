package app

import (
	"context"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/node"
)

// PauseAction stops an application.
type PauseAction struct {
	node node.Service
	name string
}

// NewPauseAction creates a pause action; the application name is required.
func NewPauseAction(nodeService node.Service, name string) (*PauseAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("application name")
	}
	return &PauseAction{node: nodeService, name: name}, nil
}

// Execute issues the pause call.
func (a *PauseAction) Execute(ctx context.Context) (*future.Future, error) {
	return a.node.PauseApp(ctx, []string{a.name}), nil
}
