package app

import (
	"context"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/node"
)

// CheckAction reports the state of one application as seen by the node.
type CheckAction struct {
	node node.Service
	name string
}

// NewCheckAction creates a check action; the application name is required.
func NewCheckAction(nodeService node.Service, name string) (*CheckAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("application name")
	}
	return &CheckAction{node: nodeService, name: name}, nil
}

// Execute fetches the status snapshot and maps it to {name: state}. An
// application the node does not know about reports as stopped or missing.
func (a *CheckAction) Execute(ctx context.Context) (*future.Future, error) {
	return future.Transform(a.node.Info(ctx), func(chunk interface{}) (interface{}, error) {
		snapshot, err := node.SnapshotFrom(chunk)
		if err != nil {
			return nil, err
		}
		state := node.StateMissing
		if info, ok := snapshot.App(a.name); ok && info.State != "" {
			state = info.State
		}
		return map[string]string{a.name: state}, nil
	}), nil
}
