// Package info provides the node status action.
package info

import (
	"context"

	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/node"
)

// Action fetches the full node status snapshot.
type Action struct {
	node node.Service
}

// New creates an info action.
func New(nodeService node.Service) *Action {
	return &Action{node: nodeService}
}

// Execute issues the info call.
func (a *Action) Execute(ctx context.Context) (*future.Future, error) {
	return a.node.Info(ctx), nil
}
