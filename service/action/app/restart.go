package app

import (
	"context"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/chain"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/node"
)

// RestartAction restarts an application: it fetches the node status, resolves
// the profile (explicit, or the one the running instance uses), then issues a
// stop and a start and joins both acknowledgements.
type RestartAction struct {
	node    node.Service
	name    string
	profile string
}

// NewRestartAction creates a restart action; the name is required, the
// profile is optional and defaults to the running instance's profile.
func NewRestartAction(nodeService node.Service, name, profile string) (*RestartAction, error) {
	if name == "" {
		return nil, types.NewConfigurationError("application name")
	}
	return &RestartAction{node: nodeService, name: name, profile: profile}, nil
}

// Execute runs the restart chain. No stop or start is issued when the
// profile cannot be resolved.
func (a *RestartAction) Execute(ctx context.Context) (*future.Future, error) {
	restart := chain.New().
		Then(func(ctx context.Context, _ interface{}) (interface{}, error) {
			return a.node.Info(ctx), nil
		}).
		Then(func(ctx context.Context, prev interface{}) (interface{}, error) {
			snapshot, err := node.SnapshotFrom(prev)
			if err != nil {
				return nil, err
			}
			return a.resolveProfile(snapshot)
		}).
		Then(func(ctx context.Context, prev interface{}) (interface{}, error) {
			profile := prev.(string)
			stop := a.node.PauseApp(ctx, []string{a.name})
			start := a.node.StartApp(ctx, map[string]string{a.name: profile})
			return future.Group{stop, start}, nil
		})
	return restart.Run(ctx), nil
}

// resolveProfile picks the explicit profile when supplied, otherwise falls
// back to the profile of the running instance.
func (a *RestartAction) resolveProfile(snapshot *node.Snapshot) (string, error) {
	if a.profile != "" {
		return a.profile, nil
	}
	info, ok := snapshot.App(a.name)
	if !ok || info.Profile == "" {
		return "", types.NewDomainError("application %q is not running and profile not specified", a.name)
	}
	return info.Profile, nil
}
