// Package node defines the process-control collaborator consumed by the
// orchestration core: status lookup plus start/pause of applications.
package node

import (
	"context"

	"github.com/stratocloud/cascade/runtime/future"
)

// Application states reported by the node service.
const (
	StateRunning = "running"
	StateStopped = "stopped"

	// StateMissing is the state reported by status checks for an
	// application the node never heard of.
	StateMissing = "stopped or missing"
)

// Service issues asynchronous calls against the remote node service.
type Service interface {
	// Info fetches a status snapshot of all applications. The future
	// delivers one chunk holding the raw snapshot.
	Info(ctx context.Context) *future.Future

	// StartApp launches the supplied applications, each with its profile.
	StartApp(ctx context.Context, apps map[string]string) *future.Future

	// PauseApp stops the named applications.
	PauseApp(ctx context.Context, names []string) *future.Future
}
