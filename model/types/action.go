package types

import (
	"context"

	"github.com/stratocloud/cascade/runtime/future"
)

// FutureAction is a validated request producing a single future when
// executed. Construction-time validation means Execute only returns an error
// for failures that happen before any remote call is issued (for example a
// corrupt local payload).
type FutureAction interface {
	Execute(ctx context.Context) (*future.Future, error)
}

// BatchAction is a validated request producing several concurrently issued
// futures when executed.
type BatchAction interface {
	ExecuteAll(ctx context.Context) (future.Group, error)
}
