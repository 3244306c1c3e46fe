// Package storage defines the key-value storage collaborator consumed by the
// orchestration core. Implementations wrap the wire protocol of the remote
// storage service; the core only depends on this interface and on the future
// each call returns.
package storage

import (
	"context"

	"github.com/stratocloud/cascade/runtime/future"
)

// Well-known namespaces of the app platform storage.
const (
	ManifestsNamespace = "manifests"
	AppsNamespace      = "apps"
	ProfilesNamespace  = "profiles"
	RunlistsNamespace  = "runlists"
	CrashlogsNamespace = "crashlogs"
)

// Well-known index tags.
var (
	AppTags     = []string{"app"}
	ProfileTags = []string{"profile"}
	RunlistTags = []string{"runlist"}
)

// Service issues asynchronous calls against the remote storage service. Each
// call returns immediately with a future delivering the raw response.
type Service interface {
	// Find lists keys in a namespace matching the supplied tags. The future
	// delivers one chunk holding the raw key list.
	Find(ctx context.Context, namespace string, tags []string) *future.Future

	// Read fetches the payload stored under namespace/key.
	Read(ctx context.Context, namespace, key string) *future.Future

	// Write stores payload under namespace/key indexed by tags.
	Write(ctx context.Context, namespace, key string, payload []byte, tags []string) *future.Future

	// Remove deletes the record stored under namespace/key.
	Remove(ctx context.Context, namespace, key string) *future.Future
}
