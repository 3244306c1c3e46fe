package app

import (
	"archive/tar"
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/runtime/future"
	"github.com/stratocloud/cascade/service/codec"
	"github.com/stratocloud/cascade/service/node"
	"github.com/stratocloud/cascade/service/storage"
	smemory "github.com/stratocloud/cascade/service/storage/memory"
)

// fakeNode records issued calls and answers from a canned snapshot.
type fakeNode struct {
	mu       sync.Mutex
	snapshot *node.Snapshot
	paused   [][]string
	started  []map[string]string
}

func (f *fakeNode) Info(ctx context.Context) *future.Future {
	return future.Resolved(f.snapshot)
}

func (f *fakeNode) StartApp(ctx context.Context, apps map[string]string) *future.Future {
	f.mu.Lock()
	f.started = append(f.started, apps)
	f.mu.Unlock()
	return future.Resolved("ok")
}

func (f *fakeNode) PauseApp(ctx context.Context, names []string) *future.Future {
	f.mu.Lock()
	f.paused = append(f.paused, names)
	f.mu.Unlock()
	return future.Resolved("ok")
}

func newStorage(t *testing.T) (*smemory.Service, context.Context) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	service := smemory.New()
	service.Start(ctx)
	return service, ctx
}

func TestConstructorValidation(t *testing.T) {
	storageService, _ := newStorage(t)
	codecService := codec.New()
	nodeService := &fakeNode{}

	testCases := []struct {
		description string
		build       func() (interface{}, error)
	}{
		{"view needs a name", func() (interface{}, error) { return NewViewAction(storageService, "") }},
		{"remove needs a name", func() (interface{}, error) { return NewRemoveAction(storageService, "") }},
		{"start needs a name", func() (interface{}, error) { return NewStartAction(nodeService, "", "default") }},
		{"start needs a profile", func() (interface{}, error) { return NewStartAction(nodeService, "echo", "") }},
		{"pause needs a name", func() (interface{}, error) { return NewPauseAction(nodeService, "") }},
		{"restart needs a name", func() (interface{}, error) { return NewRestartAction(nodeService, "", "") }},
		{"check needs a name", func() (interface{}, error) { return NewCheckAction(nodeService, "") }},
		{"upload needs a name", func() (interface{}, error) {
			return NewUploadAction(storageService, codecService, "", "mem://localhost/m.json", "mem://localhost/p.tar")
		}},
		{"upload needs a manifest", func() (interface{}, error) {
			return NewUploadAction(storageService, codecService, "echo", "", "mem://localhost/p.tar")
		}},
		{"upload needs a package", func() (interface{}, error) {
			return NewUploadAction(storageService, codecService, "echo", "mem://localhost/m.json", "")
		}},
	}
	for _, testCase := range testCases {
		_, err := testCase.build()
		assert.ErrorIs(t, err, types.ErrConfiguration, testCase.description)
	}
}

func TestListAction(t *testing.T) {
	storageService, ctx := newStorage(t)
	require.NoError(t, storageService.Put(ctx, storage.ManifestsNamespace, "echo", []byte("m"), storage.AppTags))

	chunks, err := mustExecute(t, ctx, NewListAction(storageService))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, []string{"echo"}, chunks[0])
}

func TestViewAction(t *testing.T) {
	storageService, ctx := newStorage(t)
	require.NoError(t, storageService.Put(ctx, storage.ManifestsNamespace, "echo", []byte("manifest"), storage.AppTags))

	action, err := NewViewAction(storageService, "echo")
	require.NoError(t, err)
	chunks, err := mustExecute(t, ctx, action)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{[]byte("manifest")}, chunks)
}

func TestUploadActionWritesManifestAndPackage(t *testing.T) {
	storageService, ctx := newStorage(t)
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, "mem://localhost/app/m.json", 0644, bytes.NewReader([]byte(`{"slave":"echo.py"}`))))
	require.NoError(t, fs.Upload(ctx, "mem://localhost/app/p.tar", 0644, bytes.NewReader(tarball(t))))

	action, err := NewUploadAction(storageService, codec.New(), "echo", "mem://localhost/app/m.json", "mem://localhost/app/p.tar")
	require.NoError(t, err)

	group, err := action.ExecuteAll(ctx)
	require.NoError(t, err)
	_, err = group.Wait(ctx)
	require.NoError(t, err)

	_, err = storageService.Read(ctx, storage.ManifestsNamespace, "echo").Wait(ctx)
	assert.NoError(t, err)
	_, err = storageService.Read(ctx, storage.AppsNamespace, "echo").Wait(ctx)
	assert.NoError(t, err)
}

func TestUploadActionRejectsCorruptManifestBeforeAnyWrite(t *testing.T) {
	storageService, ctx := newStorage(t)
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, "mem://localhost/app/broken.json", 0644, bytes.NewReader([]byte("{broken"))))
	require.NoError(t, fs.Upload(ctx, "mem://localhost/app/ok.tar", 0644, bytes.NewReader(tarball(t))))

	action, err := NewUploadAction(storageService, codec.New(), "echo", "mem://localhost/app/broken.json", "mem://localhost/app/ok.tar")
	require.NoError(t, err)

	_, err = action.ExecuteAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrPayload)

	_, err = storageService.Read(ctx, storage.AppsNamespace, "echo").Wait(ctx)
	assert.Error(t, err, "no package write may happen when the manifest is corrupt")
}

func TestRemoveActionDeletesManifestAndPackage(t *testing.T) {
	storageService, ctx := newStorage(t)
	require.NoError(t, storageService.Put(ctx, storage.ManifestsNamespace, "echo", []byte("m"), storage.AppTags))
	require.NoError(t, storageService.Put(ctx, storage.AppsNamespace, "echo", []byte("p"), storage.AppTags))

	action, err := NewRemoveAction(storageService, "echo")
	require.NoError(t, err)
	group, err := action.ExecuteAll(ctx)
	require.NoError(t, err)
	_, err = group.Wait(ctx)
	require.NoError(t, err)

	_, err = storageService.Read(ctx, storage.ManifestsNamespace, "echo").Wait(ctx)
	assert.Error(t, err)
}

func TestRestartUsesExplicitProfile(t *testing.T) {
	nodeService := &fakeNode{snapshot: &node.Snapshot{}}
	action, err := NewRestartAction(nodeService, "echo", "isolated")
	require.NoError(t, err)

	f, err := action.Execute(context.Background())
	require.NoError(t, err)
	_, err = f.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"echo"}}, nodeService.paused)
	assert.Equal(t, []map[string]string{{"echo": "isolated"}}, nodeService.started)
}

func TestRestartFallsBackToRunningProfile(t *testing.T) {
	nodeService := &fakeNode{snapshot: &node.Snapshot{
		Apps: map[string]node.AppInfo{"echo": {State: node.StateRunning, Profile: "default"}},
	}}
	action, err := NewRestartAction(nodeService, "echo", "")
	require.NoError(t, err)

	f, err := action.Execute(context.Background())
	require.NoError(t, err)
	_, err = f.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []map[string]string{{"echo": "default"}}, nodeService.started)
}

func TestRestartNotRunningWithoutProfileFails(t *testing.T) {
	nodeService := &fakeNode{snapshot: &node.Snapshot{}}
	action, err := NewRestartAction(nodeService, "echo", "")
	require.NoError(t, err)

	f, err := action.Execute(context.Background())
	require.NoError(t, err)
	_, err = f.Wait(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDomain)
	assert.Contains(t, err.Error(), `application "echo" is not running and profile not specified`)
	assert.Empty(t, nodeService.paused)
	assert.Empty(t, nodeService.started)
}

func TestCheckReportsState(t *testing.T) {
	nodeService := &fakeNode{snapshot: &node.Snapshot{
		Apps: map[string]node.AppInfo{"echo": {State: node.StateRunning}},
	}}

	action, err := NewCheckAction(nodeService, "echo")
	require.NoError(t, err)
	f, err := action.Execute(context.Background())
	require.NoError(t, err)
	chunks, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []interface{}{map[string]string{"echo": node.StateRunning}}, chunks)
}

func TestCheckUnknownAppReportsMissing(t *testing.T) {
	nodeService := &fakeNode{snapshot: &node.Snapshot{}}

	action, err := NewCheckAction(nodeService, "ghost")
	require.NoError(t, err)
	f, err := action.Execute(context.Background())
	require.NoError(t, err)
	chunks, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []interface{}{map[string]string{"ghost": node.StateMissing}}, chunks)
}

func TestPauseAction(t *testing.T) {
	nodeService := &fakeNode{}
	action, err := NewPauseAction(nodeService, "echo")
	require.NoError(t, err)
	f, err := action.Execute(context.Background())
	require.NoError(t, err)
	_, err = f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"echo"}}, nodeService.paused)
}

func mustExecute(t *testing.T, ctx context.Context, action types.FutureAction) ([]interface{}, error) {
	f, err := action.Execute(ctx)
	require.NoError(t, err)
	return f.Wait(ctx)
}

func tarball(t *testing.T) []byte {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	content := []byte("#!/usr/bin/env python")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "app.py", Mode: 0644, Size: int64(len(content))}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	return buf.Bytes()
}
