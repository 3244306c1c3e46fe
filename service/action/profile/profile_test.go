package profile

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/stratocloud/cascade/model/types"
	"github.com/stratocloud/cascade/service/codec"
	"github.com/stratocloud/cascade/service/storage"
	smemory "github.com/stratocloud/cascade/service/storage/memory"
)

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

	_, err := NewViewAction(storageService, "")
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = NewRemoveAction(storageService, "")
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = NewUploadAction(storageService, codecService, "", "mem://localhost/p.json")
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = NewUploadAction(storageService, codecService, "default", "")
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestUploadListViewRemove(t *testing.T) {
	storageService, ctx := newStorage(t)
	codecService := codec.New()
	fs := afs.New()
	URL := "mem://localhost/profile/default.json"
	require.NoError(t, fs.Upload(ctx, URL, 0644, bytes.NewReader([]byte(`{"pool-limit": 4}`))))

	upload, err := NewUploadAction(storageService, codecService, "default", URL)
	require.NoError(t, err)
	f, err := upload.Execute(ctx)
	require.NoError(t, err)
	_, err = f.Wait(ctx)
	require.NoError(t, err)

	list := NewListAction(storageService)
	f, err = list.Execute(ctx)
	require.NoError(t, err)
	chunks, err := f.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, chunks[0])

	view, err := NewViewAction(storageService, "default")
	require.NoError(t, err)
	f, err = view.Execute(ctx)
	require.NoError(t, err)
	chunks, err = f.Wait(ctx)
	require.NoError(t, err)
	record, err := codecService.DecodeMap(chunks[0].([]byte))
	require.NoError(t, err)
	assert.Contains(t, record, "pool-limit")

	remove, err := NewRemoveAction(storageService, "default")
	require.NoError(t, err)
	f, err = remove.Execute(ctx)
	require.NoError(t, err)
	_, err = f.Wait(ctx)
	require.NoError(t, err)
}

func TestUploadCorruptDocumentFailsSynchronously(t *testing.T) {
	storageService, ctx := newStorage(t)
	fs := afs.New()
	URL := "mem://localhost/profile/broken.json"
	require.NoError(t, fs.Upload(ctx, URL, 0644, bytes.NewReader([]byte("{oops"))))

	upload, err := NewUploadAction(storageService, codec.New(), "default", URL)
	require.NoError(t, err)
	_, err = upload.Execute(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrPayload)

	_, err = storageService.Read(ctx, storage.ProfilesNamespace, "default").Wait(ctx)
	assert.Error(t, err)
}
