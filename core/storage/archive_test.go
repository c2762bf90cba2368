package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"index-manager/core/storage"
	"index-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newArchive(client storage.Client, retention int) *storage.Archive {
	return storage.NewArchive(client, storage.Config{Bucket: "index-manager", Prefix: "/reports/indexes/", Retention: retention})
}

func TestArchive_EnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "index-manager").Return(true, nil)

		require.NoError(t, newArchive(client, 0).EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "index-manager").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "index-manager", mock.Anything).Return(nil)

		require.NoError(t, newArchive(client, 0).EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "index-manager").Return(false, errors.New("denied"))

		assert.Error(t, newArchive(client, 0).EnsureBucket(context.Background()))
	})
}

func TestArchive_Put(t *testing.T) {
	client := new(mocks.Client)
	archive := newArchive(client, 0)
	at := time.Date(2026, 3, 1, 12, 30, 0, 5, time.UTC)
	body := []byte("Index public.i_cindex_a was dropped.\n")

	client.On("PutObject", mock.Anything, "index-manager", "reports/indexes/20260301T123000.000000005Z.log",
		mock.Anything, int64(len(body)), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	key, err := archive.Put(context.Background(), at, body)
	require.NoError(t, err)
	assert.Equal(t, "reports/indexes/20260301T123000.000000005Z.log", key)

	uploaded, ok := client.Uploaded(key)
	require.True(t, ok)
	assert.Equal(t, string(body), uploaded)
	client.AssertExpectations(t)
}

func TestArchive_List(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "index-manager", minio.ListObjectsOptions{Prefix: "reports/indexes/", Recursive: true}).
		Return(mocks.Reports(10,
			"reports/indexes/20260302T000000.000000000Z.log",
			"reports/indexes/notes.txt",
			"reports/indexes/20260301T000000.000000000Z.log",
		))

	reports, err := newArchive(client, 0).List(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "reports/indexes/20260301T000000.000000000Z.log", reports[0].Key)
	assert.Equal(t, "reports/indexes/20260302T000000.000000000Z.log", reports[1].Key)
}

func TestArchive_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "index-manager", "reports/indexes/a.log", mock.Anything).
			Return(mocks.Report("No index was created\n"), nil)

		body, err := newArchive(client, 0).Get(context.Background(), "reports/indexes/a.log")
		require.NoError(t, err)
		assert.Equal(t, "No index was created\n", string(body))
	})

	t.Run("Outside Prefix", func(t *testing.T) {
		client := new(mocks.Client)

		_, err := newArchive(client, 0).Get(context.Background(), "secrets/creds.txt")
		assert.ErrorIs(t, err, storage.ErrReportNotFound)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestArchive_Prune(t *testing.T) {
	keys := []string{
		"reports/indexes/1.log",
		"reports/indexes/2.log",
		"reports/indexes/3.log",
	}

	t.Run("Disabled", func(t *testing.T) {
		client := new(mocks.Client)

		removed, err := newArchive(client, 0).Prune(context.Background())
		require.NoError(t, err)
		assert.Zero(t, removed)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Removes Oldest", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "index-manager", mock.Anything).Return(mocks.Reports(10, keys...))

		client.On("RemoveObjects", mock.Anything, "index-manager", mock.Anything, mock.Anything).Return(nil)

		removed, err := newArchive(client, 1).Prune(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		assert.Equal(t, keys[:2], client.Removed())
	})

	t.Run("Partial Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "index-manager", mock.Anything).Return(mocks.Reports(10, keys...))

		errCh := make(chan minio.RemoveObjectError, 1)
		errCh <- minio.RemoveObjectError{ObjectName: keys[0], Err: errors.New("locked")}
		close(errCh)
		client.On("RemoveObjects", mock.Anything, "index-manager", mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errCh))

		removed, err := newArchive(client, 1).Prune(context.Background())
		require.Error(t, err)
		assert.Equal(t, 1, removed)
	})
}
