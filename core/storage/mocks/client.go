// Package mocks provides a testify mock of storage.Client for report archive tests.
package mocks

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client.
// Uploaded report bodies and removed keys are recorded on top of the expectations.
type Client struct {
	mock.Mock

	mu      sync.Mutex
	uploads map[string][]byte
	removed []string
}

// Uploaded returns the body uploaded under key, if any.
func (m *Client) Uploaded(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.uploads[key]
	return string(body), ok
}

// Removed returns the keys passed to RemoveObjects, in order.
func (m *Client) Removed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed...)
}

// Reports returns a closed listing channel holding one object per key.
func Reports(size int64, keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k, Size: size}
	}
	close(ch)
	return ch
}

// Report returns a report body as GetObject would.
func Report(body string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(body))
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

// PutObject reads the report body before matching, so expectations see its size only.
func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}

	args := m.Called(ctx, bucketName, objectName, bytes.NewReader(body), objectSize, opts)
	if args.Error(1) == nil {
		m.mu.Lock()
		if m.uploads == nil {
			m.uploads = make(map[string][]byte)
		}
		m.uploads[objectName] = body
		m.mu.Unlock()
	}
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	if obj, ok := args.Get(0).(io.ReadCloser); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	if ch, ok := args.Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	return Reports(0)
}

// RemoveObjects drains objectsCh into Removed before returning the expected error channel.
func (m *Client) RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError {
	args := m.Called(ctx, bucketName, objectsCh, opts)

	m.mu.Lock()
	for obj := range objectsCh {
		m.removed = append(m.removed, obj.Key)
	}
	m.mu.Unlock()

	if ch, ok := args.Get(0).(<-chan minio.RemoveObjectError); ok {
		return ch
	}
	ch := make(chan minio.RemoveObjectError)
	close(ch)
	return ch
}
