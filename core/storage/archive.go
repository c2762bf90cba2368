package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// ErrReportNotFound is returned when a report key does not exist in the archive.
var ErrReportNotFound = errors.New("report not found")

// reportLayout sorts lexically in time order.
const reportLayout = "20060102T150405.000000000Z"

// Report describes an archived run report.
type Report struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archive stores run reports under a key prefix of one bucket.
type Archive struct {
	client    Client
	bucket    string
	prefix    string
	retention int
}

// NewArchive creates an Archive from the storage configuration.
func NewArchive(client Client, cfg Config) *Archive {
	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix == "" {
		prefix = "reports/indexes"
	}
	return &Archive{client: client, bucket: cfg.Bucket, prefix: prefix, retention: cfg.Retention}
}

// Bucket returns the archive bucket name.
func (a *Archive) Bucket() string {
	return a.bucket
}

// EnsureBucket creates the archive bucket when it is missing.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// Key returns the object key of a report written at t.
func (a *Archive) Key(t time.Time) string {
	return path.Join(a.prefix, t.UTC().Format(reportLayout)+".log")
}

// Put uploads a report written at t and returns its key.
func (a *Archive) Put(ctx context.Context, t time.Time, body []byte) (string, error) {
	key := a.Key(t)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", key, err)
	}
	return key, nil
}

// List returns the archived reports, oldest first.
func (a *Archive) List(ctx context.Context) ([]Report, error) {
	reports := []Report{}
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: a.prefix + "/", Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".log") {
			continue
		}
		reports = append(reports, Report{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Key < reports[j].Key })
	return reports, nil
}

// Get downloads a report by key. Keys outside the archive prefix are not found.
func (a *Archive) Get(ctx context.Context, key string) ([]byte, error) {
	if !strings.HasPrefix(key, a.prefix+"/") {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, key)
	}

	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get report %s: %w", key, err)
	}
	defer obj.Close()

	body, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, key)
		}
		return nil, fmt.Errorf("failed to read report %s: %w", key, err)
	}
	return body, nil
}

// Prune removes the oldest reports beyond the configured retention and returns
// how many were removed.
func (a *Archive) Prune(ctx context.Context) (int, error) {
	if a.retention <= 0 {
		return 0, nil
	}

	reports, err := a.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(reports) <= a.retention {
		return 0, nil
	}
	stale := reports[:len(reports)-a.retention]

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, r := range stale {
		objectsCh <- minio.ObjectInfo{Key: r.Key}
	}
	close(objectsCh)

	removed := len(stale)
	var errs []error
	for rErr := range a.client.RemoveObjects(ctx, a.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		removed--
		errs = append(errs, fmt.Errorf("%s: %w", rErr.ObjectName, rErr.Err))
	}
	if len(errs) > 0 {
		return removed, fmt.Errorf("failed to prune reports: %w", errors.Join(errs...))
	}
	return removed, nil
}
