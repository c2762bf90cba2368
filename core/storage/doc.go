// Package storage archives index run reports in object storage.
//
// It wraps the MinIO Go client, so both AWS S3 and self-hosted MinIO work. The
// Client interface keeps storage mockable in tests (see core/storage/mocks).
//
// # Archive
//
//   - EnsureBucket: creates the bucket on first use.
//   - Put: uploads a report as <prefix>/<UTC timestamp>.log.
//   - List / Get: browse archived reports, oldest first.
//   - Prune: removes the oldest reports beyond the retention count.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archive := storage.NewArchive(client, cfg.Storage)
//	key, err := archive.Put(ctx, time.Now(), report)
package storage
