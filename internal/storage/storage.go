package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry bounds how long an issued upload or download
// URL stays valid.
const DefaultPresignedURLExpiry = 15 * time.Minute

// ObjectStorage is the object store abstraction used for meal photos.
// Clients upload directly against presigned URLs; the API never proxies
// image bytes.
type ObjectStorage interface {
	// PresignUpload creates a temporary URL accepting a PUT for objectKey.
	// The uploader must send the same Content-Type.
	PresignUpload(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error)

	// PresignDownload creates a temporary URL serving a GET for objectKey.
	PresignDownload(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// Delete removes objectKey from the store.
	Delete(ctx context.Context, objectKey string) error
}
