// Package storage holds the object-store client used to archive raw flow
// files after a successful import. Implementations must avoid local disk
// and rely on streaming I/O only.
package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo contains basic information about an archived object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Archive is an S3-compatible store for original flow-file content. The
// importer writes to it after commit; the API reads from it to serve the
// original bytes back for audit.
type Archive interface {
	// Store saves the raw flow file under its filename. Size should be the
	// exact number of bytes if known; set to -1 to let the backend chunk.
	// Metadata is optional and travels with the object.
	Store(ctx context.Context, filename string, r io.Reader, size int64, metadata map[string]string) (ObjectInfo, error)
	// Open retrieves an archived flow file as a streaming reader alongside
	// its info.
	Open(ctx context.Context, filename string) (io.ReadCloser, ObjectInfo, error)
}
