// Package storage provides the filesystem abstraction behind product image
// uploads.
//
// Two drivers are available:
//   - "local"  — local filesystem (default, development)
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2)
//
// Quick start:
//
//	storage.Connect()
//	storage.Put("products/ring.jpg", data)
//	url := storage.URL("products/ring.jpg")
package storage

import (
	"context"
	"io"
	"time"
)

// Disk is the driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error
}

// Presigner is implemented by disks that can hand the client a short-lived
// direct-upload URL. The admin UI uploads straight to object storage and
// only the resulting public URL goes through the API.
type Presigner interface {
	PresignPut(ctx context.Context, path, contentType string, expiry time.Duration) (string, error)
}
