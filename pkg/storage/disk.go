// Package storage writes files to a named disk: the local filesystem or an
// S3-compatible bucket (AWS S3, MinIO, R2, Spaces).
//
//	disks, _ := storage.FromConfig(ctx)
//	d, _ := disks.Disk("s3")
//	_ = d.Put(ctx, "exports/inventory.json", data)
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for a missing file.
var ErrNotFound = errors.New("storage: file not found")

// Disk is a flat key/value file store. Paths use forward slashes.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error
	// Get returns the content of path, or ErrNotFound.
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	// Delete removes path. A missing file is not an error.
	Delete(ctx context.Context, path string) error
	// Files lists the files directly inside directory.
	Files(ctx context.Context, directory string) ([]string, error)
	// URL is the public address of path.
	URL(path string) string
}
