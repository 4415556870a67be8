// Package file_store puts and deletes user-content blobs. Each content class
// (profile photo, cover image, video) is served by its own store bound to a
// distinct bucket and public URL prefix.
package file_store

import (
	"context"
	"errors"
	"io"
)

// ErrBlobStore marks a failed put/delete against the blob store. Callers
// wrap it with context and log the underlying cause at the failure site.
var ErrBlobStore = errors.New("blob store failure")

// BlobStore stores one class of user content.
type BlobStore interface {
	// Upload stores body under a fresh object key derived from fileName and
	// returns the public URL of the stored blob.
	Upload(ctx context.Context, body io.Reader, fileName string) (url string, err error)
	// Delete removes the blob the URL points at. Deleting an empty URL is a
	// no-op.
	Delete(ctx context.Context, url string) error
}
