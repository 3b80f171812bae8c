// Package blob defines the file-storage abstraction behind the resource
// library and profile avatars.
package blob

import "io"

// Store is the interface for uploaded-file operations. Paths are relative
// to a named bucket.
type Store interface {
	// Upload atomically writes the reader's contents to bucket/path.
	Upload(bucket, path string, r io.Reader) error
	// Open returns a reader for the file at bucket/path.
	Open(bucket, path string) (io.ReadCloser, error)
	// Delete removes the file at bucket/path.
	Delete(bucket, path string) error
	// PublicURL returns the externally reachable URL for bucket/path.
	PublicURL(bucket, path string) string
}
