package blob

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FS implements Store backed by the local file system. Each bucket is a
// subdirectory of the root.
type FS struct {
	root    string // absolute path to the storage directory
	baseURL string // public base URL, no trailing slash
}

// Compile-time interface check.
var _ Store = (*FS)(nil)

// NewFS creates a new FS store rooted at the given directory. The directory
// must already exist.
func NewFS(root, baseURL string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("blob: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("blob: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("blob: root is not a directory: %s", abs)
	}
	return &FS{root: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// safePath resolves bucket/rel against the root and rejects any result that
// escapes it (directory traversal).
func (f *FS) safePath(bucket, rel string) (string, error) {
	if bucket == "" || rel == "" {
		return "", fmt.Errorf("blob: empty bucket or path")
	}
	cleaned := filepath.Clean(filepath.Join(bucket, rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("blob: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("blob: resolve path: %w", err)
	}
	// Ensure the resolved path is still under root.
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("blob: path escapes storage root: %s", rel)
	}
	return abs, nil
}

// Upload atomically writes the reader's contents: tmp file, fsync, rename.
func (f *FS) Upload(bucket, relPath string, r io.Reader) error {
	abs, err := f.safePath(bucket, relPath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("blob: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".malezi-tmp-*")
	if err != nil {
		return fmt.Errorf("blob: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return fmt.Errorf("blob: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("blob: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("blob: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("blob: rename: %w", err)
	}
	success = true
	return nil
}

// Open returns a reader for the stored file.
func (f *FS) Open(bucket, relPath string) (io.ReadCloser, error) {
	abs, err := f.safePath(bucket, relPath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("blob: open %s/%s: %w", bucket, relPath, err)
	}
	return file, nil
}

// Delete removes a stored file.
func (f *FS) Delete(bucket, relPath string) error {
	abs, err := f.safePath(bucket, relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("blob: delete %s/%s: %w", bucket, relPath, err)
	}
	return nil
}

// PublicURL returns the URL under which the file is served.
func (f *FS) PublicURL(bucket, relPath string) string {
	escaped := make([]string, 0, 4)
	for _, seg := range strings.Split(path.Join(bucket, relPath), "/") {
		escaped = append(escaped, url.PathEscape(seg))
	}
	return f.baseURL + "/files/" + strings.Join(escaped, "/")
}
