package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/malezi/malezi/internal/blob"
)

// FileHandler serves stored blobs at their public URLs.
type FileHandler struct {
	store blob.Store
}

// NewFileHandler creates a handler over the blob store.
func NewFileHandler(store blob.Store) *FileHandler {
	return &FileHandler{store: store}
}

// ServeFile handles GET /files/{bucket}/*. Traversal attempts are rejected
// by the store's path guard.
func (h *FileHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	rel := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if bucket == "" || rel == "" {
		http.NotFound(w, r)
		return
	}

	rc, err := h.store.Open(bucket, rel)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer rc.Close()

	if _, err := io.Copy(w, rc); err != nil {
		// Client likely went away mid-transfer; nothing to recover.
		return
	}
}
