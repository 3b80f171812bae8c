// Package resources implements the shared resource library: admin-curated
// uploads, filtered listings, and download counting.
package resources

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/blob"
	"github.com/malezi/malezi/internal/gateway"
	"github.com/malezi/malezi/internal/identity"
	"github.com/malezi/malezi/internal/models"
)

// Bucket is the blob bucket that stores resource files.
const Bucket = "resources"

// CreateInput carries the fields for a new resource. File is the uploaded
// content for non-link types; FileURL is used verbatim for link resources.
type CreateInput struct {
	Title       string
	Description string
	FileType    models.FileType
	Category    models.Category
	Tags        []string
	IsFeatured  bool
	FileURL     string
	File        io.Reader
	FileName    string
}

// Service owns the resource library.
type Service struct {
	gw    gateway.Gateway
	store blob.Store
}

// NewService creates a resource service over the gateway and blob store.
func NewService(gw gateway.Gateway, store blob.Store) *Service {
	return &Service{gw: gw, store: store}
}

// List returns all resources, featured first, then newest first.
func (s *Service) List(ctx context.Context) ([]models.Resource, error) {
	return s.gw.ListResources(ctx)
}

// Search lists resources and applies the term/category filter.
func (s *Service) Search(ctx context.Context, term, category string) ([]models.Resource, error) {
	items, err := s.gw.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(items, term, category), nil
}

// Create uploads and inserts a new resource. Admin only. Non-link types
// require file content, which is stored under a timestamp-derived name;
// link resources take the given URL verbatim.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.Resource, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return models.Resource{}, apperr.ErrAuthRequired
	}
	if !caller.IsAdmin() {
		return models.Resource{}, apperr.ErrForbidden
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return models.Resource{}, apperr.Validationf("title", "must not be empty")
	}
	if !in.FileType.Valid() {
		return models.Resource{}, apperr.Validationf("file_type", "unknown file type")
	}
	if !in.Category.Valid() {
		return models.Resource{}, apperr.Validationf("category", "unknown category")
	}

	fileURL := in.FileURL
	if in.FileType == models.FileTypeLink {
		if strings.TrimSpace(fileURL) == "" {
			return models.Resource{}, apperr.Validationf("file_url", "link resources require a URL")
		}
	} else {
		if in.File == nil {
			return models.Resource{}, apperr.Validationf("file", "resource file is required")
		}
		name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(in.FileName))
		if err := s.store.Upload(Bucket, name, in.File); err != nil {
			return models.Resource{}, apperr.Gateway("blob.upload", err)
		}
		fileURL = s.store.PublicURL(Bucket, name)
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	r := models.Resource{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		FileType:    in.FileType,
		Category:    in.Category,
		Tags:        tags,
		FileURL:     fileURL,
		IsFeatured:  in.IsFeatured,
		CreatedBy:   caller.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.gw.InsertResource(ctx, r); err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

// RecordDownload bumps the resource's download counter and returns the
// resource. Read-then-write: concurrent downloads may lose an increment,
// which is acceptable for a popularity signal.
func (s *Service) RecordDownload(ctx context.Context, id string) (models.Resource, error) {
	r, err := s.gw.GetResource(ctx, id)
	if err != nil {
		return models.Resource{}, err
	}
	r.DownloadCount++
	if err := s.gw.SetDownloadCount(ctx, id, r.DownloadCount); err != nil {
		return models.Resource{}, err
	}
	return r, nil
}
