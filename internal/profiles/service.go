// Package profiles implements the caller's own profile: viewing, editing
// the display fields, and avatar upload.
package profiles

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/blob"
	"github.com/malezi/malezi/internal/gateway"
	"github.com/malezi/malezi/internal/identity"
	"github.com/malezi/malezi/internal/models"
)

// Bucket is the blob bucket that stores avatars.
const Bucket = "avatars"

// Service owns profile reads and self-service updates.
type Service struct {
	gw    gateway.Gateway
	store blob.Store
}

// NewService creates a profile service over the gateway and blob store.
func NewService(gw gateway.Gateway, store blob.Store) *Service {
	return &Service{gw: gw, store: store}
}

// Get returns the caller's profile.
func (s *Service) Get(ctx context.Context) (models.Profile, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return models.Profile{}, apperr.ErrAuthRequired
	}
	return s.gw.GetProfile(ctx, caller.UserID)
}

// Update sets the caller's display name and bio. Full name is required.
func (s *Service) Update(ctx context.Context, fullName, bio string) (models.Profile, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return models.Profile{}, apperr.ErrAuthRequired
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return models.Profile{}, apperr.Validationf("full_name", "must not be empty")
	}
	if err := s.gw.UpdateProfile(ctx, caller.UserID, fullName, strings.TrimSpace(bio)); err != nil {
		return models.Profile{}, err
	}
	return s.gw.GetProfile(ctx, caller.UserID)
}

// UpdateAvatar stores the uploaded image under a stable per-user path and
// rewrites the profile's avatar URL. Re-uploading replaces the previous
// avatar.
func (s *Service) UpdateAvatar(ctx context.Context, fileName string, r io.Reader) (string, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return "", apperr.ErrAuthRequired
	}
	if r == nil {
		return "", apperr.Validationf("file", "avatar file is required")
	}

	path := caller.UserID + "/avatar" + filepath.Ext(fileName)
	if err := s.store.Upload(Bucket, path, r); err != nil {
		return "", apperr.Gateway("blob.upload", err)
	}
	url := s.store.PublicURL(Bucket, path)
	if err := s.gw.SetAvatarURL(ctx, caller.UserID, url); err != nil {
		return "", err
	}
	return url, nil
}
