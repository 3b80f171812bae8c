package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/gateway"
)

// Resolver turns bearer tokens into identities using the persistence
// gateway. Resolution failures never fail the request: the caller simply
// proceeds as anonymous.
type Resolver struct {
	gw gateway.Gateway
}

// NewResolver creates a Resolver backed by the given gateway.
func NewResolver(gw gateway.Gateway) *Resolver {
	return &Resolver{gw: gw}
}

// Resolve looks up the session token and loads its profile. An unknown or
// empty token, a missing profile, or a gateway failure all yield Anonymous.
func (r *Resolver) Resolve(ctx context.Context, token string) Identity {
	if token == "" {
		return Anonymous
	}
	userID, err := r.gw.ResolveSession(ctx, token)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			slog.Warn("session lookup failed, treating caller as anonymous", "error", err)
		}
		return Anonymous
	}
	profile, err := r.gw.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			slog.Warn("profile lookup failed, treating caller as anonymous", "user_id", userID, "error", err)
		}
		return Anonymous
	}
	return Identity{
		UserID:   profile.UserID,
		Email:    profile.Email,
		FullName: profile.FullName,
		Role:     profile.Role,
	}
}
