// Package identity carries the caller's resolved user and role through
// request handling.
package identity

import (
	"context"

	"github.com/malezi/malezi/internal/models"
)

// Identity describes the caller of an operation. The zero value is the
// anonymous caller.
type Identity struct {
	UserID   string
	Email    string
	FullName string
	Role     models.Role
}

// Anonymous is the identity attached to unauthenticated requests.
var Anonymous = Identity{}

// IsAuthenticated reports whether the identity belongs to a signed-in user.
func (id Identity) IsAuthenticated() bool {
	return id.UserID != ""
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool {
	return id.IsAuthenticated() && id.Role == models.RoleAdmin
}

type ctxKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity attached to ctx, or Anonymous if none
// was attached.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(ctxKey{}).(Identity); ok {
		return id
	}
	return Anonymous
}
