// Package api implements the Malezi REST API using chi.
package api

import (
	"net/http"
	"strings"

	"github.com/malezi/malezi/internal/identity"
)

// IdentityMiddleware resolves the "Authorization: Bearer <token>" header
// into an identity on the request context. Requests without a valid token
// proceed as anonymous; the services decide per operation whether an
// identity is required.
func IdentityMiddleware(resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
			id := resolver.Resolve(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
		})
	}
}
