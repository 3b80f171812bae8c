// Package testutil provides shared test helpers for setting up temporary
// gateways, blob roots, and fixture rows.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/malezi/malezi/internal/blob"
	"github.com/malezi/malezi/internal/gateway/sqlite"
	"github.com/malezi/malezi/internal/models"
)

// TestGateway creates a temporary SQLite gateway that is automatically
// cleaned up.
func TestGateway(t *testing.T) *sqlite.Gateway {
	t.Helper()
	dbFile, err := os.CreateTemp("", "malezi-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	gw, err := sqlite.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { gw.Close() })
	return gw
}

// TestBlobStore creates a temporary file-system blob store.
func TestBlobStore(t *testing.T) (string, *blob.FS) {
	t.Helper()
	root := t.TempDir()
	store, err := blob.NewFS(root, "http://files.test")
	if err != nil {
		t.Fatal(err)
	}
	return root, store
}

// SeedUser inserts a profile with the given role plus a session for it,
// returning the user id and the bearer token.
func SeedUser(t *testing.T, gw *sqlite.Gateway, name string, role models.Role) (userID, token string) {
	t.Helper()
	ctx := context.Background()
	userID = uuid.NewString()
	if err := gw.InsertProfile(ctx, models.Profile{
		UserID:    userID,
		Email:     name + "@example.com",
		FullName:  name,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("insert profile: %v", err)
	}
	token = "tok-" + userID
	if err := gw.InsertSession(ctx, token, userID); err != nil {
		t.Fatalf("insert session: %v", err)
	}
	return userID, token
}
