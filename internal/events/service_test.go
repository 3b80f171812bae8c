package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/identity"
	"github.com/malezi/malezi/internal/models"
	"github.com/malezi/malezi/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testutil.TestGateway(t))
}

func asUser(userID string, role models.Role) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{
		UserID: userID, Role: role,
	})
}

func workshopInput(max int) CreateInput {
	start := time.Now().UTC().Add(24 * time.Hour)
	return CreateInput{
		Title:           "Parenting workshop",
		EventType:       "workshop",
		Location:        "Community hall",
		StartDate:       start,
		EndDate:         start.Add(2 * time.Hour),
		MaxParticipants: max,
	}
}

func TestCreateIsAdminGated(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create(context.Background(), workshopInput(0)); !errors.Is(err, apperr.ErrAuthRequired) {
		t.Errorf("anonymous: got %v, want ErrAuthRequired", err)
	}
	if _, err := svc.Create(asUser("u1", models.RoleParent), workshopInput(0)); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("parent: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Create(asUser("a1", models.RoleAdmin), workshopInput(0)); err != nil {
		t.Errorf("admin create failed: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	admin := asUser("a1", models.RoleAdmin)

	in := workshopInput(0)
	in.Title = "  "
	if _, err := svc.Create(admin, in); !apperr.IsValidation(err) {
		t.Errorf("empty title: got %v, want ValidationError", err)
	}

	in = workshopInput(0)
	in.StartDate = time.Time{}
	if _, err := svc.Create(admin, in); !apperr.IsValidation(err) {
		t.Errorf("zero start date: got %v, want ValidationError", err)
	}
}

func TestRegisterAndUnregister(t *testing.T) {
	svc := newTestService(t)
	admin := asUser("a1", models.RoleAdmin)

	ev, err := svc.Create(admin, workshopInput(0))
	if err != nil {
		t.Fatal(err)
	}

	user := asUser("u1", models.RoleParent)
	if err := svc.Register(user, ev.ID); err != nil {
		t.Fatal(err)
	}

	registered, err := svc.IsRegistered(user, ev.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !registered {
		t.Error("user should be registered")
	}

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got[0].CurrentParticipants != 1 {
		t.Errorf("got %d participants, want 1", got[0].CurrentParticipants)
	}

	if err := svc.Unregister(user, ev.ID); err != nil {
		t.Fatal(err)
	}
	got, err = svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got[0].CurrentParticipants != 0 {
		t.Errorf("after unregister: got %d participants, want 0", got[0].CurrentParticipants)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newTestService(t)

	ev, err := svc.Create(asUser("a1", models.RoleAdmin), workshopInput(0))
	if err != nil {
		t.Fatal(err)
	}

	user := asUser("u1", models.RoleParent)
	if err := svc.Register(user, ev.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Register(user, ev.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate registration: got %v, want ErrConflict", err)
	}
}

func TestRegisterEnforcesCapacity(t *testing.T) {
	svc := newTestService(t)

	ev, err := svc.Create(asUser("a1", models.RoleAdmin), workshopInput(2))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.Register(asUser(fmt.Sprintf("u%d", i), models.RoleParent), ev.ID); err != nil {
			t.Fatalf("registration %d: %v", i, err)
		}
	}
	if err := svc.Register(asUser("u9", models.RoleParent), ev.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("full event: got %v, want ErrConflict", err)
	}
}

func TestRegisterRequiresIdentity(t *testing.T) {
	svc := newTestService(t)

	ev, err := svc.Create(asUser("a1", models.RoleAdmin), workshopInput(0))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Register(context.Background(), ev.ID); !errors.Is(err, apperr.ErrAuthRequired) {
		t.Errorf("got %v, want ErrAuthRequired", err)
	}
	if err := svc.Register(asUser("u1", models.RoleParent), "no-such-event"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing event: got %v, want ErrNotFound", err)
	}
}

func TestDeleteIsAdminGated(t *testing.T) {
	svc := newTestService(t)

	ev, err := svc.Create(asUser("a1", models.RoleAdmin), workshopInput(0))
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(asUser("u1", models.RoleParent), ev.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(asUser("a1", models.RoleAdmin), ev.ID); err != nil {
		t.Fatal(err)
	}

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d events after delete, want 0", len(got))
	}
}
