// Package events implements community events with capacity-limited
// registration.
package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/gateway"
	"github.com/malezi/malezi/internal/identity"
	"github.com/malezi/malezi/internal/models"
)

// CreateInput carries the fields for a new event. MaxParticipants of zero
// means unlimited.
type CreateInput struct {
	Title           string
	Description     string
	EventType       string
	Location        string
	StartDate       time.Time
	EndDate         time.Time
	MaxParticipants int
}

// Service owns events and their registrations.
type Service struct {
	gw gateway.Gateway
}

// NewService creates an event service over the gateway.
func NewService(gw gateway.Gateway) *Service {
	return &Service{gw: gw}
}

// List returns all events, most recent start date first.
func (s *Service) List(ctx context.Context) ([]models.Event, error) {
	return s.gw.ListEvents(ctx)
}

// Create inserts a new event. Admin only.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.Event, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return models.Event{}, apperr.ErrAuthRequired
	}
	if !caller.IsAdmin() {
		return models.Event{}, apperr.ErrForbidden
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return models.Event{}, apperr.Validationf("title", "must not be empty")
	}
	if in.StartDate.IsZero() {
		return models.Event{}, apperr.Validationf("start_date", "must be set")
	}

	ev := models.Event{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Description:     strings.TrimSpace(in.Description),
		EventType:       in.EventType,
		Location:        in.Location,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		MaxParticipants: in.MaxParticipants,
		CreatedBy:       caller.UserID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.gw.InsertEvent(ctx, ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// Delete removes an event and its registrations. Admin only.
func (s *Service) Delete(ctx context.Context, id string) error {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return apperr.ErrAuthRequired
	}
	if !caller.IsAdmin() {
		return apperr.ErrForbidden
	}
	return s.gw.DeleteEvent(ctx, id)
}

// Register signs the caller up for an event. Fails with ErrConflict when
// the caller is already registered or the event is full. The participant
// counter is read-then-write; a concurrent registration may lose an
// increment.
func (s *Service) Register(ctx context.Context, eventID string) error {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return apperr.ErrAuthRequired
	}

	ev, err := s.gw.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if _, err := s.gw.GetRegistration(ctx, eventID, caller.UserID); err == nil {
		return apperr.ErrConflict
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	if ev.MaxParticipants > 0 && ev.CurrentParticipants >= ev.MaxParticipants {
		return apperr.ErrConflict
	}

	reg := models.EventRegistration{
		ID:        uuid.NewString(),
		EventID:   eventID,
		UserID:    caller.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.gw.InsertRegistration(ctx, reg); err != nil {
		return err
	}
	return s.gw.SetParticipantCount(ctx, eventID, ev.CurrentParticipants+1)
}

// Unregister removes the caller's registration and decrements the counter.
func (s *Service) Unregister(ctx context.Context, eventID string) error {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return apperr.ErrAuthRequired
	}

	ev, err := s.gw.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if _, err := s.gw.GetRegistration(ctx, eventID, caller.UserID); err != nil {
		return err
	}
	if err := s.gw.DeleteRegistration(ctx, eventID, caller.UserID); err != nil {
		return err
	}

	count := ev.CurrentParticipants - 1
	if count < 0 {
		count = 0
	}
	return s.gw.SetParticipantCount(ctx, eventID, count)
}

// IsRegistered reports whether the caller holds a registration for the
// event. Anonymous callers are never registered.
func (s *Service) IsRegistered(ctx context.Context, eventID string) (bool, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return false, nil
	}
	_, err := s.gw.GetRegistration(ctx, eventID, caller.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
