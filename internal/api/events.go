package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/malezi/malezi/internal/events"
)

// EventHandler holds the community event routes.
type EventHandler struct {
	svc *events.Service
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *events.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

// ListEvents handles GET /api/events.
//
//	@Summary		List events, most recent start date first
//	@Tags			events
//	@Produce		json
//	@Success		200	{object}	EventListResponse
//	@Router			/events [get]
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, "list events", err)
		return
	}
	writeJSON(w, http.StatusOK, EventListResponse{Events: items})
}

// CreateEvent handles POST /api/events.
//
//	@Summary		Create an event (admin only)
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateEventRequest	true	"Event to create"
//	@Success		201		{object}	models.Event
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events [post]
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	ev, err := h.svc.Create(r.Context(), events.CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		EventType:       req.EventType,
		Location:        req.Location,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		writeError(w, "create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// DeleteEvent handles DELETE /api/events/{id}.
//
//	@Summary		Delete an event (admin only)
//	@Tags			events
//	@Param			id	path	string	true	"Event id"
//	@Success		204
//	@Failure		403	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id} [delete]
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register handles POST /api/events/{id}/registration.
//
//	@Summary		Register the caller for an event
//	@Tags			events
//	@Param			id	path	string	true	"Event id"
//	@Success		204
//	@Failure		401	{object}	errResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id}/registration [post]
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Register(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "register for event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unregister handles DELETE /api/events/{id}/registration.
//
//	@Summary		Cancel the caller's registration
//	@Tags			events
//	@Param			id	path	string	true	"Event id"
//	@Success		204
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id}/registration [delete]
func (h *EventHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Unregister(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "unregister from event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
