package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/malezi/malezi/internal/community"
	"github.com/malezi/malezi/internal/events"
	"github.com/malezi/malezi/internal/gateway"
	"github.com/malezi/malezi/internal/identity"
	"github.com/malezi/malezi/internal/profiles"
	"github.com/malezi/malezi/internal/resources"
)

// Services groups the domain services the router exposes.
type Services struct {
	Community *community.Service
	Resources *resources.Service
	Events    *events.Service
	Profiles  *profiles.Service
}

// NewRouter creates a chi router with all API routes mounted. Every route
// runs behind the identity middleware; the services enforce who may do
// what.
func NewRouter(svcs Services, gw gateway.Gateway, resolver *identity.Resolver) chi.Router {
	ch := NewCommunityHandler(svcs.Community)
	rh := NewResourceHandler(svcs.Resources)
	eh := NewEventHandler(svcs.Events)
	ph := NewProfileHandler(svcs.Profiles)
	ah := NewAdminHandler(gw)

	r := chi.NewRouter()
	r.Use(IdentityMiddleware(resolver))

	// Discussion hierarchy.
	r.Get("/channels", ch.ListChannels)
	r.Post("/channels", ch.CreateChannel)
	r.Delete("/channels/{id}", ch.DeleteChannel)
	r.Get("/channels/{id}/topics", ch.ListTopics)
	r.Post("/channels/{id}/topics", ch.CreateTopic)
	r.Get("/topics/{id}/posts", ch.ListPosts)
	r.Post("/topics/{id}/posts", ch.CreatePost)

	// Resource library.
	r.Get("/resources", rh.ListResources)
	r.Post("/resources", rh.CreateResource)
	r.Post("/resources/{id}/download", rh.RecordDownload)

	// Events.
	r.Get("/events", eh.ListEvents)
	r.Post("/events", eh.CreateEvent)
	r.Delete("/events/{id}", eh.DeleteEvent)
	r.Post("/events/{id}/registration", eh.Register)
	r.Delete("/events/{id}/registration", eh.Unregister)

	// Caller's profile.
	r.Get("/profile", ph.GetProfile)
	r.Put("/profile", ph.UpdateProfile)
	r.Post("/profile/avatar", ph.UploadAvatar)

	// Admin dashboard.
	r.Get("/admin/stats", ah.Stats)

	return r
}
