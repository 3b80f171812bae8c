// Package gateway defines the contract the application requires from the
// hosted persistence service: per-table CRUD with the ordering and
// equality filters the listings depend on, plus the auth-identity
// accessor. Consumers depend on these interfaces rather than a concrete
// implementation so tests and alternative backends can swap in.
package gateway

import (
	"context"

	"github.com/malezi/malezi/internal/models"
)

// ChannelStore owns the channels table.
type ChannelStore interface {
	// ListChannels returns all channels ordered by created_at ascending.
	ListChannels(ctx context.Context) ([]models.Channel, error)
	InsertChannel(ctx context.Context, ch models.Channel) error
	DeleteChannel(ctx context.Context, id string) error
	CountChannels(ctx context.Context) (int, error)
}

// TopicStore owns the topics table.
type TopicStore interface {
	// ListTopicsByChannel returns the channel's topics ordered by
	// created_at descending (newest first).
	ListTopicsByChannel(ctx context.Context, channelID string) ([]models.Topic, error)
	InsertTopic(ctx context.Context, tp models.Topic) error
}

// PostStore owns the posts table.
type PostStore interface {
	// ListPostsByTopic returns the topic's posts ordered by created_at
	// ascending (creation order).
	ListPostsByTopic(ctx context.Context, topicID string) ([]models.Post, error)
	InsertPost(ctx context.Context, p models.Post) error
}

// ProfileStore owns the profiles table.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	// GetProfiles fetches profiles for the given user ids in one query
	// and returns them keyed by user id. Missing ids are simply absent.
	GetProfiles(ctx context.Context, userIDs []string) (map[string]models.Profile, error)
	InsertProfile(ctx context.Context, p models.Profile) error
	UpdateProfile(ctx context.Context, userID, fullName, bio string) error
	SetAvatarURL(ctx context.Context, userID, url string) error
	CountProfiles(ctx context.Context) (int, error)
}

// ResourceStore owns the resources table.
type ResourceStore interface {
	// ListResources returns resources ordered by is_featured descending,
	// then created_at descending.
	ListResources(ctx context.Context) ([]models.Resource, error)
	GetResource(ctx context.Context, id string) (models.Resource, error)
	InsertResource(ctx context.Context, r models.Resource) error
	// SetDownloadCount persists an absolute count. The read-modify-write
	// sits with the caller; concurrent downloads may lose updates.
	SetDownloadCount(ctx context.Context, id string, count int) error
	CountResources(ctx context.Context) (int, error)
}

// EventStore owns the events and event_registrations tables.
type EventStore interface {
	// ListEvents returns events ordered by start_date descending.
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (models.Event, error)
	InsertEvent(ctx context.Context, ev models.Event) error
	DeleteEvent(ctx context.Context, id string) error
	SetParticipantCount(ctx context.Context, id string, count int) error
	CountEvents(ctx context.Context) (int, error)

	GetRegistration(ctx context.Context, eventID, userID string) (models.EventRegistration, error)
	InsertRegistration(ctx context.Context, reg models.EventRegistration) error
	DeleteRegistration(ctx context.Context, eventID, userID string) error
}

// SessionStore is the auth-identity accessor. Sessions are provisioned by
// the external auth system; this application only resolves tokens.
type SessionStore interface {
	// ResolveSession returns the user id a bearer token belongs to, or
	// apperr.ErrNotFound for an unknown token.
	ResolveSession(ctx context.Context, token string) (string, error)
	InsertSession(ctx context.Context, token, userID string) error
}

// Gateway is the full persistence contract.
type Gateway interface {
	ChannelStore
	TopicStore
	PostStore
	ProfileStore
	ResourceStore
	EventStore
	SessionStore

	Close() error
}
