// Package community implements the channel, topic, and post hierarchy with
// authorization-aware writes and creator enrichment.
package community

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/gateway"
	"github.com/malezi/malezi/internal/identity"
	"github.com/malezi/malezi/internal/models"
)

// ChannelCreationPolicy controls who may create channels.
type ChannelCreationPolicy string

const (
	// CreationAnyone lets any authenticated user create channels.
	CreationAnyone ChannelCreationPolicy = "anyone"
	// CreationAdmin restricts channel creation to admins.
	CreationAdmin ChannelCreationPolicy = "admin"
)

// TopicView is a topic enriched with its creator's display name.
type TopicView struct {
	models.Topic
	CreatorName string `json:"creator_name"`
}

// PostView is a post enriched with its creator's display name and role.
type PostView struct {
	models.Post
	CreatorName string      `json:"creator_name"`
	CreatorRole models.Role `json:"creator_role"`
}

// Service owns the discussion hierarchy.
type Service struct {
	gw     gateway.Gateway
	policy ChannelCreationPolicy
}

// NewService creates a community service with the given channel creation
// policy.
func NewService(gw gateway.Gateway, policy ChannelCreationPolicy) *Service {
	if policy == "" {
		policy = CreationAnyone
	}
	return &Service{gw: gw, policy: policy}
}

// ListChannels returns every channel, oldest first.
func (s *Service) ListChannels(ctx context.Context) ([]models.Channel, error) {
	return s.gw.ListChannels(ctx)
}

// CreateChannel inserts a new channel owned by the caller. Name is
// required; the creation policy may restrict the operation to admins.
func (s *Service) CreateChannel(ctx context.Context, name, description, color string, isPublic bool) (models.Channel, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return models.Channel{}, apperr.ErrAuthRequired
	}
	if s.policy == CreationAdmin && !caller.IsAdmin() {
		return models.Channel{}, apperr.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Channel{}, apperr.Validationf("name", "must not be empty")
	}

	ch := models.Channel{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Color:       color,
		IsPublic:    isPublic,
		CreatedBy:   caller.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.gw.InsertChannel(ctx, ch); err != nil {
		return models.Channel{}, err
	}
	return ch, nil
}

// DeleteChannel removes a channel. Admin only; dependent topics and posts
// are removed by the gateway's cascade.
func (s *Service) DeleteChannel(ctx context.Context, id string) error {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return apperr.ErrAuthRequired
	}
	if !caller.IsAdmin() {
		return apperr.ErrForbidden
	}
	return s.gw.DeleteChannel(ctx, id)
}

// ListTopics returns the channel's topics, newest first, each enriched
// with the creator's display name.
func (s *Service) ListTopics(ctx context.Context, channelID string) ([]TopicView, error) {
	topics, err := s.gw.ListTopicsByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(topics))
	for _, tp := range topics {
		ids = append(ids, tp.CreatedBy)
	}
	profiles := s.lookupProfiles(ctx, ids)

	out := make([]TopicView, 0, len(topics))
	for _, tp := range topics {
		view := TopicView{Topic: tp, CreatorName: "Unknown"}
		if p, ok := profiles[tp.CreatedBy]; ok && p.FullName != "" {
			view.CreatorName = p.FullName
		}
		out = append(out, view)
	}
	return out, nil
}

// CreateTopic inserts a new topic under the channel. Title is required.
func (s *Service) CreateTopic(ctx context.Context, channelID, title, description string) (models.Topic, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return models.Topic{}, apperr.ErrAuthRequired
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Topic{}, apperr.Validationf("title", "must not be empty")
	}

	tp := models.Topic{
		ID:          uuid.NewString(),
		ChannelID:   channelID,
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedBy:   caller.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.gw.InsertTopic(ctx, tp); err != nil {
		return models.Topic{}, err
	}
	return tp, nil
}

// ListPosts returns the topic's posts in creation order, each enriched
// with the creator's display name and role.
func (s *Service) ListPosts(ctx context.Context, topicID string) ([]PostView, error) {
	posts, err := s.gw.ListPostsByTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.CreatedBy)
	}
	profiles := s.lookupProfiles(ctx, ids)

	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		view := PostView{Post: p, CreatorName: "Unknown", CreatorRole: models.RoleMember}
		if prof, ok := profiles[p.CreatedBy]; ok {
			if prof.FullName != "" {
				view.CreatorName = prof.FullName
			}
			view.CreatorRole = prof.Role
		}
		out = append(out, view)
	}
	return out, nil
}

// CreatePost appends a message to the topic. Content must be non-empty
// after trimming; posts are never edited.
func (s *Service) CreatePost(ctx context.Context, topicID, content string) (models.Post, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAuthenticated() {
		return models.Post{}, apperr.ErrAuthRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Post{}, apperr.Validationf("content", "must not be empty")
	}

	p := models.Post{
		ID:        uuid.NewString(),
		TopicID:   topicID,
		Content:   content,
		CreatedBy: caller.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.gw.InsertPost(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// lookupProfiles batch-fetches profiles for the distinct, non-empty ids.
// A failed lookup degrades every row to the fallback instead of failing
// the listing.
func (s *Service) lookupProfiles(ctx context.Context, ids []string) map[string]models.Profile {
	distinct := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	if len(distinct) == 0 {
		return nil
	}

	profiles, err := s.gw.GetProfiles(ctx, distinct)
	if err != nil {
		slog.Warn("creator enrichment lookup failed, using fallbacks", "error", err)
		return nil
	}
	return profiles
}
