package api

import (
	"time"

	"github.com/malezi/malezi/internal/community"
	"github.com/malezi/malezi/internal/models"
)

// CreateChannelRequest is the request body for creating a channel.
type CreateChannelRequest struct {
	Name        string `json:"name" example:"General" validate:"required"`
	Description string `json:"description" example:"Open discussion"`
	Color       string `json:"color" example:"#4f46e5"`
	IsPublic    bool   `json:"is_public" example:"true"`
}

// CreateTopicRequest is the request body for creating a topic.
type CreateTopicRequest struct {
	Title       string `json:"title" example:"Sleep schedules" validate:"required"`
	Description string `json:"description" example:"How do you handle naps?"`
}

// CreatePostRequest is the request body for posting a message.
type CreatePostRequest struct {
	Content string `json:"content" example:"We switched to two naps at 9 months." validate:"required"`
}

// CreateResourceRequest is the JSON request body for link resources.
// File-backed resources are uploaded as multipart forms instead.
type CreateResourceRequest struct {
	Title       string   `json:"title" example:"Weaning guide" validate:"required"`
	Description string   `json:"description"`
	FileType    string   `json:"file_type" example:"link" validate:"required"`
	Category    string   `json:"category" example:"parenting" validate:"required"`
	Tags        []string `json:"tags"`
	IsFeatured  bool     `json:"is_featured"`
	FileURL     string   `json:"file_url" example:"https://example.com/guide"`
}

// UpdateProfileRequest is the request body for editing the caller's profile.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" example:"Amina W." validate:"required"`
	Bio      string `json:"bio" example:"Mother of two"`
}

// CreateEventRequest is the request body for creating an event.
type CreateEventRequest struct {
	Title           string    `json:"title" example:"Parenting workshop" validate:"required"`
	Description     string    `json:"description"`
	EventType       string    `json:"event_type" example:"workshop"`
	Location        string    `json:"location" example:"Community hall"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date"`
	MaxParticipants int       `json:"max_participants" example:"30"`
}

// ChannelListResponse wraps channel listings.
type ChannelListResponse struct {
	Channels []models.Channel `json:"channels" validate:"required"`
}

// TopicListResponse wraps topic listings.
type TopicListResponse struct {
	Topics []community.TopicView `json:"topics" validate:"required"`
}

// PostListResponse wraps post listings.
type PostListResponse struct {
	Posts []community.PostView `json:"posts" validate:"required"`
}

// ResourceListResponse wraps resource listings.
type ResourceListResponse struct {
	Resources []models.Resource `json:"resources" validate:"required"`
}

// EventListResponse wraps event listings.
type EventListResponse struct {
	Events []models.Event `json:"events" validate:"required"`
}

// AvatarResponse returns the public URL of an uploaded avatar.
type AvatarResponse struct {
	AvatarURL string `json:"avatar_url" validate:"required"`
}

// StatsResponse is the admin dashboard's row counts.
type StatsResponse struct {
	Channels  int `json:"channels" validate:"required"`
	Profiles  int `json:"profiles" validate:"required"`
	Resources int `json:"resources" validate:"required"`
	Events    int `json:"events" validate:"required"`
}
