// Package models holds the row types owned by the persistence gateway.
// The application only ever keeps read-through copies of these.
package models

import "time"

// Channel is a top-level discussion container. Immutable once created
// except for deletion (admin-only); there is no update operation.
type Channel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"` // hex display hint, not validated beyond presence
	IsPublic    bool      `json:"is_public"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Topic is a discussion thread inside a Channel.
type Topic struct {
	ID          string    `json:"id"`
	ChannelID   string    `json:"channel_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Post is an append-only message inside a Topic. Posts are never edited
// or deleted.
type Post struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the viewer-facing account record kept alongside the external
// auth identity.
type Profile struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Resource is a catalog item in the resource library.
type Resource struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	FileType      FileType  `json:"file_type"`
	Category      Category  `json:"category"`
	Tags          []string  `json:"tags"`
	FileURL       string    `json:"file_url,omitempty"`
	IsFeatured    bool      `json:"is_featured"`
	DownloadCount int       `json:"download_count"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// Event is a scheduled community event.
type Event struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	EventType           string    `json:"event_type"`
	Location            string    `json:"location,omitempty"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	CreatedBy           string    `json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
}

// EventRegistration links a user to an event they signed up for.
type EventRegistration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
