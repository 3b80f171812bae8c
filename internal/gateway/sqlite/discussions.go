package sqlite

import (
	"context"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/models"
)

// ListTopicsByChannel returns a channel's topics, newest first.
func (g *Gateway) ListTopicsByChannel(ctx context.Context, channelID string) ([]models.Topic, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT id, channel_id, title, description, created_by, created_at
		FROM topics
		WHERE channel_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, channelID)
	if err != nil {
		return nil, apperr.Gateway("list topics", err)
	}
	defer rows.Close()

	var out []models.Topic
	for rows.Next() {
		var tp models.Topic
		var createdAt int64
		if err := rows.Scan(&tp.ID, &tp.ChannelID, &tp.Title, &tp.Description, &tp.CreatedBy, &createdAt); err != nil {
			return nil, apperr.Gateway("scan topic", err)
		}
		tp.CreatedAt = fromNanos(createdAt)
		out = append(out, tp)
	}
	return out, apperr.Gateway("list topics", rows.Err())
}

func (g *Gateway) InsertTopic(ctx context.Context, tp models.Topic) error {
	_, err := g.conn.ExecContext(ctx, `
		INSERT INTO topics (id, channel_id, title, description, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tp.ID, tp.ChannelID, tp.Title, tp.Description, tp.CreatedBy, nanos(tp.CreatedAt))
	return apperr.Gateway("insert topic", err)
}

// ListPostsByTopic returns a topic's posts in creation order.
func (g *Gateway) ListPostsByTopic(ctx context.Context, topicID string) ([]models.Post, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT id, topic_id, content, created_by, created_at
		FROM posts
		WHERE topic_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, topicID)
	if err != nil {
		return nil, apperr.Gateway("list posts", err)
	}
	defer rows.Close()

	var out []models.Post
	for rows.Next() {
		var p models.Post
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.TopicID, &p.Content, &p.CreatedBy, &createdAt); err != nil {
			return nil, apperr.Gateway("scan post", err)
		}
		p.CreatedAt = fromNanos(createdAt)
		out = append(out, p)
	}
	return out, apperr.Gateway("list posts", rows.Err())
}

func (g *Gateway) InsertPost(ctx context.Context, p models.Post) error {
	_, err := g.conn.ExecContext(ctx, `
		INSERT INTO posts (id, topic_id, content, created_by, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.TopicID, p.Content, p.CreatedBy, nanos(p.CreatedAt))
	return apperr.Gateway("insert post", err)
}
